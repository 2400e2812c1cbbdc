/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package sampler

import (
	"context"

	"go.etcd.io/bbolt"
	"sigs.k8s.io/yaml"

	"jinr.ru/greenlab/go-sampler/pkg/config"
	"jinr.ru/greenlab/go-sampler/pkg/log"
	"jinr.ru/greenlab/go-sampler/pkg/regfile"
)

const (
	BucketName  = "sampler_state"
	SnapshotKey = "latest_snapshot"
)

// State mirrors the most recently committed snapshot into a bbolt
// database. It is a diagnostics record of the last known state, the
// register file itself never reads it back.
type State struct {
	context.Context
	DB *bbolt.DB
}

func NewState(ctx context.Context, cfg *config.Config) (*State, error) {
	db, err := bbolt.Open(cfg.DBPath, 0600, nil)
	if err != nil {
		return nil, err
	}
	if err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(BucketName))
		return err
	}); err != nil {
		return nil, err
	}
	return &State{
		Context: ctx,
		DB:      db,
	}, nil
}

// Close ...
func (s *State) Close() {
	s.DB.Close()
}

// SetSnapshot ...
func (s *State) SetSnapshot(snapshot regfile.Snapshot) error {
	log.Debug("Mirroring snapshot: seq: %d", snapshot.Seq)
	return s.DB.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BucketName))
		snapshotBytes, err := yaml.Marshal(&snapshot)
		if err != nil {
			return err
		}
		return b.Put([]byte(SnapshotKey), snapshotBytes)
	})
}

// GetSnapshot ...
func (s *State) GetSnapshot() (*regfile.Snapshot, error) {
	var snapshot regfile.Snapshot
	if err := s.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BucketName))
		snapshotBytes := b.Get([]byte(SnapshotKey))
		if snapshotBytes == nil {
			return ErrSnapshotNotFound{}
		}
		return yaml.Unmarshal(snapshotBytes, &snapshot)
	}); err != nil {
		return nil, err
	}
	return &snapshot, nil
}
