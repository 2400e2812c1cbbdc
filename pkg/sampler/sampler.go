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

// Package sampler drives the periodic sample/commit cycle against the
// register file.
package sampler

import (
	"context"
	"time"

	"jinr.ru/greenlab/go-sampler/pkg/log"
	"jinr.ru/greenlab/go-sampler/pkg/regfile"
	"jinr.ru/greenlab/go-sampler/pkg/source/ifc"
)

// Sampler asks the channel source for a full round of readings every
// period and commits successful rounds to the register file. A failed
// round leaves the register file untouched and is retried on the next
// natural cycle, there is no dedicated backoff.
type Sampler struct {
	regs   *regfile.RegFile
	source ifc.Source
	period time.Duration

	// Notify, when set, receives the snapshot of every committed round.
	// The send never blocks the sampling loop.
	Notify chan<- regfile.Snapshot
}

func New(regs *regfile.RegFile, source ifc.Source, period time.Duration) *Sampler {
	return &Sampler{
		regs:   regs,
		source: source,
		period: period,
	}
}

// Run samples immediately, then on every tick, until the context is
// cancelled. The source must already be initialized.
func (s *Sampler) Run(ctx context.Context) error {
	log.Info("Sampling task started: period: %s", s.period)
	ticker := time.NewTicker(s.period)
	defer ticker.Stop()
	for {
		s.sampleRound()
		select {
		case <-ctx.Done():
			log.Info("Sampling task stopped")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (s *Sampler) sampleRound() {
	mv, err := s.source.SampleAll()
	if err != nil {
		log.Error("Sampling round failed: %s", err)
		return
	}
	s.regs.Update(mv)
	if s.Notify != nil {
		select {
		case s.Notify <- s.regs.Read():
		default:
		}
	}
}
