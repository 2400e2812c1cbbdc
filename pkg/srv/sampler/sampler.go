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
	"io"
	"time"

	"jinr.ru/greenlab/go-sampler/pkg/config"
	"jinr.ru/greenlab/go-sampler/pkg/log"
	"jinr.ru/greenlab/go-sampler/pkg/regfile"
	sampling "jinr.ru/greenlab/go-sampler/pkg/sampler"
	"jinr.ru/greenlab/go-sampler/pkg/source/ifc"
	"jinr.ru/greenlab/go-sampler/pkg/source/sim"
	"jinr.ru/greenlab/go-sampler/pkg/source/spi"
	"jinr.ru/greenlab/go-sampler/pkg/srv"
	"jinr.ru/greenlab/go-sampler/pkg/srv/announce"
	samplerifc "jinr.ru/greenlab/go-sampler/pkg/srv/sampler/ifc"
)

const (
	SnapshotChSize = 16
)

// Server composes the register file, the channel source, the sampling
// task, the HTTP API, the bbolt snapshot mirror and the announcer.
type Server struct {
	srv.Server
	regs       *regfile.RegFile
	source     ifc.Source
	task       *sampling.Sampler
	api        *ApiServer
	state      *State
	announcer  *announce.Announcer
	chSnapshot chan regfile.Snapshot
}

var _ samplerifc.SamplerServer = &Server{}

func NewServer(ctx context.Context, cfg *config.Config) (samplerifc.SamplerServer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Debug("Initializing sampler server: channels: %d period: %d ms backend: %s",
		cfg.NumChannels, cfg.SamplePeriodMS, cfg.Backend)

	regs := regfile.New(cfg.NumChannels)

	var source ifc.Source
	switch cfg.Backend {
	case config.BackendSim:
		source = sim.NewSource(cfg.NumChannels, cfg.ReferenceMV)
	case config.BackendSPI:
		source = spi.NewSource(cfg.NumChannels, cfg.ReferenceMV, cfg.SPIPort)
	}

	task := sampling.New(regs, source, time.Duration(cfg.SamplePeriodMS)*time.Millisecond)
	chSnapshot := make(chan regfile.Snapshot, SnapshotChSize)
	task.Notify = chSnapshot

	state, err := NewState(ctx, cfg)
	if err != nil {
		return nil, err
	}

	s := &Server{
		Server: srv.Server{
			Context: ctx,
			Config:  cfg,
		},
		regs:       regs,
		source:     source,
		task:       task,
		state:      state,
		chSnapshot: chSnapshot,
	}

	apiServer, err := NewApiServer(ctx, cfg, s)
	if err != nil {
		return nil, err
	}
	s.api = apiServer

	if cfg.AnnounceConfig != nil && cfg.AnnounceConfig.Address != "" {
		announcer, err := announce.NewAnnouncer(ctx, cfg, regs)
		if err != nil {
			return nil, err
		}
		s.announcer = announcer
	}

	return s, nil
}

func (s *Server) Run() error {
	// Backend not ready is a configuration error, fatal at startup.
	if err := s.source.Init(); err != nil {
		return err
	}
	if closer, ok := s.source.(io.Closer); ok {
		defer closer.Close()
	}
	defer s.state.Close()

	errChan := make(chan error, 1)

	go func() {
		errChan <- s.task.Run(s.Context)
	}()

	go func() {
		errChan <- s.api.Run()
	}()

	if s.announcer != nil {
		go func() {
			errChan <- s.announcer.Run()
		}()
	}

	// Mirror committed snapshots into the state database outside the
	// sampling loop and outside the register file lock.
	go func() {
		for {
			select {
			case <-s.Context.Done():
				return
			case snapshot := <-s.chSnapshot:
				if err := s.state.SetSnapshot(snapshot); err != nil {
					log.Error("Error while mirroring snapshot: %s", err)
				}
			}
		}
	}()

	select {
	case <-s.Context.Done():
		return s.Context.Err()
	case err := <-errChan:
		return err
	}
}

func (s *Server) Snapshot() regfile.Snapshot {
	return s.regs.Read()
}

func (s *Server) Inject(channel int, mv int32) (int32, error) {
	injector, ok := s.source.(ifc.Injector)
	if !ok {
		return 0, ErrNotInjectable{Backend: s.Config.Backend}
	}
	return injector.Inject(channel, mv)
}

func (s *Server) NumChannels() int {
	return s.regs.NumChannels()
}
