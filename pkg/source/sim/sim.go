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

// Package sim provides a simulated channel source reporting constant
// per-channel values that can be overridden through injection.
package sim

import (
	"sync"

	"jinr.ru/greenlab/go-sampler/pkg/log"
	"jinr.ru/greenlab/go-sampler/pkg/source/ifc"
)

type Source struct {
	mu          sync.Mutex
	mv          []int32
	referenceMV int32
}

var _ ifc.Source = &Source{}
var _ ifc.Injector = &Source{}

func NewSource(numChannels int, referenceMV int32) *Source {
	return &Source{
		mv:          make([]int32, numChannels),
		referenceMV: referenceMV,
	}
}

// Init sets every channel to mid-scale.
func (s *Source) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.mv {
		s.mv[i] = s.referenceMV / 2
	}
	log.Info("Sim source initialized: channels: %d reference: %d mV", len(s.mv), s.referenceMV)
	return nil
}

func (s *Source) SampleAll() ([]int32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	mv := make([]int32, len(s.mv))
	copy(mv, s.mv)
	return mv, nil
}

// Inject sets the value reported for a channel on subsequent rounds.
// Values outside [0, reference] are clamped with a warning and the applied
// value is returned.
func (s *Source) Inject(channel int, mv int32) (int32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if channel < 0 || channel >= len(s.mv) {
		return 0, ifc.ErrNoSuchChannel{Channel: channel, NumChannels: len(s.mv)}
	}
	if mv < 0 || mv > s.referenceMV {
		clamped := mv
		if clamped < 0 {
			clamped = 0
		} else {
			clamped = s.referenceMV
		}
		log.Warning("Clamping injected value %d mV to [0, %d]: applied %d mV", mv, s.referenceMV, clamped)
		mv = clamped
	}
	s.mv[channel] = mv
	log.Info("Injected ch[%d] = %d mV", channel, mv)
	return mv, nil
}
