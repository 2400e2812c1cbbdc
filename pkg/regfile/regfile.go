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

// Package regfile holds the latest committed sampling round. One writer
// (the sampling task) and any number of concurrent readers share a RegFile.
package regfile

import (
	"fmt"
	"sync"
	"time"
)

var processStart = time.Now()

// UptimeMillis returns milliseconds since process start. time.Since uses
// the monotonic clock, so wall clock adjustments do not affect it.
func UptimeMillis() int64 {
	return int64(time.Since(processStart) / time.Millisecond)
}

// Snapshot is a fully consistent copy of the register file state. All
// fields belong to the same committed round.
type Snapshot struct {
	ChannelValues []int32 `json:"channelValues"`
	Seq           uint32  `json:"seq"`
	LastUpdateMS  int64   `json:"lastUpdateMs"`
}

// RegFile stores the latest millivolt reading per channel together with a
// sequence counter and the uptime of the last successful update. The three
// fields are guarded by a single mutex and always change together; the
// critical sections only copy memory, no I/O happens under the lock.
type RegFile struct {
	mu           sync.Mutex
	values       []int32
	seq          uint32
	lastUpdateMS int64
	clock        func() int64
}

// New creates a register file with the given fixed channel count. All
// fields start zeroed. The channel count never changes afterwards.
func New(numChannels int) *RegFile {
	return &RegFile{
		values: make([]int32, numChannels),
		clock:  UptimeMillis,
	}
}

func (r *RegFile) NumChannels() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.values)
}

// Reset zeroes all fields keeping the channel count. Used for test isolation.
func (r *RegFile) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.values {
		r.values[i] = 0
	}
	r.seq = 0
	r.lastUpdateMS = 0
}

// Update replaces all channel values, increments the sequence counter and
// stamps the update time, atomically with respect to Read. The sequence
// wraps around silently on uint32 overflow.
//
// Passing a slice of the wrong length is a caller contract violation and
// panics. The length is fixed by validated config before the sampling task
// starts, so the sampler can never trip this.
func (r *RegFile) Update(mv []int32) {
	if len(mv) != len(r.values) {
		panic(fmt.Sprintf("regfile: update with %d values, want %d", len(mv), len(r.values)))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	copy(r.values, mv)
	r.seq++
	r.lastUpdateMS = r.clock()
}

// Read returns a consistent copy of the whole register file. A reader sees
// either the complete pre-update or the complete post-update state, never
// values from one round mixed with the sequence of another.
func (r *RegFile) Read() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	values := make([]int32, len(r.values))
	copy(values, r.values)
	return Snapshot{
		ChannelValues: values,
		Seq:           r.seq,
		LastUpdateMS:  r.lastUpdateMS,
	}
}
