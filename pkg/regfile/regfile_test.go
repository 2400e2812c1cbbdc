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

package regfile

import (
	"reflect"
	"sync"
	"testing"
)

// TestZeroState verifies the state right after construction.
func TestZeroState(t *testing.T) {
	rf := New(4)
	snap := rf.Read()
	if snap.Seq != 0 {
		t.Errorf("Expected seq 0, got %d", snap.Seq)
	}
	if snap.LastUpdateMS != 0 {
		t.Errorf("Expected lastUpdateMs 0, got %d", snap.LastUpdateMS)
	}
	if len(snap.ChannelValues) != 4 {
		t.Fatalf("Expected 4 channels, got %d", len(snap.ChannelValues))
	}
	for i, mv := range snap.ChannelValues {
		if mv != 0 {
			t.Errorf("Expected ch[%d] = 0, got %d", i, mv)
		}
	}
}

// TestBasicCycle verifies a single update is fully visible.
func TestBasicCycle(t *testing.T) {
	rf := New(4)
	rf.clock = func() int64 { return 42 }

	rf.Update([]int32{1000, 2000, 3000, 4000})

	snap := rf.Read()
	if snap.Seq != 1 {
		t.Errorf("Expected seq 1, got %d", snap.Seq)
	}
	if !reflect.DeepEqual(snap.ChannelValues, []int32{1000, 2000, 3000, 4000}) {
		t.Errorf("Unexpected channel values: %v", snap.ChannelValues)
	}
	if snap.LastUpdateMS != 42 {
		t.Errorf("Expected lastUpdateMs 42, got %d", snap.LastUpdateMS)
	}
}

// TestOverwrite verifies a second update fully replaces the first.
func TestOverwrite(t *testing.T) {
	rf := New(4)
	rf.Update([]int32{100, 200, 300, 400})
	rf.Update([]int32{500, 600, 700, 800})

	snap := rf.Read()
	if snap.ChannelValues[0] != 500 {
		t.Errorf("Expected ch[0] = 500, got %d", snap.ChannelValues[0])
	}
	if snap.Seq != 2 {
		t.Errorf("Expected seq 2, got %d", snap.Seq)
	}
	if !reflect.DeepEqual(snap.ChannelValues, []int32{500, 600, 700, 800}) {
		t.Errorf("Partial merge detected: %v", snap.ChannelValues)
	}
}

// TestSequenceAfterFiveUpdates verifies the counter increments by exactly
// one per update.
func TestSequenceAfterFiveUpdates(t *testing.T) {
	rf := New(4)
	zeros := make([]int32, 4)
	for i := 0; i < 5; i++ {
		rf.Update(zeros)
	}
	if snap := rf.Read(); snap.Seq != 5 {
		t.Errorf("Expected seq 5, got %d", snap.Seq)
	}
}

// TestResetZeroes verifies Reset restores the zero state without changing
// the channel count.
func TestResetZeroes(t *testing.T) {
	rf := New(3)
	rf.Update([]int32{1, 2, 3})
	rf.Reset()

	snap := rf.Read()
	if snap.Seq != 0 || snap.LastUpdateMS != 0 {
		t.Errorf("Expected zeroed metadata, got seq %d lastUpdateMs %d", snap.Seq, snap.LastUpdateMS)
	}
	if !reflect.DeepEqual(snap.ChannelValues, []int32{0, 0, 0}) {
		t.Errorf("Expected zeroed channels, got %v", snap.ChannelValues)
	}
	if rf.NumChannels() != 3 {
		t.Errorf("Expected 3 channels after reset, got %d", rf.NumChannels())
	}
}

// TestUpdateWrongLengthPanics verifies the caller contract is enforced.
func TestUpdateWrongLengthPanics(t *testing.T) {
	rf := New(4)
	defer func() {
		if recover() == nil {
			t.Fatal("Expected panic on wrong-length update")
		}
	}()
	rf.Update([]int32{1, 2})
}

// TestSnapshotIsDetached verifies mutating a returned snapshot does not
// leak into the register file.
func TestSnapshotIsDetached(t *testing.T) {
	rf := New(2)
	rf.Update([]int32{10, 20})

	snap := rf.Read()
	snap.ChannelValues[0] = 999

	if again := rf.Read(); again.ChannelValues[0] != 10 {
		t.Errorf("Snapshot mutation leaked into register file: %v", again.ChannelValues)
	}
}

// TestNoTearingUnderConcurrency runs one writer against several readers.
// Every update writes values derived from a single marker, so any snapshot
// mixing two rounds is detectable.
func TestNoTearingUnderConcurrency(t *testing.T) {
	const (
		numChannels = 8
		numReaders  = 4
		numUpdates  = 2000
	)

	rf := New(numChannels)
	done := make(chan struct{})
	var wg sync.WaitGroup

	for r := 0; r < numReaders; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			var lastSeq uint32
			for {
				select {
				case <-done:
					return
				default:
				}
				snap := rf.Read()
				if snap.Seq < lastSeq {
					t.Errorf("Reader %d: sequence went backwards: %d -> %d", reader, lastSeq, snap.Seq)
					return
				}
				lastSeq = snap.Seq
				if snap.Seq == 0 {
					continue
				}
				marker := snap.ChannelValues[0]
				for i, mv := range snap.ChannelValues {
					if mv != marker+int32(i) {
						t.Errorf("Reader %d: torn snapshot at seq %d: %v", reader, snap.Seq, snap.ChannelValues)
						return
					}
				}
			}
		}(r)
	}

	values := make([]int32, numChannels)
	for k := 1; k <= numUpdates; k++ {
		marker := int32(k * numChannels)
		for i := range values {
			values[i] = marker + int32(i)
		}
		rf.Update(values)
	}
	close(done)
	wg.Wait()

	if snap := rf.Read(); snap.Seq != numUpdates {
		t.Errorf("Expected final seq %d, got %d", numUpdates, snap.Seq)
	}
}
