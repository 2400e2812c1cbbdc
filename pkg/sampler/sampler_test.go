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
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"jinr.ru/greenlab/go-sampler/pkg/regfile"
)

type stubSource struct {
	mu   sync.Mutex
	mv   []int32
	fail bool
}

func (s *stubSource) Init() error {
	return nil
}

func (s *stubSource) SampleAll() ([]int32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return nil, errors.New("device read failed")
	}
	mv := make([]int32, len(s.mv))
	copy(mv, s.mv)
	return mv, nil
}

func (s *stubSource) set(mv []int32, fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mv = mv
	s.fail = fail
}

// TestRoundCommits verifies a successful round replaces the register file
// contents as one transaction.
func TestRoundCommits(t *testing.T) {
	rf := regfile.New(4)
	src := &stubSource{mv: []int32{1000, 2000, 3000, 4000}}
	s := New(rf, src, time.Second)

	s.sampleRound()

	snap := rf.Read()
	if snap.Seq != 1 {
		t.Errorf("Expected seq 1, got %d", snap.Seq)
	}
	if !reflect.DeepEqual(snap.ChannelValues, []int32{1000, 2000, 3000, 4000}) {
		t.Errorf("Unexpected channel values: %v", snap.ChannelValues)
	}
}

// TestFailedRoundIsNoOp verifies a failed round leaves the previous
// snapshot untouched.
func TestFailedRoundIsNoOp(t *testing.T) {
	rf := regfile.New(2)
	src := &stubSource{mv: []int32{100, 200}}
	s := New(rf, src, time.Second)

	s.sampleRound()
	before := rf.Read()

	src.set(nil, true)
	s.sampleRound()

	after := rf.Read()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("Failed round mutated state: before %+v after %+v", before, after)
	}
	if after.Seq != 1 {
		t.Errorf("Expected seq still 1, got %d", after.Seq)
	}
}

// TestRecoversAfterFailure verifies sampling resumes on the next cycle.
func TestRecoversAfterFailure(t *testing.T) {
	rf := regfile.New(2)
	src := &stubSource{fail: true}
	s := New(rf, src, time.Second)

	s.sampleRound()
	if snap := rf.Read(); snap.Seq != 0 {
		t.Fatalf("Expected seq 0 after failed round, got %d", snap.Seq)
	}

	src.set([]int32{7, 8}, false)
	s.sampleRound()

	snap := rf.Read()
	if snap.Seq != 1 {
		t.Errorf("Expected seq 1 after recovery, got %d", snap.Seq)
	}
	if !reflect.DeepEqual(snap.ChannelValues, []int32{7, 8}) {
		t.Errorf("Unexpected channel values: %v", snap.ChannelValues)
	}
}

// TestRunStopsOnCancel verifies the clean shutdown path.
func TestRunStopsOnCancel(t *testing.T) {
	rf := regfile.New(1)
	src := &stubSource{mv: []int32{42}}
	s := New(rf, src, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Run(ctx)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-errChan:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancellation")
	}

	if snap := rf.Read(); snap.Seq == 0 {
		t.Error("Expected at least one committed round before cancellation")
	}
}

// TestNotifyNeverBlocks verifies commit notifications are dropped, not
// queued, when nobody is receiving.
func TestNotifyNeverBlocks(t *testing.T) {
	rf := regfile.New(1)
	src := &stubSource{mv: []int32{1}}
	s := New(rf, src, time.Second)

	ch := make(chan regfile.Snapshot, 1)
	s.Notify = ch

	done := make(chan bool)
	go func() {
		s.sampleRound()
		s.sampleRound() // channel full, must not block
		done <- true
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sampleRound blocked on full notify channel")
	}

	snap := <-ch
	if snap.Seq != 1 {
		t.Errorf("Expected notification for seq 1, got %d", snap.Seq)
	}
}
