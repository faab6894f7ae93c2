package layoutanim

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSerialExecutorRunsInOrder(t *testing.T) {
	e := NewSerialExecutor()
	defer e.Close()

	var got []int
	for i := range 50 {
		e.Execute(func() { got = append(got, i) })
	}
	e.Flush()

	want := make([]int, 50)
	for i := range want {
		want[i] = i
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestSerialExecutorCloseDrains(t *testing.T) {
	e := NewSerialExecutor()
	var mu sync.Mutex
	n := 0
	for range 10 {
		e.Execute(func() {
			mu.Lock()
			n++
			mu.Unlock()
		})
	}
	e.Close()
	if n != 10 {
		t.Errorf("ran %d callbacks before Close returned, want 10", n)
	}

	e.Execute(func() { t.Error("callback ran after Close") })
	e.Flush()
	e.Close()
}

func TestSerialExecutorConcurrentSubmit(t *testing.T) {
	e := NewSerialExecutor()
	defer e.Close()

	var wg sync.WaitGroup
	var mu sync.Mutex
	n := 0
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				e.Execute(func() {
					mu.Lock()
					n++
					mu.Unlock()
				})
			}
		}()
	}
	wg.Wait()
	e.Flush()
	if n != 800 {
		t.Errorf("ran %d callbacks, want 800", n)
	}
}
