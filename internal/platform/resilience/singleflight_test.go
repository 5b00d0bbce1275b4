package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestGroup_DoSharesInFlightCall(t *testing.T) {
	var g Group[string]
	var counter int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			_, err, _ := g.Do("token-key", func() (string, error) {
				atomic.AddInt32(&counter, 1)
				time.Sleep(20 * time.Millisecond)
				return "ok", nil
			})
			if err != nil {
				t.Errorf("singleflight call failed: %v", err)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&counter); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
}

func TestGroup_DistinctKeysRunIndependently(t *testing.T) {
	t.Parallel()

	var g Group[int]
	a, err, shared := g.Do("a", func() (int, error) { return 1, nil })
	if err != nil || shared || a != 1 {
		t.Fatalf("unexpected first result: v=%d err=%v shared=%v", a, err, shared)
	}
	b, err, shared := g.Do("b", func() (int, error) { return 2, nil })
	if err != nil || shared || b != 2 {
		t.Fatalf("unexpected second result: v=%d err=%v shared=%v", b, err, shared)
	}
	if g.InFlight() != 0 {
		t.Fatalf("expected no in-flight calls, got %d", g.InFlight())
	}
}
