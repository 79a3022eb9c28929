package csrf

import (
	"sync"
	"testing"
	"time"

	"github.com/danacastroman/app-vestidos/services/api/internal/clock"
)

type stubClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stubClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stubClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestService_SingleUse(t *testing.T) {
	t.Parallel()

	svc := New(clock.NewFixed(time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC)))

	token := svc.Issue(1)
	if token == "" {
		t.Fatalf("expected non-empty token")
	}

	if !svc.Valid(token, 1) {
		t.Fatalf("expected fresh token to be valid")
	}
	// Valid has no side effects.
	if !svc.Valid(token, 1) {
		t.Fatalf("expected token still valid after peeking")
	}

	if !svc.Consume(token, 1) {
		t.Fatalf("expected first consume to succeed")
	}
	if svc.Consume(token, 1) {
		t.Fatalf("expected second consume to fail")
	}
	if svc.Valid(token, 1) {
		t.Fatalf("expected consumed token to be invalid")
	}
}

func TestService_ContextBinding(t *testing.T) {
	t.Parallel()

	svc := New(clock.NewFixed(time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC)))

	token := svc.Issue(1)
	if svc.Valid(token, 2) {
		t.Fatalf("expected token issued for item 1 to be invalid for item 2")
	}
	if svc.Consume(token, 2) {
		t.Fatalf("expected consume for the wrong item to fail")
	}
	if !svc.Consume(token, 1) {
		t.Fatalf("expected consume for the issuing item to succeed")
	}
}

func TestService_UnknownToken(t *testing.T) {
	t.Parallel()

	svc := New(clock.NewFixed(time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC)))

	if svc.Valid("", 1) {
		t.Fatalf("expected empty token to be invalid")
	}
	if svc.Consume("never-issued", 1) {
		t.Fatalf("expected unknown token consume to fail")
	}
}

func TestService_Expiry(t *testing.T) {
	t.Parallel()

	clk := &stubClock{now: time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC)}
	svc := New(clk, WithTTL(10*time.Minute))

	token := svc.Issue(1)
	clk.Advance(9 * time.Minute)
	if !svc.Valid(token, 1) {
		t.Fatalf("expected token valid within the freshness window")
	}

	clk.Advance(2 * time.Minute)
	if svc.Valid(token, 1) {
		t.Fatalf("expected token expired after the freshness window")
	}
	if svc.Consume(token, 1) {
		t.Fatalf("expected expired token consume to fail")
	}
}

func TestService_ConcurrentConsume(t *testing.T) {
	t.Parallel()

	svc := New(clock.NewFixed(time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC)))
	token := svc.Issue(7)

	const attempts = 16
	results := make(chan bool, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- svc.Consume(token, 7)
		}()
	}
	wg.Wait()
	close(results)

	wins := 0
	for ok := range results {
		if ok {
			wins++
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly one successful consume, got %d", wins)
	}
}
