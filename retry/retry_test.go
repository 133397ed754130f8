package retry_test

import (
	"testing"
	"time"

	"github.com/schedkit/schedkit/retry"
)

func TestFixed_ReturnsSameDelay(t *testing.T) {
	f := retry.NewFixed(3 * time.Second)
	for attempt := 1; attempt <= 10; attempt++ {
		if got := f.Delay(attempt); got != 3*time.Second {
			t.Errorf("Delay(%d) = %v, want %v", attempt, got, 3*time.Second)
		}
	}
}

func TestExponential_DoublesEachAttempt(t *testing.T) {
	e := retry.NewExponential(time.Second, 0)

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 1 * time.Second},
		{2, 2 * time.Second},
		{3, 4 * time.Second},
		{4, 8 * time.Second},
		{5, 16 * time.Second},
	}
	for _, tt := range tests {
		if got := e.Delay(tt.attempt); got != tt.want {
			t.Errorf("Delay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestExponential_CapsAtMax(t *testing.T) {
	e := retry.NewExponential(time.Second, 10*time.Second)

	if got := e.Delay(5); got != 10*time.Second {
		t.Errorf("Delay(5) = %v, want %v (capped)", got, 10*time.Second)
	}
	if got := e.Delay(30); got != 10*time.Second {
		t.Errorf("Delay(30) = %v, want %v (capped)", got, 10*time.Second)
	}
}

func TestExponential_ClampsLowAttempts(t *testing.T) {
	e := retry.NewExponential(time.Second, 0)
	if got := e.Delay(0); got != time.Second {
		t.Errorf("Delay(0) = %v, want %v", got, time.Second)
	}
}

func TestJitter_WithinBounds(t *testing.T) {
	j := retry.WithJitter(retry.NewExponential(time.Second, 8*time.Second))

	for attempt := 1; attempt <= 5; attempt++ {
		for range 100 {
			got := j.Delay(attempt)
			if got < 0 {
				t.Fatalf("Delay(%d) = %v, want >= 0", attempt, got)
			}
			if got > 8*time.Second {
				t.Fatalf("Delay(%d) = %v, want <= %v", attempt, got, 8*time.Second)
			}
		}
	}
}

func TestJitter_ProducesVariance(t *testing.T) {
	j := retry.WithJitter(retry.NewFixed(time.Minute))

	seen := make(map[time.Duration]bool)
	for range 100 {
		seen[j.Delay(1)] = true
	}
	if len(seen) < 2 {
		t.Errorf("expected variance, got %d distinct delays", len(seen))
	}
}

func TestDefault_MatchesPowersOfTwo(t *testing.T) {
	s := retry.Default()
	for attempt, want := range map[int]time.Duration{
		1: time.Second,
		2: 2 * time.Second,
		3: 4 * time.Second,
	} {
		if got := s.Delay(attempt); got != want {
			t.Errorf("Default().Delay(%d) = %v, want %v", attempt, got, want)
		}
	}
}
