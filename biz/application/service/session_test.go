package service

import (
	"testing"
	"time"

	"exam-hall/biz/infrastructure/util/clock"
)

func TestExamEndTime(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	end := examEndTime(start, 90)
	want := time.Date(2026, 3, 10, 10, 30, 0, 0, time.UTC)
	if !end.Equal(want) {
		t.Fatalf("examEndTime(90m) = %v, want %v", end, want)
	}
}

func TestRemainingSeconds(t *testing.T) {
	end := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		now  time.Time
		want int64
	}{
		{"full hour left", end.Add(-1 * time.Hour), 3600},
		{"one second left", end.Add(-1 * time.Second), 1},
		{"exactly at deadline", end, 0},
		{"past deadline floors at zero", end.Add(5 * time.Minute), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := remainingSeconds(end, tc.now); got != tc.want {
				t.Fatalf("remainingSeconds = %d, want %d", got, tc.want)
			}
		})
	}
}

// A pause at T with R seconds left must yield a resume deadline of now+R, no
// matter how long the pause lasted.
func TestPauseResumePreservesRemaining(t *testing.T) {
	fake := clock.NewFake(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))

	start := fake.Now()
	deadline := examEndTime(start, 60)

	// work 20 minutes, then pause
	fake.Advance(20 * time.Minute)
	remaining := remainingSeconds(deadline, fake.Now())
	if remaining != 40*60 {
		t.Fatalf("remaining after 20m = %ds, want %ds", remaining, 40*60)
	}

	// the pause lasts two hours; the budget must not shrink
	fake.Advance(2 * time.Hour)
	newDeadline := resumedEndTime(fake.Now(), remaining)

	if got := remainingSeconds(newDeadline, fake.Now()); got != remaining {
		t.Fatalf("remaining after resume = %ds, want %ds", got, remaining)
	}
}

func TestResumeAfterDeadlinePause(t *testing.T) {
	fake := clock.NewFake(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))

	deadline := examEndTime(fake.Now(), 30)
	fake.Advance(45 * time.Minute)

	remaining := remainingSeconds(deadline, fake.Now())
	if remaining != 0 {
		t.Fatalf("remaining past deadline = %ds, want 0", remaining)
	}

	// resuming a spent budget puts the deadline at now
	newDeadline := resumedEndTime(fake.Now(), remaining)
	if !newDeadline.Equal(fake.Now()) {
		t.Fatalf("resumed deadline = %v, want %v", newDeadline, fake.Now())
	}
}
