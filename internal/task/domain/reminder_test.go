package domain

import (
	"errors"
	"testing"
	"time"
)

func TestTimingOffsets(t *testing.T) {
	tests := []struct {
		timing ReminderTiming
		want   time.Duration
	}{
		{timing: Timing15MinutesBefore, want: 15 * time.Minute},
		{timing: Timing1HourBefore, want: time.Hour},
		{timing: Timing1DayBefore, want: 24 * time.Hour},
		{timing: Timing1WeekBefore, want: 7 * 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(string(tt.timing), func(t *testing.T) {
			got, ok := tt.timing.Offset()
			if !ok {
				t.Fatalf("expected %s to resolve", tt.timing)
			}
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestTimingOffsetAbsoluteAndUnknown(t *testing.T) {
	if _, ok := TimingAbsolute.Offset(); ok {
		t.Fatal("absolute timing has no offset")
	}
	if _, ok := ReminderTiming("3_moons_before").Offset(); ok {
		t.Fatal("unknown timing has no offset")
	}
}

func TestResolveFireTimeFromDueDate(t *testing.T) {
	due := time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC)
	task := &Task{DueDate: &due}
	reminder := &Reminder{Timing: Timing1HourBefore}

	fireAt, err := ResolveFireTime(reminder, task)
	if err != nil {
		t.Fatalf("resolve fire time: %v", err)
	}
	if want := due.Add(-time.Hour); !fireAt.Equal(want) {
		t.Fatalf("expected %v, got %v", want, fireAt)
	}
}

func TestResolveFireTimeTracksDueDateEdit(t *testing.T) {
	due := time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC)
	task := &Task{DueDate: &due}
	reminder := &Reminder{Timing: Timing1DayBefore}

	first, err := ResolveFireTime(reminder, task)
	if err != nil {
		t.Fatalf("resolve fire time: %v", err)
	}

	moved := due.Add(48 * time.Hour)
	task.DueDate = &moved
	second, err := ResolveFireTime(reminder, task)
	if err != nil {
		t.Fatalf("resolve fire time after edit: %v", err)
	}
	if want := first.Add(48 * time.Hour); !second.Equal(want) {
		t.Fatalf("fire time must follow the due date, expected %v, got %v", want, second)
	}
}

func TestResolveFireTimeAbsoluteWins(t *testing.T) {
	due := time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC)
	at := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	task := &Task{DueDate: &due}
	reminder := &Reminder{Timing: TimingAbsolute, AbsoluteAt: &at}

	fireAt, err := ResolveFireTime(reminder, task)
	if err != nil {
		t.Fatalf("resolve fire time: %v", err)
	}
	if !fireAt.Equal(at) {
		t.Fatalf("expected absolute timestamp %v, got %v", at, fireAt)
	}
}

func TestResolveFireTimeUnresolvable(t *testing.T) {
	reminder := &Reminder{Timing: Timing1HourBefore}
	if _, err := ResolveFireTime(reminder, &Task{}); !errors.Is(err, ErrUnresolvableReminder) {
		t.Fatalf("expected ErrUnresolvableReminder, got %v", err)
	}
}

func TestCompletionRate(t *testing.T) {
	tests := []struct {
		name   string
		counts map[TaskStatus]int
		want   float64
	}{
		{name: "empty", counts: map[TaskStatus]int{}, want: 0},
		{
			name:   "only cancelled",
			counts: map[TaskStatus]int{TaskStatusCancelled: 3},
			want:   0,
		},
		{
			name: "cancelled excluded from denominator",
			counts: map[TaskStatus]int{
				TaskStatusCompleted: 2,
				TaskStatusPending:   1,
				TaskStatusCancelled: 1,
			},
			want: 2.0 / 3.0,
		},
		{
			name:   "all completed",
			counts: map[TaskStatus]int{TaskStatusCompleted: 4},
			want:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompletionRate(tt.counts); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
