package submission

import (
	"testing"
	"time"

	"exam-hall/biz/infrastructure/consts"
)

func TestActive(t *testing.T) {
	for status, want := range map[string]bool{
		consts.SubmissionStatusReady:      true,
		consts.SubmissionStatusInProgress: true,
		consts.SubmissionStatusPaused:     true,
		consts.SubmissionStatusSubmitted:  false,
		consts.SubmissionStatusMarked:     false,
	} {
		s := &Submission{Status: status}
		if got := s.Active(); got != want {
			t.Fatalf("Active(%s) = %v, want %v", status, got, want)
		}
	}
}

func TestDurationTakenSec(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(47 * time.Minute)

	s := &Submission{
		Status:    consts.SubmissionStatusSubmitted,
		StartTime: &start,
		EndTime:   &end,
	}
	d := s.DurationTakenSec()
	if d == nil || *d != 47*60 {
		t.Fatalf("DurationTakenSec = %v, want %d", d, 47*60)
	}

	// not submitted yet
	s.Status = consts.SubmissionStatusInProgress
	if s.DurationTakenSec() != nil {
		t.Fatal("DurationTakenSec on a live submission must be nil")
	}

	// submitted but never timed
	untimed := &Submission{Status: consts.SubmissionStatusSubmitted}
	if untimed.DurationTakenSec() != nil {
		t.Fatal("DurationTakenSec without timestamps must be nil")
	}
}

func TestFindAnswer(t *testing.T) {
	s := &Submission{Answers: []Answer{
		{QuestionID: "q1", AnswerText: "first"},
		{QuestionID: "q2", AnswerText: "second"},
	}}

	a := s.FindAnswer("q2")
	if a == nil || a.AnswerText != "second" {
		t.Fatalf("FindAnswer(q2) = %+v", a)
	}
	if s.FindAnswer("q9") != nil {
		t.Fatal("FindAnswer on a missing question must be nil")
	}

	// the pointer aliases the slice so graders can mutate in place
	a.AnswerText = "changed"
	if s.Answers[1].AnswerText != "changed" {
		t.Fatal("FindAnswer must return a pointer into Answers")
	}
}
