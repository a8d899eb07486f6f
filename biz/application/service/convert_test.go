package service

import (
	"testing"
	"time"

	"exam-hall/biz/infrastructure/consts"
	"exam-hall/biz/infrastructure/notify"
	"exam-hall/biz/infrastructure/repository/exam"
	"exam-hall/biz/infrastructure/repository/submission"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The paper is the student-facing projection: it must never carry the
// correct option index or the keyword list.
func TestPaperStripsAnswerKey(t *testing.T) {
	e := &exam.Exam{
		ID:                primitive.NewObjectID(),
		Title:             "Biology Mid-Term",
		DurationInMinutes: 60,
		TotalMarks:        15,
	}
	questions := []*exam.Question{
		{
			ID:                 primitive.NewObjectID(),
			QuestionType:       consts.QuestionTypeObjective,
			Text:               "Pick one",
			Options:            []string{"a", "b", "c"},
			CorrectOptionIndex: 2,
			Marks:              5,
		},
		{
			ID:           primitive.NewObjectID(),
			QuestionType: consts.QuestionTypeTheory,
			Text:         "Explain",
			Keywords:     []exam.KeywordMark{{Keyword: "osmosis", Marks: 10}},
			Marks:        10,
		},
	}

	paper := toPaperDTO(e, questions)

	if paper.ExamId != e.ID.Hex() || paper.TotalMarks != 15 {
		t.Fatalf("paper header = %+v", paper)
	}
	if len(paper.Questions) != 2 {
		t.Fatalf("paper has %d questions, want 2", len(paper.Questions))
	}
	for _, q := range paper.Questions {
		if q.Text == "" || q.Marks == 0 {
			t.Fatalf("paper question missing display fields: %+v", q)
		}
	}
	// options survive for objective questions, nothing else does
	if len(paper.Questions[0].Options) != 3 {
		t.Fatalf("objective options = %v", paper.Questions[0].Options)
	}
}

func TestSubmissionDTODerivedFields(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(45 * time.Minute)
	idx := int64(1)

	sub := &submission.Submission{
		ID:        primitive.NewObjectID(),
		ExamID:    "exam-1",
		StudentID: "student-1",
		Status:    consts.SubmissionStatusSubmitted,
		StartTime: &start,
		EndTime:   &end,
		Answers: []submission.Answer{
			{QuestionID: "q1", SelectedOptionIndex: &idx, AwardedMarks: 5},
		},
		TotalScore: 5,
	}

	dto := toSubmissionDTO(sub)

	if dto.Id != sub.ID.Hex() || dto.ExamId != "exam-1" || dto.StudentId != "student-1" {
		t.Fatalf("identity fields = %+v", dto)
	}
	if dto.StartTime == nil || *dto.StartTime != start.Unix() {
		t.Fatalf("startTime = %v", dto.StartTime)
	}
	if dto.DurationTakenSec == nil || *dto.DurationTakenSec != 45*60 {
		t.Fatalf("durationTakenSec = %v", dto.DurationTakenSec)
	}
	if len(dto.Answers) != 1 || dto.Answers[0].QuestionId != "q1" || dto.Answers[0].AwardedMarks != 5 {
		t.Fatalf("answers = %+v", dto.Answers)
	}
}

func TestEventDTOReadsMessage(t *testing.T) {
	event := &notify.Event{
		Id:        "9f2d1c",
		ExamId:    "exam-1",
		Name:      consts.EventAnnouncement,
		Timestamp: 1757500000,
		Payload: map[string]any{
			"message":     "fifteen minutes left",
			"announcedBy": "teacher-1",
		},
	}

	dto := toEventDTO(event)

	if dto.Id != "9f2d1c" || dto.ExamId != "exam-1" || dto.Name != consts.EventAnnouncement {
		t.Fatalf("identity fields = %+v", dto)
	}
	if dto.Message != "fifteen minutes left" {
		t.Fatalf("message = %q", dto.Message)
	}
	if dto.Timestamp != 1757500000 {
		t.Fatalf("timestamp = %d", dto.Timestamp)
	}
}

func TestEventDTOWithoutMessage(t *testing.T) {
	event := &notify.Event{
		Id:     "9f2d1d",
		ExamId: "exam-1",
		Name:   consts.EventExamEnded,
		Payload: map[string]any{
			"forceSubmitted": float64(12),
		},
	}

	if dto := toEventDTO(event); dto.Message != "" {
		t.Fatalf("message = %q, want empty", dto.Message)
	}
}
