package submission

import (
	"time"

	"exam-hall/biz/infrastructure/consts"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Answer struct {
	QuestionID          string  `bson:"question_id" json:"questionId"`
	SelectedOptionIndex *int64  `bson:"selected_option_index,omitempty" json:"selectedOptionIndex"`
	AnswerText          string  `bson:"answer_text,omitempty" json:"answerText"`
	AwardedMarks        float64 `bson:"awarded_marks" json:"awardedMarks"`
	IsOverridden        bool    `bson:"is_overridden" json:"isOverridden"`
}

// Submission is one student's attempt at one exam. There is exactly one
// document per (exam_id, student_id); session and term are denormalized from
// the exam so report-card grouping survives a later exam reassignment.
type Submission struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ExamID      string             `bson:"exam_id" json:"examId"`
	StudentID   string             `bson:"student_id" json:"studentId"`
	ClassroomID string             `bson:"classroom_id" json:"classroomId"`
	SchoolID    string             `bson:"school_id" json:"schoolId"`
	SubjectID   string             `bson:"subject_id" json:"subjectId"`
	Session     string             `bson:"session" json:"session"`
	Term        string             `bson:"term" json:"term"`

	Status               string     `bson:"status" json:"status"`
	StartTime            *time.Time `bson:"start_time,omitempty" json:"startTime"`
	EndTime              *time.Time `bson:"end_time,omitempty" json:"endTime"`
	PauseCount           int64      `bson:"pause_count" json:"pauseCount"`
	TimeRemainingOnPause int64      `bson:"time_remaining_on_pause" json:"timeRemainingOnPause"` // seconds

	Answers     []Answer `bson:"answers" json:"answers"`
	TotalScore  float64  `bson:"total_score" json:"totalScore"`
	IsPublished bool     `bson:"is_published" json:"isPublished"`
	Late        bool     `bson:"late" json:"late"`

	CreateTime time.Time `bson:"create_time" json:"createTime"`
	UpdateTime time.Time `bson:"update_time" json:"updateTime"`
}

// Active reports whether the submission still owns a live session.
func (s *Submission) Active() bool {
	switch s.Status {
	case consts.SubmissionStatusReady, consts.SubmissionStatusInProgress, consts.SubmissionStatusPaused:
		return true
	}
	return false
}

// DurationTakenSec is defined only for a submitted attempt that actually
// began; for anything else it is nil. This is a strict precondition, not a
// best-effort fallback.
func (s *Submission) DurationTakenSec() *int64 {
	if s.Status != consts.SubmissionStatusSubmitted {
		return nil
	}
	if s.StartTime == nil || s.EndTime == nil {
		return nil
	}
	sec := int64(s.EndTime.Sub(*s.StartTime) / time.Second)
	return &sec
}

// FindAnswer returns the answer for a question, or nil.
func (s *Submission) FindAnswer(questionID string) *Answer {
	for i := range s.Answers {
		if s.Answers[i].QuestionID == questionID {
			return &s.Answers[i]
		}
	}
	return nil
}
