package exam

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Exam struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SchoolID          string             `bson:"school_id" json:"schoolId"`
	ClassroomID       string             `bson:"classroom_id" json:"classroomId"`
	SubjectID         string             `bson:"subject_id" json:"subjectId"`
	Session           string             `bson:"session" json:"session"`
	Term              string             `bson:"term" json:"term"`
	Title             string             `bson:"title" json:"title"`
	DurationInMinutes int64              `bson:"duration_in_minutes" json:"durationInMinutes"` // 0 means untimed
	MaxPauses         int64              `bson:"max_pauses" json:"maxPauses"`
	ScheduledEndAt    *time.Time         `bson:"scheduled_end_at,omitempty" json:"scheduledEndAt"`
	TotalMarks        float64            `bson:"total_marks" json:"totalMarks"`
	CreatorID         string             `bson:"creator_id" json:"creatorId"`
	CreateTime        time.Time          `bson:"create_time" json:"createTime"`
	UpdateTime        time.Time          `bson:"update_time" json:"updateTime"`
}

// Timed reports whether the exam carries a countdown at all.
func (e *Exam) Timed() bool {
	return e.DurationInMinutes > 0
}
