package result

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Item struct {
	SubjectID    string   `bson:"subject_id" json:"subjectId"`
	ExamScore    float64  `bson:"exam_score" json:"examScore"`
	MaxExamScore float64  `bson:"max_exam_score" json:"maxExamScore"`
	CaScore      *float64 `bson:"ca_score,omitempty" json:"caScore"`
	Position     *int64   `bson:"position,omitempty" json:"position"`
}

// Result is the per-student, per-term report card. The exam engine never owns
// the whole document; it only upserts single items keyed by subject and
// recomputes the document-level position. Approval lives with the broader
// school-operations system.
type Result struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StudentID   string             `bson:"student_id" json:"studentId"`
	Session     string             `bson:"session" json:"session"`
	Term        string             `bson:"term" json:"term"`
	ClassroomID string             `bson:"classroom_id" json:"classroomId"`
	SchoolID    string             `bson:"school_id" json:"schoolId"`
	Surname     string             `bson:"surname" json:"surname"`
	Approved    bool               `bson:"approved" json:"approved"`
	Position    *int64             `bson:"position,omitempty" json:"position"`
	Items       []Item             `bson:"items" json:"items"`
	CreateTime  time.Time          `bson:"create_time" json:"createTime"`
	UpdateTime  time.Time          `bson:"update_time" json:"updateTime"`
}

// TotalScore aggregates exam and continuous-assessment scores across items.
func (r *Result) TotalScore() float64 {
	var total float64
	for _, item := range r.Items {
		total += item.ExamScore
		if item.CaScore != nil {
			total += *item.CaScore
		}
	}
	return total
}
