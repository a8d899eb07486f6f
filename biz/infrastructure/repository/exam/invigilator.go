package exam

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InvigilatorAssignment is purely an authorization artifact; it has no
// bearing on scoring.
type InvigilatorAssignment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ExamID     string             `bson:"exam_id" json:"examId"`
	TeacherID  string             `bson:"teacher_id" json:"teacherId"`
	AssignedBy string             `bson:"assigned_by" json:"assignedBy"`
	CreateTime time.Time          `bson:"create_time" json:"createTime"`
}
