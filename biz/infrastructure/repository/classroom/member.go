package classroom

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Member is owned by the school-operations side of the platform; the exam
// engine only reads it for the enrollment check and the surname tie-break.
type Member struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClassroomID string             `bson:"classroom_id" json:"classroomId"`
	StudentID   string             `bson:"student_id" json:"studentId"`
	FirstName   string             `bson:"first_name" json:"firstName"`
	Surname     string             `bson:"surname" json:"surname"`
	JoinTime    time.Time          `bson:"join_time" json:"joinTime"`
	CreateTime  time.Time          `bson:"create_time" json:"createTime"`
	UpdateTime  time.Time          `bson:"update_time" json:"updateTime"`
}
