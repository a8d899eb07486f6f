package exam

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type KeywordMark struct {
	Keyword string  `bson:"keyword" json:"keyword"`
	Marks   float64 `bson:"marks" json:"marks"`
}

type Question struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ExamID             string             `bson:"exam_id" json:"examId"`
	QuestionType       string             `bson:"question_type" json:"questionType"` // objective/theory
	Text               string             `bson:"text" json:"text"`
	Options            []string           `bson:"options,omitempty" json:"options"`
	CorrectOptionIndex int64              `bson:"correct_option_index" json:"correctOptionIndex"`
	Keywords           []KeywordMark      `bson:"keywords,omitempty" json:"keywords"`
	Marks              float64            `bson:"marks" json:"marks"`
	CreateTime         time.Time          `bson:"create_time" json:"createTime"`
	UpdateTime         time.Time          `bson:"update_time" json:"updateTime"`
}
