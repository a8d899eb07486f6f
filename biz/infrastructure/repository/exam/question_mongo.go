package exam

import (
	"context"
	"exam-hall/biz/infrastructure/config"
	"exam-hall/biz/infrastructure/consts"
	"exam-hall/biz/infrastructure/util/log"
	"time"

	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	prefixQuestionCacheKey = "cache:exam_question"
	QuestionCollectionName = "exam_question"
)

type IQuestionMongoMapper interface {
	Insert(ctx context.Context, q *Question) error
	FindOne(ctx context.Context, id string) (*Question, error)
	FindByExamID(ctx context.Context, examID string) ([]*Question, error)
}

type QuestionMongoMapper struct {
	conn *monc.Model
}

func NewQuestionMongoMapper(config *config.Config) *QuestionMongoMapper {
	log.Info("NewQuestionMongoMapper collection: %s", QuestionCollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, QuestionCollectionName, config.Cache)
	return &QuestionMongoMapper{
		conn: conn,
	}
}

func (m *QuestionMongoMapper) Insert(ctx context.Context, q *Question) error {
	if q.ID.IsZero() {
		q.ID = primitive.NewObjectID()
		q.CreateTime = time.Now()
		q.UpdateTime = time.Now()
	}
	_, err := m.conn.InsertOneNoCache(ctx, q)
	return err
}

func (m *QuestionMongoMapper) FindOne(ctx context.Context, id string) (*Question, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	var q Question
	err = m.conn.FindOneNoCache(ctx, &q, bson.M{
		consts.ID: oid,
	})
	if err != nil {
		return nil, consts.ErrNotFound
	}
	return &q, nil
}

func (m *QuestionMongoMapper) FindByExamID(ctx context.Context, examID string) ([]*Question, error) {
	var questions []*Question
	filter := bson.M{consts.ExamID: examID}

	err := m.conn.Find(ctx, &questions, filter, &options.FindOptions{
		Sort: bson.M{consts.CreateTime: 1},
	})
	if err != nil {
		return nil, err
	}

	return questions, nil
}
