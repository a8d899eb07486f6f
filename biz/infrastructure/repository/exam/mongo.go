package exam

import (
	"context"
	"errors"
	"exam-hall/biz/infrastructure/config"
	"exam-hall/biz/infrastructure/consts"
	"exam-hall/biz/infrastructure/util/log"
	"time"

	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	prefixExamCacheKey = "cache:exam"
	CollectionName     = "exam"
)

type IMongoMapper interface {
	Insert(ctx context.Context, e *Exam) error
	FindOne(ctx context.Context, id string) (*Exam, error)
	IncTotalMarks(ctx context.Context, id string, delta float64) error
	ExtendDuration(ctx context.Context, id string, additionalMinutes int64) (*Exam, error)
}

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewExamMongoMapper collection: %s", CollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, CollectionName, config.Cache)
	return &MongoMapper{
		conn: conn,
	}
}

func (m *MongoMapper) Insert(ctx context.Context, e *Exam) error {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
		e.CreateTime = time.Now()
		e.UpdateTime = time.Now()
	}
	_, err := m.conn.InsertOneNoCache(ctx, e)
	return err
}

func (m *MongoMapper) FindOne(ctx context.Context, id string) (*Exam, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	var e Exam
	err = m.conn.FindOneNoCache(ctx, &e, bson.M{
		consts.ID: oid,
	})
	switch {
	case err == nil:
		return &e, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

// IncTotalMarks bumps the running total when a question is added.
func (m *MongoMapper) IncTotalMarks(ctx context.Context, id string, delta float64) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return consts.ErrInvalidObjectId
	}
	_, err = m.conn.UpdateOneNoCache(ctx, bson.M{consts.ID: oid}, bson.M{
		"$inc": bson.M{"total_marks": delta},
		"$set": bson.M{consts.UpdateTime: time.Now()},
	})
	return err
}

// ExtendDuration adds minutes to the exam's duration and returns the updated
// exam. Submissions that already computed their end time are not touched;
// only later Begin calls see the extension.
func (m *MongoMapper) ExtendDuration(ctx context.Context, id string, additionalMinutes int64) (*Exam, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	var e Exam
	err = m.conn.FindOneAndUpdateNoCache(ctx, &e, bson.M{consts.ID: oid}, bson.M{
		"$inc": bson.M{"duration_in_minutes": additionalMinutes},
		"$set": bson.M{consts.UpdateTime: time.Now()},
	}, options.FindOneAndUpdate().SetReturnDocument(options.After))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, consts.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}
