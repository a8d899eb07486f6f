package result

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
	prefixResultCacheKey = "cache:result"
	CollectionName       = "result"
)

type IMongoMapper interface {
	FindByStudentSessionTerm(ctx context.Context, studentID, session, term string) (*Result, error)
	UpsertItem(ctx context.Context, r *Result, item Item) (*Result, error)
	FindApproved(ctx context.Context, classroomID, term, session string) ([]*Result, error)
	UpdatePosition(ctx context.Context, id primitive.ObjectID, position int64) error
}

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewResultMongoMapper collection: %s", CollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, CollectionName, config.Cache)
	return &MongoMapper{
		conn: conn,
	}
}

func (m *MongoMapper) FindByStudentSessionTerm(ctx context.Context, studentID, session, term string) (*Result, error) {
	var r Result
	err := m.conn.FindOneNoCache(ctx, &r, bson.M{
		consts.StudentID: studentID,
		"session":        session,
		"term":           term,
	})
	switch {
	case err == nil:
		return &r, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

// UpsertItem writes one subject's score into the report card keyed by
// subject: update in place when the subject already has an item, append it
// when it does not, create the whole document when the student has no report
// card for the term yet. A subject entry is never duplicated.
func (m *MongoMapper) UpsertItem(ctx context.Context, r *Result, item Item) (*Result, error) {
	now := time.Now()

	inPlace := bson.M{
		consts.StudentID:   r.StudentID,
		"session":          r.Session,
		"term":             r.Term,
		"items.subject_id": item.SubjectID,
	}
	res, err := m.conn.UpdateOneNoCache(ctx, inPlace, bson.M{"$set": bson.M{
		"items.$.exam_score":     item.ExamScore,
		"items.$.max_exam_score": item.MaxExamScore,
		consts.UpdateTime:        now,
	}})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		appendFilter := bson.M{
			consts.StudentID: r.StudentID,
			"session":        r.Session,
			"term":           r.Term,
		}
		update := bson.M{
			"$push": bson.M{"items": item},
			"$set":  bson.M{consts.UpdateTime: now},
			"$setOnInsert": bson.M{
				consts.ID:         primitive.NewObjectID(),
				"classroom_id":    r.ClassroomID,
				"school_id":       r.SchoolID,
				"surname":         r.Surname,
				"approved":        false,
				consts.CreateTime: now,
			},
		}
		if _, err := m.conn.UpdateOneNoCache(ctx, appendFilter, update, options.Update().SetUpsert(true)); err != nil {
			return nil, err
		}
	}

	return m.FindByStudentSessionTerm(ctx, r.StudentID, r.Session, r.Term)
}

// FindApproved returns the approved report cards for one ranking group.
func (m *MongoMapper) FindApproved(ctx context.Context, classroomID, term, session string) ([]*Result, error) {
	var results []*Result
	filter := bson.M{
		"classroom_id": classroomID,
		"term":         term,
		"session":      session,
		"approved":     true,
	}
	err := m.conn.Find(ctx, &results, filter, &options.FindOptions{
		Sort: bson.M{"surname": 1},
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (m *MongoMapper) UpdatePosition(ctx context.Context, id primitive.ObjectID, position int64) error {
	_, err := m.conn.UpdateOneNoCache(ctx, bson.M{consts.ID: id}, bson.M{"$set": bson.M{
		"position":        position,
		consts.UpdateTime: time.Now(),
	}})
	return err
}
