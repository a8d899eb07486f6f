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
	prefixInvigilatorCacheKey = "cache:exam_invigilator"
	InvigilatorCollectionName = "exam_invigilator"
)

type IInvigilatorMongoMapper interface {
	Assign(ctx context.Context, a *InvigilatorAssignment) error
	FindByExamAndTeacher(ctx context.Context, examID, teacherID string) (*InvigilatorAssignment, error)
	FindByExamID(ctx context.Context, examID string) ([]*InvigilatorAssignment, error)
}

type InvigilatorMongoMapper struct {
	conn *monc.Model
}

func NewInvigilatorMongoMapper(config *config.Config) *InvigilatorMongoMapper {
	log.Info("NewInvigilatorMongoMapper collection: %s", InvigilatorCollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, InvigilatorCollectionName, config.Cache)
	return &InvigilatorMongoMapper{
		conn: conn,
	}
}

// Assign registers a teacher as invigilator for an exam. The (exam, teacher)
// pair is unique; a repeat assignment fails with ErrDuplicateInvigilator.
// Uniqueness rides on a single guarded upsert, so concurrent assigns cannot
// produce two rows.
func (m *InvigilatorMongoMapper) Assign(ctx context.Context, a *InvigilatorAssignment) error {
	filter := bson.M{
		consts.ExamID:    a.ExamID,
		consts.TeacherID: a.TeacherID,
	}
	update := bson.M{
		"$setOnInsert": bson.M{
			consts.ID:         primitive.NewObjectID(),
			"assigned_by":     a.AssignedBy,
			consts.CreateTime: time.Now(),
		},
	}
	res, err := m.conn.UpdateOneNoCache(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return err
	}
	if res.UpsertedCount == 0 {
		return consts.ErrDuplicateInvigilator
	}
	return nil
}

func (m *InvigilatorMongoMapper) FindByExamAndTeacher(ctx context.Context, examID, teacherID string) (*InvigilatorAssignment, error) {
	var a InvigilatorAssignment
	err := m.conn.FindOneNoCache(ctx, &a, bson.M{
		consts.ExamID:    examID,
		consts.TeacherID: teacherID,
	})
	switch {
	case err == nil:
		return &a, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

func (m *InvigilatorMongoMapper) FindByExamID(ctx context.Context, examID string) ([]*InvigilatorAssignment, error) {
	var assignments []*InvigilatorAssignment
	err := m.conn.Find(ctx, &assignments, bson.M{consts.ExamID: examID}, &options.FindOptions{
		Sort: bson.M{consts.CreateTime: 1},
	})
	if err != nil {
		return nil, err
	}
	return assignments, nil
}
