package classroom

import (
	"context"
	"errors"
	"exam-hall/biz/infrastructure/config"
	"exam-hall/biz/infrastructure/consts"
	"exam-hall/biz/infrastructure/util/log"

	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	prefixMemberCacheKey = "cache:classroom_member"
	MemberCollectionName = "classroom_member"
)

type IMemberMongoMapper interface {
	FindByClassroomAndStudent(ctx context.Context, classroomID, studentID string) (*Member, error)
	FindByClassroomID(ctx context.Context, classroomID string) ([]*Member, error)
}

type MemberMongoMapper struct {
	conn *monc.Model
}

func NewMemberMongoMapper(config *config.Config) *MemberMongoMapper {
	log.Info("NewMemberMongoMapper collection: %s", MemberCollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, MemberCollectionName, config.Cache)
	return &MemberMongoMapper{
		conn: conn,
	}
}

func (m *MemberMongoMapper) FindByClassroomAndStudent(ctx context.Context, classroomID, studentID string) (*Member, error) {
	var member Member
	err := m.conn.FindOneNoCache(ctx, &member, bson.M{
		"classroom_id":   classroomID,
		consts.StudentID: studentID,
	})
	switch {
	case err == nil:
		return &member, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

func (m *MemberMongoMapper) FindByClassroomID(ctx context.Context, classroomID string) ([]*Member, error) {
	var members []*Member
	err := m.conn.Find(ctx, &members, bson.M{"classroom_id": classroomID}, &options.FindOptions{
		Sort: bson.M{"surname": 1},
	})
	if err != nil {
		return nil, err
	}
	return members, nil
}
