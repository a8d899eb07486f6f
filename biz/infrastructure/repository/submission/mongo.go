package submission

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
	prefixSubmissionCacheKey = "cache:exam_submission"
	CollectionName           = "exam_submission"
)

type IMongoMapper interface {
	FindOne(ctx context.Context, id string) (*Submission, error)
	FindByExamAndStudent(ctx context.Context, examID, studentID string) (*Submission, error)
	FindByExamID(ctx context.Context, examID string, page, pageSize int64) ([]*Submission, int64, error)
	FindMarkedUnpublished(ctx context.Context, examID string) ([]*Submission, error)
	UpsertReady(ctx context.Context, s *Submission) (*Submission, error)
	Begin(ctx context.Context, id string, start, end *time.Time) (*Submission, error)
	PauseByStudent(ctx context.Context, id string, maxPauses, remainingSec int64) (*Submission, error)
	PauseBySupervisor(ctx context.Context, id string, remainingSec int64) (*Submission, error)
	Resume(ctx context.Context, id string, end *time.Time) (*Submission, error)
	Finalize(ctx context.Context, id string, late bool) (*Submission, error)
	UpsertAnswer(ctx context.Context, id string, ans Answer) (*Submission, error)
	MarkScored(ctx context.Context, id string, answers []Answer, totalScore float64) (*Submission, error)
	OverrideAnswer(ctx context.Context, id, questionID string, newScore, totalScore float64) (*Submission, error)
	SetPublished(ctx context.Context, id string) (*Submission, error)
	ForceSubmitAll(ctx context.Context, examID string, at time.Time) (int64, error)
}

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewSubmissionMongoMapper collection: %s", CollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, CollectionName, config.Cache)
	return &MongoMapper{
		conn: conn,
	}
}

// every status transition in this mapper is a single compare-and-set
// FindOneAndUpdate filtered on the current status, so concurrent
// Pause/Resume/Finalize calls can never interleave into an invalid state.
func (m *MongoMapper) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*Submission, error) {
	var s Submission
	err := m.conn.FindOneAndUpdateNoCache(ctx, &s, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, consts.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (m *MongoMapper) FindOne(ctx context.Context, id string) (*Submission, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	var s Submission
	err = m.conn.FindOneNoCache(ctx, &s, bson.M{
		consts.ID: oid,
	})
	switch {
	case err == nil:
		return &s, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

func (m *MongoMapper) FindByExamAndStudent(ctx context.Context, examID, studentID string) (*Submission, error) {
	var s Submission
	err := m.conn.FindOneNoCache(ctx, &s, bson.M{
		consts.ExamID:    examID,
		consts.StudentID: studentID,
	})
	switch {
	case err == nil:
		return &s, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

func (m *MongoMapper) FindByExamID(ctx context.Context, examID string, page, pageSize int64) ([]*Submission, int64, error) {
	var submissions []*Submission
	filter := bson.M{consts.ExamID: examID}

	total, err := m.conn.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	skip := (page - 1) * pageSize
	err = m.conn.Find(ctx, &submissions, filter, &options.FindOptions{
		Skip:  &skip,
		Limit: &pageSize,
		Sort:  bson.M{consts.CreateTime: 1},
	})
	if err != nil {
		return nil, 0, err
	}

	return submissions, total, nil
}

func (m *MongoMapper) FindMarkedUnpublished(ctx context.Context, examID string) ([]*Submission, error) {
	var submissions []*Submission
	filter := bson.M{
		consts.ExamID:  examID,
		consts.Status:  consts.SubmissionStatusMarked,
		"is_published": false,
	}
	err := m.conn.Find(ctx, &submissions, filter, &options.FindOptions{
		Sort: bson.M{consts.CreateTime: 1},
	})
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

// UpsertReady resolves the (exam, student) creation race with one atomic
// upsert: the second caller always gets the winner's document back, a
// duplicate can never be created.
func (m *MongoMapper) UpsertReady(ctx context.Context, s *Submission) (*Submission, error) {
	now := time.Now()
	filter := bson.M{
		consts.ExamID:    s.ExamID,
		consts.StudentID: s.StudentID,
	}
	update := bson.M{
		"$setOnInsert": bson.M{
			consts.ID:         primitive.NewObjectID(),
			"classroom_id":    s.ClassroomID,
			"school_id":       s.SchoolID,
			"subject_id":      s.SubjectID,
			"session":         s.Session,
			"term":            s.Term,
			consts.Status:     consts.SubmissionStatusReady,
			"pause_count":     int64(0),
			"answers":         []Answer{},
			"total_score":     float64(0),
			"is_published":    false,
			"late":            false,
			consts.CreateTime: now,
			consts.UpdateTime: now,
		},
	}
	var out Submission
	err := m.conn.FindOneAndUpdateNoCache(ctx, &out, filter, update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Begin moves ready -> in_progress. start/end may be nil for untimed exams.
func (m *MongoMapper) Begin(ctx context.Context, id string, start, end *time.Time) (*Submission, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	set := bson.M{
		consts.Status:     consts.SubmissionStatusInProgress,
		consts.UpdateTime: time.Now(),
	}
	if start != nil {
		set["start_time"] = *start
	}
	if end != nil {
		set["end_time"] = *end
	}
	return m.findOneAndUpdate(ctx,
		bson.M{consts.ID: oid, consts.Status: consts.SubmissionStatusReady},
		bson.M{"$set": set})
}

// PauseByStudent pauses and spends one unit of the student's pause budget.
// The budget check rides in the filter so two racing pauses cannot both pass.
func (m *MongoMapper) PauseByStudent(ctx context.Context, id string, maxPauses, remainingSec int64) (*Submission, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	return m.findOneAndUpdate(ctx,
		bson.M{
			consts.ID:     oid,
			consts.Status: consts.SubmissionStatusInProgress,
			"pause_count": bson.M{consts.LessThan: maxPauses},
		},
		bson.M{
			"$set": bson.M{
				consts.Status:             consts.SubmissionStatusPaused,
				"time_remaining_on_pause": remainingSec,
				consts.UpdateTime:         time.Now(),
			},
			"$inc": bson.M{"pause_count": int64(1)},
		})
}

// PauseBySupervisor freezes a session without touching the student's pause
// budget.
func (m *MongoMapper) PauseBySupervisor(ctx context.Context, id string, remainingSec int64) (*Submission, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	return m.findOneAndUpdate(ctx,
		bson.M{consts.ID: oid, consts.Status: consts.SubmissionStatusInProgress},
		bson.M{
			"$set": bson.M{
				consts.Status:             consts.SubmissionStatusPaused,
				"time_remaining_on_pause": remainingSec,
				consts.UpdateTime:         time.Now(),
			},
		})
}

// Resume moves paused -> in_progress; end is nil for untimed exams.
func (m *MongoMapper) Resume(ctx context.Context, id string, end *time.Time) (*Submission, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	set := bson.M{
		consts.Status:     consts.SubmissionStatusInProgress,
		consts.UpdateTime: time.Now(),
	}
	if end != nil {
		set["end_time"] = *end
	}
	return m.findOneAndUpdate(ctx,
		bson.M{consts.ID: oid, consts.Status: consts.SubmissionStatusPaused},
		bson.M{"$set": set})
}

// Finalize moves in_progress/paused -> submitted.
func (m *MongoMapper) Finalize(ctx context.Context, id string, late bool) (*Submission, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	return m.findOneAndUpdate(ctx,
		bson.M{
			consts.ID: oid,
			consts.Status: bson.M{consts.In: []string{
				consts.SubmissionStatusInProgress,
				consts.SubmissionStatusPaused,
			}},
		},
		bson.M{"$set": bson.M{
			consts.Status:     consts.SubmissionStatusSubmitted,
			"late":            late,
			consts.UpdateTime: time.Now(),
		}})
}

// UpsertAnswer replaces the answer for a question, or appends it. Last write
// wins; status, totals and timers are untouched. Both legs require the
// submission to still be in_progress.
func (m *MongoMapper) UpsertAnswer(ctx context.Context, id string, ans Answer) (*Submission, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	now := time.Now()

	out, err := m.findOneAndUpdate(ctx,
		bson.M{
			consts.ID:             oid,
			consts.Status:         consts.SubmissionStatusInProgress,
			"answers.question_id": ans.QuestionID,
		},
		bson.M{"$set": bson.M{
			"answers.$.selected_option_index": ans.SelectedOptionIndex,
			"answers.$.answer_text":           ans.AnswerText,
			consts.UpdateTime:                 now,
		}})
	if err == nil {
		return out, nil
	}
	if !errors.Is(err, consts.ErrNotFound) {
		return nil, err
	}

	return m.findOneAndUpdate(ctx,
		bson.M{
			consts.ID:             oid,
			consts.Status:         consts.SubmissionStatusInProgress,
			"answers.question_id": bson.M{consts.NotEqual: ans.QuestionID},
		},
		bson.M{
			"$push": bson.M{"answers": ans},
			"$set":  bson.M{consts.UpdateTime: now},
		})
}

// MarkScored moves submitted -> marked in the same write that lands the
// scores, so a submission can only ever be marked once.
func (m *MongoMapper) MarkScored(ctx context.Context, id string, answers []Answer, totalScore float64) (*Submission, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	return m.findOneAndUpdate(ctx,
		bson.M{consts.ID: oid, consts.Status: consts.SubmissionStatusSubmitted},
		bson.M{"$set": bson.M{
			consts.Status:     consts.SubmissionStatusMarked,
			"answers":         answers,
			"total_score":     totalScore,
			consts.UpdateTime: time.Now(),
		}})
}

// OverrideAnswer replaces one answer's awarded marks and the recomputed
// total in a single write.
func (m *MongoMapper) OverrideAnswer(ctx context.Context, id, questionID string, newScore, totalScore float64) (*Submission, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	return m.findOneAndUpdate(ctx,
		bson.M{
			consts.ID:             oid,
			consts.Status:         consts.SubmissionStatusMarked,
			"answers.question_id": questionID,
		},
		bson.M{"$set": bson.M{
			"answers.$.awarded_marks": newScore,
			"answers.$.is_overridden": true,
			"total_score":             totalScore,
			consts.UpdateTime:         time.Now(),
		}})
}

// SetPublished flips the publication gate exactly once.
func (m *MongoMapper) SetPublished(ctx context.Context, id string) (*Submission, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	return m.findOneAndUpdate(ctx,
		bson.M{consts.ID: oid, "is_published": false},
		bson.M{"$set": bson.M{
			"is_published":    true,
			consts.UpdateTime: time.Now(),
		}})
}

// ForceSubmitAll is EndExam's bulk transition: one set-based update matched
// against the precondition statuses, not a read-then-write loop.
func (m *MongoMapper) ForceSubmitAll(ctx context.Context, examID string, at time.Time) (int64, error) {
	filter := bson.M{
		consts.ExamID: examID,
		consts.Status: bson.M{consts.In: []string{
			consts.SubmissionStatusInProgress,
			consts.SubmissionStatusPaused,
		}},
	}
	update := bson.M{"$set": bson.M{
		consts.Status:     consts.SubmissionStatusSubmitted,
		"end_time":        at,
		consts.UpdateTime: at,
	}}
	res, err := m.conn.UpdateManyNoCache(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
