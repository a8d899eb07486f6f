package submission

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"exam-hall/biz/infrastructure/config"
	"exam-hall/biz/infrastructure/consts"

	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/redis"
)

func newIntegrationMapper(t *testing.T) *MongoMapper {
	t.Helper()
	if os.Getenv("EXAM_HALL_INTEGRATION") != "1" {
		t.Skip("set EXAM_HALL_INTEGRATION=1 to run integration tests")
	}

	mongoURL := os.Getenv("EXAM_HALL_TEST_MONGO")
	if mongoURL == "" {
		mongoURL = "mongodb://localhost:27017"
	}
	redisHost := os.Getenv("EXAM_HALL_TEST_REDIS")
	if redisHost == "" {
		redisHost = "localhost:6379"
	}

	c := &config.Config{}
	c.Mongo.URL = mongoURL
	c.Mongo.DB = "exam_hall_test"
	c.Cache = cache.CacheConf{{RedisConf: redis.RedisConf{Host: redisHost, Type: "node"}, Weight: 100}}

	return NewMongoMapper(c)
}

func TestStartExamIdempotent_Integration(t *testing.T) {
	m := newIntegrationMapper(t)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	suffix := time.Now().UnixNano()
	examID := fmt.Sprintf("itest-exam-%d", suffix)
	studentID := fmt.Sprintf("itest-student-%d", suffix)

	first, err := m.UpsertReady(ctx, &Submission{ExamID: examID, StudentID: studentID})
	if err != nil {
		t.Fatalf("first UpsertReady: %v", err)
	}
	if first.Status != consts.SubmissionStatusReady {
		t.Fatalf("status = %s, want ready", first.Status)
	}

	second, err := m.UpsertReady(ctx, &Submission{ExamID: examID, StudentID: studentID})
	if err != nil {
		t.Fatalf("second UpsertReady: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("repeat start created a second submission: %s vs %s", second.ID.Hex(), first.ID.Hex())
	}
}

func TestLifecycleTransitions_Integration(t *testing.T) {
	m := newIntegrationMapper(t)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	suffix := time.Now().UnixNano()
	sub, err := m.UpsertReady(ctx, &Submission{
		ExamID:    fmt.Sprintf("itest-exam-%d", suffix),
		StudentID: fmt.Sprintf("itest-student-%d", suffix),
	})
	if err != nil {
		t.Fatalf("UpsertReady: %v", err)
	}
	id := sub.ID.Hex()

	start := time.Now()
	end := start.Add(time.Hour)
	begun, err := m.Begin(ctx, id, &start, &end)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if begun.Status != consts.SubmissionStatusInProgress {
		t.Fatalf("status after begin = %s", begun.Status)
	}

	// a second begin loses the CAS
	if _, err := m.Begin(ctx, id, &start, &end); err == nil {
		t.Fatal("double begin must fail the status guard")
	}

	paused, err := m.PauseByStudent(ctx, id, 2, 1800)
	if err != nil {
		t.Fatalf("PauseByStudent: %v", err)
	}
	if paused.PauseCount != 1 || paused.TimeRemainingOnPause != 1800 {
		t.Fatalf("pause state = %+v", paused)
	}

	newEnd := time.Now().Add(30 * time.Minute)
	resumed, err := m.Resume(ctx, id, &newEnd)
	if err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if resumed.Status != consts.SubmissionStatusInProgress {
		t.Fatalf("status after resume = %s", resumed.Status)
	}

	done, err := m.Finalize(ctx, id, false)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if done.Status != consts.SubmissionStatusSubmitted {
		t.Fatalf("status after finalize = %s", done.Status)
	}

	// answers are frozen once submitted
	if _, err := m.UpsertAnswer(ctx, id, Answer{QuestionID: "q1", AnswerText: "late"}); err == nil {
		t.Fatal("answer after submit must fail the status guard")
	}
}
