package cache

import (
	"context"
	"encoding/json"
	"exam-hall/biz/application/dto/exam/hall"
	"exam-hall/biz/infrastructure/config"
	"exam-hall/biz/infrastructure/redis"
	"fmt"

	gozero_redis "github.com/zeromicro/go-zero/core/stores/redis"
)

const (
	paperCachePrefix = "exam_paper"
	paperCacheExpire = 600 // live sessions hammer the paper read path
)

type IPaperCacheMapper interface {
	Get(ctx context.Context, examID string) (*hall.ExamPaper, error)
	Set(ctx context.Context, examID string, paper *hall.ExamPaper) error
	Delete(ctx context.Context, examID string) error
}

type PaperCacheMapper struct {
	rds *gozero_redis.Redis
}

func NewPaperCacheMapper(config *config.Config) *PaperCacheMapper {
	return &PaperCacheMapper{
		rds: redis.GetRedis(config),
	}
}

// Get returns the cached question paper for an exam
func (m *PaperCacheMapper) Get(ctx context.Context, examID string) (*hall.ExamPaper, error) {
	cacheKey := m.buildCacheKey(examID)

	cachedData, err := m.rds.GetCtx(ctx, cacheKey)
	if err != nil {
		return nil, err
	}

	if cachedData == "" {
		return nil, fmt.Errorf("cache miss")
	}

	var paper hall.ExamPaper
	if err := json.Unmarshal([]byte(cachedData), &paper); err != nil {
		return nil, fmt.Errorf("unmarshal cached paper failed: %w", err)
	}

	return &paper, nil
}

// Set caches the question paper
func (m *PaperCacheMapper) Set(ctx context.Context, examID string, paper *hall.ExamPaper) error {
	cacheKey := m.buildCacheKey(examID)

	data, err := json.Marshal(paper)
	if err != nil {
		return fmt.Errorf("marshal paper failed: %w", err)
	}

	return m.rds.SetexCtx(ctx, cacheKey, string(data), paperCacheExpire)
}

// Delete invalidates the cached paper, e.g. after a question is added
func (m *PaperCacheMapper) Delete(ctx context.Context, examID string) error {
	cacheKey := m.buildCacheKey(examID)
	_, err := m.rds.DelCtx(ctx, cacheKey)
	return err
}

func (m *PaperCacheMapper) buildCacheKey(examID string) string {
	return fmt.Sprintf("%s:%s", paperCachePrefix, examID)
}
