package service

import (
	"context"
	"errors"
	"strings"

	"exam-hall/biz/adaptor"
	"exam-hall/biz/application/dto/exam/hall"
	"exam-hall/biz/infrastructure/consts"
	"exam-hall/biz/infrastructure/repository/exam"
	"exam-hall/biz/infrastructure/repository/submission"
	"exam-hall/biz/infrastructure/util/log"

	"github.com/google/wire"
	"github.com/samber/lo"
)

type IScoringService interface {
	MarkSubmission(ctx context.Context, req *hall.MarkSubmissionReq) (*hall.MarkSubmissionResp, error)
	OverrideScore(ctx context.Context, req *hall.OverrideScoreReq) (*hall.OverrideScoreResp, error)
}

// ScoringService grades submitted attempts. Marking is a pure function of the
// answers and the question bank; the only write is the CAS that lands the
// scores and the marked status in one document update.
type ScoringService struct {
	ExamMapper       exam.IMongoMapper
	QuestionMapper   exam.IQuestionMongoMapper
	SubmissionMapper submission.IMongoMapper
	Gate             *AuthGate
}

var ScoringServiceSet = wire.NewSet(
	wire.Struct(new(ScoringService), "*"),
	wire.Bind(new(IScoringService), new(*ScoringService)),
)

// scoreObjective awards all or nothing on the selected option.
func scoreObjective(q *exam.Question, ans *submission.Answer) float64 {
	if ans == nil || ans.SelectedOptionIndex == nil {
		return 0
	}
	if *ans.SelectedOptionIndex == q.CorrectOptionIndex {
		return q.Marks
	}
	return 0
}

// scoreTheory sums the marks of every keyword found in the answer text.
// Matching is a case-insensitive substring test; each keyword is counted at
// most once no matter how often it appears.
func scoreTheory(q *exam.Question, ans *submission.Answer) float64 {
	if ans == nil || ans.AnswerText == "" {
		return 0
	}
	text := strings.ToLower(ans.AnswerText)
	var score float64
	for _, kw := range q.Keywords {
		if kw.Keyword == "" {
			continue
		}
		if strings.Contains(text, strings.ToLower(kw.Keyword)) {
			score += kw.Marks
		}
	}
	return score
}

func scoreAnswer(q *exam.Question, ans *submission.Answer) float64 {
	switch q.QuestionType {
	case consts.QuestionTypeObjective:
		return scoreObjective(q, ans)
	case consts.QuestionTypeTheory:
		return scoreTheory(q, ans)
	}
	return 0
}

// gradeSubmission walks the full question bank, not just the answered
// questions: an unanswered question scores zero and an answer to a question
// no longer in the bank is dropped.
func gradeSubmission(questions []*exam.Question, sub *submission.Submission) ([]submission.Answer, float64) {
	graded := make([]submission.Answer, 0, len(questions))
	var total float64
	for _, q := range questions {
		ans := sub.FindAnswer(q.ID.Hex())
		awarded := scoreAnswer(q, ans)
		g := submission.Answer{QuestionID: q.ID.Hex(), AwardedMarks: awarded}
		if ans != nil {
			g.SelectedOptionIndex = ans.SelectedOptionIndex
			g.AnswerText = ans.AnswerText
		}
		graded = append(graded, g)
		total += awarded
	}
	return graded, total
}

// totalScore re-sums awarded marks after an override.
func totalScore(answers []submission.Answer) float64 {
	return lo.SumBy(answers, func(a submission.Answer) float64 { return a.AwardedMarks })
}

// MarkSubmission grades a submitted attempt and moves it to marked. Marking
// an already-marked submission is rejected rather than silently re-graded.
func (s *ScoringService) MarkSubmission(ctx context.Context, req *hall.MarkSubmissionReq) (*hall.MarkSubmissionResp, error) {
	userMeta := adaptor.ExtractUserMeta(ctx)
	if userMeta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}

	sub, err := s.SubmissionMapper.FindOne(ctx, req.SubmissionId)
	if err != nil {
		return nil, consts.ErrNotFound
	}

	e, err := s.ExamMapper.FindOne(ctx, sub.ExamID)
	if err != nil {
		return nil, consts.ErrNotFound
	}
	if err := s.Gate.EnsureSupervisor(ctx, e, userMeta, OpMark); err != nil {
		return nil, err
	}

	switch sub.Status {
	case consts.SubmissionStatusMarked:
		return nil, consts.ErrAlreadyMarked
	case consts.SubmissionStatusSubmitted:
	default:
		return nil, consts.ErrStateViolation
	}

	questions, err := s.QuestionMapper.FindByExamID(ctx, sub.ExamID)
	if err != nil {
		log.CtxError(ctx, "load question bank failed: %v", err)
		return nil, consts.ErrMarkSubmission
	}

	graded, total := gradeSubmission(questions, sub)

	updated, err := s.SubmissionMapper.MarkScored(ctx, req.SubmissionId, graded, total)
	if err != nil {
		if errors.Is(err, consts.ErrNotFound) {
			// a concurrent marker got there first
			return nil, consts.ErrAlreadyMarked
		}
		log.CtxError(ctx, "mark submission failed: %v", err)
		return nil, consts.ErrMarkSubmission
	}

	log.CtxInfo(ctx, "submission marked [submission: %s, total: %.1f/%.1f, marker: %s]",
		req.SubmissionId, total, e.TotalMarks, userMeta.GetUserId())

	return &hall.MarkSubmissionResp{
		Submission: toSubmissionDTO(updated),
		Msg:        "submission marked",
	}, nil
}

// OverrideScore replaces the awarded marks for one question on a marked
// submission and recomputes the total. The new score is clamped to the
// question's mark range.
func (s *ScoringService) OverrideScore(ctx context.Context, req *hall.OverrideScoreReq) (*hall.OverrideScoreResp, error) {
	userMeta := adaptor.ExtractUserMeta(ctx)
	if userMeta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}
	if req.QuestionId == "" || req.NewScore == nil {
		return nil, consts.ErrInvalidParams
	}

	sub, err := s.SubmissionMapper.FindOne(ctx, req.SubmissionId)
	if err != nil {
		return nil, consts.ErrNotFound
	}
	if sub.Status != consts.SubmissionStatusMarked {
		return nil, consts.ErrNotMarked
	}
	if sub.IsPublished {
		return nil, consts.ErrAlreadyPublished
	}

	e, err := s.ExamMapper.FindOne(ctx, sub.ExamID)
	if err != nil {
		return nil, consts.ErrNotFound
	}
	if err := s.Gate.EnsureSupervisor(ctx, e, userMeta, OpMark); err != nil {
		return nil, err
	}

	q, err := s.QuestionMapper.FindOne(ctx, req.QuestionId)
	if err != nil || q.ExamID != sub.ExamID {
		return nil, consts.ErrNotFound
	}
	if *req.NewScore < 0 || *req.NewScore > q.Marks {
		return nil, consts.ErrInvalidParams
	}

	prev := sub.FindAnswer(req.QuestionId)
	if prev == nil {
		return nil, consts.ErrNotFound
	}

	newTotal := sub.TotalScore - prev.AwardedMarks + *req.NewScore

	updated, err := s.SubmissionMapper.OverrideAnswer(ctx, req.SubmissionId, req.QuestionId, *req.NewScore, newTotal)
	if err != nil {
		log.CtxError(ctx, "override score failed: %v", err)
		return nil, consts.ErrUpdate
	}

	log.CtxInfo(ctx, "score overridden [submission: %s, question: %s, %.1f -> %.1f, reason: %s, actor: %s]",
		req.SubmissionId, req.QuestionId, prev.AwardedMarks, *req.NewScore, req.Reason, userMeta.GetUserId())

	return &hall.OverrideScoreResp{
		Submission: toSubmissionDTO(updated),
		Msg:        "score overridden",
	}, nil
}
