package service

import (
	"context"
	"errors"
	"sort"

	"exam-hall/biz/adaptor"
	"exam-hall/biz/application/dto/exam/hall"
	"exam-hall/biz/infrastructure/consts"
	"exam-hall/biz/infrastructure/repository/classroom"
	"exam-hall/biz/infrastructure/repository/exam"
	"exam-hall/biz/infrastructure/repository/result"
	"exam-hall/biz/infrastructure/repository/submission"
	"exam-hall/biz/infrastructure/util/log"

	"github.com/google/wire"
)

type IPublicationService interface {
	PostToReportCard(ctx context.Context, req *hall.PostToReportCardReq) (*hall.PostToReportCardResp, error)
	BulkPublish(ctx context.Context, req *hall.BulkPublishReq) (*hall.BulkPublishResp, error)
	RecomputePositions(ctx context.Context, req *hall.RecomputePositionsReq) (*hall.RecomputePositionsResp, error)
}

// PublicationService moves marked scores onto report cards. Publication is a
// one-way door per submission: once is_published flips, overrides are closed.
type PublicationService struct {
	ExamMapper       exam.IMongoMapper
	SubmissionMapper submission.IMongoMapper
	ResultMapper     result.IMongoMapper
	MemberMapper     classroom.IMemberMongoMapper
	Gate             *AuthGate
}

var PublicationServiceSet = wire.NewSet(
	wire.Struct(new(PublicationService), "*"),
	wire.Bind(new(IPublicationService), new(*PublicationService)),
)

// assignPositions ranks report cards by total score descending with dense
// competition numbering: scores [85, 85, 70] rank [1, 1, 3]. Ties keep their
// surname order from the input.
func assignPositions(cards []*result.Result) []int64 {
	idx := make([]int, len(cards))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return cards[idx[a]].TotalScore() > cards[idx[b]].TotalScore()
	})

	positions := make([]int64, len(cards))
	var prev float64
	var pos int64
	for rank, i := range idx {
		score := cards[i].TotalScore()
		if rank == 0 || score != prev {
			pos = int64(rank + 1)
			prev = score
		}
		positions[i] = pos
	}
	return positions
}

// cardsWithinSchool reports whether every card in the ranking group belongs
// to the given school. School-scoped admins may only re-rank their own.
func cardsWithinSchool(cards []*result.Result, schoolID string) bool {
	for _, card := range cards {
		if card.SchoolID != schoolID {
			return false
		}
	}
	return true
}

// PostToReportCard publishes one marked submission onto the student's report
// card for the exam's session and term.
func (s *PublicationService) PostToReportCard(ctx context.Context, req *hall.PostToReportCardReq) (*hall.PostToReportCardResp, error) {
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
	if err := s.Gate.EnsureSupervisor(ctx, e, userMeta, OpPublish); err != nil {
		return nil, err
	}

	r, err := s.publishOne(ctx, e, sub)
	if err != nil {
		return nil, err
	}

	return &hall.PostToReportCardResp{
		Result: toResultDTO(r),
		Msg:    "result posted to report card",
	}, nil
}

// publishOne upserts the report-card item first and flips is_published last.
// The upsert is idempotent by subject key, so a failed upsert leaves the
// submission retryable and a concurrent publisher merely rewrites the same
// item before losing the CAS on the flag.
func (s *PublicationService) publishOne(ctx context.Context, e *exam.Exam, sub *submission.Submission) (*result.Result, error) {
	switch sub.Status {
	case consts.SubmissionStatusMarked:
	case consts.SubmissionStatusSubmitted:
		return nil, consts.ErrNotMarked
	default:
		return nil, consts.ErrStateViolation
	}
	if sub.IsPublished {
		return nil, consts.ErrAlreadyPublished
	}

	surname := ""
	if member, err := s.MemberMapper.FindByClassroomAndStudent(ctx, sub.ClassroomID, sub.StudentID); err == nil {
		surname = member.Surname
	}

	card := &result.Result{
		StudentID:   sub.StudentID,
		Session:     sub.Session,
		Term:        sub.Term,
		ClassroomID: sub.ClassroomID,
		SchoolID:    sub.SchoolID,
		Surname:     surname,
	}
	item := result.Item{
		SubjectID:    sub.SubjectID,
		ExamScore:    sub.TotalScore,
		MaxExamScore: e.TotalMarks,
	}

	r, err := s.ResultMapper.UpsertItem(ctx, card, item)
	if err != nil {
		log.CtxError(ctx, "report card upsert failed [submission: %s]: %v", sub.ID.Hex(), err)
		return nil, consts.ErrPublishResult
	}

	if _, err := s.SubmissionMapper.SetPublished(ctx, sub.ID.Hex()); err != nil {
		if errors.Is(err, consts.ErrNotFound) {
			return nil, consts.ErrAlreadyPublished
		}
		return nil, err
	}

	log.CtxInfo(ctx, "result published [submission: %s, student: %s, subject: %s, score: %.1f/%.1f]",
		sub.ID.Hex(), sub.StudentID, sub.SubjectID, sub.TotalScore, e.TotalMarks)
	return r, nil
}

// BulkPublish posts every marked, unpublished submission of one exam. Each
// submission succeeds or fails on its own; one bad card never aborts the rest.
func (s *PublicationService) BulkPublish(ctx context.Context, req *hall.BulkPublishReq) (*hall.BulkPublishResp, error) {
	userMeta := adaptor.ExtractUserMeta(ctx)
	if userMeta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}

	e, err := s.ExamMapper.FindOne(ctx, req.ExamId)
	if err != nil {
		return nil, consts.ErrNotFound
	}
	if err := s.Gate.EnsureSupervisor(ctx, e, userMeta, OpPublish); err != nil {
		return nil, err
	}

	subs, err := s.SubmissionMapper.FindMarkedUnpublished(ctx, req.ExamId)
	if err != nil {
		log.CtxError(ctx, "list marked submissions failed: %v", err)
		return nil, consts.ErrPublishResult
	}

	resp := &hall.BulkPublishResp{Items: make([]*hall.PublishItem, 0, len(subs))}
	for _, sub := range subs {
		item := &hall.PublishItem{
			SubmissionId: sub.ID.Hex(),
			StudentId:    sub.StudentID,
		}
		if _, err := s.publishOne(ctx, e, sub); err != nil {
			item.Message = err.Error()
			resp.Failed++
		} else {
			item.Ok = true
			resp.Successful++
		}
		resp.Items = append(resp.Items, item)
	}

	log.CtxInfo(ctx, "bulk publish finished [exam: %s, ok: %d, failed: %d]",
		req.ExamId, resp.Successful, resp.Failed)
	return resp, nil
}

// RecomputePositions re-ranks every approved report card in one classroom
// ranking group. Unapproved cards are excluded and keep their old position.
func (s *PublicationService) RecomputePositions(ctx context.Context, req *hall.RecomputePositionsReq) (*hall.RecomputePositionsResp, error) {
	userMeta := adaptor.ExtractUserMeta(ctx)
	if userMeta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}
	if req.ClassroomId == "" || req.Term == "" || req.Session == "" {
		return nil, consts.ErrInvalidParams
	}

	switch userMeta.GetRole() {
	case consts.RolePrincipal, consts.RoleSchoolAdmin, consts.RoleGlobalAdmin:
	default:
		return nil, consts.ErrForbidden
	}

	cards, err := s.ResultMapper.FindApproved(ctx, req.ClassroomId, req.Term, req.Session)
	if err != nil {
		log.CtxError(ctx, "load ranking group failed: %v", err)
		return nil, consts.ErrUpdate
	}

	if userMeta.GetRole() != consts.RoleGlobalAdmin && !cardsWithinSchool(cards, userMeta.GetSchoolId()) {
		return nil, consts.ErrForbidden
	}

	positions := assignPositions(cards)
	var ranked int64
	for i, card := range cards {
		if err := s.ResultMapper.UpdatePosition(ctx, card.ID, positions[i]); err != nil {
			log.CtxError(ctx, "position update failed [result: %s]: %v", card.ID.Hex(), err)
			continue
		}
		ranked++
	}

	log.CtxInfo(ctx, "positions recomputed [classroom: %s, term: %s, session: %s, ranked: %d/%d]",
		req.ClassroomId, req.Term, req.Session, ranked, len(cards))

	return &hall.RecomputePositionsResp{
		Ranked: ranked,
		Msg:    "positions recomputed",
	}, nil
}
