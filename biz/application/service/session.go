package service

import (
	"context"
	"errors"
	"exam-hall/biz/adaptor"
	"exam-hall/biz/application/dto/exam/hall"
	"exam-hall/biz/infrastructure/consts"
	"exam-hall/biz/infrastructure/notify"
	"exam-hall/biz/infrastructure/repository/exam"
	"exam-hall/biz/infrastructure/repository/submission"
	"exam-hall/biz/infrastructure/util/clock"
	"exam-hall/biz/infrastructure/util/log"
	"time"

	"github.com/google/wire"
)

type ISessionService interface {
	StartExam(ctx context.Context, req *hall.StartExamReq) (*hall.StartExamResp, error)
	BeginExam(ctx context.Context, req *hall.BeginExamReq) (*hall.BeginExamResp, error)
	SubmitAnswer(ctx context.Context, req *hall.SubmitAnswerReq) (*hall.SubmitAnswerResp, error)
	PauseExam(ctx context.Context, req *hall.PauseExamReq) (*hall.PauseExamResp, error)
	ResumeExam(ctx context.Context, req *hall.ResumeExamReq) (*hall.ResumeExamResp, error)
	FinalizeExam(ctx context.Context, req *hall.FinalizeExamReq) (*hall.FinalizeExamResp, error)
	AdjustTime(ctx context.Context, req *hall.AdjustTimeReq) (*hall.AdjustTimeResp, error)
	EndExam(ctx context.Context, req *hall.EndExamReq) (*hall.EndExamResp, error)
	Announce(ctx context.Context, req *hall.AnnounceReq) (*hall.AnnounceResp, error)
	ListEvents(ctx context.Context, req *hall.ListEventsReq) (*hall.ListEventsResp, error)
}

// SessionService drives the ready -> in_progress -> paused -> submitted
// lifecycle. Nothing here runs on a background timer: expiry is cooperative,
// EndExam is the only forceful transition and a human invokes it.
type SessionService struct {
	ExamMapper       exam.IMongoMapper
	SubmissionMapper submission.IMongoMapper
	Gate             *AuthGate
	Broadcaster      notify.Broadcaster
	Clock            clock.Clock
}

var SessionServiceSet = wire.NewSet(
	wire.Struct(new(SessionService), "*"),
	wire.Bind(new(ISessionService), new(*SessionService)),
)

// examEndTime computes the absolute deadline for a timed attempt.
func examEndTime(start time.Time, durationInMinutes int64) time.Time {
	return start.Add(time.Duration(durationInMinutes) * time.Minute)
}

// remainingSeconds floors at zero; a pause after the deadline freezes an
// already-spent budget, it never goes negative.
func remainingSeconds(end, now time.Time) int64 {
	r := int64(end.Sub(now) / time.Second)
	if r < 0 {
		return 0
	}
	return r
}

// resumedEndTime restores exactly the remaining time captured on pause.
func resumedEndTime(now time.Time, remainingSec int64) time.Time {
	return now.Add(time.Duration(remainingSec) * time.Second)
}

// StartExam discovers or creates the student's submission for an exam. It is
// idempotent: a repeat call returns the same submission with no timer side
// effects.
func (s *SessionService) StartExam(ctx context.Context, req *hall.StartExamReq) (*hall.StartExamResp, error) {
	userMeta := adaptor.ExtractUserMeta(ctx)
	if userMeta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}
	if userMeta.GetRole() != consts.RoleStudent {
		return nil, consts.ErrForbidden
	}
	if req.ExamId == "" {
		return nil, consts.ErrInvalidParams
	}

	e, err := s.ExamMapper.FindOne(ctx, req.ExamId)
	if err != nil {
		log.CtxError(ctx, "exam not found: %v", err)
		return nil, consts.ErrNotFound
	}

	if _, err := s.Gate.EnsureEnrolled(ctx, e.ClassroomID, userMeta.GetUserId()); err != nil {
		return nil, err
	}

	sub, err := s.SubmissionMapper.UpsertReady(ctx, &submission.Submission{
		ExamID:      e.ID.Hex(),
		StudentID:   userMeta.GetUserId(),
		ClassroomID: e.ClassroomID,
		SchoolID:    e.SchoolID,
		SubjectID:   e.SubjectID,
		Session:     e.Session,
		Term:        e.Term,
	})
	if err != nil {
		log.CtxError(ctx, "start exam failed: %v", err)
		return nil, consts.ErrStartExam
	}

	if sub.Status == consts.SubmissionStatusSubmitted || sub.Status == consts.SubmissionStatusMarked {
		return nil, consts.ErrAlreadySubmitted
	}

	return &hall.StartExamResp{
		Submission: toSubmissionDTO(sub),
		Msg:        "exam session ready",
	}, nil
}

// BeginExam starts the countdown: first call from ready sets the timer, any
// repeat on a live submission returns current state without resetting it.
func (s *SessionService) BeginExam(ctx context.Context, req *hall.BeginExamReq) (*hall.BeginExamResp, error) {
	userMeta := adaptor.ExtractUserMeta(ctx)
	if userMeta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}

	sub, err := s.SubmissionMapper.FindOne(ctx, req.SubmissionId)
	if err != nil {
		return nil, consts.ErrNotFound
	}
	if sub.StudentID != userMeta.GetUserId() {
		return nil, consts.ErrNotFound
	}

	switch sub.Status {
	case consts.SubmissionStatusInProgress, consts.SubmissionStatusPaused:
		return &hall.BeginExamResp{Submission: toSubmissionDTO(sub), Msg: "exam already begun"}, nil
	case consts.SubmissionStatusSubmitted, consts.SubmissionStatusMarked:
		return nil, consts.ErrAlreadySubmitted
	}

	e, err := s.ExamMapper.FindOne(ctx, sub.ExamID)
	if err != nil {
		log.CtxError(ctx, "exam not found for submission %s: %v", req.SubmissionId, err)
		return nil, consts.ErrNotFound
	}

	var start, end *time.Time
	if e.Timed() {
		now := s.Clock.Now()
		deadline := examEndTime(now, e.DurationInMinutes)
		start, end = &now, &deadline
	}

	updated, err := s.SubmissionMapper.Begin(ctx, req.SubmissionId, start, end)
	if err != nil {
		if errors.Is(err, consts.ErrNotFound) {
			// lost the race; whoever won has already begun
			current, ferr := s.SubmissionMapper.FindOne(ctx, req.SubmissionId)
			if ferr == nil && (current.Status == consts.SubmissionStatusInProgress || current.Status == consts.SubmissionStatusPaused) {
				return &hall.BeginExamResp{Submission: toSubmissionDTO(current), Msg: "exam already begun"}, nil
			}
			return nil, consts.ErrStateViolation
		}
		return nil, err
	}

	log.CtxInfo(ctx, "exam begun [submission: %s, student: %s, duration: %dm]",
		req.SubmissionId, userMeta.GetUserId(), e.DurationInMinutes)

	return &hall.BeginExamResp{
		Submission: toSubmissionDTO(updated),
		Msg:        "exam begun",
	}, nil
}

// SubmitAnswer upserts one answer by question id, last write wins. Scoring is
// deferred to marking; neither totals nor timers move here.
func (s *SessionService) SubmitAnswer(ctx context.Context, req *hall.SubmitAnswerReq) (*hall.SubmitAnswerResp, error) {
	userMeta := adaptor.ExtractUserMeta(ctx)
	if userMeta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}
	if req.QuestionId == "" || (req.SelectedOptionIndex == nil && req.AnswerText == nil) {
		return nil, consts.ErrInvalidParams
	}

	sub, err := s.SubmissionMapper.FindOne(ctx, req.SubmissionId)
	if err != nil {
		return nil, consts.ErrNotFound
	}
	if sub.StudentID != userMeta.GetUserId() {
		return nil, consts.ErrNotFound
	}
	if sub.Status != consts.SubmissionStatusInProgress {
		return nil, consts.ErrStateViolation
	}

	ans := submission.Answer{
		QuestionID:          req.QuestionId,
		SelectedOptionIndex: req.SelectedOptionIndex,
	}
	if req.AnswerText != nil {
		ans.AnswerText = *req.AnswerText
	}

	updated, err := s.SubmissionMapper.UpsertAnswer(ctx, req.SubmissionId, ans)
	if err != nil {
		if errors.Is(err, consts.ErrNotFound) {
			return nil, consts.ErrStateViolation
		}
		log.CtxError(ctx, "submit answer failed: %v", err)
		return nil, consts.ErrSubmitAnswer
	}

	return &hall.SubmitAnswerResp{
		Submission: toSubmissionDTO(updated),
		Msg:        "answer recorded",
	}, nil
}

// PauseExam freezes the countdown. A student pause spends one unit of the
// pause budget; a supervisor pause never does, so a fire drill does not
// penalize the student.
func (s *SessionService) PauseExam(ctx context.Context, req *hall.PauseExamReq) (*hall.PauseExamResp, error) {
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

	now := s.Clock.Now()
	var remaining int64
	if sub.EndTime != nil {
		remaining = remainingSeconds(*sub.EndTime, now)
	}

	if userMeta.GetRole() == consts.RoleStudent {
		if sub.StudentID != userMeta.GetUserId() {
			return nil, consts.ErrNotFound
		}
		if sub.PauseCount >= e.MaxPauses {
			return nil, consts.ErrPauseLimitExceeded
		}
		updated, err := s.SubmissionMapper.PauseByStudent(ctx, req.SubmissionId, e.MaxPauses, remaining)
		if err != nil {
			if errors.Is(err, consts.ErrNotFound) {
				// the CAS also carries the budget guard; recheck which one bit
				current, ferr := s.SubmissionMapper.FindOne(ctx, req.SubmissionId)
				if ferr == nil && current.PauseCount >= e.MaxPauses {
					return nil, consts.ErrPauseLimitExceeded
				}
				return nil, consts.ErrStateViolation
			}
			return nil, err
		}
		log.CtxInfo(ctx, "exam paused by student [submission: %s, pauseCount: %d, remaining: %ds]",
			req.SubmissionId, updated.PauseCount, remaining)
		return &hall.PauseExamResp{Submission: toSubmissionDTO(updated), Msg: "exam paused"}, nil
	}

	if err := s.Gate.EnsureSupervisor(ctx, e, userMeta, OpPause); err != nil {
		return nil, err
	}
	updated, err := s.SubmissionMapper.PauseBySupervisor(ctx, req.SubmissionId, remaining)
	if err != nil {
		if errors.Is(err, consts.ErrNotFound) {
			return nil, consts.ErrStateViolation
		}
		return nil, err
	}
	log.CtxInfo(ctx, "exam paused by supervisor [submission: %s, actor: %s, remaining: %ds]",
		req.SubmissionId, userMeta.GetUserId(), remaining)
	return &hall.PauseExamResp{Submission: toSubmissionDTO(updated), Msg: "exam paused"}, nil
}

// ResumeExam restores the countdown from the snapshot captured at pause time.
func (s *SessionService) ResumeExam(ctx context.Context, req *hall.ResumeExamReq) (*hall.ResumeExamResp, error) {
	userMeta := adaptor.ExtractUserMeta(ctx)
	if userMeta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}

	sub, err := s.SubmissionMapper.FindOne(ctx, req.SubmissionId)
	if err != nil {
		return nil, consts.ErrNotFound
	}
	if sub.StudentID != userMeta.GetUserId() {
		return nil, consts.ErrNotFound
	}
	if sub.Status != consts.SubmissionStatusPaused {
		return nil, consts.ErrStateViolation
	}

	var end *time.Time
	if sub.EndTime != nil {
		deadline := resumedEndTime(s.Clock.Now(), sub.TimeRemainingOnPause)
		end = &deadline
	}

	updated, err := s.SubmissionMapper.Resume(ctx, req.SubmissionId, end)
	if err != nil {
		if errors.Is(err, consts.ErrNotFound) {
			return nil, consts.ErrStateViolation
		}
		return nil, err
	}

	return &hall.ResumeExamResp{
		Submission: toSubmissionDTO(updated),
		Msg:        "exam resumed",
	}, nil
}

// FinalizeExam commits the attempt. A late finalize is accepted and only
// flagged; the engine trusts the caller's timing and enforces no hard cutoff.
func (s *SessionService) FinalizeExam(ctx context.Context, req *hall.FinalizeExamReq) (*hall.FinalizeExamResp, error) {
	userMeta := adaptor.ExtractUserMeta(ctx)
	if userMeta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}

	sub, err := s.SubmissionMapper.FindOne(ctx, req.SubmissionId)
	if err != nil {
		return nil, consts.ErrNotFound
	}
	if sub.StudentID != userMeta.GetUserId() {
		e, ferr := s.ExamMapper.FindOne(ctx, sub.ExamID)
		if ferr != nil {
			return nil, consts.ErrNotFound
		}
		// a supervisor may finalize on the student's behalf
		if err := s.Gate.EnsureSupervisor(ctx, e, userMeta, OpPause); err != nil {
			return nil, consts.ErrNotFound
		}
	}

	now := s.Clock.Now()
	late := sub.EndTime != nil && now.After(*sub.EndTime)
	if late {
		log.CtxInfo(ctx, "late finalize accepted [submission: %s, deadline: %s, now: %s]",
			req.SubmissionId, sub.EndTime.Format(time.RFC3339), now.Format(time.RFC3339))
	}

	updated, err := s.SubmissionMapper.Finalize(ctx, req.SubmissionId, late)
	if err != nil {
		// already finalized is indistinguishable from "not yours" here
		return nil, consts.ErrNotFound
	}

	return &hall.FinalizeExamResp{
		Submission: toSubmissionDTO(updated),
		Msg:        "exam submitted",
	}, nil
}

// AdjustTime extends the exam's duration. Only submissions that begin after
// this call see the extension; live deadlines are not rewritten.
func (s *SessionService) AdjustTime(ctx context.Context, req *hall.AdjustTimeReq) (*hall.AdjustTimeResp, error) {
	userMeta := adaptor.ExtractUserMeta(ctx)
	if userMeta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}
	if req.AdditionalMinutes <= 0 {
		return nil, consts.ErrInvalidParams
	}

	e, err := s.ExamMapper.FindOne(ctx, req.ExamId)
	if err != nil {
		return nil, consts.ErrNotFound
	}

	if err := s.Gate.EnsureSupervisor(ctx, e, userMeta, OpAdjustTime); err != nil {
		return nil, err
	}

	updated, err := s.ExamMapper.ExtendDuration(ctx, req.ExamId, req.AdditionalMinutes)
	if err != nil {
		log.CtxError(ctx, "adjust time failed: %v", err)
		return nil, consts.ErrUpdate
	}

	log.CtxInfo(ctx, "exam duration extended [exam: %s, by: %dm, actor: %s]",
		req.ExamId, req.AdditionalMinutes, userMeta.GetUserId())

	return &hall.AdjustTimeResp{
		Exam: toExamDTO(updated),
		Msg:  "exam time extended",
	}, nil
}

// EndExam force-submits every live attempt in one set-based update and
// broadcasts the close to all participants.
func (s *SessionService) EndExam(ctx context.Context, req *hall.EndExamReq) (*hall.EndExamResp, error) {
	userMeta := adaptor.ExtractUserMeta(ctx)
	if userMeta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}

	e, err := s.ExamMapper.FindOne(ctx, req.ExamId)
	if err != nil {
		return nil, consts.ErrNotFound
	}

	if err := s.Gate.EnsureSupervisor(ctx, e, userMeta, OpEndExam); err != nil {
		return nil, err
	}

	count, err := s.SubmissionMapper.ForceSubmitAll(ctx, req.ExamId, s.Clock.Now())
	if err != nil {
		log.CtxError(ctx, "end exam failed: %v", err)
		return nil, consts.ErrUpdate
	}

	// best effort; a broadcast failure never rolls back the transition
	if err := s.Broadcaster.Broadcast(ctx, req.ExamId, consts.EventExamEnded, map[string]any{
		"forceSubmitted": count,
		"endedBy":        userMeta.GetUserId(),
	}); err != nil {
		log.CtxError(ctx, "broadcast exam end failed: %v", err)
	}

	log.CtxInfo(ctx, "exam ended [exam: %s, forceSubmitted: %d, actor: %s]",
		req.ExamId, count, userMeta.GetUserId())

	return &hall.EndExamResp{
		ForceSubmitted: count,
		Msg:            "exam ended",
	}, nil
}

// Announce is an authorization-gated broadcast with no state change.
func (s *SessionService) Announce(ctx context.Context, req *hall.AnnounceReq) (*hall.AnnounceResp, error) {
	userMeta := adaptor.ExtractUserMeta(ctx)
	if userMeta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}
	if req.Message == "" {
		return nil, consts.ErrInvalidParams
	}

	e, err := s.ExamMapper.FindOne(ctx, req.ExamId)
	if err != nil {
		return nil, consts.ErrNotFound
	}

	if err := s.Gate.EnsureSupervisor(ctx, e, userMeta, OpAnnounce); err != nil {
		return nil, err
	}

	if err := s.Broadcaster.Broadcast(ctx, req.ExamId, consts.EventAnnouncement, map[string]any{
		"message":     req.Message,
		"announcedBy": userMeta.GetUserId(),
	}); err != nil {
		log.CtxError(ctx, "broadcast announcement failed: %v", err)
	}

	return &hall.AnnounceResp{Msg: "announcement sent"}, nil
}

// ListEvents peeks at the recent announcement queue of one exam without
// draining it. Students only see exams they are enrolled for; staff access
// follows the announce policy.
func (s *SessionService) ListEvents(ctx context.Context, req *hall.ListEventsReq) (*hall.ListEventsResp, error) {
	userMeta := adaptor.ExtractUserMeta(ctx)
	if userMeta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}

	e, err := s.ExamMapper.FindOne(ctx, req.ExamId)
	if err != nil {
		return nil, consts.ErrNotFound
	}

	if userMeta.GetRole() == consts.RoleStudent {
		if _, err := s.Gate.EnsureEnrolled(ctx, e.ClassroomID, userMeta.GetUserId()); err != nil {
			return nil, err
		}
	} else if err := s.Gate.EnsureSupervisor(ctx, e, userMeta, OpAnnounce); err != nil {
		return nil, err
	}

	events, err := s.Broadcaster.Recent(ctx, req.ExamId, int(req.Limit))
	if err != nil {
		log.CtxError(ctx, "read event queue failed: %v", err)
		return nil, consts.ErrListEvents
	}

	resp := &hall.ListEventsResp{
		Events: make([]*hall.ExamEvent, 0, len(events)),
		Total:  int64(len(events)),
	}
	for _, event := range events {
		resp.Events = append(resp.Events, toEventDTO(event))
	}
	return resp, nil
}
