package service

import (
	"context"
	"math"
	"time"

	"exam-hall/biz/adaptor"
	"exam-hall/biz/application/dto/exam/hall"
	"exam-hall/biz/infrastructure/cache"
	"exam-hall/biz/infrastructure/consts"
	"exam-hall/biz/infrastructure/repository/exam"
	"exam-hall/biz/infrastructure/repository/submission"
	"exam-hall/biz/infrastructure/util/log"
	"exam-hall/biz/infrastructure/util/page"

	"github.com/google/wire"
	"github.com/samber/lo"
)

type IExamService interface {
	CreateExam(ctx context.Context, req *hall.CreateExamReq) (*hall.CreateExamResp, error)
	AddQuestion(ctx context.Context, req *hall.AddQuestionReq) (*hall.AddQuestionResp, error)
	AssignInvigilator(ctx context.Context, req *hall.AssignInvigilatorReq) (*hall.AssignInvigilatorResp, error)
	GetPaper(ctx context.Context, req *hall.GetPaperReq) (*hall.GetPaperResp, error)
	ListSubmissions(ctx context.Context, req *hall.ListSubmissionsReq) (*hall.ListSubmissionsResp, error)
}

type ExamService struct {
	ExamMapper        exam.IMongoMapper
	QuestionMapper    exam.IQuestionMongoMapper
	InvigilatorMapper exam.IInvigilatorMongoMapper
	SubmissionMapper  submission.IMongoMapper
	PaperCache        cache.IPaperCacheMapper
	Gate              *AuthGate
}

var ExamServiceSet = wire.NewSet(
	wire.Struct(new(ExamService), "*"),
	wire.Bind(new(IExamService), new(*ExamService)),
)

// keywordSum totals the per-keyword marks of a theory question.
func keywordSum(keywords []*hall.KeywordMark) float64 {
	return lo.SumBy(keywords, func(k *hall.KeywordMark) float64 { return k.Marks })
}

// keywordMarksValid accepts a theory rubric whose keyword marks total at most
// the question's marks. A partial rubric is fine; the remainder is simply
// unreachable through keyword matching.
func keywordMarksValid(keywords []*hall.KeywordMark, marks float64) bool {
	sum := keywordSum(keywords)
	return sum < marks || floatEquals(sum, marks)
}

// floatEquals tolerates serialization noise when comparing mark totals.
func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func (s *ExamService) CreateExam(ctx context.Context, req *hall.CreateExamReq) (*hall.CreateExamResp, error) {
	userMeta := adaptor.ExtractUserMeta(ctx)
	if userMeta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}
	switch userMeta.GetRole() {
	case consts.RoleTeacher, consts.RolePrincipal, consts.RoleSchoolAdmin, consts.RoleGlobalAdmin:
	default:
		return nil, consts.ErrForbidden
	}
	if req.ClassroomId == "" || req.SubjectId == "" || req.Title == "" || req.Session == "" || req.Term == "" {
		return nil, consts.ErrInvalidParams
	}
	if req.DurationInMinutes < 0 || req.MaxPauses < 0 {
		return nil, consts.ErrInvalidParams
	}

	e := &exam.Exam{
		SchoolID:          userMeta.GetSchoolId(),
		ClassroomID:       req.ClassroomId,
		SubjectID:         req.SubjectId,
		Session:           req.Session,
		Term:              req.Term,
		Title:             req.Title,
		DurationInMinutes: req.DurationInMinutes,
		MaxPauses:         req.MaxPauses,
		CreatorID:         userMeta.GetUserId(),
	}
	if req.ScheduledEndAt != nil {
		t := time.Unix(*req.ScheduledEndAt, 0)
		e.ScheduledEndAt = &t
	}

	if err := s.ExamMapper.Insert(ctx, e); err != nil {
		log.CtxError(ctx, "create exam failed: %v", err)
		return nil, consts.ErrCreateExam
	}

	log.CtxInfo(ctx, "exam created [exam: %s, classroom: %s, subject: %s, creator: %s]",
		e.ID.Hex(), e.ClassroomID, e.SubjectID, e.CreatorID)

	return &hall.CreateExamResp{
		Exam: toExamDTO(e),
		Msg:  "exam created",
	}, nil
}

// AddQuestion appends a question to the bank and grows the exam's total
// marks. For theory questions the keyword marks must sum exactly to the
// question's marks so a full-keyword answer earns full credit.
func (s *ExamService) AddQuestion(ctx context.Context, req *hall.AddQuestionReq) (*hall.AddQuestionResp, error) {
	userMeta := adaptor.ExtractUserMeta(ctx)
	if userMeta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}

	e, err := s.ExamMapper.FindOne(ctx, req.ExamId)
	if err != nil {
		return nil, consts.ErrNotFound
	}
	if err := s.Gate.EnsureSupervisor(ctx, e, userMeta, OpMark); err != nil {
		return nil, err
	}
	if req.Marks <= 0 || req.Text == "" {
		return nil, consts.ErrInvalidParams
	}

	q := &exam.Question{
		ExamID:       e.ID.Hex(),
		QuestionType: req.QuestionType,
		Text:         req.Text,
		Marks:        req.Marks,
	}

	switch req.QuestionType {
	case consts.QuestionTypeObjective:
		if len(req.Options) < 2 || req.CorrectOptionIndex == nil {
			return nil, consts.ErrInvalidParams
		}
		if *req.CorrectOptionIndex < 0 || *req.CorrectOptionIndex >= int64(len(req.Options)) {
			return nil, consts.ErrInvalidParams
		}
		q.Options = req.Options
		q.CorrectOptionIndex = *req.CorrectOptionIndex
	case consts.QuestionTypeTheory:
		if len(req.Keywords) == 0 {
			return nil, consts.ErrInvalidParams
		}
		if !keywordMarksValid(req.Keywords, req.Marks) {
			return nil, consts.ErrInvalidParams
		}
		q.Keywords = lo.Map(req.Keywords, func(k *hall.KeywordMark, _ int) exam.KeywordMark {
			return exam.KeywordMark{Keyword: k.Keyword, Marks: k.Marks}
		})
	default:
		return nil, consts.ErrInvalidParams
	}

	if err := s.QuestionMapper.Insert(ctx, q); err != nil {
		log.CtxError(ctx, "add question failed: %v", err)
		return nil, consts.ErrAddQuestion
	}
	if err := s.ExamMapper.IncTotalMarks(ctx, req.ExamId, req.Marks); err != nil {
		log.CtxError(ctx, "total marks update failed: %v", err)
		return nil, consts.ErrAddQuestion
	}

	// the cached paper is stale now
	if err := s.PaperCache.Delete(ctx, req.ExamId); err != nil {
		log.CtxError(ctx, "paper cache invalidation failed: %v", err)
	}

	return &hall.AddQuestionResp{
		QuestionId: q.ID.Hex(),
		TotalMarks: e.TotalMarks + req.Marks,
		Msg:        "question added",
	}, nil
}

// AssignInvigilator grants a same-school teacher supervision rights over one
// exam. Assigning the same teacher twice is rejected, not silently absorbed.
func (s *ExamService) AssignInvigilator(ctx context.Context, req *hall.AssignInvigilatorReq) (*hall.AssignInvigilatorResp, error) {
	userMeta := adaptor.ExtractUserMeta(ctx)
	if userMeta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}
	switch userMeta.GetRole() {
	case consts.RolePrincipal, consts.RoleSchoolAdmin, consts.RoleGlobalAdmin:
	default:
		return nil, consts.ErrForbidden
	}
	if req.TeacherId == "" {
		return nil, consts.ErrInvalidParams
	}

	e, err := s.ExamMapper.FindOne(ctx, req.ExamId)
	if err != nil {
		return nil, consts.ErrNotFound
	}
	if userMeta.GetRole() != consts.RoleGlobalAdmin && userMeta.GetSchoolId() != e.SchoolID {
		return nil, consts.ErrForbidden
	}

	if err := s.InvigilatorMapper.Assign(ctx, &exam.InvigilatorAssignment{
		ExamID:     e.ID.Hex(),
		TeacherID:  req.TeacherId,
		AssignedBy: userMeta.GetUserId(),
	}); err != nil {
		return nil, err
	}

	log.CtxInfo(ctx, "invigilator assigned [exam: %s, teacher: %s, by: %s]",
		req.ExamId, req.TeacherId, userMeta.GetUserId())

	return &hall.AssignInvigilatorResp{Msg: "invigilator assigned"}, nil
}

// GetPaper returns the student-facing paper, cache-first. Correct options and
// keyword lists never leave the server.
func (s *ExamService) GetPaper(ctx context.Context, req *hall.GetPaperReq) (*hall.GetPaperResp, error) {
	userMeta := adaptor.ExtractUserMeta(ctx)
	if userMeta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}

	e, err := s.ExamMapper.FindOne(ctx, req.ExamId)
	if err != nil {
		return nil, consts.ErrNotFound
	}

	// enrollment first; the cache only short-circuits the question load
	if userMeta.GetRole() == consts.RoleStudent {
		if _, err := s.Gate.EnsureEnrolled(ctx, e.ClassroomID, userMeta.GetUserId()); err != nil {
			return nil, err
		}
	}

	if paper, err := s.PaperCache.Get(ctx, req.ExamId); err == nil && paper != nil {
		return &hall.GetPaperResp{Paper: paper}, nil
	}

	questions, err := s.QuestionMapper.FindByExamID(ctx, req.ExamId)
	if err != nil {
		log.CtxError(ctx, "load questions failed: %v", err)
		return nil, consts.ErrNotFound
	}

	paper := toPaperDTO(e, questions)
	if err := s.PaperCache.Set(ctx, req.ExamId, paper); err != nil {
		log.CtxError(ctx, "paper cache write failed: %v", err)
	}

	return &hall.GetPaperResp{Paper: paper}, nil
}

// ListSubmissions pages through an exam's submissions for supervision.
func (s *ExamService) ListSubmissions(ctx context.Context, req *hall.ListSubmissionsReq) (*hall.ListSubmissionsResp, error) {
	userMeta := adaptor.ExtractUserMeta(ctx)
	if userMeta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}

	e, err := s.ExamMapper.FindOne(ctx, req.ExamId)
	if err != nil {
		return nil, consts.ErrNotFound
	}
	if err := s.Gate.EnsureSupervisor(ctx, e, userMeta, OpMark); err != nil {
		return nil, err
	}

	p, limit := page.ParsePageOpt(req.PaginationOptions)
	subs, total, err := s.SubmissionMapper.FindByExamID(ctx, req.ExamId, p, limit)
	if err != nil {
		log.CtxError(ctx, "list submissions failed: %v", err)
		return nil, consts.ErrListSubmissions
	}

	return &hall.ListSubmissionsResp{
		Submissions: lo.Map(subs, func(sub *submission.Submission, _ int) *hall.Submission {
			return toSubmissionDTO(sub)
		}),
		Total: total,
	}, nil
}
