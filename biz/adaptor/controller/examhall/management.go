package examhall

import (
	"context"

	handler "exam-hall/biz/adaptor/controller"
	"exam-hall/biz/application/dto/exam/hall"
	"exam-hall/provider"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// CreateExam .
// @router /api/v1/exams [POST]
func CreateExam(ctx context.Context, c *app.RequestContext) {
	var req hall.CreateExamReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.ExamService.CreateExam(ctx, &req)
	handler.PostProcess(ctx, c, &req, resp, err)
}

// AddQuestion .
// @router /api/v1/exams/:examId/questions [POST]
func AddQuestion(ctx context.Context, c *app.RequestContext) {
	var req hall.AddQuestionReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.ExamService.AddQuestion(ctx, &req)
	handler.PostProcess(ctx, c, &req, resp, err)
}

// AssignInvigilator .
// @router /api/v1/exams/:examId/invigilators [POST]
func AssignInvigilator(ctx context.Context, c *app.RequestContext) {
	var req hall.AssignInvigilatorReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.ExamService.AssignInvigilator(ctx, &req)
	handler.PostProcess(ctx, c, &req, resp, err)
}

// GetPaper .
// @router /api/v1/exams/:examId/paper [GET]
func GetPaper(ctx context.Context, c *app.RequestContext) {
	var req hall.GetPaperReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.ExamService.GetPaper(ctx, &req)
	handler.PostProcess(ctx, c, &req, resp, err)
}

// ListSubmissions .
// @router /api/v1/exams/:examId/submissions [POST]
func ListSubmissions(ctx context.Context, c *app.RequestContext) {
	var req hall.ListSubmissionsReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.ExamService.ListSubmissions(ctx, &req)
	handler.PostProcess(ctx, c, &req, resp, err)
}
