package examhall

import (
	"context"

	handler "exam-hall/biz/adaptor/controller"
	"exam-hall/biz/application/dto/exam/hall"
	"exam-hall/provider"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// StartExam .
// @router /api/v1/submissions [POST]
func StartExam(ctx context.Context, c *app.RequestContext) {
	var req hall.StartExamReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.SessionService.StartExam(ctx, &req)
	handler.PostProcess(ctx, c, &req, resp, err)
}

// BeginExam .
// @router /api/v1/submissions/:submissionId/begin [POST]
func BeginExam(ctx context.Context, c *app.RequestContext) {
	var req hall.BeginExamReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.SessionService.BeginExam(ctx, &req)
	handler.PostProcess(ctx, c, &req, resp, err)
}

// SubmitAnswer .
// @router /api/v1/submissions/:submissionId/answers [PUT]
func SubmitAnswer(ctx context.Context, c *app.RequestContext) {
	var req hall.SubmitAnswerReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.SessionService.SubmitAnswer(ctx, &req)
	handler.PostProcess(ctx, c, &req, resp, err)
}

// PauseExam .
// @router /api/v1/submissions/:submissionId/pause [POST]
func PauseExam(ctx context.Context, c *app.RequestContext) {
	var req hall.PauseExamReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.SessionService.PauseExam(ctx, &req)
	handler.PostProcess(ctx, c, &req, resp, err)
}

// ResumeExam .
// @router /api/v1/submissions/:submissionId/resume [POST]
func ResumeExam(ctx context.Context, c *app.RequestContext) {
	var req hall.ResumeExamReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.SessionService.ResumeExam(ctx, &req)
	handler.PostProcess(ctx, c, &req, resp, err)
}

// FinalizeExam .
// @router /api/v1/submissions/:submissionId/finalize [POST]
func FinalizeExam(ctx context.Context, c *app.RequestContext) {
	var req hall.FinalizeExamReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.SessionService.FinalizeExam(ctx, &req)
	handler.PostProcess(ctx, c, &req, resp, err)
}

// AdjustTime .
// @router /api/v1/exams/:examId/adjust-time [POST]
func AdjustTime(ctx context.Context, c *app.RequestContext) {
	var req hall.AdjustTimeReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.SessionService.AdjustTime(ctx, &req)
	handler.PostProcess(ctx, c, &req, resp, err)
}

// EndExam .
// @router /api/v1/exams/:examId/end [POST]
func EndExam(ctx context.Context, c *app.RequestContext) {
	var req hall.EndExamReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.SessionService.EndExam(ctx, &req)
	handler.PostProcess(ctx, c, &req, resp, err)
}

// Announce .
// @router /api/v1/exams/:examId/announce [POST]
func Announce(ctx context.Context, c *app.RequestContext) {
	var req hall.AnnounceReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.SessionService.Announce(ctx, &req)
	handler.PostProcess(ctx, c, &req, resp, err)
}

// ListEvents .
// @router /api/v1/exams/:examId/events [GET]
func ListEvents(ctx context.Context, c *app.RequestContext) {
	var req hall.ListEventsReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.SessionService.ListEvents(ctx, &req)
	handler.PostProcess(ctx, c, &req, resp, err)
}
