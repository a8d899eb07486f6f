package examhall

import (
	"context"

	handler "exam-hall/biz/adaptor/controller"
	"exam-hall/biz/application/dto/exam/hall"
	"exam-hall/provider"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// MarkSubmission .
// @router /api/v1/submissions/:submissionId/mark [POST]
func MarkSubmission(ctx context.Context, c *app.RequestContext) {
	var req hall.MarkSubmissionReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.ScoringService.MarkSubmission(ctx, &req)
	handler.PostProcess(ctx, c, &req, resp, err)
}

// OverrideScore .
// @router /api/v1/submissions/:submissionId/override [POST]
func OverrideScore(ctx context.Context, c *app.RequestContext) {
	var req hall.OverrideScoreReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.ScoringService.OverrideScore(ctx, &req)
	handler.PostProcess(ctx, c, &req, resp, err)
}

// PostToReportCard .
// @router /api/v1/submissions/:submissionId/publish [POST]
func PostToReportCard(ctx context.Context, c *app.RequestContext) {
	var req hall.PostToReportCardReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.PublicationService.PostToReportCard(ctx, &req)
	handler.PostProcess(ctx, c, &req, resp, err)
}

// BulkPublish .
// @router /api/v1/exams/:examId/publish [POST]
func BulkPublish(ctx context.Context, c *app.RequestContext) {
	var req hall.BulkPublishReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.PublicationService.BulkPublish(ctx, &req)
	handler.PostProcess(ctx, c, &req, resp, err)
}

// RecomputePositions .
// @router /api/v1/results/positions [POST]
func RecomputePositions(ctx context.Context, c *app.RequestContext) {
	var req hall.RecomputePositionsReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.PublicationService.RecomputePositions(ctx, &req)
	handler.PostProcess(ctx, c, &req, resp, err)
}
