package controller

import (
	"context"

	"exam-hall/biz/infrastructure/util"
	"exam-hall/biz/infrastructure/util/log"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"google.golang.org/grpc/status"
)

func Ping(ctx context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, map[string]string{"ping": "pong"})
}

// PostProcess renders a service result: the response straight through on
// success, the error's code and message otherwise.
func PostProcess(ctx context.Context, c *app.RequestContext, req, resp any, err error) {
	log.CtxInfo(ctx, "req=%s, resp=%s, err=%v", util.JSONF(req), util.JSONF(resp), err)
	if err == nil {
		c.JSON(consts.StatusOK, resp)
		return
	}
	s, ok := status.FromError(err)
	if !ok {
		c.JSON(consts.StatusInternalServerError, map[string]any{
			"code": consts.StatusInternalServerError,
			"msg":  err.Error(),
		})
		return
	}
	c.JSON(consts.StatusOK, map[string]any{
		"code": uint32(s.Code()),
		"msg":  s.Message(),
	})
}
