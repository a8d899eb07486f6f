package main

import (
	"context"

	"exam-hall/biz/adaptor"
	"exam-hall/biz/infrastructure/config"
	"exam-hall/provider"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	prometheus "github.com/hertz-contrib/monitor-prometheus"
)

func Init() {
	provider.Init()
}

func main() {
	Init()
	c := config.GetConfig()

	h := server.Default(
		server.WithHostPorts(c.ListenOn),
		server.WithTracer(prometheus.NewServerTracer(c.Metrics.ListenOn, c.Metrics.Path)),
	)

	h.Use(func(ctx context.Context, rc *app.RequestContext) {
		ctx = adaptor.InjectContext(ctx, rc)
		rc.Next(ctx)
	})

	customizedRegister(h)
	h.Spin()
}
