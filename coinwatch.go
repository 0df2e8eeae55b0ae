package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/proc"
	"github.com/zeromicro/go-zero/rest"

	"coinwatch-api/internal/cli"
	"coinwatch-api/internal/config"
	"coinwatch-api/internal/handler"
	"coinwatch-api/internal/svc"
)

var configFile = flag.String("f", "etc/coinwatch.yaml", "the config file")

func main() {
	flag.Parse()

	cfg := config.MustLoad(*configFile)

	server := rest.MustNewServer(cfg.RestConf)
	defer server.Stop()

	cli.LogConfigSummary(cfg)

	svcCtx := svc.NewServiceContext(*cfg)
	handler.RegisterHandlers(server, svcCtx)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	proc.AddShutdownListener(func() {
		logx.Info("shutdown: stopping schedulers")
		cancel()
	})

	svcCtx.WarmUp(ctx)
	svcCtx.Scheduler.Start(ctx)
	defer svcCtx.Scheduler.Stop()

	fmt.Printf("Starting server at %s:%d...\n", cfg.Host, cfg.Port)
	server.Start()
}
