package main

import (
	"GoEngage/common/model/database"
	"GoEngage/services/engagement/internal/config"
	"GoEngage/services/engagement/internal/handler"
	"GoEngage/services/engagement/internal/metrics"
	"GoEngage/services/engagement/internal/svc"
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/rest"
)

var (
	configFile = flag.String("f", "etc/engagement.yaml", "the config file")
	envFile    = flag.String("env", ".env", "the env file")
	migrate    = flag.Bool("migrate", false, "create or update tables before serving")
)

func main() {
	flag.Parse()

	// .env不存在时直接使用进程环境变量
	_ = godotenv.Load(*envFile)

	var c config.Config
	conf.MustLoad(*configFile, &c, conf.UseEnv())

	server := rest.MustNewServer(c.RestConf)
	defer server.Stop()

	svcCtx := svc.NewServiceContext(c)
	defer func() {
		if err := svcCtx.Close(); err != nil {
			svcCtx.Logger.Error("close service context", "err", err.Error())
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *migrate {
		if err := svcCtx.Store.Migrate(ctx); err != nil {
			panic(err.Error())
		}
		svcCtx.Logger.Info("tables migrated")
	}

	if c.Metrics.Addr != "" {
		metricsServer, err := metrics.NewHTTPServer(c.Metrics.Addr, svcCtx.Logger, svcCtx.Health)
		if err != nil {
			panic(err.Error())
		}
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer shutdownCancel()
			_ = metricsServer.Shutdown(shutdownCtx)
		}()
		collector := &metrics.Collector{
			DB:       svcCtx.DB,
			Tables:   database.Tables(),
			Interval: time.Duration(c.Metrics.CollectInterval) * time.Second,
			Logger:   svcCtx.Logger,
		}
		go collector.Run(ctx)
	}

	handler.RegisterHandlers(server, svcCtx)

	fmt.Printf("Starting server at %s:%d...\n", c.Host, c.Port)
	server.Start()
}
