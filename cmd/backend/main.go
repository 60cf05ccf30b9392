package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/fortuneworks/fortune/internal/httpapi/server"
	"github.com/fortuneworks/fortune/pkg/cache"
	"github.com/fortuneworks/fortune/pkg/cache/redis"
	"github.com/fortuneworks/fortune/pkg/config"
	"github.com/fortuneworks/fortune/pkg/service"
	"github.com/fortuneworks/fortune/pkg/store"
)

func main() {
	cfg, err := config.LoadBackend()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	st := store.NewSeeded()

	// The cache handle is established once; on failure the process runs
	// without a cache until restart.
	var cacheClient cache.Cache
	if cfg.RedisAddr == "" {
		logrus.Info("redis config not set, running without cache")
	} else {
		client, err := redis.Connect(context.Background(), redis.Config{
			Addr:           cfg.RedisAddr,
			ConnectRetries: cfg.RedisConnectRetries,
			RetryDelay:     cfg.RedisRetryDelay,
			CallTimeout:    cfg.RedisCallTimeout,
		})
		if err != nil {
			logrus.WithError(err).Error("running without cache")
		} else {
			cacheClient = client
		}
	}

	svc := service.New(st, cacheClient)
	svc.LoadFromCache(context.Background())

	srv := server.NewAPIServer(cfg, svc)

	g := new(errgroup.Group)
	g.Go(srv.Start)
	if err := g.Wait(); err != nil {
		logrus.WithError(err).Fatal("backend server exited with error")
	}
}
