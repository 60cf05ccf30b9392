package main

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/fortuneworks/fortune/internal/frontend"
	"github.com/fortuneworks/fortune/pkg/config"
)

func main() {
	cfg, err := config.LoadFrontend()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	backend := frontend.NewBackendClient(cfg.BackendDNS, cfg.BackendPort, cfg.RequestTimeout)
	srv := frontend.NewServer(cfg, backend)

	g := new(errgroup.Group)
	g.Go(srv.Start)
	if err := g.Wait(); err != nil {
		logrus.WithError(err).Fatal("frontend server exited with error")
	}
}
