package main

import (
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/kuhnlab/kuhnbot/cmd/kuhnbot/shared"
	"github.com/kuhnlab/kuhnbot/internal/server"
)

type ServeCmd struct {
	Config string `kong:"default='kuhnbot.hcl',help='Path to HCL config file'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *ServeCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if !c.Debug && cfg.Server.LogLevel == "debug" {
		logger.SetLevel(log.DebugLevel)
	}

	ctx := shared.SetupSignalHandler(logger)
	srv := server.New(cfg, quartz.NewReal(), logger)
	return srv.Run(ctx)
}
