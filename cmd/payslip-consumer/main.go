// Command payslip-consumer journals payslip-issued events from RabbitMQ.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/iliyamo/eldercare-records/internal/config"
	"github.com/iliyamo/eldercare-records/internal/logger"
	"github.com/iliyamo/eldercare-records/internal/queue"
)

func main() {
	_ = config.LoadDotEnv()
	lc := config.LoadLogConfig()
	log, err := logger.New(lc.Level, lc.Format, "eldercare-payslip-consumer")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ec := config.LoadEventsConfig()
	c := &queue.Consumer{URL: ec.URL, Queue: ec.Queue, LogDir: ec.LogDir, Log: log}
	if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("consumer stopped", zap.Error(err))
		os.Exit(1)
	}
	log.Info("consumer exited")
}
