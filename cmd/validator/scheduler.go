package main

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/validator"
)

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	logger *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Errorw(msg, append(keysAndValues, "error", err)...)
}

// newScheduler runs one scoring round per tick. A tick that fires while the
// previous round is still running is skipped so rounds never overlap.
func newScheduler(ctx context.Context, v *validator.Validator, spec string, timeout time.Duration, logger *zap.Logger) (*cron.Cron, error) {
	cl := cronLogger{logger: logger.Named("cron").Sugar()}
	c := cron.New(cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)))

	_, err := c.AddFunc(spec, func() {
		rctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		if _, err := v.RunRound(rctx); err != nil {
			logger.Warn("scoring round failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}
