package postgres

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/sirupsen/logrus"
)

// PingFunc checks database availability once.
type PingFunc func(ctx context.Context) error

// WaitForDB calls ping every interval until it succeeds. A positive timeout
// bounds the total wait; otherwise it waits until ctx is cancelled.
func WaitForDB(ctx context.Context, ping PingFunc, interval, timeout time.Duration, logger *logrus.Logger) error {
	if interval <= 0 {
		interval = time.Second
	}
	backoff := retry.NewConstant(interval)
	if timeout > 0 {
		backoff = retry.WithMaxDuration(timeout, backoff)
	}

	logger.Info("waiting for database...")
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		pctx, cancel := context.WithTimeout(ctx, interval)
		defer cancel()
		if err := ping(pctx); err != nil {
			logger.WithError(err).Infof("database unavailable, waiting %s", interval)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	logger.Info("database available")
	return nil
}
