package source

import (
	"context"
	"log/slog"
	"time"
)

// KeepAlive pings p every interval until ctx is done. Failures are logged
// and otherwise ignored.
func KeepAlive(ctx context.Context, p Pinger, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, interval)
			err := p.Ping(pingCtx)
			cancel()
			if err != nil {
				logger.Warn("keep-alive ping failed", "error", err)
				continue
			}
			logger.Debug("keep-alive ping ok")
		}
	}
}
