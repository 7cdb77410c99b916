package ledger

import (
	"context"
	"errors"
	"time"
)

// interval마다 배치가 있으면 Send를 시도한다. 포그라운드 전송 중이면 그 틱은 건너뛴다.
func (s *Service) AutoSync(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.WithField("interval", interval.String()).Info("AutoSync(): started")
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("AutoSync(): stopped")
			return
		case <-ticker.C:
			s.autoSyncOnce(ctx)
		}
	}
}

func (s *Service) autoSyncOnce(ctx context.Context) {
	result, err := s.Send(ctx)
	var cfgErr *ConfigError
	switch {
	case err == nil:
		s.logger.WithField("filename", result.Filename).Info("AutoSync(): batch sent")
	case errors.Is(err, ErrEmptyBatch), errors.Is(err, ErrSyncInProgress), errors.As(err, &cfgErr):
		s.logger.WithError(err).Debug("AutoSync(): nothing to do")
	default:
		s.logger.WithError(err).Warn("AutoSync(): send failed, batch kept")
	}
}
