package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"photoshare/api/internal/cache"
)

// RefreshTokenJanitor clears stored refresh token hashes older than the
// given number of hours.
type RefreshTokenJanitor interface {
	ClearExpiredRefreshTokens(ctx context.Context, olderThanHours int) (int64, error)
}

type Scheduler struct {
	cron       *cron.Cron
	users      RefreshTokenJanitor
	userCache  *cache.UserCache
	refreshTTL time.Duration
	log        zerolog.Logger
}

func NewScheduler(users RefreshTokenJanitor, userCache *cache.UserCache, refreshTTL time.Duration, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:       cron.New(cron.WithSeconds()),
		users:      users,
		userCache:  userCache,
		refreshTTL: refreshTTL,
		log:        log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 0 0 * * *", s.sweepRefreshTokens); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("0 0 */1 * * *", s.reportCacheStats); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() context.CancelFunc {
	_, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	go func() {
		s.cron.Stop()
		cancel()
	}()
	return cancel
}

func (s *Scheduler) sweepRefreshTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	hours := int(s.refreshTTL / time.Hour)
	if hours < 1 {
		hours = 1
	}
	cleared, err := s.users.ClearExpiredRefreshTokens(ctx, hours)
	if err != nil {
		s.log.Error().Err(err).Msg("refresh token sweep failed")
		return
	}
	s.log.Info().Int64("cleared", cleared).Msg("refresh token sweep done")
}

func (s *Scheduler) reportCacheStats() {
	hits, misses := s.userCache.Stats()
	s.log.Info().Int64("hits", hits).Int64("misses", misses).Msg("user cache stats")
}
