package jobs

import (
	"github.com/Mart1n-S/WatchListy-sub000/internal/repositories"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs the periodic token/unverified-account reaper. Everything
// else in the service is request-triggered; this is the only background task.
type Scheduler struct {
	cron       *cron.Cron
	userRepo   *repositories.UserRepository
	tokenRepo  *repositories.TokenRepository
	logger     *zap.Logger
	instanceID string
}

func NewScheduler(userRepo *repositories.UserRepository, tokenRepo *repositories.TokenRepository, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		logger:     logger,
		instanceID: uuid.New().String()[:8], // Short instance ID for logging
	}
}

// Start schedules the hourly reap. Safe to call once per process.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("@hourly", s.reap); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("cleanup scheduler started", zap.String("instance", s.instanceID))
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) reap() {
	tokens, users, err := repositories.ReapExpired(s.userRepo, s.tokenRepo)
	if err != nil {
		s.logger.Error("cleanup run failed", zap.String("instance", s.instanceID), zap.Error(err))
		return
	}
	if tokens > 0 || users > 0 {
		s.logger.Info("cleanup run finished",
			zap.String("instance", s.instanceID),
			zap.Int64("expiredTokens", tokens),
			zap.Int64("reapedUsers", users),
		)
	}
}
