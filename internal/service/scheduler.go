package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"aimrealty.com/estateapi/internal/repository"
)

// Scheduler runs the periodic maintenance jobs: user-account expiry and
// activation of currency rates whose effective date has arrived.
type Scheduler struct {
	cron         *cron.Cron
	userRepo     repository.UserRepository
	currencyRepo repository.CurrencyRepository
	logger       *zap.SugaredLogger
}

func NewScheduler(userRepo repository.UserRepository, currencyRepo repository.CurrencyRepository, logger *zap.SugaredLogger) *Scheduler {
	return &Scheduler{
		cron:         cron.New(),
		userRepo:     userRepo,
		currencyRepo: currencyRepo,
		logger:       logger,
	}
}

func (s *Scheduler) Start() {
	if _, err := s.cron.AddFunc("@hourly", s.expireUsers); err != nil {
		s.logger.Errorw("failed to schedule user expiry job", "error", err)
	}

	if _, err := s.cron.AddFunc("*/15 * * * *", s.activateCurrencyRates); err != nil {
		s.logger.Errorw("failed to schedule currency activation job", "error", err)
	}

	s.cron.Start()
	s.logger.Infow("scheduler started")
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Infow("scheduler stopped")
}

func (s *Scheduler) expireUsers() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.userRepo.MarkExpired(ctx, time.Now())
	if err != nil {
		s.logger.Errorw("user expiry job failed", "error", err)
		return
	}
	if n > 0 {
		s.logger.Infow("expired user accounts", "count", n)
	}
}

func (s *Scheduler) activateCurrencyRates() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.currencyRepo.ActivateDue(ctx, time.Now())
	if err != nil {
		s.logger.Errorw("currency activation job failed", "error", err)
		return
	}
	if n > 0 {
		s.logger.Infow("activated currency rates", "count", n)
	}
}
