package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/izzydoesit/gemini-api/models"
	"github.com/izzydoesit/gemini-api/repository"
)

// JournalSink persists admitted orders as they come off the dispatcher
// queue. A write failure is logged and the order is dropped from the journal
// only; the caller already holds its acceptance.
type JournalSink struct {
	Repo   *repository.OrderRepository
	Logger *zap.Logger
}

func NewJournalSink(repo *repository.OrderRepository, logger *zap.Logger) *JournalSink {
	return &JournalSink{Repo: repo, Logger: logger}
}

func (s *JournalSink) Submit(order *models.AcceptedOrder) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Repo.SaveAccepted(ctx, order); err != nil {
		s.Logger.Error("failed to journal accepted order",
			zap.Int64("order_id", order.OrderID),
			zap.Error(err),
		)
	}
}
