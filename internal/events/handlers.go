package events

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"

	"github.com/contesthub/contest-api/internal/domain"
)

type Recomputer interface {
	Recompute(ctx context.Context, contestID uint) ([]domain.RankChange, error)
}

type Notifier interface {
	NotifyJudges(ctx context.Context, e domain.Effect) error
	NotifyAdmins(ctx context.Context, e domain.Effect) error
	NotifyApproval(ctx context.Context, e domain.Effect) error
	RecordActivity(ctx context.Context, e domain.Effect) error
}

// Handlers performs the side effects published on the bus.
type Handlers struct {
	ranker   Recomputer
	notifier Notifier
}

func NewHandlers(ranker Recomputer, notifier Notifier) *Handlers {
	return &Handlers{
		ranker:   ranker,
		notifier: notifier,
	}
}

func (h *Handlers) HandleRecompute(msg *message.Message) error {
	e, err := decodeEffect(msg)
	if err != nil {
		return fmt.Errorf("decodeEffect -> %w", err)
	}

	changes, err := h.ranker.Recompute(msg.Context(), e.ContestID)
	if err != nil {
		return fmt.Errorf("h.ranker.Recompute -> %w", err)
	}

	zap.L().Debug("leaderboard recomputed",
		zap.Uint("contest_id", e.ContestID),
		zap.String("trigger", string(e.Kind)),
		zap.Int("changes", len(changes)),
	)

	return nil
}

// HandleEntrySubmitted ranks the contest and then tells the judges about the new entry.
// A failed recomputation does not hold back the notification.
func (h *Handlers) HandleEntrySubmitted(msg *message.Message) error {
	e, err := decodeEffect(msg)
	if err != nil {
		return fmt.Errorf("decodeEffect -> %w", err)
	}

	if _, err = h.ranker.Recompute(msg.Context(), e.ContestID); err != nil {
		zap.L().Error("failed to recompute leaderboard", zap.Uint("contest_id", e.ContestID), zap.Error(err))
	}

	if err = h.notifier.NotifyJudges(msg.Context(), e); err != nil {
		return fmt.Errorf("h.notifier.NotifyJudges -> %w", err)
	}

	return nil
}

func (h *Handlers) HandleApplied(msg *message.Message) error {
	e, err := decodeEffect(msg)
	if err != nil {
		return fmt.Errorf("decodeEffect -> %w", err)
	}

	if err = h.notifier.NotifyAdmins(msg.Context(), e); err != nil {
		return fmt.Errorf("h.notifier.NotifyAdmins -> %w", err)
	}

	return nil
}

func (h *Handlers) HandleApproved(msg *message.Message) error {
	e, err := decodeEffect(msg)
	if err != nil {
		return fmt.Errorf("decodeEffect -> %w", err)
	}

	if err = h.notifier.NotifyApproval(msg.Context(), e); err != nil {
		return fmt.Errorf("h.notifier.NotifyApproval -> %w", err)
	}

	return nil
}

func (h *Handlers) HandleActivity(msg *message.Message) error {
	e, err := decodeEffect(msg)
	if err != nil {
		return fmt.Errorf("decodeEffect -> %w", err)
	}

	if err = h.notifier.RecordActivity(msg.Context(), e); err != nil {
		return fmt.Errorf("h.notifier.RecordActivity -> %w", err)
	}

	return nil
}
