package events

import (
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/contesthub/contest-api/internal/domain"
)

// Topic is the bus topic an effect kind is published on.
func Topic(kind domain.EffectKind) string {
	return string(kind)
}

// Topics lists every topic the router subscribes to.
func Topics() []string {
	return []string{
		Topic(domain.EffectEntrySubmitted),
		Topic(domain.EffectRatingAdded),
		Topic(domain.EffectLeaderboardStale),
		Topic(domain.EffectContestantApplied),
		Topic(domain.EffectJudgeApplied),
		Topic(domain.EffectContestantApproved),
		Topic(domain.EffectJudgeApproved),
		Topic(domain.EffectActivityRecorded),
		Topic(domain.EffectContestLiked),
	}
}

// Dispatcher publishes the effects of committed mutations. Publishing never fails
// the caller: a lost effect is logged and dropped.
type Dispatcher struct {
	publisher message.Publisher
}

func NewDispatcher(publisher message.Publisher) *Dispatcher {
	return &Dispatcher{
		publisher: publisher,
	}
}

func (d *Dispatcher) Dispatch(correlationID string, effects []domain.Effect) {
	for _, e := range effects {
		payload, err := json.Marshal(e)
		if err != nil {
			zap.L().Error("failed to encode effect", zap.String("kind", string(e.Kind)), zap.Error(err))
			continue
		}

		msg := message.NewMessage(uuid.NewString(), payload)
		if correlationID != "" {
			middleware.SetCorrelationID(correlationID, msg)
		}

		if err = d.publisher.Publish(Topic(e.Kind), msg); err != nil {
			zap.L().Error("failed to publish effect",
				zap.String("kind", string(e.Kind)),
				zap.Uint("contest_id", e.ContestID),
				zap.Error(err),
			)
		}
	}
}

func decodeEffect(msg *message.Message) (domain.Effect, error) {
	var e domain.Effect
	if err := json.Unmarshal(msg.Payload, &e); err != nil {
		return domain.Effect{}, err
	}

	return e, nil
}
