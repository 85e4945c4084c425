package events

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/contesthub/contest-api/internal/domain"
)

const (
	TestEnvironmentFlag  = "APP_ENV"
	TestEnvironmentValue = "test"
)

type Config struct {
	BufferSize int64
	Retries    int
	// Registry receives the router metrics. Nil disables them.
	Registry *prometheus.Registry
}

// Bus is the in-process event bus: a go channel pub/sub consumed by a watermill router.
type Bus struct {
	*Dispatcher

	Router *message.Router
	pubSub *gochannel.GoChannel
}

func NewBus(conf Config, handlers *Handlers, logger watermill.LoggerAdapter) (*Bus, error) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: conf.BufferSize,
	}, logger)

	router, err := message.NewRouter(message.RouterConfig{}, logger)
	if err != nil {
		return nil, fmt.Errorf("message.NewRouter -> %w", err)
	}

	if conf.Registry != nil && os.Getenv(TestEnvironmentFlag) != TestEnvironmentValue {
		builder := metrics.NewPrometheusMetricsBuilder(conf.Registry, "contest", "events")
		builder.AddPrometheusRouterMetrics(router)
	}

	retries := conf.Retries
	if retries < 0 {
		retries = 0
	}

	router.AddMiddleware(
		middleware.CorrelationID,
		logAndAck,
		middleware.Recoverer,
		traceHandler(otel.Tracer("github.com/contesthub/contest-api/internal/events")),
		middleware.Retry{
			MaxRetries:      retries,
			InitialInterval: 50 * time.Millisecond,
			MaxInterval:     time.Second,
			Multiplier:      2,
			Logger:          logger,
		}.Middleware,
	)

	subscribe := func(name string, kind domain.EffectKind, h message.NoPublishHandlerFunc) {
		router.AddNoPublisherHandler(name, Topic(kind), pubSub, h)
	}
	subscribe("leaderboard.on_entry_submitted", domain.EffectEntrySubmitted, handlers.HandleEntrySubmitted)
	subscribe("leaderboard.on_rating_added", domain.EffectRatingAdded, handlers.HandleRecompute)
	subscribe("leaderboard.on_stale", domain.EffectLeaderboardStale, handlers.HandleRecompute)
	subscribe("notify.on_contestant_applied", domain.EffectContestantApplied, handlers.HandleApplied)
	subscribe("notify.on_judge_applied", domain.EffectJudgeApplied, handlers.HandleApplied)
	subscribe("notify.on_contestant_approved", domain.EffectContestantApproved, handlers.HandleApproved)
	subscribe("notify.on_judge_approved", domain.EffectJudgeApproved, handlers.HandleApproved)
	subscribe("activity.on_recorded", domain.EffectActivityRecorded, handlers.HandleActivity)
	subscribe("activity.on_contest_liked", domain.EffectContestLiked, handlers.HandleActivity)

	return &Bus{
		Dispatcher: NewDispatcher(pubSub),
		Router:     router,
		pubSub:     pubSub,
	}, nil
}

// Run blocks until ctx is cancelled or the bus is closed.
func (b *Bus) Run(ctx context.Context) error {
	return b.Router.Run(ctx)
}

// Running is closed once every handler is subscribed.
func (b *Bus) Running() chan struct{} {
	return b.Router.Running()
}

func (b *Bus) Close() error {
	return errors.Join(b.Router.Close(), b.pubSub.Close())
}

// logAndAck keeps failed side effects from being redelivered forever. The mutation
// that produced them is already committed.
func logAndAck(h message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		out, err := h(msg)
		if err != nil {
			zap.L().Error("side effect failed",
				zap.String("handler", message.HandlerNameFromCtx(msg.Context())),
				zap.String("message_uuid", msg.UUID),
				zap.String("correlation_id", middleware.MessageCorrelationID(msg)),
				zap.Error(err),
			)
			return nil, nil
		}

		return out, nil
	}
}

func traceHandler(tracer trace.Tracer) message.HandlerMiddleware {
	return func(h message.HandlerFunc) message.HandlerFunc {
		return func(msg *message.Message) ([]*message.Message, error) {
			ctx, span := tracer.Start(msg.Context(), message.HandlerNameFromCtx(msg.Context()),
				trace.WithAttributes(
					attribute.String("message.uuid", msg.UUID),
					attribute.String("message.correlation_id", middleware.MessageCorrelationID(msg)),
				))
			defer span.End()
			msg.SetContext(ctx)

			out, err := h(msg)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}

			return out, err
		}
	}
}
