package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/contesthub/contest-api/internal/domain"
)

const defaultRecomputeAttempts = 3

type LeaderboardRepository interface {
	FindAggregate(ctx context.Context, id uint) (domain.Contest, error)
	FindAggregateByShortID(ctx context.Context, shortID string) (domain.Contest, error)
	SaveRanks(ctx context.Context, contestID uint, version int, changes []domain.RankChange) error
}

// RecomputeObserver receives the outcome of every ranking recomputation.
type RecomputeObserver interface {
	ObserveRecompute(changed, conflicts int, elapsed time.Duration, err error)
}

type LeaderboardService struct {
	repo     LeaderboardRepository
	attempts int
	observer RecomputeObserver
	tracer   trace.Tracer
}

func NewLeaderboardService(repo LeaderboardRepository, attempts int, observer RecomputeObserver) *LeaderboardService {
	if attempts <= 0 {
		attempts = defaultRecomputeAttempts
	}

	return &LeaderboardService{
		repo:     repo,
		attempts: attempts,
		observer: observer,
		tracer:   otel.Tracer("github.com/contesthub/contest-api/internal/service"),
	}
}

// Recompute ranks the contestants of a contest and persists the changed ranks.
// A concurrent recomputation that commits first forces a fresh read and rank.
func (s *LeaderboardService) Recompute(ctx context.Context, contestID uint) (changes []domain.RankChange, err error) {
	ctx, span := s.tracer.Start(ctx, "LeaderboardService.Recompute",
		trace.WithAttributes(attribute.Int64("contest.id", int64(contestID))))
	start := time.Now()
	conflicts := 0
	defer func() {
		span.SetAttributes(attribute.Int("rank.changes", len(changes)), attribute.Int("rank.conflicts", conflicts))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		if s.observer != nil {
			s.observer.ObserveRecompute(len(changes), conflicts, time.Since(start), err)
		}
	}()

	for attempt := 0; attempt < s.attempts; attempt++ {
		contest, err := s.repo.FindAggregate(ctx, contestID)
		if err != nil {
			return nil, fmt.Errorf("s.repo.FindAggregate -> %w", err)
		}

		changes = domain.Rank(contest.Contestants, contest.Entries)
		if len(changes) == 0 {
			return nil, nil
		}

		err = s.repo.SaveRanks(ctx, contest.ID, contest.RankVersion, changes)
		if err == nil {
			return changes, nil
		}
		if !errors.Is(err, ErrRankConflict) {
			return nil, fmt.Errorf("s.repo.SaveRanks -> %w", err)
		}
		conflicts++
	}

	return nil, fmt.Errorf("s.repo.SaveRanks -> %d attempts -> %w", s.attempts, ErrRankConflict)
}

// Leaderboard returns the contest and its contestants in presentation order.
func (s *LeaderboardService) Leaderboard(ctx context.Context, shortID string) (domain.Contest, []domain.LeaderboardRow, error) {
	contest, err := s.repo.FindAggregateByShortID(ctx, shortID)
	if err != nil {
		return domain.Contest{}, nil, fmt.Errorf("s.repo.FindAggregateByShortID -> %w", err)
	}

	return contest, domain.BuildLeaderboard(contest), nil
}
