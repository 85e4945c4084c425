package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contesthub/contest-api/internal/domain"
)

func scored(id, contestantID uint, created time.Time, scores ...float64) domain.Entry {
	e := domain.Entry{ID: id, ContestantID: contestantID, CreatedAt: created}
	for _, s := range scores {
		e.Ratings = append(e.Ratings, domain.Rating{Design: s, Functionality: s, Usability: s, MarketPotential: s})
	}
	return e
}

func rankedContest(version int) domain.Contest {
	t0 := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	return domain.Contest{
		ID:          1,
		ShortID:     "c1",
		RankVersion: version,
		Contestants: []domain.Participation{
			{ID: 1, UserID: 10, Role: domain.RoleContestant, IsActive: true},
			{ID: 2, UserID: 20, Role: domain.RoleContestant, IsActive: true},
			{ID: 3, UserID: 30, Role: domain.RoleContestant, IsActive: true},
		},
		Entries: []domain.Entry{
			scored(100, 10, t0, 5),
			scored(200, 20, t0, 9),
		},
	}
}

func TestLeaderboardService_Recompute(t *testing.T) {
	ctx := context.Background()

	t.Run("persists changed ranks under the read version", func(t *testing.T) {
		var (
			gotVersion int
			gotChanges []domain.RankChange
		)
		observer := &FakeObserver{}
		repo := &FakeContestRepo{
			FindAggregateFunc: func(context.Context, uint) (domain.Contest, error) { return rankedContest(4), nil },
			SaveRanksFunc: func(_ context.Context, _ uint, version int, changes []domain.RankChange) error {
				gotVersion = version
				gotChanges = changes
				return nil
			},
		}

		changes, err := NewLeaderboardService(repo, 3, observer).Recompute(ctx, 1)
		require.NoError(t, err)

		assert.Equal(t, 4, gotVersion)
		assert.Equal(t, gotChanges, changes)
		assert.Equal(t, []domain.RankChange{
			{ParticipationID: 1, UserID: 10, PreviousRank: 0, CurrentRank: 2},
			{ParticipationID: 2, UserID: 20, PreviousRank: 0, CurrentRank: 1},
		}, changes)
		require.Len(t, observer.Calls, 1)
		assert.Equal(t, observedRecompute{Changed: 2}, observer.Calls[0])
	})

	t.Run("nothing to write", func(t *testing.T) {
		repo := &FakeContestRepo{
			FindAggregateFunc: func(context.Context, uint) (domain.Contest, error) {
				c := rankedContest(0)
				c.Contestants[0].CurrentRank = 2
				c.Contestants[1].CurrentRank = 1
				return c, nil
			},
		}

		changes, err := NewLeaderboardService(repo, 3, nil).Recompute(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, changes)
		assert.NotContains(t, repo.Trace(), "SaveRanks")
	})

	t.Run("conflict re-reads and retries", func(t *testing.T) {
		version := 0
		saves := 0
		observer := &FakeObserver{}
		repo := &FakeContestRepo{
			FindAggregateFunc: func(context.Context, uint) (domain.Contest, error) { return rankedContest(version), nil },
			SaveRanksFunc: func(_ context.Context, _ uint, v int, _ []domain.RankChange) error {
				saves++
				if saves == 1 {
					version++
					return ErrRankConflict
				}
				assert.Equal(t, 1, v)
				return nil
			},
		}

		_, err := NewLeaderboardService(repo, 3, observer).Recompute(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"FindAggregate", "SaveRanks", "FindAggregate", "SaveRanks"}, repo.Trace())
		assert.Equal(t, 1, observer.Calls[0].Conflicts)
	})

	t.Run("gives up after the configured attempts", func(t *testing.T) {
		observer := &FakeObserver{}
		repo := &FakeContestRepo{
			FindAggregateFunc: func(context.Context, uint) (domain.Contest, error) { return rankedContest(0), nil },
			SaveRanksFunc: func(context.Context, uint, int, []domain.RankChange) error {
				return ErrRankConflict
			},
		}

		_, err := NewLeaderboardService(repo, 2, observer).Recompute(ctx, 1)
		assert.ErrorIs(t, err, ErrRankConflict)
		assert.Len(t, repo.Trace(), 4)
		require.Len(t, observer.Calls, 1)
		assert.ErrorIs(t, observer.Calls[0].Err, ErrRankConflict)
	})

	t.Run("storage failure is not retried", func(t *testing.T) {
		boom := errors.New("boom")
		repo := &FakeContestRepo{
			FindAggregateFunc: func(context.Context, uint) (domain.Contest, error) { return rankedContest(0), nil },
			SaveRanksFunc:     func(context.Context, uint, int, []domain.RankChange) error { return boom },
		}

		_, err := NewLeaderboardService(repo, 3, nil).Recompute(ctx, 1)
		assert.ErrorIs(t, err, boom)
		assert.Len(t, repo.Trace(), 2)
	})

	t.Run("unknown contest", func(t *testing.T) {
		repo := &FakeContestRepo{
			FindAggregateFunc: func(context.Context, uint) (domain.Contest, error) { return domain.Contest{}, ErrContestNotFound },
		}

		_, err := NewLeaderboardService(repo, 3, nil).Recompute(ctx, 1)
		assert.ErrorIs(t, err, ErrContestNotFound)
	})
}

func TestLeaderboardService_Leaderboard(t *testing.T) {
	repo := &FakeContestRepo{
		FindAggregateByShortIDFunc: func(context.Context, string) (domain.Contest, error) {
			c := rankedContest(0)
			c.Contestants[0].CurrentRank = 2
			c.Contestants[1].CurrentRank = 1
			return c, nil
		},
	}

	contest, rows, err := NewLeaderboardService(repo, 3, nil).Leaderboard(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", contest.ShortID)

	require.Len(t, rows, 3)
	assert.Equal(t, uint(20), rows[0].UserID)
	assert.Equal(t, 9.0, rows[0].Rating.Average)
	assert.Equal(t, uint(10), rows[1].UserID)
	assert.Equal(t, uint(30), rows[2].UserID)
	assert.Zero(t, rows[2].CurrentRank)
	assert.Zero(t, rows[2].EntryID)
}
