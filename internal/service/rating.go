package service

import (
	"context"
	"fmt"

	"github.com/contesthub/contest-api/internal/domain"
)

type RatingRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Entry, error)
	AddRating(ctx context.Context, rating domain.Rating, contestantID uint) (domain.Rating, error)
	FindRating(ctx context.Context, entryID, ratingID uint) (domain.Rating, error)
	FindRatings(ctx context.Context, entryID uint) ([]domain.Rating, error)
	UpdateRating(ctx context.Context, rating domain.Rating) (domain.Rating, error)
	RemoveRating(ctx context.Context, entryID, ratingID uint) error
}

type RatingService struct {
	repo     RatingRepository
	contests ContestFinder
}

func NewRatingService(repo RatingRepository, contests ContestFinder) *RatingService {
	return &RatingService{
		repo:     repo,
		contests: contests,
	}
}

// AddRating records an active judge's scores on a live entry. A judge rates an entry once.
func (s *RatingService) AddRating(ctx context.Context, entryID, judgeID uint, r domain.Rating) (domain.Rating, []domain.Effect, error) {
	entry, err := s.repo.FindByID(ctx, entryID)
	if err != nil {
		return domain.Rating{}, nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if entry.IsDraft {
		return domain.Rating{}, nil, ErrEntryNotFound
	}

	contest, err := s.contests.FindByID(ctx, entry.ContestID)
	if err != nil {
		return domain.Rating{}, nil, fmt.Errorf("s.contests.FindByID -> %w", err)
	}
	if !contest.IsActiveJudge(judgeID) {
		return domain.Rating{}, nil, ErrNotJudge
	}
	if _, ok := entry.RatingBy(judgeID); ok {
		return domain.Rating{}, nil, ErrAlreadyRated
	}

	r.ID = 0
	r.EntryID = entryID
	r.JudgeID = judgeID
	created, err := s.repo.AddRating(ctx, r, entry.ContestantID)
	if err != nil {
		return domain.Rating{}, nil, fmt.Errorf("s.repo.AddRating -> %w", err)
	}

	return created, []domain.Effect{ratingAdded(entry)}, nil
}

// UpdateRating changes a judge's own rating.
func (s *RatingService) UpdateRating(ctx context.Context, entryID, ratingID, judgeID uint, update domain.RatingUpdate) (domain.Rating, []domain.Effect, error) {
	rating, err := s.repo.FindRating(ctx, entryID, ratingID)
	if err != nil {
		return domain.Rating{}, nil, fmt.Errorf("s.repo.FindRating -> %w", err)
	}
	if rating.JudgeID != judgeID {
		return domain.Rating{}, nil, ErrRatingNotFound
	}

	entry, err := s.repo.FindByID(ctx, entryID)
	if err != nil {
		return domain.Rating{}, nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	updated, err := s.repo.UpdateRating(ctx, update.Apply(rating))
	if err != nil {
		return domain.Rating{}, nil, fmt.Errorf("s.repo.UpdateRating -> %w", err)
	}

	return updated, []domain.Effect{ratingAdded(entry)}, nil
}

// EntryRatings lists the ratings left by judges who are still active on the contest.
func (s *RatingService) EntryRatings(ctx context.Context, entryID uint) ([]domain.Rating, error) {
	entry, err := s.repo.FindByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	contest, err := s.contests.FindByID(ctx, entry.ContestID)
	if err != nil {
		return nil, fmt.Errorf("s.contests.FindByID -> %w", err)
	}

	ratings, err := s.repo.FindRatings(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindRatings -> %w", err)
	}

	active := contest.ActiveJudgeIDs()
	out := make([]domain.Rating, 0, len(ratings))
	for _, r := range ratings {
		if active[r.JudgeID] {
			out = append(out, r)
		}
	}

	return out, nil
}

func (s *RatingService) RemoveRating(ctx context.Context, entryID, ratingID uint) ([]domain.Effect, error) {
	entry, err := s.repo.FindByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err = s.repo.RemoveRating(ctx, entryID, ratingID); err != nil {
		return nil, fmt.Errorf("s.repo.RemoveRating -> %w", err)
	}

	return []domain.Effect{{Kind: domain.EffectLeaderboardStale, ContestID: entry.ContestID}}, nil
}

func ratingAdded(e domain.Entry) domain.Effect {
	return domain.Effect{
		Kind:      domain.EffectRatingAdded,
		ContestID: e.ContestID,
		UserID:    e.ContestantID,
		EntryID:   e.ID,
	}
}
