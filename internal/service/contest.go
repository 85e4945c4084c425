package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/contesthub/contest-api/internal/domain"
)

const shortIDAttempts = 3

type ContestRepository interface {
	Create(ctx context.Context, c domain.Contest) (domain.Contest, error)
	FindByID(ctx context.Context, id uint) (domain.Contest, error)
	FindByShortID(ctx context.Context, shortID string) (domain.Contest, error)
	FindAll(ctx context.Context, includeDrafts bool) ([]domain.Contest, error)
	Update(ctx context.Context, c domain.Contest) (domain.Contest, error)
	Delete(ctx context.Context, id uint) error
	IncrementViews(ctx context.Context, id uint) error
	SetLike(ctx context.Context, contestID, userID uint, liked bool) error
}

type ContestService struct {
	repo       ContestRepository
	newShortID func() string
	now        func() time.Time
}

func NewContestService(repo ContestRepository) *ContestService {
	return &ContestService{
		repo:       repo,
		newShortID: newShortID,
		now:        time.Now,
	}
}

func newShortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
}

// ListContests returns contests by descending start time, annotated with the viewer's application.
func (s *ContestService) ListContests(ctx context.Context, viewerID uint, includeDrafts bool) ([]domain.Contest, error) {
	contests, err := s.repo.FindAll(ctx, includeDrafts)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	for i := range contests {
		contests[i] = contests[i].WithApplicationFor(viewerID)
	}

	return contests, nil
}

func (s *ContestService) GetContest(ctx context.Context, id uint) (domain.Contest, error) {
	contest, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Contest{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return contest, nil
}

func (s *ContestService) GetContestByShortID(ctx context.Context, shortID string, viewerID uint) (domain.Contest, error) {
	contest, err := s.repo.FindByShortID(ctx, shortID)
	if err != nil {
		return domain.Contest{}, fmt.Errorf("s.repo.FindByShortID -> %w", err)
	}

	return contest.WithApplicationFor(viewerID), nil
}

// CreateContest fills in the default duration, start time and prizes and assigns a short id.
func (s *ContestService) CreateContest(ctx context.Context, c domain.Contest) (domain.Contest, error) {
	if c.DurationDays <= 0 {
		c.DurationDays = domain.DefaultDurationDays
	}
	if c.StartTime.IsZero() {
		c.StartTime = s.now()
	}
	if len(c.Prizes) == 0 {
		c.Prizes = domain.DefaultPrizes()
	}

	var lastErr error
	for i := 0; i < shortIDAttempts; i++ {
		c.ShortID = s.newShortID()

		created, err := s.repo.Create(ctx, c)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, ErrContestShortIDExists) {
			return domain.Contest{}, fmt.Errorf("s.repo.Create -> %w", err)
		}
		lastErr = err
	}

	return domain.Contest{}, fmt.Errorf("s.repo.Create -> %w", lastErr)
}

func (s *ContestService) UpdateContest(ctx context.Context, id uint, update domain.ContestUpdate) (domain.Contest, error) {
	contest, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Contest{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	updated, err := s.repo.Update(ctx, update.Apply(contest))
	if err != nil {
		return domain.Contest{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *ContestService) DeleteContest(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *ContestService) Like(ctx context.Context, contestID, userID uint, liked bool) (domain.Contest, []domain.Effect, error) {
	if err := s.repo.SetLike(ctx, contestID, userID, liked); err != nil {
		return domain.Contest{}, nil, fmt.Errorf("s.repo.SetLike -> %w", err)
	}

	contest, err := s.repo.FindByID(ctx, contestID)
	if err != nil {
		return domain.Contest{}, nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	var effects []domain.Effect
	if liked {
		effects = append(effects, domain.Effect{Kind: domain.EffectContestLiked, ContestID: contestID, UserID: userID})
	}

	return contest, effects, nil
}

func (s *ContestService) View(ctx context.Context, contestID uint) error {
	if err := s.repo.IncrementViews(ctx, contestID); err != nil {
		return fmt.Errorf("s.repo.IncrementViews -> %w", err)
	}

	return nil
}
