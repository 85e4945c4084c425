package service

import (
	"context"
	"fmt"

	"github.com/contesthub/contest-api/internal/domain"
)

type ParticipationRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Contest, error)
	AddParticipation(ctx context.Context, p domain.Participation) (domain.Participation, error)
	FindParticipations(ctx context.Context, contestID uint, role domain.Role) ([]domain.Participation, error)
	FindParticipation(ctx context.Context, contestID, participationID uint, role domain.Role) (domain.Participation, error)
	SetParticipationActive(ctx context.Context, contestID, participationID uint, role domain.Role, active bool) error
	RemoveParticipation(ctx context.Context, contestID, participationID uint, role domain.Role) error
}

// ParticipationService manages contestant and judge rosters.
type ParticipationService struct {
	repo ParticipationRepository
}

func NewParticipationService(repo ParticipationRepository) *ParticipationService {
	return &ParticipationService{
		repo: repo,
	}
}

// Enroll registers a pending participation and returns the contest roster for that role.
// A user already participating in either role is rejected with ErrAlreadyEnrolled.
func (s *ParticipationService) Enroll(ctx context.Context, contestID, userID uint, role domain.Role) ([]domain.Participation, []domain.Effect, error) {
	_, err := s.repo.AddParticipation(ctx, domain.Participation{
		ContestID: contestID,
		UserID:    userID,
		Role:      role,
		IsActive:  false,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("s.repo.AddParticipation -> %w", err)
	}

	roster, err := s.repo.FindParticipations(ctx, contestID, role)
	if err != nil {
		return nil, nil, fmt.Errorf("s.repo.FindParticipations -> %w", err)
	}

	effects := []domain.Effect{
		domain.AppliedEffect(role, contestID, userID),
		domain.ActivityEffect(contestID, userID, fmt.Sprintf("applied as %s", role)),
	}

	return roster, effects, nil
}

// Approve sets the activation flag of a participation. Activating notifies the applicant.
func (s *ParticipationService) Approve(ctx context.Context, contestID, participationID uint, role domain.Role, active bool) (domain.Contest, []domain.Effect, error) {
	p, err := s.repo.FindParticipation(ctx, contestID, participationID, role)
	if err != nil {
		return domain.Contest{}, nil, fmt.Errorf("s.repo.FindParticipation -> %w", err)
	}

	if err = s.repo.SetParticipationActive(ctx, contestID, participationID, role, active); err != nil {
		return domain.Contest{}, nil, fmt.Errorf("s.repo.SetParticipationActive -> %w", err)
	}

	contest, err := s.repo.FindByID(ctx, contestID)
	if err != nil {
		return domain.Contest{}, nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	var effects []domain.Effect
	if active {
		effects = append(effects, domain.ApprovedEffect(role, contestID, p.UserID))
	}

	return contest, effects, nil
}

// Remove deletes a participation. Entries and ratings of the user are kept.
func (s *ParticipationService) Remove(ctx context.Context, contestID, participationID uint, role domain.Role) (domain.Contest, []domain.Effect, error) {
	if err := s.repo.RemoveParticipation(ctx, contestID, participationID, role); err != nil {
		return domain.Contest{}, nil, fmt.Errorf("s.repo.RemoveParticipation -> %w", err)
	}

	contest, err := s.repo.FindByID(ctx, contestID)
	if err != nil {
		return domain.Contest{}, nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	var effects []domain.Effect
	if role == domain.RoleContestant {
		effects = append(effects, domain.Effect{Kind: domain.EffectLeaderboardStale, ContestID: contestID})
	}

	return contest, effects, nil
}
