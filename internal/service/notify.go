package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/contesthub/contest-api/internal/domain"
)

// Mailer delivers a notification to a single user.
type Mailer interface {
	Send(ctx context.Context, to domain.User, subject, body string) error
}

// LogMailer writes notifications to the log instead of delivering them.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, to domain.User, subject, body string) error {
	zap.L().Info("notification",
		zap.Uint("user_id", to.ID),
		zap.String("email", to.Email),
		zap.String("subject", subject),
		zap.String("body", body),
	)

	return nil
}

type UserFinder interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByIDs(ctx context.Context, ids []uint) ([]domain.User, error)
	FindAdmins(ctx context.Context) ([]domain.User, error)
}

type AggregateFinder interface {
	FindAggregate(ctx context.Context, id uint) (domain.Contest, error)
}

// NotificationService turns committed effects into messages for judges, admins and applicants.
type NotificationService struct {
	users    UserFinder
	contests AggregateFinder
	mailer   Mailer
	baseURL  string
}

func NewNotificationService(users UserFinder, contests AggregateFinder, mailer Mailer, baseURL string) *NotificationService {
	if mailer == nil {
		mailer = LogMailer{}
	}

	return &NotificationService{
		users:    users,
		contests: contests,
		mailer:   mailer,
		baseURL:  baseURL,
	}
}

// NotifyJudges tells every active judge who has not rated the submitted entry about it.
func (s *NotificationService) NotifyJudges(ctx context.Context, e domain.Effect) error {
	contest, err := s.contests.FindAggregate(ctx, e.ContestID)
	if err != nil {
		return fmt.Errorf("s.contests.FindAggregate -> %w", err)
	}

	rated := make(map[uint]bool)
	for _, entry := range contest.Entries {
		if entry.ID != e.EntryID {
			continue
		}
		for _, r := range entry.Ratings {
			rated[r.JudgeID] = true
		}
	}

	var ids []uint
	for id := range contest.ActiveJudgeIDs() {
		if !rated[id] {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	judges, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("s.users.FindByIDs -> %w", err)
	}

	subject := fmt.Sprintf("New entry to rate in %s", contest.Name)
	body := fmt.Sprintf("A contestant submitted an entry. Rate it at %s/contests/%s", s.baseURL, contest.ShortID)

	return s.sendAll(ctx, judges, subject, body)
}

// NotifyAdmins tells every admin about a new contestant or judge application.
func (s *NotificationService) NotifyAdmins(ctx context.Context, e domain.Effect) error {
	admins, err := s.users.FindAdmins(ctx)
	if err != nil {
		return fmt.Errorf("s.users.FindAdmins -> %w", err)
	}

	role := domain.RoleContestant
	if e.Kind == domain.EffectJudgeApplied {
		role = domain.RoleJudge
	}
	subject := fmt.Sprintf("New %s application", role)
	body := fmt.Sprintf("User %d applied as %s to contest %d", e.UserID, role, e.ContestID)

	return s.sendAll(ctx, admins, subject, body)
}

// NotifyApproval tells an applicant their participation was approved.
func (s *NotificationService) NotifyApproval(ctx context.Context, e domain.Effect) error {
	user, err := s.users.FindByID(ctx, e.UserID)
	if err != nil {
		return fmt.Errorf("s.users.FindByID -> %w", err)
	}

	role := domain.RoleContestant
	if e.Kind == domain.EffectJudgeApproved {
		role = domain.RoleJudge
	}
	subject := fmt.Sprintf("You are now a %s", role)
	body := fmt.Sprintf("Your %s application to contest %d was approved", role, e.ContestID)

	if err = s.mailer.Send(ctx, user, subject, body); err != nil {
		return fmt.Errorf("s.mailer.Send -> %w", err)
	}

	return nil
}

func (s *NotificationService) RecordActivity(_ context.Context, e domain.Effect) error {
	activity := e.Activity
	if activity == "" {
		activity = string(e.Kind)
	}

	zap.L().Info("user activity",
		zap.Uint("user_id", e.UserID),
		zap.Uint("contest_id", e.ContestID),
		zap.String("activity", activity),
	)

	return nil
}

func (s *NotificationService) sendAll(ctx context.Context, to []domain.User, subject, body string) error {
	var errs []error
	for _, u := range to {
		if err := s.mailer.Send(ctx, u, subject, body); err != nil {
			errs = append(errs, fmt.Errorf("s.mailer.Send(%d) -> %w", u.ID, err))
		}
	}

	return errors.Join(errs...)
}
