package service

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contesthub/contest-api/internal/domain"
)

func TestNotificationService_NotifyJudges(t *testing.T) {
	contests := &FakeContestRepo{
		FindAggregateFunc: func(_ context.Context, id uint) (domain.Contest, error) {
			c := judgedContest(id)
			c.Name = "Gadgets"
			c.Judges = append(c.Judges, domain.Participation{ID: 4, UserID: 92, Role: domain.RoleJudge, IsActive: true})
			c.Entries = []domain.Entry{
				{ID: 50, ContestantID: 10, Ratings: []domain.Rating{{JudgeID: 92}}},
				{ID: 51, ContestantID: 10, Ratings: []domain.Rating{{JudgeID: 90}}},
			}
			return c, nil
		},
	}
	mailer := &FakeMailer{}
	svc := NewNotificationService(&FakeUserRepo{}, contests, mailer, "https://contests.test")

	err := svc.NotifyJudges(context.Background(), domain.Effect{Kind: domain.EffectEntrySubmitted, ContestID: 1, EntryID: 50})
	require.NoError(t, err)

	require.Len(t, mailer.Sent, 1)
	assert.Equal(t, uint(90), mailer.Sent[0].To)
	assert.Equal(t, "New entry to rate in Gadgets", mailer.Sent[0].Subject)
}

func TestNotificationService_NotifyAdmins(t *testing.T) {
	users := &FakeUserRepo{
		FindAdminsFunc: func(context.Context) ([]domain.User, error) {
			return []domain.User{{ID: 1, Role: domain.UserRoleAdmin}, {ID: 2, Role: domain.UserRoleAdmin}}, nil
		},
	}

	t.Run("every admin is told", func(t *testing.T) {
		mailer := &FakeMailer{}
		svc := NewNotificationService(users, &FakeContestRepo{}, mailer, "")

		require.NoError(t, svc.NotifyAdmins(context.Background(), domain.AppliedEffect(domain.RoleJudge, 1, 9)))

		var to []int
		for _, m := range mailer.Sent {
			to = append(to, int(m.To))
			assert.Equal(t, "New judge application", m.Subject)
		}
		sort.Ints(to)
		assert.Equal(t, []int{1, 2}, to)
	})

	t.Run("delivery failures are joined", func(t *testing.T) {
		boom := errors.New("smtp down")
		mailer := &FakeMailer{Err: boom}
		svc := NewNotificationService(users, &FakeContestRepo{}, mailer, "")

		err := svc.NotifyAdmins(context.Background(), domain.AppliedEffect(domain.RoleContestant, 1, 9))
		assert.ErrorIs(t, err, boom)
		assert.Len(t, mailer.Sent, 2)
	})
}

func TestNotificationService_NotifyApproval(t *testing.T) {
	mailer := &FakeMailer{}
	svc := NewNotificationService(&FakeUserRepo{}, &FakeContestRepo{}, mailer, "")

	require.NoError(t, svc.NotifyApproval(context.Background(), domain.ApprovedEffect(domain.RoleContestant, 1, 9)))
	require.Len(t, mailer.Sent, 1)
	assert.Equal(t, sentMail{To: 9, Subject: "You are now a contestant"}, mailer.Sent[0])

	missing := &FakeUserRepo{
		FindByIDFunc: func(context.Context, uint) (domain.User, error) { return domain.User{}, ErrUserNotFound },
	}
	err := NewNotificationService(missing, &FakeContestRepo{}, mailer, "").NotifyApproval(context.Background(), domain.ApprovedEffect(domain.RoleJudge, 1, 9))
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestNotificationService_RecordActivity(t *testing.T) {
	svc := NewNotificationService(&FakeUserRepo{}, &FakeContestRepo{}, nil, "")
	assert.NoError(t, svc.RecordActivity(context.Background(), domain.ActivityEffect(1, 2, "liked")))
}
