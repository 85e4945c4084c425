package service

import (
	"context"
	"sync"
	"time"

	"github.com/contesthub/contest-api/internal/domain"
)

// FakeContestRepo is a programmable stub for the contest-side repository interfaces.
// Unset functions return zero values.
type FakeContestRepo struct {
	mu    sync.Mutex
	trace []string

	CreateFunc                 func(ctx context.Context, c domain.Contest) (domain.Contest, error)
	FindByIDFunc               func(ctx context.Context, id uint) (domain.Contest, error)
	FindByShortIDFunc          func(ctx context.Context, shortID string) (domain.Contest, error)
	FindAllFunc                func(ctx context.Context, includeDrafts bool) ([]domain.Contest, error)
	UpdateFunc                 func(ctx context.Context, c domain.Contest) (domain.Contest, error)
	DeleteFunc                 func(ctx context.Context, id uint) error
	IncrementViewsFunc         func(ctx context.Context, id uint) error
	SetLikeFunc                func(ctx context.Context, contestID, userID uint, liked bool) error
	AddParticipationFunc       func(ctx context.Context, p domain.Participation) (domain.Participation, error)
	FindParticipationsFunc     func(ctx context.Context, contestID uint, role domain.Role) ([]domain.Participation, error)
	FindParticipationFunc      func(ctx context.Context, contestID, participationID uint, role domain.Role) (domain.Participation, error)
	SetParticipationActiveFunc func(ctx context.Context, contestID, participationID uint, role domain.Role, active bool) error
	RemoveParticipationFunc    func(ctx context.Context, contestID, participationID uint, role domain.Role) error
	FindAggregateFunc          func(ctx context.Context, id uint) (domain.Contest, error)
	FindAggregateByShortIDFunc func(ctx context.Context, shortID string) (domain.Contest, error)
	SaveRanksFunc              func(ctx context.Context, contestID uint, version int, changes []domain.RankChange) error
}

func (f *FakeContestRepo) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeContestRepo) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeContestRepo) Create(ctx context.Context, c domain.Contest) (domain.Contest, error) {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, c)
	}
	return c, nil
}

func (f *FakeContestRepo) FindByID(ctx context.Context, id uint) (domain.Contest, error) {
	f.record("FindByID")
	if f.FindByIDFunc != nil {
		return f.FindByIDFunc(ctx, id)
	}
	return domain.Contest{ID: id}, nil
}

func (f *FakeContestRepo) FindByShortID(ctx context.Context, shortID string) (domain.Contest, error) {
	f.record("FindByShortID")
	if f.FindByShortIDFunc != nil {
		return f.FindByShortIDFunc(ctx, shortID)
	}
	return domain.Contest{ShortID: shortID}, nil
}

func (f *FakeContestRepo) FindAll(ctx context.Context, includeDrafts bool) ([]domain.Contest, error) {
	f.record("FindAll")
	if f.FindAllFunc != nil {
		return f.FindAllFunc(ctx, includeDrafts)
	}
	return nil, nil
}

func (f *FakeContestRepo) Update(ctx context.Context, c domain.Contest) (domain.Contest, error) {
	f.record("Update")
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, c)
	}
	return c, nil
}

func (f *FakeContestRepo) Delete(ctx context.Context, id uint) error {
	f.record("Delete")
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, id)
	}
	return nil
}

func (f *FakeContestRepo) IncrementViews(ctx context.Context, id uint) error {
	f.record("IncrementViews")
	if f.IncrementViewsFunc != nil {
		return f.IncrementViewsFunc(ctx, id)
	}
	return nil
}

func (f *FakeContestRepo) SetLike(ctx context.Context, contestID, userID uint, liked bool) error {
	f.record("SetLike")
	if f.SetLikeFunc != nil {
		return f.SetLikeFunc(ctx, contestID, userID, liked)
	}
	return nil
}

func (f *FakeContestRepo) AddParticipation(ctx context.Context, p domain.Participation) (domain.Participation, error) {
	f.record("AddParticipation")
	if f.AddParticipationFunc != nil {
		return f.AddParticipationFunc(ctx, p)
	}
	return p, nil
}

func (f *FakeContestRepo) FindParticipations(ctx context.Context, contestID uint, role domain.Role) ([]domain.Participation, error) {
	f.record("FindParticipations")
	if f.FindParticipationsFunc != nil {
		return f.FindParticipationsFunc(ctx, contestID, role)
	}
	return nil, nil
}

func (f *FakeContestRepo) FindParticipation(ctx context.Context, contestID, participationID uint, role domain.Role) (domain.Participation, error) {
	f.record("FindParticipation")
	if f.FindParticipationFunc != nil {
		return f.FindParticipationFunc(ctx, contestID, participationID, role)
	}
	return domain.Participation{ID: participationID, ContestID: contestID, Role: role}, nil
}

func (f *FakeContestRepo) SetParticipationActive(ctx context.Context, contestID, participationID uint, role domain.Role, active bool) error {
	f.record("SetParticipationActive")
	if f.SetParticipationActiveFunc != nil {
		return f.SetParticipationActiveFunc(ctx, contestID, participationID, role, active)
	}
	return nil
}

func (f *FakeContestRepo) RemoveParticipation(ctx context.Context, contestID, participationID uint, role domain.Role) error {
	f.record("RemoveParticipation")
	if f.RemoveParticipationFunc != nil {
		return f.RemoveParticipationFunc(ctx, contestID, participationID, role)
	}
	return nil
}

func (f *FakeContestRepo) FindAggregate(ctx context.Context, id uint) (domain.Contest, error) {
	f.record("FindAggregate")
	if f.FindAggregateFunc != nil {
		return f.FindAggregateFunc(ctx, id)
	}
	return domain.Contest{ID: id}, nil
}

func (f *FakeContestRepo) FindAggregateByShortID(ctx context.Context, shortID string) (domain.Contest, error) {
	f.record("FindAggregateByShortID")
	if f.FindAggregateByShortIDFunc != nil {
		return f.FindAggregateByShortIDFunc(ctx, shortID)
	}
	return domain.Contest{ShortID: shortID}, nil
}

func (f *FakeContestRepo) SaveRanks(ctx context.Context, contestID uint, version int, changes []domain.RankChange) error {
	f.record("SaveRanks")
	if f.SaveRanksFunc != nil {
		return f.SaveRanksFunc(ctx, contestID, version, changes)
	}
	return nil
}

// FakeEntryRepo is a programmable stub for the entry and rating repository interfaces.
type FakeEntryRepo struct {
	mu    sync.Mutex
	trace []string

	CreateFunc           func(ctx context.Context, e domain.Entry, maxPrior int) (domain.Entry, error)
	FindByIDFunc         func(ctx context.Context, id uint) (domain.Entry, error)
	FindByContestantFunc func(ctx context.Context, contestID, contestantID uint) ([]domain.Entry, error)
	FindByContestFunc    func(ctx context.Context, contestID uint) ([]domain.Entry, error)
	UpdateFunc           func(ctx context.Context, e domain.Entry, replaceAttachments bool) (domain.Entry, error)
	DeleteFunc           func(ctx context.Context, id uint) error
	AddAttachmentFunc    func(ctx context.Context, entryID uint, a domain.Attachment) ([]domain.Attachment, error)
	FindAttachmentFunc   func(ctx context.Context, entryID, attachmentID uint) (domain.Attachment, error)
	UpdateAttachmentFunc func(ctx context.Context, a domain.Attachment) (domain.Attachment, error)
	AddRatingFunc        func(ctx context.Context, rating domain.Rating, contestantID uint) (domain.Rating, error)
	FindRatingFunc       func(ctx context.Context, entryID, ratingID uint) (domain.Rating, error)
	FindRatingsFunc      func(ctx context.Context, entryID uint) ([]domain.Rating, error)
	UpdateRatingFunc     func(ctx context.Context, rating domain.Rating) (domain.Rating, error)
	RemoveRatingFunc     func(ctx context.Context, entryID, ratingID uint) error
}

func (f *FakeEntryRepo) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

func (f *FakeEntryRepo) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeEntryRepo) Create(ctx context.Context, e domain.Entry, maxPrior int) (domain.Entry, error) {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, e, maxPrior)
	}
	return e, nil
}

func (f *FakeEntryRepo) FindByID(ctx context.Context, id uint) (domain.Entry, error) {
	f.record("FindByID")
	if f.FindByIDFunc != nil {
		return f.FindByIDFunc(ctx, id)
	}
	return domain.Entry{ID: id}, nil
}

func (f *FakeEntryRepo) FindByContestant(ctx context.Context, contestID, contestantID uint) ([]domain.Entry, error) {
	f.record("FindByContestant")
	if f.FindByContestantFunc != nil {
		return f.FindByContestantFunc(ctx, contestID, contestantID)
	}
	return nil, nil
}

func (f *FakeEntryRepo) FindByContest(ctx context.Context, contestID uint) ([]domain.Entry, error) {
	f.record("FindByContest")
	if f.FindByContestFunc != nil {
		return f.FindByContestFunc(ctx, contestID)
	}
	return nil, nil
}

func (f *FakeEntryRepo) Update(ctx context.Context, e domain.Entry, replaceAttachments bool) (domain.Entry, error) {
	f.record("Update")
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, e, replaceAttachments)
	}
	return e, nil
}

func (f *FakeEntryRepo) Delete(ctx context.Context, id uint) error {
	f.record("Delete")
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, id)
	}
	return nil
}

func (f *FakeEntryRepo) AddAttachment(ctx context.Context, entryID uint, a domain.Attachment) ([]domain.Attachment, error) {
	f.record("AddAttachment")
	if f.AddAttachmentFunc != nil {
		return f.AddAttachmentFunc(ctx, entryID, a)
	}
	a.EntryID = entryID
	return []domain.Attachment{a}, nil
}

func (f *FakeEntryRepo) FindAttachment(ctx context.Context, entryID, attachmentID uint) (domain.Attachment, error) {
	f.record("FindAttachment")
	if f.FindAttachmentFunc != nil {
		return f.FindAttachmentFunc(ctx, entryID, attachmentID)
	}
	return domain.Attachment{ID: attachmentID, EntryID: entryID}, nil
}

func (f *FakeEntryRepo) UpdateAttachment(ctx context.Context, a domain.Attachment) (domain.Attachment, error) {
	f.record("UpdateAttachment")
	if f.UpdateAttachmentFunc != nil {
		return f.UpdateAttachmentFunc(ctx, a)
	}
	return a, nil
}

func (f *FakeEntryRepo) AddRating(ctx context.Context, rating domain.Rating, contestantID uint) (domain.Rating, error) {
	f.record("AddRating")
	if f.AddRatingFunc != nil {
		return f.AddRatingFunc(ctx, rating, contestantID)
	}
	return rating, nil
}

func (f *FakeEntryRepo) FindRating(ctx context.Context, entryID, ratingID uint) (domain.Rating, error) {
	f.record("FindRating")
	if f.FindRatingFunc != nil {
		return f.FindRatingFunc(ctx, entryID, ratingID)
	}
	return domain.Rating{ID: ratingID, EntryID: entryID}, nil
}

func (f *FakeEntryRepo) FindRatings(ctx context.Context, entryID uint) ([]domain.Rating, error) {
	f.record("FindRatings")
	if f.FindRatingsFunc != nil {
		return f.FindRatingsFunc(ctx, entryID)
	}
	return nil, nil
}

func (f *FakeEntryRepo) UpdateRating(ctx context.Context, rating domain.Rating) (domain.Rating, error) {
	f.record("UpdateRating")
	if f.UpdateRatingFunc != nil {
		return f.UpdateRatingFunc(ctx, rating)
	}
	return rating, nil
}

func (f *FakeEntryRepo) RemoveRating(ctx context.Context, entryID, ratingID uint) error {
	f.record("RemoveRating")
	if f.RemoveRatingFunc != nil {
		return f.RemoveRatingFunc(ctx, entryID, ratingID)
	}
	return nil
}

type FakeUserRepo struct {
	CreateFunc     func(ctx context.Context, user domain.User) (domain.User, error)
	FindByIDFunc   func(ctx context.Context, id uint) (domain.User, error)
	FindByIDsFunc  func(ctx context.Context, ids []uint) ([]domain.User, error)
	FindAdminsFunc func(ctx context.Context) ([]domain.User, error)
}

func (f *FakeUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, user)
	}
	user.ID = 1
	return user, nil
}

func (f *FakeUserRepo) FindByID(ctx context.Context, id uint) (domain.User, error) {
	if f.FindByIDFunc != nil {
		return f.FindByIDFunc(ctx, id)
	}
	return domain.User{ID: id}, nil
}

func (f *FakeUserRepo) FindByIDs(ctx context.Context, ids []uint) ([]domain.User, error) {
	if f.FindByIDsFunc != nil {
		return f.FindByIDsFunc(ctx, ids)
	}
	users := make([]domain.User, len(ids))
	for i, id := range ids {
		users[i] = domain.User{ID: id}
	}
	return users, nil
}

func (f *FakeUserRepo) FindAdmins(ctx context.Context) ([]domain.User, error) {
	if f.FindAdminsFunc != nil {
		return f.FindAdminsFunc(ctx)
	}
	return nil, nil
}

type FakeConversationRepo struct {
	FindByIDFunc     func(ctx context.Context, id uint) (domain.Conversation, error)
	FindMessagesFunc func(ctx context.Context, conversationID uint, limit, offset int) ([]domain.Message, error)
	AddMessageFunc   func(ctx context.Context, m domain.Message) (domain.Message, error)
}

func (f *FakeConversationRepo) FindByID(ctx context.Context, id uint) (domain.Conversation, error) {
	if f.FindByIDFunc != nil {
		return f.FindByIDFunc(ctx, id)
	}
	return domain.Conversation{ID: id}, nil
}

func (f *FakeConversationRepo) FindMessages(ctx context.Context, conversationID uint, limit, offset int) ([]domain.Message, error) {
	if f.FindMessagesFunc != nil {
		return f.FindMessagesFunc(ctx, conversationID, limit, offset)
	}
	return nil, nil
}

func (f *FakeConversationRepo) AddMessage(ctx context.Context, m domain.Message) (domain.Message, error) {
	if f.AddMessageFunc != nil {
		return f.AddMessageFunc(ctx, m)
	}
	return m, nil
}

type sentMail struct {
	To      uint
	Subject string
}

// FakeMailer records every message it is asked to send.
type FakeMailer struct {
	mu   sync.Mutex
	Sent []sentMail
	Err  error
}

func (f *FakeMailer) Send(_ context.Context, to domain.User, subject, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Sent = append(f.Sent, sentMail{To: to.ID, Subject: subject})
	return f.Err
}

type observedRecompute struct {
	Changed   int
	Conflicts int
	Err       error
}

type FakeObserver struct {
	Calls []observedRecompute
}

func (f *FakeObserver) ObserveRecompute(changed, conflicts int, _ time.Duration, err error) {
	f.Calls = append(f.Calls, observedRecompute{Changed: changed, Conflicts: conflicts, Err: err})
}
