package v1

import (
	"context"
	"sync"

	"github.com/contesthub/contest-api/internal/domain"
	"github.com/contesthub/contest-api/internal/service"
)

type FakeUserService struct {
	Users map[uint]domain.User
}

func (f *FakeUserService) GetUser(_ context.Context, id uint) (domain.User, error) {
	u, ok := f.Users[id]
	if !ok {
		return domain.User{}, service.ErrUserNotFound
	}

	return u, nil
}

type FakeDispatcher struct {
	mu         sync.Mutex
	Dispatched []domain.Effect
}

func (f *FakeDispatcher) Dispatch(_ string, effects []domain.Effect) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Dispatched = append(f.Dispatched, effects...)
}

type FakeContestService struct {
	ListContestsFunc        func(ctx context.Context, viewerID uint, includeDrafts bool) ([]domain.Contest, error)
	GetContestByShortIDFunc func(ctx context.Context, shortID string, viewerID uint) (domain.Contest, error)
	CreateContestFunc       func(ctx context.Context, c domain.Contest) (domain.Contest, error)
	UpdateContestFunc       func(ctx context.Context, id uint, update domain.ContestUpdate) (domain.Contest, error)
	DeleteContestFunc       func(ctx context.Context, id uint) error
	LikeFunc                func(ctx context.Context, contestID, userID uint, liked bool) (domain.Contest, []domain.Effect, error)
	ViewFunc                func(ctx context.Context, contestID uint) error
}

func (f *FakeContestService) ListContests(ctx context.Context, viewerID uint, includeDrafts bool) ([]domain.Contest, error) {
	return f.ListContestsFunc(ctx, viewerID, includeDrafts)
}

func (f *FakeContestService) GetContestByShortID(ctx context.Context, shortID string, viewerID uint) (domain.Contest, error) {
	return f.GetContestByShortIDFunc(ctx, shortID, viewerID)
}

func (f *FakeContestService) CreateContest(ctx context.Context, c domain.Contest) (domain.Contest, error) {
	return f.CreateContestFunc(ctx, c)
}

func (f *FakeContestService) UpdateContest(ctx context.Context, id uint, update domain.ContestUpdate) (domain.Contest, error) {
	return f.UpdateContestFunc(ctx, id, update)
}

func (f *FakeContestService) DeleteContest(ctx context.Context, id uint) error {
	return f.DeleteContestFunc(ctx, id)
}

func (f *FakeContestService) Like(ctx context.Context, contestID, userID uint, liked bool) (domain.Contest, []domain.Effect, error) {
	return f.LikeFunc(ctx, contestID, userID, liked)
}

func (f *FakeContestService) View(ctx context.Context, contestID uint) error {
	return f.ViewFunc(ctx, contestID)
}

type FakeParticipationService struct {
	EnrollFunc  func(ctx context.Context, contestID, userID uint, role domain.Role) ([]domain.Participation, []domain.Effect, error)
	ApproveFunc func(ctx context.Context, contestID, participationID uint, role domain.Role, active bool) (domain.Contest, []domain.Effect, error)
	RemoveFunc  func(ctx context.Context, contestID, participationID uint, role domain.Role) (domain.Contest, []domain.Effect, error)
}

func (f *FakeParticipationService) Enroll(ctx context.Context, contestID, userID uint, role domain.Role) ([]domain.Participation, []domain.Effect, error) {
	return f.EnrollFunc(ctx, contestID, userID, role)
}

func (f *FakeParticipationService) Approve(ctx context.Context, contestID, participationID uint, role domain.Role, active bool) (domain.Contest, []domain.Effect, error) {
	return f.ApproveFunc(ctx, contestID, participationID, role, active)
}

func (f *FakeParticipationService) Remove(ctx context.Context, contestID, participationID uint, role domain.Role) (domain.Contest, []domain.Effect, error) {
	return f.RemoveFunc(ctx, contestID, participationID, role)
}

type FakeEntryService struct {
	SubmitFunc            func(ctx context.Context, contestID, contestantID uint, e domain.Entry) (domain.Entry, error)
	UpdateFunc            func(ctx context.Context, entryID, contestantID uint, update domain.EntryUpdate) (domain.Entry, []domain.Effect, error)
	GetEntryFunc          func(ctx context.Context, entryID, viewerID uint) (domain.RatedEntry, error)
	ContestantEntriesFunc func(ctx context.Context, contestID, contestantID uint) ([]domain.RatedEntry, error)
	JudgeEntriesFunc      func(ctx context.Context, contestID, judgeID uint) ([]domain.RatedEntry, error)
	AddAttachmentFunc     func(ctx context.Context, entryID, contestantID uint, a domain.Attachment) ([]domain.Attachment, error)
	UpdateAttachmentFunc  func(ctx context.Context, entryID, attachmentID, contestantID uint, update domain.AttachmentUpdate) (domain.Attachment, error)
	RemoveEntryFunc       func(ctx context.Context, entryID uint) ([]domain.Effect, error)
}

func (f *FakeEntryService) Submit(ctx context.Context, contestID, contestantID uint, e domain.Entry) (domain.Entry, error) {
	return f.SubmitFunc(ctx, contestID, contestantID, e)
}

func (f *FakeEntryService) Update(ctx context.Context, entryID, contestantID uint, update domain.EntryUpdate) (domain.Entry, []domain.Effect, error) {
	return f.UpdateFunc(ctx, entryID, contestantID, update)
}

func (f *FakeEntryService) GetEntry(ctx context.Context, entryID, viewerID uint) (domain.RatedEntry, error) {
	return f.GetEntryFunc(ctx, entryID, viewerID)
}

func (f *FakeEntryService) ContestantEntries(ctx context.Context, contestID, contestantID uint) ([]domain.RatedEntry, error) {
	return f.ContestantEntriesFunc(ctx, contestID, contestantID)
}

func (f *FakeEntryService) JudgeEntries(ctx context.Context, contestID, judgeID uint) ([]domain.RatedEntry, error) {
	return f.JudgeEntriesFunc(ctx, contestID, judgeID)
}

func (f *FakeEntryService) AddAttachment(ctx context.Context, entryID, contestantID uint, a domain.Attachment) ([]domain.Attachment, error) {
	return f.AddAttachmentFunc(ctx, entryID, contestantID, a)
}

func (f *FakeEntryService) UpdateAttachment(ctx context.Context, entryID, attachmentID, contestantID uint, update domain.AttachmentUpdate) (domain.Attachment, error) {
	return f.UpdateAttachmentFunc(ctx, entryID, attachmentID, contestantID, update)
}

func (f *FakeEntryService) RemoveEntry(ctx context.Context, entryID uint) ([]domain.Effect, error) {
	return f.RemoveEntryFunc(ctx, entryID)
}

type FakeRatingService struct {
	AddRatingFunc    func(ctx context.Context, entryID, judgeID uint, r domain.Rating) (domain.Rating, []domain.Effect, error)
	UpdateRatingFunc func(ctx context.Context, entryID, ratingID, judgeID uint, update domain.RatingUpdate) (domain.Rating, []domain.Effect, error)
	EntryRatingsFunc func(ctx context.Context, entryID uint) ([]domain.Rating, error)
	RemoveRatingFunc func(ctx context.Context, entryID, ratingID uint) ([]domain.Effect, error)
}

func (f *FakeRatingService) AddRating(ctx context.Context, entryID, judgeID uint, r domain.Rating) (domain.Rating, []domain.Effect, error) {
	return f.AddRatingFunc(ctx, entryID, judgeID, r)
}

func (f *FakeRatingService) UpdateRating(ctx context.Context, entryID, ratingID, judgeID uint, update domain.RatingUpdate) (domain.Rating, []domain.Effect, error) {
	return f.UpdateRatingFunc(ctx, entryID, ratingID, judgeID, update)
}

func (f *FakeRatingService) EntryRatings(ctx context.Context, entryID uint) ([]domain.Rating, error) {
	return f.EntryRatingsFunc(ctx, entryID)
}

func (f *FakeRatingService) RemoveRating(ctx context.Context, entryID, ratingID uint) ([]domain.Effect, error) {
	return f.RemoveRatingFunc(ctx, entryID, ratingID)
}

type FakeLeaderboardService struct {
	LeaderboardFunc func(ctx context.Context, shortID string) (domain.Contest, []domain.LeaderboardRow, error)
	RecomputeFunc   func(ctx context.Context, contestID uint) ([]domain.RankChange, error)
}

func (f *FakeLeaderboardService) Leaderboard(ctx context.Context, shortID string) (domain.Contest, []domain.LeaderboardRow, error) {
	return f.LeaderboardFunc(ctx, shortID)
}

func (f *FakeLeaderboardService) Recompute(ctx context.Context, contestID uint) ([]domain.RankChange, error) {
	return f.RecomputeFunc(ctx, contestID)
}

type FakeConversationService struct {
	MessagesFunc    func(ctx context.Context, conversationID, viewerID uint, limit, offset int) ([]domain.Message, error)
	PostMessageFunc func(ctx context.Context, conversationID, senderID uint, body string) (domain.Message, error)
}

func (f *FakeConversationService) Messages(ctx context.Context, conversationID, viewerID uint, limit, offset int) ([]domain.Message, error) {
	return f.MessagesFunc(ctx, conversationID, viewerID, limit, offset)
}

func (f *FakeConversationService) PostMessage(ctx context.Context, conversationID, senderID uint, body string) (domain.Message, error) {
	return f.PostMessageFunc(ctx, conversationID, senderID, body)
}
