package service

import (
	"context"
	"fmt"

	"github.com/contesthub/contest-api/internal/domain"
)

type EntryRepository interface {
	Create(ctx context.Context, e domain.Entry, maxPrior int) (domain.Entry, error)
	FindByID(ctx context.Context, id uint) (domain.Entry, error)
	FindByContestant(ctx context.Context, contestID, contestantID uint) ([]domain.Entry, error)
	FindByContest(ctx context.Context, contestID uint) ([]domain.Entry, error)
	Update(ctx context.Context, e domain.Entry, replaceAttachments bool) (domain.Entry, error)
	Delete(ctx context.Context, id uint) error
	AddAttachment(ctx context.Context, entryID uint, a domain.Attachment) ([]domain.Attachment, error)
	FindAttachment(ctx context.Context, entryID, attachmentID uint) (domain.Attachment, error)
	UpdateAttachment(ctx context.Context, a domain.Attachment) (domain.Attachment, error)
}

type ContestFinder interface {
	FindByID(ctx context.Context, id uint) (domain.Contest, error)
}

type EntryService struct {
	repo     EntryRepository
	contests ContestFinder
	maxPrior int
}

func NewEntryService(repo EntryRepository, contests ContestFinder, maxPrior int) *EntryService {
	if maxPrior <= 0 {
		maxPrior = domain.MaxPriorEntries
	}

	return &EntryService{
		repo:     repo,
		contests: contests,
		maxPrior: maxPrior,
	}
}

// Submit stores a new draft entry for the contestant together with its conversation.
func (s *EntryService) Submit(ctx context.Context, contestID, contestantID uint, e domain.Entry) (domain.Entry, error) {
	e.ID = 0
	e.ContestID = contestID
	e.ContestantID = contestantID
	e.IsDraft = true
	for i := range e.Attachments {
		e.Attachments[i].MimeType = domain.DetectMimeType(e.Attachments[i].PreviewURL)
	}

	created, err := s.repo.Create(ctx, e, s.maxPrior)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// Update applies the contestant's changes. Moving the entry out of draft yields the
// submission effects; the caller dispatches them.
func (s *EntryService) Update(ctx context.Context, entryID, contestantID uint, update domain.EntryUpdate) (domain.Entry, []domain.Effect, error) {
	entry, err := s.ownedEntry(ctx, entryID, contestantID)
	if err != nil {
		return domain.Entry{}, nil, err
	}

	next, submitted, err := update.Apply(entry)
	if err != nil {
		return domain.Entry{}, nil, fmt.Errorf("update.Apply -> %w", err)
	}

	updated, err := s.repo.Update(ctx, next, update.Attachments != nil)
	if err != nil {
		return domain.Entry{}, nil, fmt.Errorf("s.repo.Update -> %w", err)
	}

	var effects []domain.Effect
	if submitted {
		effects = append(effects,
			domain.Effect{Kind: domain.EffectEntrySubmitted, ContestID: updated.ContestID, UserID: contestantID, EntryID: updated.ID},
			domain.ActivityEffect(updated.ContestID, contestantID, fmt.Sprintf("submitted entry %q", updated.Title)),
		)
	}

	return updated, effects, nil
}

func (s *EntryService) GetEntry(ctx context.Context, entryID, viewerID uint) (domain.RatedEntry, error) {
	entry, err := s.repo.FindByID(ctx, entryID)
	if err != nil {
		return domain.RatedEntry{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return domain.NewRatedEntry(entry, viewerID), nil
}

// ContestantEntries lists the contestant's entries newest first.
func (s *EntryService) ContestantEntries(ctx context.Context, contestID, contestantID uint) ([]domain.RatedEntry, error) {
	entries, err := s.repo.FindByContestant(ctx, contestID, contestantID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByContestant -> %w", err)
	}

	out := make([]domain.RatedEntry, len(entries))
	for i, e := range entries {
		out[i] = domain.NewRatedEntry(e, contestantID)
	}

	return out, nil
}

// JudgeEntries returns the live entry of every contestant, as seen by an active judge.
func (s *EntryService) JudgeEntries(ctx context.Context, contestID, judgeID uint) ([]domain.RatedEntry, error) {
	contest, err := s.contests.FindByID(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("s.contests.FindByID -> %w", err)
	}
	if !contest.IsActiveJudge(judgeID) {
		return nil, ErrNotJudge
	}

	entries, err := s.repo.FindByContest(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByContest -> %w", err)
	}

	out := make([]domain.RatedEntry, 0, len(contest.Contestants))
	for _, c := range contest.Contestants {
		if e, ok := domain.LatestNonDraftFor(entries, c.UserID); ok {
			out = append(out, domain.NewRatedEntry(e, judgeID))
		}
	}

	return out, nil
}

func (s *EntryService) AddAttachment(ctx context.Context, entryID, contestantID uint, a domain.Attachment) ([]domain.Attachment, error) {
	if _, err := s.ownedEntry(ctx, entryID, contestantID); err != nil {
		return nil, err
	}

	a.ID = 0
	a.MimeType = domain.DetectMimeType(a.PreviewURL)
	attachments, err := s.repo.AddAttachment(ctx, entryID, a)
	if err != nil {
		return nil, fmt.Errorf("s.repo.AddAttachment -> %w", err)
	}

	return attachments, nil
}

func (s *EntryService) UpdateAttachment(ctx context.Context, entryID, attachmentID, contestantID uint, update domain.AttachmentUpdate) (domain.Attachment, error) {
	if _, err := s.ownedEntry(ctx, entryID, contestantID); err != nil {
		return domain.Attachment{}, err
	}

	attachment, err := s.repo.FindAttachment(ctx, entryID, attachmentID)
	if err != nil {
		return domain.Attachment{}, fmt.Errorf("s.repo.FindAttachment -> %w", err)
	}

	updated, err := s.repo.UpdateAttachment(ctx, update.Apply(attachment))
	if err != nil {
		return domain.Attachment{}, fmt.Errorf("s.repo.UpdateAttachment -> %w", err)
	}

	return updated, nil
}

// RemoveEntry deletes an entry with its attachments and ratings.
func (s *EntryService) RemoveEntry(ctx context.Context, entryID uint) ([]domain.Effect, error) {
	entry, err := s.repo.FindByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err = s.repo.Delete(ctx, entryID); err != nil {
		return nil, fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return []domain.Effect{{Kind: domain.EffectLeaderboardStale, ContestID: entry.ContestID}}, nil
}

// ownedEntry hides entries of other contestants behind ErrEntryNotFound.
func (s *EntryService) ownedEntry(ctx context.Context, entryID, contestantID uint) (domain.Entry, error) {
	entry, err := s.repo.FindByID(ctx, entryID)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if entry.ContestantID != contestantID {
		return domain.Entry{}, ErrEntryNotFound
	}

	return entry, nil
}
