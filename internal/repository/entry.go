package repository

import (
	"context"
	"fmt"

	"github.com/contesthub/contest-api/internal/domain"
	"github.com/contesthub/contest-api/internal/repository/dao"
)

var (
	ErrEntryNotFound      = dao.ErrEntryNotFound
	ErrAttachmentNotFound = dao.ErrAttachmentNotFound
	ErrRatingNotFound     = dao.ErrRatingNotFound
	ErrNotContestant      = dao.ErrNotContestant
	ErrTooManySubmissions = dao.ErrTooManySubmissions
	ErrAlreadyRated       = dao.ErrAlreadyRated
)

type EntryDAO interface {
	Insert(ctx context.Context, entry dao.Entry, maxPrior int) (dao.Entry, error)
	FindByID(ctx context.Context, id uint) (dao.Entry, error)
	FindByContestant(ctx context.Context, contestID, contestantID uint) ([]dao.Entry, error)
	FindByContest(ctx context.Context, contestID uint) ([]dao.Entry, error)
	Update(ctx context.Context, entry dao.Entry, replaceAttachments bool) (dao.Entry, error)
	Delete(ctx context.Context, id uint) error
	InsertAttachment(ctx context.Context, a dao.Attachment) ([]dao.Attachment, error)
	FindAttachment(ctx context.Context, entryID, attachmentID uint) (dao.Attachment, error)
	UpdateAttachment(ctx context.Context, a dao.Attachment) (dao.Attachment, error)
	InsertRating(ctx context.Context, r dao.Rating, contestantID uint) (dao.Rating, error)
	FindRating(ctx context.Context, entryID, ratingID uint) (dao.Rating, error)
	FindRatings(ctx context.Context, entryID uint) ([]dao.Rating, error)
	UpdateRating(ctx context.Context, r dao.Rating) (dao.Rating, error)
	DeleteRating(ctx context.Context, entryID, ratingID uint) error
}

type EntryRepository struct {
	dao EntryDAO
}

func NewEntryRepository(dao EntryDAO) *EntryRepository {
	return &EntryRepository{
		dao: dao,
	}
}

// Create stores a new entry unless the contestant already holds more than maxPrior entries.
func (r *EntryRepository) Create(ctx context.Context, e domain.Entry, maxPrior int) (domain.Entry, error) {
	created, err := r.dao.Insert(ctx, entryDomainToDao(e), maxPrior)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return entryDaoToDomain(created), nil
}

func (r *EntryRepository) FindByID(ctx context.Context, id uint) (domain.Entry, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return entryDaoToDomain(found), nil
}

func (r *EntryRepository) FindByContestant(ctx context.Context, contestID, contestantID uint) ([]domain.Entry, error) {
	found, err := r.dao.FindByContestant(ctx, contestID, contestantID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByContestant -> %w", err)
	}

	return entriesDaoToDomain(found), nil
}

func (r *EntryRepository) FindByContest(ctx context.Context, contestID uint) ([]domain.Entry, error) {
	found, err := r.dao.FindByContest(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByContest -> %w", err)
	}

	return entriesDaoToDomain(found), nil
}

func (r *EntryRepository) Update(ctx context.Context, e domain.Entry, replaceAttachments bool) (domain.Entry, error) {
	updated, err := r.dao.Update(ctx, entryDomainToDao(e), replaceAttachments)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return entryDaoToDomain(updated), nil
}

func (r *EntryRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *EntryRepository) AddAttachment(ctx context.Context, entryID uint, a domain.Attachment) ([]domain.Attachment, error) {
	a.EntryID = entryID
	found, err := r.dao.InsertAttachment(ctx, attachmentDomainToDao(a))
	if err != nil {
		return nil, fmt.Errorf("r.dao.InsertAttachment -> %w", err)
	}

	return attachmentsDaoToDomain(found), nil
}

func (r *EntryRepository) FindAttachment(ctx context.Context, entryID, attachmentID uint) (domain.Attachment, error) {
	found, err := r.dao.FindAttachment(ctx, entryID, attachmentID)
	if err != nil {
		return domain.Attachment{}, fmt.Errorf("r.dao.FindAttachment -> %w", err)
	}

	return attachmentDaoToDomain(found), nil
}

func (r *EntryRepository) UpdateAttachment(ctx context.Context, a domain.Attachment) (domain.Attachment, error) {
	updated, err := r.dao.UpdateAttachment(ctx, attachmentDomainToDao(a))
	if err != nil {
		return domain.Attachment{}, fmt.Errorf("r.dao.UpdateAttachment -> %w", err)
	}

	return attachmentDaoToDomain(updated), nil
}

func (r *EntryRepository) AddRating(ctx context.Context, rating domain.Rating, contestantID uint) (domain.Rating, error) {
	created, err := r.dao.InsertRating(ctx, ratingDomainToDao(rating), contestantID)
	if err != nil {
		return domain.Rating{}, fmt.Errorf("r.dao.InsertRating -> %w", err)
	}

	return ratingDaoToDomain(created), nil
}

func (r *EntryRepository) FindRating(ctx context.Context, entryID, ratingID uint) (domain.Rating, error) {
	found, err := r.dao.FindRating(ctx, entryID, ratingID)
	if err != nil {
		return domain.Rating{}, fmt.Errorf("r.dao.FindRating -> %w", err)
	}

	return ratingDaoToDomain(found), nil
}

func (r *EntryRepository) FindRatings(ctx context.Context, entryID uint) ([]domain.Rating, error) {
	found, err := r.dao.FindRatings(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindRatings -> %w", err)
	}

	out := make([]domain.Rating, len(found))
	for i, rt := range found {
		out[i] = ratingDaoToDomain(rt)
	}

	return out, nil
}

func (r *EntryRepository) UpdateRating(ctx context.Context, rating domain.Rating) (domain.Rating, error) {
	updated, err := r.dao.UpdateRating(ctx, ratingDomainToDao(rating))
	if err != nil {
		return domain.Rating{}, fmt.Errorf("r.dao.UpdateRating -> %w", err)
	}

	return ratingDaoToDomain(updated), nil
}

func (r *EntryRepository) RemoveRating(ctx context.Context, entryID, ratingID uint) error {
	if err := r.dao.DeleteRating(ctx, entryID, ratingID); err != nil {
		return fmt.Errorf("r.dao.DeleteRating -> %w", err)
	}

	return nil
}

func entryDomainToDao(e domain.Entry) dao.Entry {
	attachments := make([]dao.Attachment, len(e.Attachments))
	for i, a := range e.Attachments {
		attachments[i] = attachmentDomainToDao(a)
	}

	return dao.Entry{
		ID:                         e.ID,
		ContestID:                  e.ContestID,
		ContestantID:               e.ContestantID,
		ConversationID:             e.ConversationID,
		Title:                      e.Title,
		DescriptionDesign:          e.DescriptionDesign,
		DescriptionFunctionality:   e.DescriptionFunctionality,
		DescriptionUsability:       e.DescriptionUsability,
		DescriptionMarketPotential: e.DescriptionMarketPotential,
		IsDraft:                    e.IsDraft,
		Attachments:                attachments,
	}
}

func entryDaoToDomain(e dao.Entry) domain.Entry {
	ratings := make([]domain.Rating, len(e.Ratings))
	for i, r := range e.Ratings {
		ratings[i] = ratingDaoToDomain(r)
	}

	return domain.Entry{
		ID:                         e.ID,
		ContestID:                  e.ContestID,
		ContestantID:               e.ContestantID,
		Contestant:                 profileOf(e.Contestant),
		ConversationID:             e.ConversationID,
		Title:                      e.Title,
		DescriptionDesign:          e.DescriptionDesign,
		DescriptionFunctionality:   e.DescriptionFunctionality,
		DescriptionUsability:       e.DescriptionUsability,
		DescriptionMarketPotential: e.DescriptionMarketPotential,
		Attachments:                attachmentsDaoToDomain(e.Attachments),
		Ratings:                    ratings,
		IsDraft:                    e.IsDraft,
		CreatedAt:                  e.CreatedAt,
		UpdatedAt:                  e.UpdatedAt,
	}
}

func entriesDaoToDomain(es []dao.Entry) []domain.Entry {
	out := make([]domain.Entry, len(es))
	for i, e := range es {
		out[i] = entryDaoToDomain(e)
	}

	return out
}

func attachmentDomainToDao(a domain.Attachment) dao.Attachment {
	return dao.Attachment{
		ID:         a.ID,
		EntryID:    a.EntryID,
		Title:      a.Title,
		Caption:    a.Caption,
		PreviewURL: a.PreviewURL,
		FileType:   a.FileType,
		MimeType:   a.MimeType,
	}
}

func attachmentDaoToDomain(a dao.Attachment) domain.Attachment {
	return domain.Attachment{
		ID:         a.ID,
		EntryID:    a.EntryID,
		Title:      a.Title,
		Caption:    a.Caption,
		PreviewURL: a.PreviewURL,
		FileType:   a.FileType,
		MimeType:   a.MimeType,
	}
}

func attachmentsDaoToDomain(as []dao.Attachment) []domain.Attachment {
	out := make([]domain.Attachment, len(as))
	for i, a := range as {
		out[i] = attachmentDaoToDomain(a)
	}

	return out
}

func ratingDomainToDao(r domain.Rating) dao.Rating {
	return dao.Rating{
		ID:                     r.ID,
		EntryID:                r.EntryID,
		JudgeID:                r.JudgeID,
		ConversationID:         r.ConversationID,
		Design:                 r.Design,
		DesignComment:          r.DesignComment,
		Functionality:          r.Functionality,
		FunctionalityComment:   r.FunctionalityComment,
		Usability:              r.Usability,
		UsabilityComment:       r.UsabilityComment,
		MarketPotential:        r.MarketPotential,
		MarketPotentialComment: r.MarketPotentialComment,
		IsSeen:                 r.IsSeen,
	}
}

func ratingDaoToDomain(r dao.Rating) domain.Rating {
	return domain.Rating{
		ID:                     r.ID,
		EntryID:                r.EntryID,
		JudgeID:                r.JudgeID,
		Judge:                  profileOf(r.Judge),
		ConversationID:         r.ConversationID,
		Design:                 r.Design,
		DesignComment:          r.DesignComment,
		Functionality:          r.Functionality,
		FunctionalityComment:   r.FunctionalityComment,
		Usability:              r.Usability,
		UsabilityComment:       r.UsabilityComment,
		MarketPotential:        r.MarketPotential,
		MarketPotentialComment: r.MarketPotentialComment,
		IsSeen:                 r.IsSeen,
		CreatedAt:              r.CreatedAt,
		UpdatedAt:              r.UpdatedAt,
	}
}
