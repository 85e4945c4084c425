package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrEntryNotFound      = errors.New("entry not found")
	ErrAttachmentNotFound = errors.New("attachment not found")
	ErrRatingNotFound     = errors.New("rating not found")
	ErrNotContestant      = errors.New("user is not a contestant of this contest")
	ErrTooManySubmissions = errors.New("too many entries submitted to this contest")
	ErrAlreadyRated       = errors.New("judge already rated this entry")
)

type Entry struct {
	ID                         uint `gorm:"primaryKey"`
	ContestID                  uint `gorm:"not null;index:idx_entries_contest_contestant"`
	ContestantID               uint `gorm:"not null;index:idx_entries_contest_contestant"`
	Contestant                 User `gorm:"foreignKey:ContestantID"`
	ConversationID             uint
	Title                      string
	DescriptionDesign          string
	DescriptionFunctionality   string
	DescriptionUsability       string
	DescriptionMarketPotential string
	IsDraft                    bool `gorm:"not null"`

	Attachments []Attachment `gorm:"foreignKey:EntryID;constraint:OnDelete:CASCADE"`
	Ratings     []Rating     `gorm:"foreignKey:EntryID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Attachment struct {
	ID         uint `gorm:"primaryKey"`
	EntryID    uint `gorm:"index;not null"`
	Title      string
	Caption    string
	PreviewURL string
	FileType   string
	MimeType   string
}

// Rating rows are unique per (entry_id, judge_id).
type Rating struct {
	ID                     uint `gorm:"primaryKey"`
	EntryID                uint `gorm:"not null;uniqueIndex:idx_ratings_entry_judge"`
	JudgeID                uint `gorm:"not null;uniqueIndex:idx_ratings_entry_judge"`
	Judge                  User `gorm:"foreignKey:JudgeID"`
	ConversationID         uint
	Design                 float64
	DesignComment          string
	Functionality          float64
	FunctionalityComment   string
	Usability              float64
	UsabilityComment       string
	MarketPotential        float64
	MarketPotentialComment string
	IsSeen                 bool
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

type EntryDAO struct {
	db *gorm.DB
}

func NewEntryDAO(db *gorm.DB) *EntryDAO {
	return &EntryDAO{
		db: db,
	}
}

func (d *EntryDAO) preloaded(ctx context.Context) *gorm.DB {
	return d.db.WithContext(ctx).
		Preload("Contestant").
		Preload("Attachments", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Ratings", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Ratings.Judge")
}

// Insert stores a new entry while holding a lock on the contest row, so the
// per-contestant cap cannot be exceeded by concurrent submissions. An empty
// conversation owned by the contestant is created alongside.
func (d *EntryDAO) Insert(ctx context.Context, entry Entry, maxPrior int) (Entry, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var contest Contest
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").First(&contest, entry.ContestID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrContestNotFound
			}

			return err
		}

		var enrolled int64
		err = tx.Model(&Participation{}).
			Where("contest_id = ? AND user_id = ? AND role = ?", entry.ContestID, entry.ContestantID, "contestant").
			Count(&enrolled).Error
		if err != nil {
			return err
		}
		if enrolled == 0 {
			return ErrNotContestant
		}

		var prior int64
		err = tx.Model(&Entry{}).
			Where("contest_id = ? AND contestant_id = ?", entry.ContestID, entry.ContestantID).
			Count(&prior).Error
		if err != nil {
			return err
		}
		if prior > int64(maxPrior) {
			return ErrTooManySubmissions
		}

		conversation := Conversation{
			ContestID:    entry.ContestID,
			AuthorID:     entry.ContestantID,
			Participants: []ConversationParticipant{{UserID: entry.ContestantID}},
		}
		if err := tx.Create(&conversation).Error; err != nil {
			return updateFailed(err)
		}

		entry.ConversationID = conversation.ID
		if err := tx.Create(&entry).Error; err != nil {
			return updateFailed(err)
		}

		return nil
	})
	if err != nil {
		return Entry{}, err
	}

	return d.FindByID(ctx, entry.ID)
}

func (d *EntryDAO) FindByID(ctx context.Context, id uint) (Entry, error) {
	var entry Entry

	result := d.preloaded(ctx).First(&entry, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Entry{}, ErrEntryNotFound
		}

		return Entry{}, result.Error
	}

	return entry, nil
}

// FindByContestant lists the contestant's entries on a contest, newest first.
func (d *EntryDAO) FindByContestant(ctx context.Context, contestID, contestantID uint) ([]Entry, error) {
	var entries []Entry

	result := d.preloaded(ctx).
		Where("contest_id = ? AND contestant_id = ?", contestID, contestantID).
		Order("created_at DESC, id DESC").
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

func (d *EntryDAO) FindByContest(ctx context.Context, contestID uint) ([]Entry, error) {
	var entries []Entry

	result := d.preloaded(ctx).
		Where("contest_id = ?", contestID).
		Order("created_at DESC, id DESC").
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

// Update writes the contestant-editable columns. When replaceAttachments is set
// the attachment list is swapped for entry.Attachments.
func (d *EntryDAO) Update(ctx context.Context, entry Entry, replaceAttachments bool) (Entry, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Entry{}).
			Where("id = ? AND contestant_id = ?", entry.ID, entry.ContestantID).
			Select("title", "description_design", "description_functionality", "description_usability",
				"description_market_potential", "is_draft", "updated_at").
			Updates(map[string]any{
				"title":                        entry.Title,
				"description_design":           entry.DescriptionDesign,
				"description_functionality":    entry.DescriptionFunctionality,
				"description_usability":        entry.DescriptionUsability,
				"description_market_potential": entry.DescriptionMarketPotential,
				"is_draft":                     entry.IsDraft,
				"updated_at":                   time.Now(),
			})
		if result.Error != nil {
			return updateFailed(result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrEntryNotFound
		}

		if !replaceAttachments {
			return nil
		}

		if err := tx.Where("entry_id = ?", entry.ID).Delete(&Attachment{}).Error; err != nil {
			return updateFailed(err)
		}
		for i := range entry.Attachments {
			entry.Attachments[i].ID = 0
			entry.Attachments[i].EntryID = entry.ID
		}
		if len(entry.Attachments) > 0 {
			if err := tx.Create(&entry.Attachments).Error; err != nil {
				return updateFailed(err)
			}
		}

		return nil
	})
	if err != nil {
		return Entry{}, err
	}

	return d.FindByID(ctx, entry.ID)
}

func (d *EntryDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Entry{}, id)
	if result.Error != nil {
		return updateFailed(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

func (d *EntryDAO) InsertAttachment(ctx context.Context, a Attachment) ([]Attachment, error) {
	result := d.db.WithContext(ctx).Create(&a)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return nil, ErrEntryNotFound
		}

		return nil, updateFailed(result.Error)
	}

	var attachments []Attachment
	err := d.db.WithContext(ctx).Where("entry_id = ?", a.EntryID).Order("id").Find(&attachments).Error
	if err != nil {
		return nil, err
	}

	return attachments, nil
}

func (d *EntryDAO) FindAttachment(ctx context.Context, entryID, attachmentID uint) (Attachment, error) {
	var a Attachment

	result := d.db.WithContext(ctx).Where("id = ? AND entry_id = ?", attachmentID, entryID).First(&a)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Attachment{}, ErrAttachmentNotFound
		}

		return Attachment{}, result.Error
	}

	return a, nil
}

func (d *EntryDAO) UpdateAttachment(ctx context.Context, a Attachment) (Attachment, error) {
	result := d.db.WithContext(ctx).Model(&Attachment{}).
		Where("id = ? AND entry_id = ?", a.ID, a.EntryID).
		Updates(map[string]any{
			"title":       a.Title,
			"caption":     a.Caption,
			"preview_url": a.PreviewURL,
			"file_type":   a.FileType,
			"mime_type":   a.MimeType,
		})
	if result.Error != nil {
		return Attachment{}, updateFailed(result.Error)
	}
	if result.RowsAffected == 0 {
		return Attachment{}, ErrAttachmentNotFound
	}

	return a, nil
}

// InsertRating adds a judge rating and the judge/contestant conversation for it.
// Duplicates are caught by a scan of the entry ratings and, under concurrency,
// by the unique (entry_id, judge_id) index.
func (d *EntryDAO) InsertRating(ctx context.Context, r Rating, contestantID uint) (Rating, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []Rating
		if err := tx.Where("entry_id = ?", r.EntryID).Find(&existing).Error; err != nil {
			return err
		}
		for _, e := range existing {
			if e.JudgeID == r.JudgeID {
				return ErrAlreadyRated
			}
		}

		var entry Entry
		if err := tx.Select("id", "contest_id").First(&entry, r.EntryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEntryNotFound
			}

			return err
		}

		conversation := Conversation{
			ContestID: entry.ContestID,
			AuthorID:  r.JudgeID,
			Participants: []ConversationParticipant{
				{UserID: r.JudgeID},
				{UserID: contestantID},
			},
		}
		if err := tx.Create(&conversation).Error; err != nil {
			return updateFailed(err)
		}

		r.ConversationID = conversation.ID
		if err := tx.Omit("Judge").Create(&r).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyRated
			}

			return updateFailed(err)
		}

		return nil
	})
	if err != nil {
		return Rating{}, err
	}

	return r, nil
}

func (d *EntryDAO) FindRating(ctx context.Context, entryID, ratingID uint) (Rating, error) {
	var r Rating

	result := d.db.WithContext(ctx).Preload("Judge").
		Where("id = ? AND entry_id = ?", ratingID, entryID).First(&r)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Rating{}, ErrRatingNotFound
		}

		return Rating{}, result.Error
	}

	return r, nil
}

func (d *EntryDAO) FindRatings(ctx context.Context, entryID uint) ([]Rating, error) {
	var ratings []Rating

	result := d.db.WithContext(ctx).Preload("Judge").
		Where("entry_id = ?", entryID).Order("id").Find(&ratings)
	if result.Error != nil {
		return nil, result.Error
	}

	return ratings, nil
}

func (d *EntryDAO) UpdateRating(ctx context.Context, r Rating) (Rating, error) {
	result := d.db.WithContext(ctx).Model(&Rating{}).
		Where("id = ? AND entry_id = ? AND judge_id = ?", r.ID, r.EntryID, r.JudgeID).
		Updates(map[string]any{
			"design":                   r.Design,
			"design_comment":           r.DesignComment,
			"functionality":            r.Functionality,
			"functionality_comment":    r.FunctionalityComment,
			"usability":                r.Usability,
			"usability_comment":        r.UsabilityComment,
			"market_potential":         r.MarketPotential,
			"market_potential_comment": r.MarketPotentialComment,
			"is_seen":                  r.IsSeen,
			"updated_at":               time.Now(),
		})
	if result.Error != nil {
		return Rating{}, updateFailed(result.Error)
	}
	if result.RowsAffected == 0 {
		return Rating{}, ErrRatingNotFound
	}

	return d.FindRating(ctx, r.EntryID, r.ID)
}

func (d *EntryDAO) DeleteRating(ctx context.Context, entryID, ratingID uint) error {
	result := d.db.WithContext(ctx).Where("id = ? AND entry_id = ?", ratingID, entryID).Delete(&Rating{})
	if result.Error != nil {
		return updateFailed(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRatingNotFound
	}

	return nil
}
