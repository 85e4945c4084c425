package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrContestNotFound       = errors.New("contest not found")
	ErrContestShortIDExists  = errors.New("contest short id already exists")
	ErrParticipationNotFound = errors.New("participation not found")
	ErrAlreadyEnrolled       = errors.New("user already participates in this contest")
	ErrRankConflict          = errors.New("contest ranking changed concurrently")
)

type Contest struct {
	ID                    uint   `gorm:"primaryKey"`
	ShortID               string `gorm:"uniqueIndex;not null"`
	Name                  string `gorm:"not null"`
	Slug                  string `gorm:"index"`
	FeaturedImageURL      string
	Description           string
	Market                string
	Rules                 string
	ProductCategory       string
	InnovationCategory    string
	Geography             string
	DurationDays          int `gorm:"not null"`
	StartTime             time.Time
	Budget                float64
	Views                 int `gorm:"not null;default:0"`
	Shares                int `gorm:"not null;default:0"`
	AllowJudgeSignup      bool
	AllowContestantSignup bool
	IsDraft               bool
	RankVersion           int `gorm:"not null;default:0"`

	Prizes         []Prize         `gorm:"foreignKey:ContestID;constraint:OnDelete:CASCADE"`
	Criteria       []Criterion     `gorm:"foreignKey:ContestID;constraint:OnDelete:CASCADE"`
	Likes          []ContestLike   `gorm:"foreignKey:ContestID;constraint:OnDelete:CASCADE"`
	Participations []Participation `gorm:"foreignKey:ContestID;constraint:OnDelete:CASCADE"`
	Entries        []Entry         `gorm:"foreignKey:ContestID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Prize struct {
	ID          uint `gorm:"primaryKey"`
	ContestID   uint `gorm:"index;not null"`
	Standing    int  `gorm:"not null"`
	Name        string
	Amount      float64
	Currency    string
	Royalty     float64
	Description string
}

type Criterion struct {
	ID        uint `gorm:"primaryKey"`
	ContestID uint `gorm:"index;not null"`
	Position  int  `gorm:"not null"`
	Title     string
	Body      string
}

type ContestLike struct {
	ContestID uint `gorm:"primaryKey"`
	UserID    uint `gorm:"primaryKey"`
	CreatedAt time.Time
}

// Participation rows of both roles share one unique (contest_id, user_id) index,
// so a user can enroll once per contest whatever the role.
type Participation struct {
	ID           uint   `gorm:"primaryKey"`
	ContestID    uint   `gorm:"not null;uniqueIndex:idx_participations_contest_user"`
	UserID       uint   `gorm:"not null;uniqueIndex:idx_participations_contest_user"`
	User         User   `gorm:"foreignKey:UserID"`
	Role         string `gorm:"not null;index"` // "contestant" or "judge"
	IsActive     bool   `gorm:"not null"`
	CurrentRank  int    `gorm:"not null;default:0"`
	PreviousRank int    `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RankUpdate is the persisted form of a contestant rank change.
type RankUpdate struct {
	ParticipationID uint
	CurrentRank     int
	PreviousRank    int
}

type ContestDAO struct {
	db *gorm.DB
}

func NewContestDAO(db *gorm.DB) *ContestDAO {
	return &ContestDAO{
		db: db,
	}
}

func (d *ContestDAO) withRoster(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Prizes", func(db *gorm.DB) *gorm.DB { return db.Order("standing") }).
		Preload("Criteria", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Likes").
		Preload("Participations", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Participations.User")
}

func (d *ContestDAO) withEntries(db *gorm.DB) *gorm.DB {
	return d.withRoster(db).
		Preload("Entries", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC, id DESC") }).
		Preload("Entries.Contestant").
		Preload("Entries.Attachments", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Entries.Ratings", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Entries.Ratings.Judge")
}

func (d *ContestDAO) Insert(ctx context.Context, contest Contest) (Contest, error) {
	result := d.db.WithContext(ctx).Create(&contest)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return Contest{}, ErrContestShortIDExists
		}

		return Contest{}, updateFailed(result.Error)
	}

	return contest, nil
}

func (d *ContestDAO) FindByID(ctx context.Context, id uint) (Contest, error) {
	return d.first(ctx, d.withRoster(d.db.WithContext(ctx)), "id = ?", id)
}

func (d *ContestDAO) FindByShortID(ctx context.Context, shortID string) (Contest, error) {
	return d.first(ctx, d.withRoster(d.db.WithContext(ctx)), "short_id = ?", shortID)
}

// FindAggregate loads the contest together with every entry, attachment and rating.
func (d *ContestDAO) FindAggregate(ctx context.Context, id uint) (Contest, error) {
	return d.first(ctx, d.withEntries(d.db.WithContext(ctx)), "id = ?", id)
}

func (d *ContestDAO) FindAggregateByShortID(ctx context.Context, shortID string) (Contest, error) {
	return d.first(ctx, d.withEntries(d.db.WithContext(ctx)), "short_id = ?", shortID)
}

func (d *ContestDAO) first(_ context.Context, db *gorm.DB, query string, arg any) (Contest, error) {
	var contest Contest

	result := db.Where(query, arg).First(&contest)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Contest{}, ErrContestNotFound
		}

		return Contest{}, result.Error
	}

	return contest, nil
}

func (d *ContestDAO) FindAll(ctx context.Context, includeDrafts bool) ([]Contest, error) {
	var contests []Contest

	db := d.withRoster(d.db.WithContext(ctx))
	if !includeDrafts {
		db = db.Where("is_draft = ?", false)
	}

	result := db.Order("start_time DESC").Find(&contests)
	if result.Error != nil {
		return nil, result.Error
	}

	return contests, nil
}

// Update writes the editable contest columns and replaces prizes and criteria.
func (d *ContestDAO) Update(ctx context.Context, contest Contest) (Contest, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Contest{ID: contest.ID}).
			Select("name", "slug", "featured_image_url", "description", "market", "rules",
				"product_category", "innovation_category", "geography", "duration_days", "start_time",
				"budget", "allow_judge_signup", "allow_contestant_signup", "is_draft").
			Updates(&contest)
		if result.Error != nil {
			return updateFailed(result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrContestNotFound
		}

		if err := tx.Where("contest_id = ?", contest.ID).Delete(&Prize{}).Error; err != nil {
			return updateFailed(err)
		}
		if err := tx.Where("contest_id = ?", contest.ID).Delete(&Criterion{}).Error; err != nil {
			return updateFailed(err)
		}
		for i := range contest.Prizes {
			contest.Prizes[i].ID = 0
			contest.Prizes[i].ContestID = contest.ID
		}
		for i := range contest.Criteria {
			contest.Criteria[i].ID = 0
			contest.Criteria[i].ContestID = contest.ID
		}
		if len(contest.Prizes) > 0 {
			if err := tx.Create(&contest.Prizes).Error; err != nil {
				return updateFailed(err)
			}
		}
		if len(contest.Criteria) > 0 {
			if err := tx.Create(&contest.Criteria).Error; err != nil {
				return updateFailed(err)
			}
		}

		return nil
	})
	if err != nil {
		return Contest{}, err
	}

	return d.FindByID(ctx, contest.ID)
}

func (d *ContestDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Contest{}, id)
	if result.Error != nil {
		return updateFailed(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrContestNotFound
	}

	return nil
}

func (d *ContestDAO) IncrementViews(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Model(&Contest{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if result.Error != nil {
		return updateFailed(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrContestNotFound
	}

	return nil
}

func (d *ContestDAO) SetLike(ctx context.Context, contestID, userID uint, liked bool) error {
	db := d.db.WithContext(ctx)
	if !liked {
		if err := db.Where("contest_id = ? AND user_id = ?", contestID, userID).Delete(&ContestLike{}).Error; err != nil {
			return updateFailed(err)
		}

		return nil
	}

	err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&ContestLike{ContestID: contestID, UserID: userID}).Error
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrContestNotFound
		}

		return updateFailed(err)
	}

	return nil
}

// InsertParticipation enrolls a user. The unique index rejects a second
// enrollment of the same user in either role, also under concurrent requests.
func (d *ContestDAO) InsertParticipation(ctx context.Context, p Participation) (Participation, error) {
	result := d.db.WithContext(ctx).Create(&p)
	if result.Error != nil {
		switch {
		case isUniqueViolation(result.Error):
			return Participation{}, ErrAlreadyEnrolled
		case isForeignKeyViolation(result.Error):
			return Participation{}, ErrContestNotFound
		}

		return Participation{}, updateFailed(result.Error)
	}

	return p, nil
}

func (d *ContestDAO) FindParticipations(ctx context.Context, contestID uint, role string) ([]Participation, error) {
	var ps []Participation

	result := d.db.WithContext(ctx).Preload("User").
		Where("contest_id = ? AND role = ?", contestID, role).
		Order("id").Find(&ps)
	if result.Error != nil {
		return nil, result.Error
	}

	return ps, nil
}

func (d *ContestDAO) FindParticipation(ctx context.Context, contestID, participationID uint, role string) (Participation, error) {
	var p Participation

	result := d.db.WithContext(ctx).
		Where("id = ? AND contest_id = ? AND role = ?", participationID, contestID, role).
		First(&p)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Participation{}, ErrParticipationNotFound
		}

		return Participation{}, result.Error
	}

	return p, nil
}

func (d *ContestDAO) SetParticipationActive(ctx context.Context, contestID, participationID uint, role string, active bool) error {
	result := d.db.WithContext(ctx).Model(&Participation{}).
		Where("id = ? AND contest_id = ? AND role = ?", participationID, contestID, role).
		Update("is_active", active)
	if result.Error != nil {
		return updateFailed(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrParticipationNotFound
	}

	return nil
}

func (d *ContestDAO) DeleteParticipation(ctx context.Context, contestID, participationID uint, role string) error {
	result := d.db.WithContext(ctx).
		Where("id = ? AND contest_id = ? AND role = ?", participationID, contestID, role).
		Delete(&Participation{})
	if result.Error != nil {
		return updateFailed(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrParticipationNotFound
	}

	return nil
}

// SaveRanks writes the rank changes only if the contest ranking version still
// equals expectedVersion, and bumps the version in the same transaction.
func (d *ContestDAO) SaveRanks(ctx context.Context, contestID uint, expectedVersion int, updates []RankUpdate) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Contest{}).
			Where("id = ? AND rank_version = ?", contestID, expectedVersion).
			UpdateColumn("rank_version", gorm.Expr("rank_version + ?", 1))
		if result.Error != nil {
			return updateFailed(result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrRankConflict
		}

		for _, u := range updates {
			err := tx.Model(&Participation{}).
				Where("id = ? AND contest_id = ?", u.ParticipationID, contestID).
				UpdateColumns(map[string]any{
					"current_rank":  u.CurrentRank,
					"previous_rank": u.PreviousRank,
				}).Error
			if err != nil {
				return updateFailed(err)
			}
		}

		return nil
	})
}
