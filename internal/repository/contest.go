package repository

import (
	"context"
	"fmt"

	"github.com/contesthub/contest-api/internal/domain"
	"github.com/contesthub/contest-api/internal/repository/dao"
)

var (
	ErrContestNotFound       = dao.ErrContestNotFound
	ErrContestShortIDExists  = dao.ErrContestShortIDExists
	ErrParticipationNotFound = dao.ErrParticipationNotFound
	ErrAlreadyEnrolled       = dao.ErrAlreadyEnrolled
	ErrRankConflict          = dao.ErrRankConflict
	ErrUpdateFailed          = dao.ErrUpdateFailed
)

type ContestDAO interface {
	Insert(ctx context.Context, contest dao.Contest) (dao.Contest, error)
	FindByID(ctx context.Context, id uint) (dao.Contest, error)
	FindByShortID(ctx context.Context, shortID string) (dao.Contest, error)
	FindAggregate(ctx context.Context, id uint) (dao.Contest, error)
	FindAggregateByShortID(ctx context.Context, shortID string) (dao.Contest, error)
	FindAll(ctx context.Context, includeDrafts bool) ([]dao.Contest, error)
	Update(ctx context.Context, contest dao.Contest) (dao.Contest, error)
	Delete(ctx context.Context, id uint) error
	IncrementViews(ctx context.Context, id uint) error
	SetLike(ctx context.Context, contestID, userID uint, liked bool) error
	InsertParticipation(ctx context.Context, p dao.Participation) (dao.Participation, error)
	FindParticipations(ctx context.Context, contestID uint, role string) ([]dao.Participation, error)
	FindParticipation(ctx context.Context, contestID, participationID uint, role string) (dao.Participation, error)
	SetParticipationActive(ctx context.Context, contestID, participationID uint, role string, active bool) error
	DeleteParticipation(ctx context.Context, contestID, participationID uint, role string) error
	SaveRanks(ctx context.Context, contestID uint, expectedVersion int, updates []dao.RankUpdate) error
}

type ContestRepository struct {
	dao ContestDAO
}

func NewContestRepository(dao ContestDAO) *ContestRepository {
	return &ContestRepository{
		dao: dao,
	}
}

func (r *ContestRepository) Create(ctx context.Context, c domain.Contest) (domain.Contest, error) {
	created, err := r.dao.Insert(ctx, contestDomainToDao(c))
	if err != nil {
		return domain.Contest{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return contestDaoToDomain(created), nil
}

func (r *ContestRepository) FindByID(ctx context.Context, id uint) (domain.Contest, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Contest{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return contestDaoToDomain(found), nil
}

func (r *ContestRepository) FindByShortID(ctx context.Context, shortID string) (domain.Contest, error) {
	found, err := r.dao.FindByShortID(ctx, shortID)
	if err != nil {
		return domain.Contest{}, fmt.Errorf("r.dao.FindByShortID -> %w", err)
	}

	return contestDaoToDomain(found), nil
}

// FindAggregate returns the contest with its entries and their ratings.
func (r *ContestRepository) FindAggregate(ctx context.Context, id uint) (domain.Contest, error) {
	found, err := r.dao.FindAggregate(ctx, id)
	if err != nil {
		return domain.Contest{}, fmt.Errorf("r.dao.FindAggregate -> %w", err)
	}

	return contestDaoToDomain(found), nil
}

func (r *ContestRepository) FindAggregateByShortID(ctx context.Context, shortID string) (domain.Contest, error) {
	found, err := r.dao.FindAggregateByShortID(ctx, shortID)
	if err != nil {
		return domain.Contest{}, fmt.Errorf("r.dao.FindAggregateByShortID -> %w", err)
	}

	return contestDaoToDomain(found), nil
}

func (r *ContestRepository) FindAll(ctx context.Context, includeDrafts bool) ([]domain.Contest, error) {
	found, err := r.dao.FindAll(ctx, includeDrafts)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	out := make([]domain.Contest, len(found))
	for i, c := range found {
		out[i] = contestDaoToDomain(c)
	}

	return out, nil
}

func (r *ContestRepository) Update(ctx context.Context, c domain.Contest) (domain.Contest, error) {
	updated, err := r.dao.Update(ctx, contestDomainToDao(c))
	if err != nil {
		return domain.Contest{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return contestDaoToDomain(updated), nil
}

func (r *ContestRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *ContestRepository) IncrementViews(ctx context.Context, id uint) error {
	if err := r.dao.IncrementViews(ctx, id); err != nil {
		return fmt.Errorf("r.dao.IncrementViews -> %w", err)
	}

	return nil
}

func (r *ContestRepository) SetLike(ctx context.Context, contestID, userID uint, liked bool) error {
	if err := r.dao.SetLike(ctx, contestID, userID, liked); err != nil {
		return fmt.Errorf("r.dao.SetLike -> %w", err)
	}

	return nil
}

func (r *ContestRepository) AddParticipation(ctx context.Context, p domain.Participation) (domain.Participation, error) {
	created, err := r.dao.InsertParticipation(ctx, dao.Participation{
		ContestID: p.ContestID,
		UserID:    p.UserID,
		Role:      string(p.Role),
		IsActive:  p.IsActive,
	})
	if err != nil {
		return domain.Participation{}, fmt.Errorf("r.dao.InsertParticipation -> %w", err)
	}

	return participationDaoToDomain(created), nil
}

func (r *ContestRepository) FindParticipations(ctx context.Context, contestID uint, role domain.Role) ([]domain.Participation, error) {
	found, err := r.dao.FindParticipations(ctx, contestID, string(role))
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindParticipations -> %w", err)
	}

	out := make([]domain.Participation, len(found))
	for i, p := range found {
		out[i] = participationDaoToDomain(p)
	}

	return out, nil
}

func (r *ContestRepository) FindParticipation(ctx context.Context, contestID, participationID uint, role domain.Role) (domain.Participation, error) {
	found, err := r.dao.FindParticipation(ctx, contestID, participationID, string(role))
	if err != nil {
		return domain.Participation{}, fmt.Errorf("r.dao.FindParticipation -> %w", err)
	}

	return participationDaoToDomain(found), nil
}

func (r *ContestRepository) SetParticipationActive(ctx context.Context, contestID, participationID uint, role domain.Role, active bool) error {
	if err := r.dao.SetParticipationActive(ctx, contestID, participationID, string(role), active); err != nil {
		return fmt.Errorf("r.dao.SetParticipationActive -> %w", err)
	}

	return nil
}

func (r *ContestRepository) RemoveParticipation(ctx context.Context, contestID, participationID uint, role domain.Role) error {
	if err := r.dao.DeleteParticipation(ctx, contestID, participationID, string(role)); err != nil {
		return fmt.Errorf("r.dao.DeleteParticipation -> %w", err)
	}

	return nil
}

func (r *ContestRepository) SaveRanks(ctx context.Context, contestID uint, version int, changes []domain.RankChange) error {
	updates := make([]dao.RankUpdate, len(changes))
	for i, ch := range changes {
		updates[i] = dao.RankUpdate{
			ParticipationID: ch.ParticipationID,
			CurrentRank:     ch.CurrentRank,
			PreviousRank:    ch.PreviousRank,
		}
	}

	if err := r.dao.SaveRanks(ctx, contestID, version, updates); err != nil {
		return fmt.Errorf("r.dao.SaveRanks -> %w", err)
	}

	return nil
}

func contestDomainToDao(c domain.Contest) dao.Contest {
	prizes := make([]dao.Prize, len(c.Prizes))
	for i, p := range c.Prizes {
		prizes[i] = dao.Prize{
			Standing:    p.Standing,
			Name:        p.Name,
			Amount:      p.Amount,
			Currency:    p.Currency,
			Royalty:     p.Royalty,
			Description: p.Description,
		}
	}
	criteria := make([]dao.Criterion, len(c.Criteria))
	for i, cr := range c.Criteria {
		criteria[i] = dao.Criterion{Position: i, Title: cr.Title, Body: cr.Body}
	}

	return dao.Contest{
		ID:                    c.ID,
		ShortID:               c.ShortID,
		Name:                  c.Name,
		Slug:                  c.Slug,
		FeaturedImageURL:      c.FeaturedImageURL,
		Description:           c.Description,
		Market:                c.Market,
		Rules:                 c.Rules,
		ProductCategory:       c.ProductCategory,
		InnovationCategory:    c.InnovationCategory,
		Geography:             c.Geography,
		DurationDays:          c.DurationDays,
		StartTime:             c.StartTime,
		Budget:                c.Budget,
		AllowJudgeSignup:      c.AllowJudgeSignup,
		AllowContestantSignup: c.AllowContestantSignup,
		IsDraft:               c.IsDraft,
		Prizes:                prizes,
		Criteria:              criteria,
	}
}

func contestDaoToDomain(c dao.Contest) domain.Contest {
	out := domain.Contest{
		ID:                    c.ID,
		ShortID:               c.ShortID,
		Name:                  c.Name,
		Slug:                  c.Slug,
		FeaturedImageURL:      c.FeaturedImageURL,
		Description:           c.Description,
		Market:                c.Market,
		Rules:                 c.Rules,
		ProductCategory:       c.ProductCategory,
		InnovationCategory:    c.InnovationCategory,
		Geography:             c.Geography,
		DurationDays:          c.DurationDays,
		StartTime:             c.StartTime,
		Budget:                c.Budget,
		Views:                 c.Views,
		Shares:                c.Shares,
		AllowJudgeSignup:      c.AllowJudgeSignup,
		AllowContestantSignup: c.AllowContestantSignup,
		IsDraft:               c.IsDraft,
		RankVersion:           c.RankVersion,
		Likes:                 make([]uint, 0, len(c.Likes)),
		Prizes:                make([]domain.Prize, 0, len(c.Prizes)),
		Criteria:              make([]domain.Criterion, 0, len(c.Criteria)),
		Contestants:           []domain.Participation{},
		Judges:                []domain.Participation{},
		CreatedAt:             c.CreatedAt,
		UpdatedAt:             c.UpdatedAt,
	}

	for _, l := range c.Likes {
		out.Likes = append(out.Likes, l.UserID)
	}
	for _, p := range c.Prizes {
		out.Prizes = append(out.Prizes, domain.Prize{
			Standing:    p.Standing,
			Name:        p.Name,
			Amount:      p.Amount,
			Currency:    p.Currency,
			Royalty:     p.Royalty,
			Description: p.Description,
		})
	}
	for _, cr := range c.Criteria {
		out.Criteria = append(out.Criteria, domain.Criterion{Title: cr.Title, Body: cr.Body})
	}
	for _, p := range c.Participations {
		dp := participationDaoToDomain(p)
		if dp.Role == domain.RoleJudge {
			out.Judges = append(out.Judges, dp)
		} else {
			out.Contestants = append(out.Contestants, dp)
		}
	}
	if c.Entries != nil {
		out.Entries = make([]domain.Entry, len(c.Entries))
		for i, e := range c.Entries {
			out.Entries[i] = entryDaoToDomain(e)
		}
	}

	out.RefreshCounts()

	return out
}

func participationDaoToDomain(p dao.Participation) domain.Participation {
	return domain.Participation{
		ID:           p.ID,
		ContestID:    p.ContestID,
		UserID:       p.UserID,
		User:         profileOf(p.User),
		Role:         domain.Role(p.Role),
		IsActive:     p.IsActive,
		CurrentRank:  p.CurrentRank,
		PreviousRank: p.PreviousRank,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
