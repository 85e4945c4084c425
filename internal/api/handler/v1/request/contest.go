package request

import (
	"errors"
	"time"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/contesthub/contest-api/internal/domain"
)

// Lowercase words joined by single hyphens, no leading or trailing hyphen.
const slugPattern = `^(?!-)(?!.*--)[a-z0-9-]{3,80}(?<!-)$`

var (
	slugExp = regexp2.MustCompile(slugPattern, regexp2.None)

	errInvalidSlug = errors.New("must be 3-80 lowercase letters, digits or single hyphens")
)

func validSlug(value any) error {
	v, isNil := validation.Indirect(value)
	s, _ := v.(string)
	if isNil || s == "" {
		return nil
	}

	ok, err := slugExp.MatchString(s)
	if err != nil || !ok {
		return errInvalidSlug
	}

	return nil
}

type PrizeRequest struct {
	Standing    int     `json:"standing"`
	Name        string  `json:"name"`
	Amount      float64 `json:"prize"`
	Currency    string  `json:"currency"`
	Royalty     float64 `json:"royalty"`
	Description string  `json:"description"`
}

func (p PrizeRequest) Validate() error {
	return validation.ValidateStruct(
		&p,
		validation.Field(&p.Standing, validation.Required, validation.Min(1)),
		validation.Field(&p.Name, validation.Required, validation.Length(1, 80)),
		validation.Field(&p.Amount, validation.Min(0.0)),
		validation.Field(&p.Currency, validation.Length(3, 3)),
		validation.Field(&p.Royalty, validation.Min(0.0), validation.Max(100.0)),
	)
}

type CriterionRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (c CriterionRequest) Validate() error {
	return validation.ValidateStruct(
		&c,
		validation.Field(&c.Title, validation.Required, validation.Length(1, 120)),
	)
}

type CreateContestRequest struct {
	Name                  string             `json:"name" binding:"required"`
	Slug                  string             `json:"slug"`
	FeaturedImageURL      string             `json:"featuredImageUrl"`
	Description           string             `json:"description"`
	Market                string             `json:"market"`
	Rules                 string             `json:"rules"`
	ProductCategory       string             `json:"productCategory"`
	InnovationCategory    string             `json:"innovationCategory"`
	Geography             string             `json:"geography"`
	DurationDays          int                `json:"duration"`
	StartTime             *time.Time         `json:"startTime"`
	Budget                float64            `json:"budget"`
	AllowJudgeSignup      bool               `json:"allowJudgeSignup"`
	AllowContestantSignup bool               `json:"allowContestantSignup"`
	IsDraft               bool               `json:"isDraft"`
	Prizes                []PrizeRequest     `json:"prizes"`
	Criteria              []CriterionRequest `json:"criteria"`
}

func (req *CreateContestRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 120)),
		validation.Field(&req.Slug, validation.By(validSlug)),
		validation.Field(&req.FeaturedImageURL, is.URL),
		validation.Field(&req.DurationDays, validation.Min(0), validation.Max(365)),
		validation.Field(&req.Budget, validation.Min(0.0)),
		validation.Field(&req.Prizes),
		validation.Field(&req.Criteria),
	)
}

func (req *CreateContestRequest) ToDomain() domain.Contest {
	c := domain.Contest{
		Name:                  req.Name,
		Slug:                  req.Slug,
		FeaturedImageURL:      req.FeaturedImageURL,
		Description:           req.Description,
		Market:                req.Market,
		Rules:                 req.Rules,
		ProductCategory:       req.ProductCategory,
		InnovationCategory:    req.InnovationCategory,
		Geography:             req.Geography,
		DurationDays:          req.DurationDays,
		Budget:                req.Budget,
		AllowJudgeSignup:      req.AllowJudgeSignup,
		AllowContestantSignup: req.AllowContestantSignup,
		IsDraft:               req.IsDraft,
		Prizes:                toPrizes(req.Prizes),
		Criteria:              toCriteria(req.Criteria),
	}
	if req.StartTime != nil {
		c.StartTime = *req.StartTime
	}

	return c
}

// UpdateContestRequest is a partial update; absent fields are left untouched.
type UpdateContestRequest struct {
	Name                  *string            `json:"name"`
	Slug                  *string            `json:"slug"`
	FeaturedImageURL      *string            `json:"featuredImageUrl"`
	Description           *string            `json:"description"`
	Market                *string            `json:"market"`
	Rules                 *string            `json:"rules"`
	ProductCategory       *string            `json:"productCategory"`
	InnovationCategory    *string            `json:"innovationCategory"`
	Geography             *string            `json:"geography"`
	DurationDays          *int               `json:"duration"`
	StartTime             *time.Time         `json:"startTime"`
	Budget                *float64           `json:"budget"`
	AllowJudgeSignup      *bool              `json:"allowJudgeSignup"`
	AllowContestantSignup *bool              `json:"allowContestantSignup"`
	IsDraft               *bool              `json:"isDraft"`
	Prizes                []PrizeRequest     `json:"prizes"`
	Criteria              []CriterionRequest `json:"criteria"`
}

func (req *UpdateContestRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(2, 120)),
		validation.Field(&req.Slug, validation.By(validSlug)),
		validation.Field(&req.FeaturedImageURL, is.URL),
		validation.Field(&req.DurationDays, validation.Min(0), validation.Max(365)),
		validation.Field(&req.Budget, validation.Min(0.0)),
		validation.Field(&req.Prizes),
		validation.Field(&req.Criteria),
	)
}

func (req *UpdateContestRequest) ToDomain() domain.ContestUpdate {
	return domain.ContestUpdate{
		Name:                  req.Name,
		Slug:                  req.Slug,
		FeaturedImageURL:      req.FeaturedImageURL,
		Description:           req.Description,
		Market:                req.Market,
		Rules:                 req.Rules,
		ProductCategory:       req.ProductCategory,
		InnovationCategory:    req.InnovationCategory,
		Geography:             req.Geography,
		DurationDays:          req.DurationDays,
		StartTime:             req.StartTime,
		Budget:                req.Budget,
		AllowJudgeSignup:      req.AllowJudgeSignup,
		AllowContestantSignup: req.AllowContestantSignup,
		IsDraft:               req.IsDraft,
		Prizes:                toPrizes(req.Prizes),
		Criteria:              toCriteria(req.Criteria),
	}
}

type LikeRequest struct {
	Liked bool `json:"liked"`
}

type ApproveRequest struct {
	IsActive bool `json:"isActive"`
}

func toPrizes(in []PrizeRequest) []domain.Prize {
	if in == nil {
		return nil
	}

	out := make([]domain.Prize, 0, len(in))
	for _, p := range in {
		out = append(out, domain.Prize(p))
	}

	return out
}

func toCriteria(in []CriterionRequest) []domain.Criterion {
	if in == nil {
		return nil
	}

	out := make([]domain.Criterion, 0, len(in))
	for _, c := range in {
		out = append(out, domain.Criterion(c))
	}

	return out
}
