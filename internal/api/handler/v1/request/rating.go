package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/contesthub/contest-api/internal/domain"
)

const maxScore = 10.0

type AddRatingRequest struct {
	Design                 float64 `json:"design"`
	DesignComment          string  `json:"designComment"`
	Functionality          float64 `json:"functionality"`
	FunctionalityComment   string  `json:"functionalityComment"`
	Usability              float64 `json:"usability"`
	UsabilityComment       string  `json:"usabilityComment"`
	MarketPotential        float64 `json:"marketPotential"`
	MarketPotentialComment string  `json:"marketPotentialComment"`
}

func (req *AddRatingRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Design, validation.Min(0.0), validation.Max(maxScore)),
		validation.Field(&req.Functionality, validation.Min(0.0), validation.Max(maxScore)),
		validation.Field(&req.Usability, validation.Min(0.0), validation.Max(maxScore)),
		validation.Field(&req.MarketPotential, validation.Min(0.0), validation.Max(maxScore)),
	)
}

func (req *AddRatingRequest) ToDomain() domain.Rating {
	return domain.Rating{
		Design:                 req.Design,
		DesignComment:          req.DesignComment,
		Functionality:          req.Functionality,
		FunctionalityComment:   req.FunctionalityComment,
		Usability:              req.Usability,
		UsabilityComment:       req.UsabilityComment,
		MarketPotential:        req.MarketPotential,
		MarketPotentialComment: req.MarketPotentialComment,
	}
}

type UpdateRatingRequest struct {
	Design                 *float64 `json:"design"`
	DesignComment          *string  `json:"designComment"`
	Functionality          *float64 `json:"functionality"`
	FunctionalityComment   *string  `json:"functionalityComment"`
	Usability              *float64 `json:"usability"`
	UsabilityComment       *string  `json:"usabilityComment"`
	MarketPotential        *float64 `json:"marketPotential"`
	MarketPotentialComment *string  `json:"marketPotentialComment"`
	IsSeen                 *bool    `json:"isSeen"`
}

func (req *UpdateRatingRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Design, validation.Min(0.0), validation.Max(maxScore)),
		validation.Field(&req.Functionality, validation.Min(0.0), validation.Max(maxScore)),
		validation.Field(&req.Usability, validation.Min(0.0), validation.Max(maxScore)),
		validation.Field(&req.MarketPotential, validation.Min(0.0), validation.Max(maxScore)),
	)
}

func (req *UpdateRatingRequest) ToDomain() domain.RatingUpdate {
	return domain.RatingUpdate(*req)
}
