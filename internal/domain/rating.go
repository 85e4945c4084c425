package domain

import "time"

type Rating struct {
	ID                     uint      `json:"id"`
	EntryID                uint      `json:"entryId"`
	JudgeID                uint      `json:"judgeId"`
	Judge                  *Profile  `json:"judge,omitempty"`
	ConversationID         uint      `json:"conversationId"`
	Design                 float64   `json:"design"`
	DesignComment          string    `json:"designComment"`
	Functionality          float64   `json:"functionality"`
	FunctionalityComment   string    `json:"functionalityComment"`
	Usability              float64   `json:"usability"`
	UsabilityComment       string    `json:"usabilityComment"`
	MarketPotential        float64   `json:"marketPotential"`
	MarketPotentialComment string    `json:"marketPotentialComment"`
	IsSeen                 bool      `json:"isSeen"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

// Summary is the rating viewed on its own: each criterion and their mean.
func (r Rating) Summary() RatingSummary {
	s := RatingSummary{
		Design:          r.Design,
		Functionality:   r.Functionality,
		Usability:       r.Usability,
		MarketPotential: r.MarketPotential,
	}
	s.Average = s.mean()

	return s
}

type RatingSummary struct {
	Design          float64 `json:"design"`
	Functionality   float64 `json:"functionality"`
	Usability       float64 `json:"usability"`
	MarketPotential float64 `json:"marketPotential"`
	Average         float64 `json:"average"`
}

func (s RatingSummary) mean() float64 {
	return (s.Design + s.Functionality + s.Usability + s.MarketPotential) / 4
}

// AverageFor averages each criterion over all ratings of the entry. An entry
// without ratings yields an all-zero summary.
func AverageFor(e Entry) RatingSummary {
	n := len(e.Ratings)
	if n == 0 {
		return RatingSummary{}
	}

	var s RatingSummary
	for _, r := range e.Ratings {
		s.Design += r.Design
		s.Functionality += r.Functionality
		s.Usability += r.Usability
		s.MarketPotential += r.MarketPotential
	}
	s.Design /= float64(n)
	s.Functionality /= float64(n)
	s.Usability /= float64(n)
	s.MarketPotential /= float64(n)
	s.Average = s.mean()

	return s
}

type RatingUpdate struct {
	Design                 *float64
	DesignComment          *string
	Functionality          *float64
	FunctionalityComment   *string
	Usability              *float64
	UsabilityComment       *string
	MarketPotential        *float64
	MarketPotentialComment *string
	IsSeen                 *bool
}

func (u RatingUpdate) Apply(r Rating) Rating {
	setFloat(&r.Design, u.Design)
	setString(&r.DesignComment, u.DesignComment)
	setFloat(&r.Functionality, u.Functionality)
	setString(&r.FunctionalityComment, u.FunctionalityComment)
	setFloat(&r.Usability, u.Usability)
	setString(&r.UsabilityComment, u.UsabilityComment)
	setFloat(&r.MarketPotential, u.MarketPotential)
	setString(&r.MarketPotentialComment, u.MarketPotentialComment)
	setBool(&r.IsSeen, u.IsSeen)

	return r
}

// RatedEntry is an entry decorated with its aggregate rating and, for a judge
// viewer, that judge's own rating.
type RatedEntry struct {
	Entry
	FeaturedImage string         `json:"featuredImageUrl"`
	MarksGiven    int            `json:"marksGiven"`
	Rating        RatingSummary  `json:"rating"`
	MyRating      *RatingSummary `json:"myRating,omitempty"`
}

func NewRatedEntry(e Entry, viewerID uint) RatedEntry {
	re := RatedEntry{
		Entry:         e,
		FeaturedImage: e.FeaturedImageURL(),
		MarksGiven:    len(e.Ratings),
		Rating:        AverageFor(e),
	}
	if r, ok := e.RatingBy(viewerID); ok {
		mine := r.Summary()
		re.MyRating = &mine
	}

	return re
}
