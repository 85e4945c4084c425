package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAverageFor(t *testing.T) {
	tests := []struct {
		name    string
		ratings []Rating
		want    RatingSummary
	}{
		{
			name: "no ratings falls back to zero",
			want: RatingSummary{},
		},
		{
			name: "single rating",
			ratings: []Rating{
				{JudgeID: 1, Design: 8, Functionality: 6, Usability: 7, MarketPotential: 9},
			},
			want: RatingSummary{Design: 8, Functionality: 6, Usability: 7, MarketPotential: 9, Average: 7.5},
		},
		{
			name: "two ratings",
			ratings: []Rating{
				{JudgeID: 1, Design: 8, Functionality: 6, Usability: 7, MarketPotential: 9},
				{JudgeID: 2, Design: 10, Functionality: 10, Usability: 10, MarketPotential: 10},
			},
			want: RatingSummary{Design: 9, Functionality: 8, Usability: 8.5, MarketPotential: 9.5, Average: 8.75},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AverageFor(Entry{Ratings: tt.ratings})

			assert.InDelta(t, tt.want.Design, got.Design, 1e-9)
			assert.InDelta(t, tt.want.Functionality, got.Functionality, 1e-9)
			assert.InDelta(t, tt.want.Usability, got.Usability, 1e-9)
			assert.InDelta(t, tt.want.MarketPotential, got.MarketPotential, 1e-9)
			assert.InDelta(t, tt.want.Average, got.Average, 1e-9)
		})
	}
}

func TestAverageFor_IsArithmeticMeanPerCriterion(t *testing.T) {
	ratings := []Rating{
		{Design: 1, Functionality: 2, Usability: 3, MarketPotential: 4},
		{Design: 2, Functionality: 4, Usability: 6, MarketPotential: 8},
		{Design: 3, Functionality: 0, Usability: 0, MarketPotential: 3},
	}

	got := AverageFor(Entry{Ratings: ratings})

	assert.InDelta(t, 2.0, got.Design, 1e-9)
	assert.InDelta(t, 2.0, got.Functionality, 1e-9)
	assert.InDelta(t, 3.0, got.Usability, 1e-9)
	assert.InDelta(t, 5.0, got.MarketPotential, 1e-9)
	assert.InDelta(t, 3.0, got.Average, 1e-9)
}

func TestRating_Summary(t *testing.T) {
	r := Rating{Design: 5, Functionality: 5, Usability: 5, MarketPotential: 9}

	assert.Equal(t, 6.0, r.Summary().Average)
}

func TestRatingUpdate_Apply(t *testing.T) {
	design := 9.0
	seen := true
	comment := "needs polish"

	r := RatingUpdate{Design: &design, IsSeen: &seen, UsabilityComment: &comment}.Apply(Rating{
		ID: 3, JudgeID: 7, Design: 2, Functionality: 4,
	})

	assert.Equal(t, uint(3), r.ID)
	assert.Equal(t, uint(7), r.JudgeID)
	assert.Equal(t, 9.0, r.Design)
	assert.Equal(t, 4.0, r.Functionality)
	assert.Equal(t, "needs polish", r.UsabilityComment)
	assert.True(t, r.IsSeen)
}

func TestNewRatedEntry(t *testing.T) {
	e := Entry{
		ID: 1,
		Ratings: []Rating{
			{JudgeID: 10, Design: 4, Functionality: 4, Usability: 4, MarketPotential: 4},
			{JudgeID: 11, Design: 8, Functionality: 8, Usability: 8, MarketPotential: 8},
		},
		Attachments: []Attachment{
			{PreviewURL: "https://cdn.example.com/brief.pdf", MimeType: "application/pdf"},
			{PreviewURL: "https://cdn.example.com/cover.png", MimeType: "image/png"},
		},
	}

	t.Run("judge viewer gets own rating", func(t *testing.T) {
		re := NewRatedEntry(e, 11)

		assert.Equal(t, 2, re.MarksGiven)
		assert.Equal(t, 6.0, re.Rating.Average)
		if assert.NotNil(t, re.MyRating) {
			assert.Equal(t, 8.0, re.MyRating.Average)
		}
		assert.Equal(t, "https://cdn.example.com/cover.png", re.FeaturedImage)
	})

	t.Run("other viewer has no own rating", func(t *testing.T) {
		re := NewRatedEntry(e, 99)

		assert.Nil(t, re.MyRating)
	})
}
