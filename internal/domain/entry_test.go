package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestNonDraftFor(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	entries := []Entry{
		{ID: 1, ContestantID: 5, IsDraft: false, CreatedAt: base},
		{ID: 2, ContestantID: 5, IsDraft: false, CreatedAt: base.Add(time.Hour)},
		{ID: 3, ContestantID: 5, IsDraft: true, CreatedAt: base.Add(2 * time.Hour)},
		{ID: 4, ContestantID: 6, IsDraft: false, CreatedAt: base.Add(3 * time.Hour)},
		{ID: 5, ContestantID: 7, IsDraft: false, CreatedAt: base},
		{ID: 6, ContestantID: 7, IsDraft: false, CreatedAt: base},
		{ID: 7, ContestantID: 8, IsDraft: true, CreatedAt: base},
	}

	tests := []struct {
		name         string
		contestantID uint
		wantID       uint
		wantFound    bool
	}{
		{name: "skips newer draft", contestantID: 5, wantID: 2, wantFound: true},
		{name: "single submission", contestantID: 6, wantID: 4, wantFound: true},
		{name: "same timestamp prefers higher id", contestantID: 7, wantID: 6, wantFound: true},
		{name: "only drafts", contestantID: 8, wantFound: false},
		{name: "no entries", contestantID: 9, wantFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := LatestNonDraftFor(entries, tt.contestantID)

			assert.Equal(t, tt.wantFound, found)
			if tt.wantFound {
				assert.Equal(t, tt.wantID, got.ID)
			}
		})
	}
}

func TestEntryUpdate_Apply(t *testing.T) {
	title := "Solar kettle v2"
	submit := false
	backToDraft := true

	t.Run("submitting a draft reports the transition", func(t *testing.T) {
		e, submitted, err := EntryUpdate{Title: &title, IsDraft: &submit}.Apply(Entry{ID: 1, IsDraft: true, Title: "Solar kettle"})

		require.NoError(t, err)
		assert.True(t, submitted)
		assert.False(t, e.IsDraft)
		assert.Equal(t, title, e.Title)
	})

	t.Run("re-submitting is not a transition", func(t *testing.T) {
		_, submitted, err := EntryUpdate{IsDraft: &submit}.Apply(Entry{ID: 1, IsDraft: false})

		require.NoError(t, err)
		assert.False(t, submitted)
	})

	t.Run("submitted entry cannot return to draft", func(t *testing.T) {
		_, _, err := EntryUpdate{IsDraft: &backToDraft}.Apply(Entry{ID: 1, IsDraft: false})

		assert.ErrorIs(t, err, ErrEntryAlreadySubmitted)
	})

	t.Run("attachments are replaced with detected mime types", func(t *testing.T) {
		attachments := []Attachment{{Title: "front", PreviewURL: "https://cdn.example.com/a/front.JPG?v=2"}}

		e, _, err := EntryUpdate{Attachments: &attachments}.Apply(Entry{
			Attachments: []Attachment{{Title: "old"}},
		})

		require.NoError(t, err)
		require.Len(t, e.Attachments, 1)
		assert.Equal(t, "front", e.Attachments[0].Title)
		assert.Equal(t, "image/jpeg", e.Attachments[0].MimeType)
		assert.Equal(t, "https://cdn.example.com/a/front.JPG?v=2", e.FeaturedImageURL())
	})
}

func TestAttachmentUpdate_Apply(t *testing.T) {
	preview := "https://cdn.example.com/deck.pdf"
	caption := "pitch deck"

	a := AttachmentUpdate{PreviewURL: &preview, Caption: &caption}.Apply(Attachment{
		ID: 4, Title: "deck", PreviewURL: "https://cdn.example.com/deck.png", MimeType: "image/png",
	})

	assert.Equal(t, "deck", a.Title)
	assert.Equal(t, "pitch deck", a.Caption)
	assert.Equal(t, "application/pdf", a.MimeType)
	assert.False(t, a.IsImage())
}
