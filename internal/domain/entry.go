package domain

import (
	"errors"
	"mime"
	"net/url"
	"path"
	"strings"
	"time"
)

// MaxPriorEntries is the number of entries a contestant may already hold before
// further submissions are rejected.
const MaxPriorEntries = 4

var ErrEntryAlreadySubmitted = errors.New("a submitted entry cannot be moved back to draft")

type Attachment struct {
	ID         uint   `json:"id"`
	EntryID    uint   `json:"entryId"`
	Title      string `json:"title"`
	Caption    string `json:"caption"`
	PreviewURL string `json:"previewUrl"`
	FileType   string `json:"fileType"`
	MimeType   string `json:"mimeType"`
}

// DetectMimeType derives the attachment mime type from the extension of its preview URL.
func DetectMimeType(previewURL string) string {
	p := previewURL
	if u, err := url.Parse(previewURL); err == nil {
		p = u.Path
	}

	t := mime.TypeByExtension(strings.ToLower(path.Ext(p)))
	if i := strings.Index(t, ";"); i >= 0 {
		t = t[:i]
	}

	return t
}

func (a Attachment) IsImage() bool {
	return strings.HasPrefix(a.MimeType, "image/")
}

type AttachmentUpdate struct {
	Title      *string
	Caption    *string
	PreviewURL *string
	FileType   *string
}

func (u AttachmentUpdate) Apply(a Attachment) Attachment {
	setString(&a.Title, u.Title)
	setString(&a.Caption, u.Caption)
	setString(&a.FileType, u.FileType)
	if u.PreviewURL != nil {
		a.PreviewURL = *u.PreviewURL
		a.MimeType = DetectMimeType(a.PreviewURL)
	}

	return a
}

type Entry struct {
	ID                         uint         `json:"id"`
	ContestID                  uint         `json:"contestId"`
	ContestantID               uint         `json:"contestantId"`
	Contestant                 *Profile     `json:"contestant,omitempty"`
	ConversationID             uint         `json:"conversationId"`
	Title                      string       `json:"title"`
	DescriptionDesign          string       `json:"descriptionDesign"`
	DescriptionFunctionality   string       `json:"descriptionFunctionality"`
	DescriptionUsability       string       `json:"descriptionUsability"`
	DescriptionMarketPotential string       `json:"descriptionMarketPotential"`
	Attachments                []Attachment `json:"attachments"`
	Ratings                    []Rating     `json:"ratings,omitempty"`
	IsDraft                    bool         `json:"isDraft"`
	CreatedAt                  time.Time    `json:"createdAt"`
	UpdatedAt                  time.Time    `json:"updatedAt"`
}

// FeaturedImageURL is the preview of the first image attachment.
func (e Entry) FeaturedImageURL() string {
	for _, a := range e.Attachments {
		if a.IsImage() {
			return a.PreviewURL
		}
	}

	return ""
}

// RatingBy returns the rating the judge left on the entry.
func (e Entry) RatingBy(judgeID uint) (Rating, bool) {
	for _, r := range e.Ratings {
		if r.JudgeID == judgeID {
			return r, true
		}
	}

	return Rating{}, false
}

// LatestNonDraftFor selects the contestant's most recently created submitted entry.
// Entries created at the same instant are ordered by id.
func LatestNonDraftFor(entries []Entry, contestantID uint) (Entry, bool) {
	var (
		latest Entry
		found  bool
	)
	for _, e := range entries {
		if e.ContestantID != contestantID || e.IsDraft {
			continue
		}
		if !found || newerThan(e, latest) {
			latest = e
			found = true
		}
	}

	return latest, found
}

func newerThan(a, b Entry) bool {
	if a.CreatedAt.Equal(b.CreatedAt) {
		return a.ID > b.ID
	}

	return a.CreatedAt.After(b.CreatedAt)
}

// EntryUpdate carries the fields a contestant may change on an entry. Nil fields are untouched.
type EntryUpdate struct {
	Title                      *string
	DescriptionDesign          *string
	DescriptionFunctionality   *string
	DescriptionUsability       *string
	DescriptionMarketPotential *string
	Attachments                *[]Attachment
	IsDraft                    *bool
}

// Apply returns the updated entry and whether the update submitted it for judging.
func (u EntryUpdate) Apply(e Entry) (Entry, bool, error) {
	if u.IsDraft != nil && *u.IsDraft && !e.IsDraft {
		return Entry{}, false, ErrEntryAlreadySubmitted
	}

	setString(&e.Title, u.Title)
	setString(&e.DescriptionDesign, u.DescriptionDesign)
	setString(&e.DescriptionFunctionality, u.DescriptionFunctionality)
	setString(&e.DescriptionUsability, u.DescriptionUsability)
	setString(&e.DescriptionMarketPotential, u.DescriptionMarketPotential)
	if u.Attachments != nil {
		attachments := make([]Attachment, len(*u.Attachments))
		for i, a := range *u.Attachments {
			a.MimeType = DetectMimeType(a.PreviewURL)
			attachments[i] = a
		}
		e.Attachments = attachments
	}

	submitted := false
	if u.IsDraft != nil && !*u.IsDraft && e.IsDraft {
		e.IsDraft = false
		submitted = true
	}

	return e, submitted, nil
}
