package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/contesthub/contest-api/internal/domain"
)

type AttachmentRequest struct {
	Title      string `json:"title"`
	Caption    string `json:"caption"`
	PreviewURL string `json:"previewUrl"`
	FileType   string `json:"fileType"`
}

func (a AttachmentRequest) Validate() error {
	return validation.ValidateStruct(
		&a,
		validation.Field(&a.Title, validation.Length(0, 120)),
		validation.Field(&a.PreviewURL, validation.Required, is.URL),
	)
}

func (a AttachmentRequest) ToDomain() domain.Attachment {
	return domain.Attachment{
		Title:      a.Title,
		Caption:    a.Caption,
		PreviewURL: a.PreviewURL,
		FileType:   a.FileType,
	}
}

type SubmitEntryRequest struct {
	Title                      string              `json:"title" binding:"required"`
	DescriptionDesign          string              `json:"descriptionDesign"`
	DescriptionFunctionality   string              `json:"descriptionFunctionality"`
	DescriptionUsability       string              `json:"descriptionUsability"`
	DescriptionMarketPotential string              `json:"descriptionMarketPotential"`
	Attachments                []AttachmentRequest `json:"attachments"`
}

func (req *SubmitEntryRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 160)),
		validation.Field(&req.Attachments),
	)
}

func (req *SubmitEntryRequest) ToDomain() domain.Entry {
	return domain.Entry{
		Title:                      req.Title,
		DescriptionDesign:          req.DescriptionDesign,
		DescriptionFunctionality:   req.DescriptionFunctionality,
		DescriptionUsability:       req.DescriptionUsability,
		DescriptionMarketPotential: req.DescriptionMarketPotential,
		Attachments:                toAttachments(req.Attachments),
	}
}

// UpdateEntryRequest is a partial update. Sending isDraft=false submits the
// entry for judging.
type UpdateEntryRequest struct {
	Title                      *string              `json:"title"`
	DescriptionDesign          *string              `json:"descriptionDesign"`
	DescriptionFunctionality   *string              `json:"descriptionFunctionality"`
	DescriptionUsability       *string              `json:"descriptionUsability"`
	DescriptionMarketPotential *string              `json:"descriptionMarketPotential"`
	Attachments                *[]AttachmentRequest `json:"attachments"`
	IsDraft                    *bool                `json:"isDraft"`
}

func (req *UpdateEntryRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.NilOrNotEmpty, validation.Length(1, 160)),
	)
	if err != nil {
		return err
	}
	if req.Attachments != nil {
		return validation.Validate(*req.Attachments)
	}

	return nil
}

func (req *UpdateEntryRequest) ToDomain() domain.EntryUpdate {
	u := domain.EntryUpdate{
		Title:                      req.Title,
		DescriptionDesign:          req.DescriptionDesign,
		DescriptionFunctionality:   req.DescriptionFunctionality,
		DescriptionUsability:       req.DescriptionUsability,
		DescriptionMarketPotential: req.DescriptionMarketPotential,
		IsDraft:                    req.IsDraft,
	}
	if req.Attachments != nil {
		attachments := toAttachments(*req.Attachments)
		if attachments == nil {
			attachments = []domain.Attachment{}
		}
		u.Attachments = &attachments
	}

	return u
}

type UpdateAttachmentRequest struct {
	Title      *string `json:"title"`
	Caption    *string `json:"caption"`
	PreviewURL *string `json:"previewUrl"`
	FileType   *string `json:"fileType"`
}

func (req *UpdateAttachmentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Length(0, 120)),
		validation.Field(&req.PreviewURL, validation.NilOrNotEmpty, is.URL),
	)
}

func (req *UpdateAttachmentRequest) ToDomain() domain.AttachmentUpdate {
	return domain.AttachmentUpdate{
		Title:      req.Title,
		Caption:    req.Caption,
		PreviewURL: req.PreviewURL,
		FileType:   req.FileType,
	}
}

func toAttachments(in []AttachmentRequest) []domain.Attachment {
	if in == nil {
		return nil
	}

	out := make([]domain.Attachment, 0, len(in))
	for _, a := range in {
		out = append(out, a.ToDomain())
	}

	return out
}
