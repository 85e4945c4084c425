package request

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

type PostMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

func (req *PostMessageRequest) Validate() error {
	req.Body = strings.TrimSpace(req.Body)

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Body, validation.Required, validation.Length(1, 4000)),
	)
}
