package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/contesthub/contest-api/internal/service"
)

// Err is the JSON body of every failed request.
type Err struct {
	Code    string `json:"code" example:"040"`
	Name    string `json:"name" example:"Not Found"`
	Message string `json:"message" example:"contest with id 7 not found"`
	Status  int    `json:"-"`
}

func (e *Err) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Code, e.Name, e.Message)
}

func RenderErr(ctx *gin.Context, e *Err) {
	if e.Status >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("path", ctx.FullPath()),
			zap.String("message", e.Message),
		)
		// Internal details stay in the log.
		e = &Err{Code: e.Code, Name: e.Name, Message: http.StatusText(e.Status), Status: e.Status}
	}

	ctx.AbortWithStatusJSON(e.Status, e)
}

func ErrBadRequest(err error) *Err {
	return &Err{Code: "001", Name: "Invalid Request", Message: err.Error(), Status: http.StatusUnprocessableEntity}
}

func ErrNotFound(resource, key string, value any) *Err {
	return &Err{
		Code:    "040",
		Name:    "Not Found",
		Message: fmt.Sprintf("%s with %s %v not found", resource, key, value),
		Status:  http.StatusNotFound,
	}
}

func ErrConflict(name string, err error) *Err {
	return &Err{Code: "005", Name: name, Message: err.Error(), Status: http.StatusConflict}
}

func ErrTooManySubmissions(err error) *Err {
	return &Err{Code: "004", Name: "Too Many Submissions", Message: err.Error(), Status: http.StatusUnprocessableEntity}
}

func ErrUpdateFailed(err error) *Err {
	return &Err{Code: "006", Name: "Failed to update", Message: err.Error(), Status: http.StatusBadRequest}
}

func ErrNotAuthenticated(err error) *Err {
	return &Err{Code: "010", Name: "User not authenticated", Message: err.Error(), Status: http.StatusUnauthorized}
}

func ErrPermissionDenied(err error) *Err {
	return &Err{Code: "017", Name: "Not authorized", Message: err.Error(), Status: http.StatusForbidden}
}

func ErrTooManyRequests() *Err {
	return &Err{
		Code:    "429",
		Name:    "Too Many Requests",
		Message: "rate limit exceeded, slow down",
		Status:  http.StatusTooManyRequests,
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{Code: "500", Name: "Internal Server Error", Message: err.Error(), Status: http.StatusInternalServerError}
}

var notFound = []error{
	service.ErrUserNotFound,
	service.ErrContestNotFound,
	service.ErrParticipationNotFound,
	service.ErrEntryNotFound,
	service.ErrAttachmentNotFound,
	service.ErrRatingNotFound,
	service.ErrConversationNotFound,
}

// FromError maps a service error onto the stable error table. Errors it does
// not recognise become internal server errors.
func FromError(err error) *Err {
	for _, target := range notFound {
		if errors.Is(err, target) {
			return &Err{Code: "040", Name: "Not Found", Message: target.Error(), Status: http.StatusNotFound}
		}
	}

	switch {
	case errors.Is(err, service.ErrAlreadyEnrolled):
		return ErrConflict("Already Enrolled", service.ErrAlreadyEnrolled)
	case errors.Is(err, service.ErrAlreadyRated):
		return ErrConflict("Already Exists", service.ErrAlreadyRated)
	case errors.Is(err, service.ErrUserEmailExists):
		return ErrConflict("Already Exists", service.ErrUserEmailExists)
	case errors.Is(err, service.ErrTooManySubmissions):
		return ErrTooManySubmissions(service.ErrTooManySubmissions)
	case errors.Is(err, service.ErrUpdateFailed):
		return ErrUpdateFailed(service.ErrUpdateFailed)
	case errors.Is(err, service.ErrEntryAlreadySubmitted):
		return ErrBadRequest(service.ErrEntryAlreadySubmitted)
	case errors.Is(err, service.ErrNotJudge):
		return ErrPermissionDenied(service.ErrNotJudge)
	case errors.Is(err, service.ErrNotContestant):
		return ErrPermissionDenied(service.ErrNotContestant)
	case errors.Is(err, service.ErrNotConversationMember):
		return ErrPermissionDenied(service.ErrNotConversationMember)
	}

	return ErrInternalServerError(err)
}
