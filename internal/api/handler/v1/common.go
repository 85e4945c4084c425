package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/contesthub/contest-api/internal/api/handler/v1/response"
	"github.com/contesthub/contest-api/internal/api/middleware"
	"github.com/contesthub/contest-api/internal/domain"
	"github.com/contesthub/contest-api/internal/service"
)

const contextUser = "user"

var errNotAdmin = errors.New("admin role required")

type UserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

// EffectDispatcher hands committed mutations' side effects to the event bus.
type EffectDispatcher interface {
	Dispatch(correlationID string, effects []domain.Effect)
}

// HandleHealthcheck godoc
// @Summary      Healthcheck
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       / [get]
func HandleHealthcheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RequireAdmin lets only admins through. It must run after the JWT verifier.
func RequireAdmin(uSvc UserService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, respErr := getUserFromContext(ctx, uSvc)
		if respErr != nil {
			response.RenderErr(ctx, respErr)
			return
		}
		if !user.IsAdmin() {
			response.RenderErr(ctx, response.ErrPermissionDenied(errNotAdmin))
			return
		}

		ctx.Next()
	}
}

func getUserFromContext(ctx *gin.Context, uSvc UserService) (domain.User, *response.Err) {
	if cached, ok := ctx.Get(contextUser); ok {
		if user, ok := cached.(domain.User); ok {
			return user, nil
		}
	}

	userID := ctx.GetUint(middleware.ContextUserID)
	if userID == 0 {
		return domain.User{}, response.ErrNotAuthenticated(errors.New("no user in request context"))
	}

	user, err := uSvc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return domain.User{}, response.ErrNotAuthenticated(fmt.Errorf("user %d no longer exists", userID))
		}

		return domain.User{}, response.ErrInternalServerError(fmt.Errorf("getUserFromContext -> uSvc.GetUser -> %w", err))
	}
	ctx.Set(contextUser, user)

	return user, nil
}

func parseIDParam(ctx *gin.Context, name string) (uint, *response.Err) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, response.ErrBadRequest(fmt.Errorf("%s must be a positive integer", name))
	}

	return uint(id), nil
}

func dispatch(ctx *gin.Context, d EffectDispatcher, effects []domain.Effect) {
	if d == nil || len(effects) == 0 {
		return
	}

	d.Dispatch(requestid.Get(ctx), effects)
}
