package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/contesthub/contest-api/internal/api/handler/v1/request"
	"github.com/contesthub/contest-api/internal/api/handler/v1/response"
	"github.com/contesthub/contest-api/internal/domain"
)

type ParticipationService interface {
	Enroll(ctx context.Context, contestID, userID uint, role domain.Role) ([]domain.Participation, []domain.Effect, error)
	Approve(ctx context.Context, contestID, participationID uint, role domain.Role, active bool) (domain.Contest, []domain.Effect, error)
	Remove(ctx context.Context, contestID, participationID uint, role domain.Role) (domain.Contest, []domain.Effect, error)
}

type ParticipationHandler struct {
	svc    ParticipationService
	uSvc   UserService
	events EffectDispatcher
}

func NewParticipationHandler(svc ParticipationService, uSvc UserService, events EffectDispatcher) *ParticipationHandler {
	return &ParticipationHandler{
		svc:    svc,
		uSvc:   uSvc,
		events: events,
	}
}

// HandleEnroll returns a handler enrolling the caller in the given role.
//
// @Summary      Apply to a contest
// @Description  Enrolls the caller as an inactive contestant or judge pending admin approval.
// @Tags         participations
// @Produce      json
// @Param        contestID  path      int  true  "contest id"
// @Success      200        {array}   domain.Participation
// @Failure      401        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      409        {object}  response.Err
// @Router       /contests/{contestID}/contestants [put]
// @Router       /contests/{contestID}/judges [put]
// @Security BearerAuth
func (h *ParticipationHandler) HandleEnroll(role domain.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, respErr := getUserFromContext(ctx, h.uSvc)
		if respErr != nil {
			response.RenderErr(ctx, respErr)
			return
		}

		contestID, respErr := parseIDParam(ctx, "contestID")
		if respErr != nil {
			response.RenderErr(ctx, respErr)
			return
		}

		participations, effects, err := h.svc.Enroll(ctx.Request.Context(), contestID, user.ID, role)
		if err != nil {
			err = fmt.Errorf("HandleEnroll -> h.svc.Enroll -> %w", err)
			response.RenderErr(ctx, response.FromError(err))
			return
		}
		dispatch(ctx, h.events, effects)

		ctx.JSON(http.StatusOK, participations)
	}
}

// HandleApprove returns a handler switching a participation on or off.
//
// @Summary      Approve or deactivate a participation
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        contestID        path      int                     true  "contest id"
// @Param        participationID  path      int                     true  "participation id"
// @Param        input            body      request.ApproveRequest  true  "activation flag"
// @Success      200              {object}  domain.Contest
// @Failure      403              {object}  response.Err
// @Failure      404              {object}  response.Err
// @Router       /admin/contests/{contestID}/contestants/{participationID} [patch]
// @Router       /admin/contests/{contestID}/judges/{participationID} [patch]
// @Security BearerAuth
func (h *ParticipationHandler) HandleApprove(role domain.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		contestID, participationID, respErr := parseParticipationParams(ctx)
		if respErr != nil {
			response.RenderErr(ctx, respErr)
			return
		}

		var input request.ApproveRequest
		if err := ctx.ShouldBindJSON(&input); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		contest, effects, err := h.svc.Approve(ctx.Request.Context(), contestID, participationID, role, input.IsActive)
		if err != nil {
			err = fmt.Errorf("HandleApprove -> h.svc.Approve -> %w", err)
			response.RenderErr(ctx, response.FromError(err))
			return
		}
		dispatch(ctx, h.events, effects)

		ctx.JSON(http.StatusOK, contest)
	}
}

// HandleRemove returns a handler deleting a participation.
//
// @Summary      Remove a participation
// @Tags         admin
// @Produce      json
// @Param        contestID        path      int  true  "contest id"
// @Param        participationID  path      int  true  "participation id"
// @Success      200              {object}  domain.Contest
// @Failure      403              {object}  response.Err
// @Failure      404              {object}  response.Err
// @Router       /admin/contests/{contestID}/contestants/{participationID} [delete]
// @Router       /admin/contests/{contestID}/judges/{participationID} [delete]
// @Security BearerAuth
func (h *ParticipationHandler) HandleRemove(role domain.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		contestID, participationID, respErr := parseParticipationParams(ctx)
		if respErr != nil {
			response.RenderErr(ctx, respErr)
			return
		}

		contest, effects, err := h.svc.Remove(ctx.Request.Context(), contestID, participationID, role)
		if err != nil {
			err = fmt.Errorf("HandleRemove -> h.svc.Remove -> %w", err)
			response.RenderErr(ctx, response.FromError(err))
			return
		}
		dispatch(ctx, h.events, effects)

		ctx.JSON(http.StatusOK, contest)
	}
}

func parseParticipationParams(ctx *gin.Context) (uint, uint, *response.Err) {
	contestID, respErr := parseIDParam(ctx, "contestID")
	if respErr != nil {
		return 0, 0, respErr
	}

	participationID, respErr := parseIDParam(ctx, "participationID")
	if respErr != nil {
		return 0, 0, respErr
	}

	return contestID, participationID, nil
}
