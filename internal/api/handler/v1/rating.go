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

type RatingService interface {
	AddRating(ctx context.Context, entryID, judgeID uint, r domain.Rating) (domain.Rating, []domain.Effect, error)
	UpdateRating(ctx context.Context, entryID, ratingID, judgeID uint, update domain.RatingUpdate) (domain.Rating, []domain.Effect, error)
	EntryRatings(ctx context.Context, entryID uint) ([]domain.Rating, error)
	RemoveRating(ctx context.Context, entryID, ratingID uint) ([]domain.Effect, error)
}

type RatingHandler struct {
	svc    RatingService
	uSvc   UserService
	events EffectDispatcher
}

func NewRatingHandler(svc RatingService, uSvc UserService, events EffectDispatcher) *RatingHandler {
	return &RatingHandler{
		svc:    svc,
		uSvc:   uSvc,
		events: events,
	}
}

// HandleAddRating godoc
// @Summary      Rate an entry
// @Description  An active judge scores a submitted entry on four criteria from 0 to 10.
// @Tags         ratings
// @Accept       json
// @Produce      json
// @Param        entryID  path      int                       true  "entry id"
// @Param        input    body      request.AddRatingRequest  true  "scores"
// @Success      201      {object}  domain.Rating
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Router       /entries/{entryID}/ratings [put]
// @Security BearerAuth
func (h *RatingHandler) HandleAddRating(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	entryID, respErr := parseIDParam(ctx, "entryID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.AddRatingRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	rating, effects, err := h.svc.AddRating(ctx.Request.Context(), entryID, user.ID, input.ToDomain())
	if err != nil {
		err = fmt.Errorf("HandleAddRating -> h.svc.AddRating -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}
	dispatch(ctx, h.events, effects)

	ctx.JSON(http.StatusCreated, rating)
}

// HandleUpdateRating godoc
// @Summary      Update a rating
// @Tags         ratings
// @Accept       json
// @Produce      json
// @Param        entryID   path      int                          true  "entry id"
// @Param        ratingID  path      int                          true  "rating id"
// @Param        input     body      request.UpdateRatingRequest  true  "fields to change"
// @Success      200       {object}  domain.Rating
// @Failure      404       {object}  response.Err
// @Failure      422       {object}  response.Err
// @Router       /entries/{entryID}/ratings/{ratingID} [patch]
// @Security BearerAuth
func (h *RatingHandler) HandleUpdateRating(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	entryID, respErr := parseIDParam(ctx, "entryID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ratingID, respErr := parseIDParam(ctx, "ratingID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.UpdateRatingRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	rating, effects, err := h.svc.UpdateRating(ctx.Request.Context(), entryID, ratingID, user.ID, input.ToDomain())
	if err != nil {
		err = fmt.Errorf("HandleUpdateRating -> h.svc.UpdateRating -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}
	dispatch(ctx, h.events, effects)

	ctx.JSON(http.StatusOK, rating)
}

// HandleEntryRatings godoc
// @Summary      List an entry's ratings
// @Description  Only ratings from currently active judges are returned.
// @Tags         ratings
// @Produce      json
// @Param        entryID  path      int  true  "entry id"
// @Success      200      {array}   domain.Rating
// @Failure      404      {object}  response.Err
// @Router       /entries/{entryID}/ratings [get]
// @Security BearerAuth
func (h *RatingHandler) HandleEntryRatings(ctx *gin.Context) {
	entryID, respErr := parseIDParam(ctx, "entryID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ratings, err := h.svc.EntryRatings(ctx.Request.Context(), entryID)
	if err != nil {
		err = fmt.Errorf("HandleEntryRatings -> h.svc.EntryRatings -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusOK, ratings)
}

// HandleRemoveRating godoc
// @Summary      Delete a rating
// @Tags         admin
// @Param        entryID   path  int  true  "entry id"
// @Param        ratingID  path  int  true  "rating id"
// @Success      204
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /admin/entries/{entryID}/ratings/{ratingID} [delete]
// @Security BearerAuth
func (h *RatingHandler) HandleRemoveRating(ctx *gin.Context) {
	entryID, respErr := parseIDParam(ctx, "entryID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ratingID, respErr := parseIDParam(ctx, "ratingID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	effects, err := h.svc.RemoveRating(ctx.Request.Context(), entryID, ratingID)
	if err != nil {
		err = fmt.Errorf("HandleRemoveRating -> h.svc.RemoveRating -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}
	dispatch(ctx, h.events, effects)

	ctx.Status(http.StatusNoContent)
}
