package v1

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/contesthub/contest-api/internal/api/handler/v1/request"
	"github.com/contesthub/contest-api/internal/api/handler/v1/response"
	"github.com/contesthub/contest-api/internal/domain"
)

type ContestService interface {
	ListContests(ctx context.Context, viewerID uint, includeDrafts bool) ([]domain.Contest, error)
	GetContestByShortID(ctx context.Context, shortID string, viewerID uint) (domain.Contest, error)
	CreateContest(ctx context.Context, c domain.Contest) (domain.Contest, error)
	UpdateContest(ctx context.Context, id uint, update domain.ContestUpdate) (domain.Contest, error)
	DeleteContest(ctx context.Context, id uint) error
	Like(ctx context.Context, contestID, userID uint, liked bool) (domain.Contest, []domain.Effect, error)
	View(ctx context.Context, contestID uint) error
}

type ContestHandler struct {
	svc    ContestService
	uSvc   UserService
	events EffectDispatcher
}

func NewContestHandler(svc ContestService, uSvc UserService, events EffectDispatcher) *ContestHandler {
	return &ContestHandler{
		svc:    svc,
		uSvc:   uSvc,
		events: events,
	}
}

// HandleListContests godoc
// @Summary      List contests
// @Description  Lists contests newest first. Admins may include drafts with ?drafts=true.
// @Tags         contests
// @Produce      json
// @Param        drafts  query     bool  false  "include draft contests (admin only)"
// @Success      200     {array}   domain.Contest
// @Failure      401     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /contests [get]
// @Security BearerAuth
func (h *ContestHandler) HandleListContests(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	drafts, _ := strconv.ParseBool(ctx.Query("drafts"))
	contests, err := h.svc.ListContests(ctx.Request.Context(), user.ID, drafts && user.IsAdmin())
	if err != nil {
		err = fmt.Errorf("HandleListContests -> h.svc.ListContests -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusOK, contests)
}

// HandleGetContest godoc
// @Summary      Get a contest
// @Description  Returns the contest with the caller's membership application, if any.
// @Tags         contests
// @Produce      json
// @Param        contestID  path      string  true  "contest short id"
// @Success      200        {object}  domain.Contest
// @Failure      401        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /contests/{contestID} [get]
// @Security BearerAuth
func (h *ContestHandler) HandleGetContest(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	contest, err := h.svc.GetContestByShortID(ctx.Request.Context(), ctx.Param("contestID"), user.ID)
	if err != nil {
		err = fmt.Errorf("HandleGetContest -> h.svc.GetContestByShortID -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusOK, contest)
}

// HandleLikeContest godoc
// @Summary      Like or unlike a contest
// @Tags         contests
// @Accept       json
// @Produce      json
// @Param        contestID  path      int                   true  "contest id"
// @Param        input      body      request.LikeRequest  true  "like flag"
// @Success      200        {object}  domain.Contest
// @Failure      401        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      422        {object}  response.Err
// @Router       /contests/{contestID}/like [post]
// @Security BearerAuth
func (h *ContestHandler) HandleLikeContest(ctx *gin.Context) {
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

	var input request.LikeRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	contest, effects, err := h.svc.Like(ctx.Request.Context(), contestID, user.ID, input.Liked)
	if err != nil {
		err = fmt.Errorf("HandleLikeContest -> h.svc.Like -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}
	dispatch(ctx, h.events, effects)

	ctx.JSON(http.StatusOK, contest)
}

// HandleViewContest godoc
// @Summary      Count a contest view
// @Tags         contests
// @Param        contestID  path  int  true  "contest id"
// @Success      204
// @Failure      404  {object}  response.Err
// @Router       /contests/{contestID}/view [post]
// @Security BearerAuth
func (h *ContestHandler) HandleViewContest(ctx *gin.Context) {
	contestID, respErr := parseIDParam(ctx, "contestID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.View(ctx.Request.Context(), contestID); err != nil {
		err = fmt.Errorf("HandleViewContest -> h.svc.View -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleCreateContest godoc
// @Summary      Create a contest
// @Description  Admin only. Missing prizes and duration fall back to the defaults.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateContestRequest  true  "contest"
// @Success      201    {object}  domain.Contest
// @Failure      403    {object}  response.Err
// @Failure      422    {object}  response.Err
// @Router       /admin/contests [post]
// @Security BearerAuth
func (h *ContestHandler) HandleCreateContest(ctx *gin.Context) {
	var input request.CreateContestRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	contest, err := h.svc.CreateContest(ctx.Request.Context(), input.ToDomain())
	if err != nil {
		err = fmt.Errorf("HandleCreateContest -> h.svc.CreateContest -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusCreated, contest)
}

// HandleUpdateContest godoc
// @Summary      Update a contest
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        contestID  path      int                           true  "contest id"
// @Param        input      body      request.UpdateContestRequest  true  "fields to change"
// @Success      200        {object}  domain.Contest
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      422        {object}  response.Err
// @Router       /admin/contests/{contestID} [patch]
// @Security BearerAuth
func (h *ContestHandler) HandleUpdateContest(ctx *gin.Context) {
	contestID, respErr := parseIDParam(ctx, "contestID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.UpdateContestRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	contest, err := h.svc.UpdateContest(ctx.Request.Context(), contestID, input.ToDomain())
	if err != nil {
		err = fmt.Errorf("HandleUpdateContest -> h.svc.UpdateContest -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusOK, contest)
}

// HandleDeleteContest godoc
// @Summary      Delete a contest
// @Tags         admin
// @Param        contestID  path  int  true  "contest id"
// @Success      204
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /admin/contests/{contestID} [delete]
// @Security BearerAuth
func (h *ContestHandler) HandleDeleteContest(ctx *gin.Context) {
	contestID, respErr := parseIDParam(ctx, "contestID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.DeleteContest(ctx.Request.Context(), contestID); err != nil {
		err = fmt.Errorf("HandleDeleteContest -> h.svc.DeleteContest -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
