package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/contesthub/contest-api/internal/api/handler/v1/response"
	"github.com/contesthub/contest-api/internal/domain"
	"github.com/contesthub/contest-api/internal/export"
)

type LeaderboardService interface {
	Leaderboard(ctx context.Context, shortID string) (domain.Contest, []domain.LeaderboardRow, error)
	Recompute(ctx context.Context, contestID uint) ([]domain.RankChange, error)
}

type LeaderboardHandler struct {
	svc LeaderboardService
}

func NewLeaderboardHandler(svc LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{svc: svc}
}

type LeaderboardResponse struct {
	ContestID uint                    `json:"contestId"`
	ShortID   string                  `json:"shortId"`
	Name      string                  `json:"name"`
	Rows      []domain.LeaderboardRow `json:"leaderboard"`
}

// HandleLeaderboard godoc
// @Summary      Contest leaderboard
// @Description  Ranked contestants by ascending rank, followed by unranked contestants.
// @Tags         leaderboard
// @Produce      json
// @Param        contestID  path      string  true  "contest short id"
// @Success      200        {object}  LeaderboardResponse
// @Failure      404        {object}  response.Err
// @Router       /contests/{contestID}/leaderboard [get]
// @Security BearerAuth
func (h *LeaderboardHandler) HandleLeaderboard(ctx *gin.Context) {
	contest, rows, ok := h.load(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, LeaderboardResponse{
		ContestID: contest.ID,
		ShortID:   contest.ShortID,
		Name:      contest.Name,
		Rows:      rows,
	})
}

// HandleLeaderboardXLSX godoc
// @Summary      Leaderboard spreadsheet
// @Tags         leaderboard
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        contestID  path  string  true  "contest short id"
// @Success      200
// @Failure      404  {object}  response.Err
// @Router       /contests/{contestID}/leaderboard.xlsx [get]
// @Security BearerAuth
func (h *LeaderboardHandler) HandleLeaderboardXLSX(ctx *gin.Context) {
	contest, rows, ok := h.load(ctx)
	if !ok {
		return
	}

	data, err := export.LeaderboardXLSX(contest, rows)
	if err != nil {
		err = fmt.Errorf("HandleLeaderboardXLSX -> export.LeaderboardXLSX -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="leaderboard-%s.xlsx"`, contest.ShortID))
	ctx.Data(http.StatusOK, export.XLSXContentType, data)
}

// HandleLeaderboardPNG godoc
// @Summary      Leaderboard chart
// @Tags         leaderboard
// @Produce      png
// @Param        contestID  path  string  true  "contest short id"
// @Success      200
// @Failure      404  {object}  response.Err
// @Router       /contests/{contestID}/leaderboard.png [get]
// @Security BearerAuth
func (h *LeaderboardHandler) HandleLeaderboardPNG(ctx *gin.Context) {
	contest, rows, ok := h.load(ctx)
	if !ok {
		return
	}

	data, err := export.LeaderboardPNG(contest, rows)
	if err != nil {
		err = fmt.Errorf("HandleLeaderboardPNG -> export.LeaderboardPNG -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Data(http.StatusOK, export.PNGContentType, data)
}

// HandleRecompute godoc
// @Summary      Recompute ranks
// @Description  Admin only. Recomputes ranks synchronously and returns the rank changes.
// @Tags         admin
// @Produce      json
// @Param        contestID  path      int  true  "contest id"
// @Success      200        {array}   domain.RankChange
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Router       /admin/contests/{contestID}/leaderboard/recompute [post]
// @Security BearerAuth
func (h *LeaderboardHandler) HandleRecompute(ctx *gin.Context) {
	contestID, respErr := parseIDParam(ctx, "contestID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	changes, err := h.svc.Recompute(ctx.Request.Context(), contestID)
	if err != nil {
		err = fmt.Errorf("HandleRecompute -> h.svc.Recompute -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}
	if changes == nil {
		changes = []domain.RankChange{}
	}

	ctx.JSON(http.StatusOK, changes)
}

func (h *LeaderboardHandler) load(ctx *gin.Context) (domain.Contest, []domain.LeaderboardRow, bool) {
	contest, rows, err := h.svc.Leaderboard(ctx.Request.Context(), ctx.Param("contestID"))
	if err != nil {
		err = fmt.Errorf("h.svc.Leaderboard -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return domain.Contest{}, nil, false
	}

	return contest, rows, true
}
