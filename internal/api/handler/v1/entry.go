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

type EntryService interface {
	Submit(ctx context.Context, contestID, contestantID uint, e domain.Entry) (domain.Entry, error)
	Update(ctx context.Context, entryID, contestantID uint, update domain.EntryUpdate) (domain.Entry, []domain.Effect, error)
	GetEntry(ctx context.Context, entryID, viewerID uint) (domain.RatedEntry, error)
	ContestantEntries(ctx context.Context, contestID, contestantID uint) ([]domain.RatedEntry, error)
	JudgeEntries(ctx context.Context, contestID, judgeID uint) ([]domain.RatedEntry, error)
	AddAttachment(ctx context.Context, entryID, contestantID uint, a domain.Attachment) ([]domain.Attachment, error)
	UpdateAttachment(ctx context.Context, entryID, attachmentID, contestantID uint, update domain.AttachmentUpdate) (domain.Attachment, error)
	RemoveEntry(ctx context.Context, entryID uint) ([]domain.Effect, error)
}

type EntryHandler struct {
	svc    EntryService
	uSvc   UserService
	events EffectDispatcher
}

func NewEntryHandler(svc EntryService, uSvc UserService, events EffectDispatcher) *EntryHandler {
	return &EntryHandler{
		svc:    svc,
		uSvc:   uSvc,
		events: events,
	}
}

// HandleSubmitEntry godoc
// @Summary      Create an entry
// @Description  Creates a draft entry for the calling contestant. Drafts are submitted with PATCH isDraft=false.
// @Tags         entries
// @Accept       json
// @Produce      json
// @Param        contestID  path      int                         true  "contest id"
// @Param        input      body      request.SubmitEntryRequest  true  "entry"
// @Success      201        {object}  domain.Entry
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      422        {object}  response.Err
// @Router       /contests/{contestID}/entries [post]
// @Security BearerAuth
func (h *EntryHandler) HandleSubmitEntry(ctx *gin.Context) {
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

	var input request.SubmitEntryRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	entry, err := h.svc.Submit(ctx.Request.Context(), contestID, user.ID, input.ToDomain())
	if err != nil {
		err = fmt.Errorf("HandleSubmitEntry -> h.svc.Submit -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusCreated, entry)
}

// HandleContestantEntries godoc
// @Summary      List my entries
// @Tags         entries
// @Produce      json
// @Param        contestID  path      int  true  "contest id"
// @Success      200        {array}   domain.RatedEntry
// @Failure      401        {object}  response.Err
// @Router       /contests/{contestID}/entries/contestant [get]
// @Security BearerAuth
func (h *EntryHandler) HandleContestantEntries(ctx *gin.Context) {
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

	entries, err := h.svc.ContestantEntries(ctx.Request.Context(), contestID, user.ID)
	if err != nil {
		err = fmt.Errorf("HandleContestantEntries -> h.svc.ContestantEntries -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusOK, entries)
}

// HandleJudgeEntries godoc
// @Summary      List entries to judge
// @Description  Each contestant's latest submitted entry, with the caller's own rating.
// @Tags         entries
// @Produce      json
// @Param        contestID  path      int  true  "contest id"
// @Success      200        {array}   domain.RatedEntry
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Router       /contests/{contestID}/entries/judge [get]
// @Security BearerAuth
func (h *EntryHandler) HandleJudgeEntries(ctx *gin.Context) {
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

	entries, err := h.svc.JudgeEntries(ctx.Request.Context(), contestID, user.ID)
	if err != nil {
		err = fmt.Errorf("HandleJudgeEntries -> h.svc.JudgeEntries -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusOK, entries)
}

// HandleGetEntry godoc
// @Summary      Get an entry
// @Tags         entries
// @Produce      json
// @Param        entryID  path      int  true  "entry id"
// @Success      200      {object}  domain.RatedEntry
// @Failure      404      {object}  response.Err
// @Router       /entries/{entryID} [get]
// @Security BearerAuth
func (h *EntryHandler) HandleGetEntry(ctx *gin.Context) {
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

	entry, err := h.svc.GetEntry(ctx.Request.Context(), entryID, user.ID)
	if err != nil {
		err = fmt.Errorf("HandleGetEntry -> h.svc.GetEntry -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusOK, entry)
}

// HandleUpdateEntry godoc
// @Summary      Update an entry
// @Description  Changes the caller's own entry. Setting isDraft=false submits it for judging.
// @Tags         entries
// @Accept       json
// @Produce      json
// @Param        entryID  path      int                         true  "entry id"
// @Param        input    body      request.UpdateEntryRequest  true  "fields to change"
// @Success      200      {object}  domain.Entry
// @Failure      404      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Router       /entries/{entryID} [patch]
// @Security BearerAuth
func (h *EntryHandler) HandleUpdateEntry(ctx *gin.Context) {
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

	var input request.UpdateEntryRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	entry, effects, err := h.svc.Update(ctx.Request.Context(), entryID, user.ID, input.ToDomain())
	if err != nil {
		err = fmt.Errorf("HandleUpdateEntry -> h.svc.Update -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}
	dispatch(ctx, h.events, effects)

	ctx.JSON(http.StatusOK, entry)
}

// HandleAddAttachment godoc
// @Summary      Add an attachment
// @Tags         entries
// @Accept       json
// @Produce      json
// @Param        entryID  path      int                        true  "entry id"
// @Param        input    body      request.AttachmentRequest  true  "attachment"
// @Success      201      {array}   domain.Attachment
// @Failure      404      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Router       /entries/{entryID}/attachments [post]
// @Security BearerAuth
func (h *EntryHandler) HandleAddAttachment(ctx *gin.Context) {
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

	var input request.AttachmentRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	attachments, err := h.svc.AddAttachment(ctx.Request.Context(), entryID, user.ID, input.ToDomain())
	if err != nil {
		err = fmt.Errorf("HandleAddAttachment -> h.svc.AddAttachment -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusCreated, attachments)
}

// HandleUpdateAttachment godoc
// @Summary      Update an attachment
// @Tags         entries
// @Accept       json
// @Produce      json
// @Param        entryID       path      int                              true  "entry id"
// @Param        attachmentID  path      int                              true  "attachment id"
// @Param        input         body      request.UpdateAttachmentRequest  true  "fields to change"
// @Success      200           {object}  domain.Attachment
// @Failure      404           {object}  response.Err
// @Failure      422           {object}  response.Err
// @Router       /entries/{entryID}/attachments/{attachmentID} [patch]
// @Security BearerAuth
func (h *EntryHandler) HandleUpdateAttachment(ctx *gin.Context) {
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

	attachmentID, respErr := parseIDParam(ctx, "attachmentID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.UpdateAttachmentRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	attachment, err := h.svc.UpdateAttachment(ctx.Request.Context(), entryID, attachmentID, user.ID, input.ToDomain())
	if err != nil {
		err = fmt.Errorf("HandleUpdateAttachment -> h.svc.UpdateAttachment -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusOK, attachment)
}

// HandleRemoveEntry godoc
// @Summary      Delete an entry
// @Tags         admin
// @Param        entryID  path  int  true  "entry id"
// @Success      204
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /admin/entries/{entryID} [delete]
// @Security BearerAuth
func (h *EntryHandler) HandleRemoveEntry(ctx *gin.Context) {
	entryID, respErr := parseIDParam(ctx, "entryID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	effects, err := h.svc.RemoveEntry(ctx.Request.Context(), entryID)
	if err != nil {
		err = fmt.Errorf("HandleRemoveEntry -> h.svc.RemoveEntry -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}
	dispatch(ctx, h.events, effects)

	ctx.Status(http.StatusNoContent)
}
