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

type ConversationService interface {
	Messages(ctx context.Context, conversationID, viewerID uint, limit, offset int) ([]domain.Message, error)
	PostMessage(ctx context.Context, conversationID, senderID uint, body string) (domain.Message, error)
}

type ConversationHandler struct {
	svc  ConversationService
	uSvc UserService
}

func NewConversationHandler(svc ConversationService, uSvc UserService) *ConversationHandler {
	return &ConversationHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleGetMessages godoc
// @Summary      Read a conversation
// @Tags         conversations
// @Produce      json
// @Param        conversationID  path      int  true   "conversation id"
// @Param        limit           query     int  false  "number of messages (default 50)"
// @Param        offset          query     int  false  "offset for pagination (default 0)"
// @Success      200             {array}   domain.Message
// @Failure      403             {object}  response.Err
// @Failure      404             {object}  response.Err
// @Router       /conversations/{conversationID}/messages [get]
// @Security BearerAuth
func (h *ConversationHandler) HandleGetMessages(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	conversationID, respErr := parseIDParam(ctx, "conversationID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid limit: %w", err)))
		return
	}
	offset, err := strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid offset: %w", err)))
		return
	}

	messages, err := h.svc.Messages(ctx.Request.Context(), conversationID, user.ID, limit, offset)
	if err != nil {
		err = fmt.Errorf("HandleGetMessages -> h.svc.Messages -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusOK, messages)
}

// HandlePostMessage godoc
// @Summary      Post to a conversation
// @Tags         conversations
// @Accept       json
// @Produce      json
// @Param        conversationID  path      int                         true  "conversation id"
// @Param        input           body      request.PostMessageRequest  true  "message"
// @Success      201             {object}  domain.Message
// @Failure      403             {object}  response.Err
// @Failure      404             {object}  response.Err
// @Failure      422             {object}  response.Err
// @Router       /conversations/{conversationID}/messages [post]
// @Security BearerAuth
func (h *ConversationHandler) HandlePostMessage(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	conversationID, respErr := parseIDParam(ctx, "conversationID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.PostMessageRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	message, err := h.svc.PostMessage(ctx.Request.Context(), conversationID, user.ID, input.Body)
	if err != nil {
		err = fmt.Errorf("HandlePostMessage -> h.svc.PostMessage -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusCreated, message)
}
