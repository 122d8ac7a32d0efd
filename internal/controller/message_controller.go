package controller

import (
	"errors"

	"schoolnet_backend/internal/service"
	"schoolnet_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MessageController struct {
	MessageService *service.MessageService
	AuthService    *service.AuthService
}

func NewMessageController(messageService *service.MessageService, authService *service.AuthService) *MessageController {
	return &MessageController{
		MessageService: messageService,
		AuthService:    authService,
	}
}

// GetMessages godoc
// @Summary 会话列表或单个会话
// @Description 带 userId 参数返回与该用户的会话（对方发来的未读消息随之置为已读）；
// @Description 不带参数返回全部会话概要，按最后一条消息时间倒序
// @Tags 私信
// @Produce  json
// @Security ApiKeyAuth
// @Param   userId query string false "对方用户ID"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response "未登录或未通过审核"
// @Router /api/messages [get]
func (c *MessageController) GetMessages(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if otherID := ctx.Query("userId"); otherID != "" {
		util.Success(ctx, c.MessageService.GetConversation(user.ID, otherID))
		return
	}

	util.Success(ctx, c.MessageService.GetConversationSummaries(user.ID))
}

// swagger:model SendMessageRequest
type SendMessageRequest struct {
	ReceiverID string `json:"receiverId" binding:"required"`
	Content    string `json:"content" binding:"required"`
}

// SendMessage godoc
// @Summary 发送私信
// @Tags 私信
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body SendMessageRequest true "接收者和内容"
// @Success 201 {object} util.Response{data=model.Message}
// @Failure 400 {object} util.Response "缺少接收者或内容"
// @Failure 404 {object} util.Response "接收者不存在"
// @Router /api/messages [post]
func (c *MessageController) SendMessage(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "接收者和内容都是必填的")
		return
	}

	message, err := c.MessageService.Send(user.ID, req.ReceiverID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEmptyContent):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrReceiverNotFound):
			util.NotFound(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, message)
}

// GetUnreadCount godoc
// @Summary 未读消息数
// @Description 导航栏角标轮询接口，只读无副作用
// @Tags 私信
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object}
// @Router /api/messages/unread-count [get]
func (c *MessageController) GetUnreadCount(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, gin.H{"count": c.MessageService.UnreadCount(user.ID)})
}
