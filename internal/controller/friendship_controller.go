package controller

import (
	"errors"

	"schoolnet_backend/internal/service"
	"schoolnet_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type FriendshipController struct {
	FriendshipService *service.FriendshipService
	AuthService       *service.AuthService
}

func NewFriendshipController(friendshipService *service.FriendshipService, authService *service.AuthService) *FriendshipController {
	return &FriendshipController{
		FriendshipService: friendshipService,
		AuthService:       authService,
	}
}

// GetFriends godoc
// @Summary 好友列表
// @Tags 好友
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.User}
// @Failure 401 {object} util.Response "未登录或未通过审核"
// @Router /api/friendships [get]
func (c *FriendshipController) GetFriends(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, c.FriendshipService.GetFriends(user.ID))
}

// swagger:model FriendRequestBody
type FriendRequestBody struct {
	FriendID string `json:"friendId" binding:"required"`
}

// SendRequest godoc
// @Summary 发送好友请求
// @Description 同一对用户（不分方向）只允许一条关系记录
// @Tags 好友
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body FriendRequestBody true "对方用户ID"
// @Success 201 {object} util.Response{data=model.Friendship}
// @Failure 400 {object} util.Response "加自己或请求已存在"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/friendships [post]
func (c *FriendshipController) SendRequest(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req FriendRequestBody
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "好友ID是必填的")
		return
	}

	friendship, err := c.FriendshipService.SendRequest(user.ID, req.FriendID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSelfFriend), errors.Is(err, util.ErrFriendshipExists):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, friendship)
}

// GetPendingRequests godoc
// @Summary 收到的待处理好友请求
// @Tags 好友
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.PendingRequest}
// @Router /api/friendships/requests [get]
func (c *FriendshipController) GetPendingRequests(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, c.FriendshipService.GetPendingRequests(user.ID))
}

// AcceptRequest godoc
// @Summary 接受好友请求
// @Description 只有请求的接收方可以接受
// @Tags 好友
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "请求ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "不是接收方"
// @Failure 404 {object} util.Response "请求不存在"
// @Router /api/friendships/{id}/accept [post]
func (c *FriendshipController) AcceptRequest(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.FriendshipService.AcceptRequest(user.ID, ctx.Param("id")); err != nil {
		switch {
		case errors.Is(err, util.ErrRequestNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"message": "请求已接受"})
}
