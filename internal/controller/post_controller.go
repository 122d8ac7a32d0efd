package controller

import (
	"errors"

	"schoolnet_backend/internal/service"
	"schoolnet_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PostController struct {
	PostService *service.PostService
	AuthService *service.AuthService
}

func NewPostController(postService *service.PostService, authService *service.AuthService) *PostController {
	return &PostController{
		PostService: postService,
		AuthService: authService,
	}
}

// GetPosts godoc
// @Summary 获取帖子流
// @Description 全部帖子，最新在前；可按作者过滤
// @Tags 帖子
// @Produce  json
// @Param   authorId query string false "只看该作者的帖子"
// @Success 200 {object} util.Response{data=[]model.Post}
// @Router /api/posts [get]
func (c *PostController) GetPosts(ctx *gin.Context) {
	if authorID := ctx.Query("authorId"); authorID != "" {
		util.Success(ctx, c.PostService.PostsByAuthor(authorID))
		return
	}
	util.Success(ctx, c.PostService.Feed())
}

// GetPost godoc
// @Summary 获取单个帖子
// @Tags 帖子
// @Produce  json
// @Param   id path string true "帖子ID"
// @Success 200 {object} util.Response{data=model.Post}
// @Failure 404 {object} util.Response "帖子不存在"
// @Router /api/posts/{id} [get]
func (c *PostController) GetPost(ctx *gin.Context) {
	post, err := c.PostService.GetPost(ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx, err.Error())
		return
	}
	util.Success(ctx, post)
}

// swagger:model CreatePostRequest
type CreatePostRequest struct {
	Content string `json:"content" binding:"required"`
	Image   string `json:"image"`
}

// CreatePost godoc
// @Summary 发布帖子
// @Tags 帖子
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CreatePostRequest true "帖子内容"
// @Success 201 {object} util.Response{data=model.Post}
// @Failure 400 {object} util.Response "内容为空"
// @Failure 401 {object} util.Response "未登录"
// @Router /api/posts [post]
func (c *PostController) CreatePost(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, util.ErrEmptyContent.Error())
		return
	}

	post, err := c.PostService.CreatePost(user, req.Content, req.Image)
	if err != nil {
		if errors.Is(err, util.ErrEmptyContent) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, post)
}

// swagger:model UpdatePostRequest
type UpdatePostRequest struct {
	Content string `json:"content" binding:"required"`
}

// UpdatePost godoc
// @Summary 修改帖子内容
// @Description 只有作者本人可以修改
// @Tags 帖子
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "帖子ID"
// @Param   body body UpdatePostRequest true "新内容"
// @Success 200 {object} util.Response{data=model.Post}
// @Failure 400 {object} util.Response "内容为空"
// @Failure 403 {object} util.Response "不是作者"
// @Failure 404 {object} util.Response "帖子不存在"
// @Router /api/posts/{id} [patch]
func (c *PostController) UpdatePost(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, util.ErrEmptyContent.Error())
		return
	}

	post, err := c.PostService.UpdatePost(user, ctx.Param("id"), req.Content)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrPostNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrEmptyContent):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, post)
}

// DeletePost godoc
// @Summary 删除帖子
// @Description 只有作者本人可以删除
// @Tags 帖子
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "帖子ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "不是作者"
// @Failure 404 {object} util.Response "帖子不存在"
// @Router /api/posts/{id} [delete]
func (c *PostController) DeletePost(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.PostService.DeletePost(user, ctx.Param("id")); err != nil {
		switch {
		case errors.Is(err, util.ErrPostNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"message": "帖子已删除"})
}

// ToggleLike godoc
// @Summary 点赞/取消点赞
// @Description 同一用户重复调用在点赞和取消之间切换，点赞列表不会出现重复ID
// @Tags 帖子
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "帖子ID"
// @Success 200 {object} util.Response{data=object} "翻转后的点赞ID列表"
// @Failure 404 {object} util.Response "帖子不存在"
// @Router /api/posts/{id}/like [post]
func (c *PostController) ToggleLike(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	likes, err := c.PostService.ToggleLike(user.ID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrPostNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"likes": likes})
}

// swagger:model CreateCommentRequest
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// CreateComment godoc
// @Summary 发表评论
// @Tags 帖子
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "帖子ID"
// @Param   body body CreateCommentRequest true "评论内容"
// @Success 201 {object} util.Response{data=model.Comment}
// @Failure 400 {object} util.Response "内容为空"
// @Failure 404 {object} util.Response "帖子不存在"
// @Router /api/posts/{id}/comments [post]
func (c *PostController) CreateComment(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, util.ErrEmptyContent.Error())
		return
	}

	comment, err := c.PostService.CreateComment(user, ctx.Param("id"), req.Content)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEmptyContent):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrPostNotFound):
			util.NotFound(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, comment)
}
