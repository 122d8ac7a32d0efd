package controller

import (
	"errors"

	"schoolnet_backend/internal/service"
	"schoolnet_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// UserController 处理用户资料相关的HTTP请求
type UserController struct {
	UserService *service.UserService
	AuthService *service.AuthService
}

func NewUserController(userService *service.UserService, authService *service.AuthService) *UserController {
	return &UserController{
		UserService: userService,
		AuthService: authService,
	}
}

// GetUser godoc
// @Summary 查看用户资料
// @Tags 用户
// @Produce  json
// @Param   id path string true "用户ID"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	user, err := c.UserService.GetUserByID(ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx, err.Error())
		return
	}

	util.Success(ctx, user.WithoutPassword())
}

// UpdateProfile godoc
// @Summary 修改个人资料
// @Description 只能修改自己的资料；可改字段限于姓名、简介、年级、头像
// @Tags 用户
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "用户ID"
// @Param   body body service.ProfileUpdate true "资料字段，缺省字段保持原值"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 403 {object} util.Response "不是本人"
// @Router /api/users/{id} [patch]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	current := c.AuthService.GetCurrentUser(ctx)
	if current == nil {
		util.Unauthorized(ctx)
		return
	}

	if current.ID != ctx.Param("id") {
		util.Forbidden(ctx)
		return
	}

	var updates service.ProfileUpdate
	if err := ctx.ShouldBindJSON(&updates); err != nil {
		util.BadRequest(ctx, "请求体格式错误")
		return
	}

	user, err := c.UserService.UpdateProfile(current.ID, updates)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, user.WithoutPassword())
}

// Search godoc
// @Summary 搜索用户
// @Description 按姓名/邮箱/年级模糊匹配已审核用户；查询少于2个字符返回空列表；
// @Description 结果不含自己，上限20条
// @Tags 用户
// @Produce  json
// @Security ApiKeyAuth
// @Param   q query string false "搜索词"
// @Success 200 {object} util.Response{data=[]model.User}
// @Failure 401 {object} util.Response "未登录或未通过审核"
// @Router /api/users/search [get]
func (c *UserController) Search(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, c.UserService.Search(user.ID, ctx.Query("q")))
}
