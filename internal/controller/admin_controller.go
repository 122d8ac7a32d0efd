package controller

import (
	"errors"

	"schoolnet_backend/internal/service"
	"schoolnet_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AdminController 管理员接口：用户列表、审批、修改与数据修复
type AdminController struct {
	UserService *service.UserService
}

func NewAdminController(userService *service.UserService) *AdminController {
	return &AdminController{UserService: userService}
}

// GetUsers godoc
// @Summary 获取全部用户
// @Tags 管理
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.User}
// @Failure 403 {object} util.Response "非管理员"
// @Router /api/admin/users [get]
func (c *AdminController) GetUsers(ctx *gin.Context) {
	util.Success(ctx, c.UserService.GetAllUsers())
}

// UpdateUser godoc
// @Summary 管理员修改用户
// @Description 可修改姓名、年级、状态和角色，缺省字段保持原值
// @Tags 管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "用户ID"
// @Param   body body service.AdminUpdate true "更新字段"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/admin/users/{id} [patch]
func (c *AdminController) UpdateUser(ctx *gin.Context) {
	var updates service.AdminUpdate
	if err := ctx.ShouldBindJSON(&updates); err != nil {
		util.BadRequest(ctx, "请求体格式错误")
		return
	}

	user, err := c.UserService.AdminUpdateUser(ctx.Param("id"), updates)
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

// ApproveUser godoc
// @Summary 审核通过用户
// @Tags 管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "用户ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/admin/users/{id}/approve [post]
func (c *AdminController) ApproveUser(ctx *gin.Context) {
	if err := c.UserService.ApproveUser(ctx.Param("id")); err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"message": "已通过审核"})
}

// RejectUser godoc
// @Summary 拒绝用户注册
// @Tags 管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "用户ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/admin/users/{id}/reject [post]
func (c *AdminController) RejectUser(ctx *gin.Context) {
	if err := c.UserService.RejectUser(ctx.Param("id")); err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"message": "已拒绝该用户"})
}

// FixFirstUser godoc
// @Summary 修复首位用户权限
// @Description 把创建时间最早的用户提升为已审核管理员，用于修复存量数据
// @Tags 管理
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response "没有任何用户"
// @Router /api/admin/fix-user [post]
func (c *AdminController) FixFirstUser(ctx *gin.Context) {
	user, err := c.UserService.FixFirstUser()
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
