package controller

import (
	"errors"
	"net/http"

	"schoolnet_backend/internal/model"
	"schoolnet_backend/internal/service"
	"schoolnet_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// tokenMaxAge 会话Cookie有效期（7天），和JWT过期时间一致
const tokenMaxAge = 7 * 24 * 3600

type AuthController struct {
	AuthService *service.AuthService
	IsRelease   bool // 是否为生产环境，决定Cookie的Secure标志
}

func NewAuthController(authService *service.AuthService, isRelease bool) *AuthController {
	return &AuthController{
		AuthService: authService,
		IsRelease:   isRelease,
	}
}

func (c *AuthController) setTokenCookie(ctx *gin.Context, token string) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(util.TokenCookieName, token, tokenMaxAge, "/", "", c.IsRelease, true)
}

// swagger:model RegisterRequest
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
	Grade    string `json:"grade"`
}

// Register godoc
// @Summary 注册新用户
// @Description 首个注册用户自动成为管理员并通过审核，其余用户等待管理员审批
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body RegisterRequest true "用户注册信息"
// @Success 200 {object} util.Response{data=object} "首个用户，注册即登录"
// @Success 201 {object} util.Response{data=object} "注册成功，等待审核"
// @Failure 400 {object} util.Response "参数错误或邮箱已被注册"
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /api/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "邮箱、密码和姓名都是必填的")
		return
	}

	user, err := c.AuthService.Register(req.Email, req.Password, req.Name, req.Grade)
	if err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	// 首个用户（管理员）注册后直接发放会话
	if user.Role == model.RoleAdmin {
		token, err := c.AuthService.IssueToken(user.ID)
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		c.setTokenCookie(ctx, token)
		util.Success(ctx, gin.H{
			"user":    user.WithoutPassword(),
			"token":   token,
			"message": "您已注册为管理员",
		})
		return
	}

	util.Created(ctx, gin.H{
		"user":    user.WithoutPassword(),
		"message": "注册成功！请等待管理员审核。",
	})
}

// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary 用户登录
// @Description 校验凭据并发放7天有效的会话令牌（HttpOnly Cookie）
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "登录凭据"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "参数错误"
// @Failure 401 {object} util.Response "邮箱或密码错误"
// @Failure 403 {object} util.Response "账号已被拒绝"
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "邮箱和密码都是必填的")
		return
	}

	user, token, err := c.AuthService.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAccountRejected):
			util.Error(ctx, http.StatusForbidden, err.Error())
		case errors.Is(err, util.ErrInvalidCredentials):
			util.Error(ctx, http.StatusUnauthorized, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	c.setTokenCookie(ctx, token)
	util.Success(ctx, gin.H{
		"user":  user.WithoutPassword(),
		"token": token,
	})
}

// Logout godoc
// @Summary 退出登录
// @Description 清除会话Cookie
// @Tags 认证
// @Produce  json
// @Success 200 {object} util.Response
// @Router /api/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(util.TokenCookieName, "", -1, "/", "", c.IsRelease, true)
	util.Success(ctx, gin.H{"message": "已退出登录"})
}

// GetProfile godoc
// @Summary 获取当前用户资料
// @Tags 认证
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.User}
// @Failure 401 {object} util.Response "未登录"
// @Router /api/profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, user.WithoutPassword())
}
