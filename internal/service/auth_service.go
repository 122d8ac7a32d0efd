package service

import (
	"time"

	"schoolnet_backend/internal/config"
	"schoolnet_backend/internal/model"
	"schoolnet_backend/internal/repository"
	"schoolnet_backend/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

// Register 注册新用户。首个注册的用户自动成为管理员并直接通过审核，
// 其余用户以 pending 状态等待管理员审批
func (s *AuthService) Register(email, password, name, grade string) (*model.User, error) {
	if existing := s.UserRepo.GetByEmail(email); existing != nil {
		return nil, util.ErrEmailRegistered
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	isFirstUser := s.UserRepo.Count() == 0

	user := model.User{
		ID:        model.GenerateID(),
		Email:     email,
		Password:  string(hashedPassword),
		Name:      name,
		Grade:     grade,
		Role:      model.RoleUser,
		Status:    model.StatusPending,
		CreatedAt: time.Now(),
	}
	if isFirstUser {
		user.Role = model.RoleAdmin
		user.Status = model.StatusApproved
	}

	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login 校验凭据。用户不存在和密码错误返回同一个错误，调用方无法区分；
// rejected 状态即使密码正确也拒绝登录
func (s *AuthService) Login(email, password string) (*model.User, string, error) {
	user := s.UserRepo.GetByEmail(email)
	if user == nil {
		return nil, "", util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", util.ErrInvalidCredentials
	}

	if user.Status == model.StatusRejected {
		return nil, "", util.ErrAccountRejected
	}

	// pending 用户也发放令牌，前端将其引导到等待审核页
	token, err := s.IssueToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) IssueToken(userID string) (string, error) {
	return util.GenerateJWT(userID, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

// GetCurrentUser 从请求上下文解析当前用户。没有令牌、令牌无效、
// 用户不存在一律返回 nil，对调用方表现一致
func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}
	return s.UserRepo.GetByID(claims.UserID)
}
