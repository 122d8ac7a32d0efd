package service

import (
	"strings"
	"unicode/utf8"

	"schoolnet_backend/internal/model"
	"schoolnet_backend/internal/repository"
	"schoolnet_backend/internal/util"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) GetUserByID(id string) (*model.User, error) {
	user := s.UserRepo.GetByID(id)
	if user == nil {
		return nil, util.ErrUserNotFound
	}
	return user, nil
}

// ProfileUpdate 本人可修改的资料字段。指针为 nil 表示未提交，保持原值
type ProfileUpdate struct {
	Name   *string `json:"name"`
	Bio    *string `json:"bio"`
	Grade  *string `json:"grade"`
	Avatar *string `json:"avatar"`
}

// UpdateProfile 浅合并更新资料字段，角色和状态不在本人可改范围内
func (s *UserService) UpdateProfile(id string, updates ProfileUpdate) (*model.User, error) {
	err := s.UserRepo.Update(id, func(u *model.User) {
		if updates.Name != nil {
			u.Name = *updates.Name
		}
		if updates.Bio != nil {
			u.Bio = *updates.Bio
		}
		if updates.Grade != nil {
			u.Grade = *updates.Grade
		}
		if updates.Avatar != nil {
			u.Avatar = *updates.Avatar
		}
	})
	if err != nil {
		return nil, err
	}
	return s.GetUserByID(id)
}

// Search 按姓名/邮箱/年级模糊搜索已审核用户。
// 查询不足两个字符返回空结果（按字符数而非字节数，单个汉字算一个字符）；
// 结果不含发起人和未审核用户，上限20条
func (s *UserService) Search(currentUserID, query string) []model.User {
	if utf8.RuneCountInString(query) < util.SearchMinQueryLen {
		return []model.User{}
	}

	q := strings.ToLower(query)
	results := []model.User{}
	for _, u := range s.UserRepo.GetAll() {
		if u.Status != model.StatusApproved || u.ID == currentUserID {
			continue
		}
		if strings.Contains(strings.ToLower(u.Name), q) ||
			strings.Contains(strings.ToLower(u.Email), q) ||
			(u.Grade != "" && strings.Contains(strings.ToLower(u.Grade), q)) {
			results = append(results, u.WithoutPassword())
			if len(results) >= util.SearchMaxResults {
				break
			}
		}
	}
	return results
}

// ---- 管理员操作 ----

func (s *UserService) GetAllUsers() []model.User {
	users := s.UserRepo.GetAll()
	stripped := make([]model.User, 0, len(users))
	for _, u := range users {
		stripped = append(stripped, u.WithoutPassword())
	}
	return stripped
}

// AdminUpdate 管理员可改的字段。指针为 nil 表示未提交
type AdminUpdate struct {
	Name   *string           `json:"name"`
	Grade  *string           `json:"grade"`
	Status *model.UserStatus `json:"status"`
	Role   *model.UserRole   `json:"role"`
}

func (s *UserService) AdminUpdateUser(id string, updates AdminUpdate) (*model.User, error) {
	err := s.UserRepo.Update(id, func(u *model.User) {
		if updates.Name != nil {
			u.Name = *updates.Name
		}
		if updates.Grade != nil {
			u.Grade = *updates.Grade
		}
		if updates.Status != nil {
			u.Status = *updates.Status
		}
		if updates.Role != nil {
			u.Role = *updates.Role
		}
	})
	if err != nil {
		return nil, err
	}
	return s.GetUserByID(id)
}

func (s *UserService) ApproveUser(id string) error {
	return s.setStatus(id, model.StatusApproved)
}

func (s *UserService) RejectUser(id string) error {
	return s.setStatus(id, model.StatusRejected)
}

func (s *UserService) setStatus(id string, status model.UserStatus) error {
	if s.UserRepo.GetByID(id) == nil {
		return util.ErrUserNotFound
	}
	return s.UserRepo.Update(id, func(u *model.User) {
		u.Status = status
	})
}

// FixFirstUser 修复工具：把创建时间最早的用户提升为已审核的管理员。
// 早期数据里首个用户可能没有被正确提升，用于修复这类存量数据
func (s *UserService) FixFirstUser() (*model.User, error) {
	first := s.UserRepo.FirstCreated()
	if first == nil {
		return nil, util.ErrUserNotFound
	}

	err := s.UserRepo.Update(first.ID, func(u *model.User) {
		u.Role = model.RoleAdmin
		u.Status = model.StatusApproved
	})
	if err != nil {
		return nil, err
	}
	return s.GetUserByID(first.ID)
}
