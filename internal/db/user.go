package db

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	// RoleAdministrator 可以管理站点设置，维护期间照常浏览。
	RoleAdministrator = "administrator"
	// RoleEditor 只能编辑内容，维护期间与访客一样被重定向。
	RoleEditor = "editor"
)

// User 定义了用户模型
type User struct {
	gorm.Model
	Username string `gorm:"unique;not null"`
	Password string `gorm:"not null"`
	Role     string `gorm:"size:30;not null;default:'editor'"`
}

// CanManageOptions 表示该用户是否拥有站点设置权限。
func (u User) CanManageOptions() bool {
	return u.Role == RoleAdministrator
}

// EnsureUser 存在性检查：若提供的用户名与密码均非空且不存在对应账号，则创建一个 bcrypt 哈希的管理员。
func EnsureUser(username, password string) error {
	trimmedUser := strings.TrimSpace(username)
	trimmedPassword := strings.TrimSpace(password)
	if trimmedUser == "" || trimmedPassword == "" {
		return nil
	}

	if DB == nil {
		return errors.New("database not initialized")
	}

	var existing User
	if err := DB.Where("username = ?", trimmedUser).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(trimmedPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		return DB.Create(&User{Username: trimmedUser, Password: string(hashed), Role: RoleAdministrator}).Error
	}

	return nil
}

// CreateUser 创建指定角色的用户，用户名已存在时返回错误。
func CreateUser(username, password, role string) (*User, error) {
	trimmedUser := strings.TrimSpace(username)
	if trimmedUser == "" || strings.TrimSpace(password) == "" {
		return nil, errors.New("username and password are required")
	}
	if role != RoleAdministrator && role != RoleEditor {
		return nil, errors.New("role must be administrator or editor")
	}
	if DB == nil {
		return nil, errors.New("database not initialized")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := User{Username: trimmedUser, Password: string(hashed), Role: role}
	if err := DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
