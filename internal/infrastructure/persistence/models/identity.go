package models

import (
	"time"

	"github.com/armonia/backend/internal/domain/identity"
)

// UserModel is the persistence model for a platform user.
type UserModel struct {
	TenantAggregateModel
	Email             string        `gorm:"type:varchar(200);not null;uniqueIndex:idx_user_tenant_email,priority:2"`
	Name              string        `gorm:"type:varchar(100);not null"`
	Phone             string        `gorm:"type:varchar(50)"`
	Role              identity.Role `gorm:"type:varchar(30);not null;index"`
	PasswordHash      string        `gorm:"type:varchar(100);not null"`
	Active            bool          `gorm:"not null;default:true"`
	LastLoginAt       *time.Time
	PasswordChangedAt *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		Email:               m.Email,
		Name:                m.Name,
		Phone:               m.Phone,
		Role:                m.Role,
		PasswordHash:        m.PasswordHash,
		Active:              m.Active,
		LastLoginAt:         m.LastLoginAt,
		PasswordChangedAt:   m.PasswordChangedAt,
	}
}

// UserModelFromDomain builds the persistence model from a domain User.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		Email:             u.Email,
		Name:              u.Name,
		Phone:             u.Phone,
		Role:              u.Role,
		PasswordHash:      u.PasswordHash,
		Active:            u.Active,
		LastLoginAt:       u.LastLoginAt,
		PasswordChangedAt: u.PasswordChangedAt,
	}
	m.FromTenantAggregateRoot(u.TenantAggregateRoot)
	return m
}
