package models

import (
	"time"

	"gorm.io/gorm"
)

type Company struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description"`
	Visible     bool           `json:"visible" gorm:"not null"`
	OwnerID     uint           `json:"owner_id" gorm:"not null"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Owner       User                `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Members     []CompanyMember     `json:"members,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
	Invitations []CompanyInvitation `json:"invitations,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
	Requests    []CompanyRequest    `json:"requests,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
	Quizzes     []Quiz              `json:"quizzes,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
}

type CompanyMember struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CompanyID uint      `json:"company_id" gorm:"not null;uniqueIndex:idx_company_user"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_company_user"`
	IsAdmin   bool      `json:"is_admin" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Company Company `json:"company,omitempty"`
	User    User    `json:"user,omitempty"`
}
