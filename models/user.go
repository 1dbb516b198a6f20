package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	Email          string         `json:"email" gorm:"uniqueIndex;not null"`
	IsActive       bool           `json:"is_active" gorm:"not null;default:true"`
	Firstname      string         `json:"firstname"`
	Lastname       string         `json:"lastname"`
	City           string         `json:"city"`
	Phone          string         `json:"phone"`
	Avatar         string         `json:"avatar"`
	HashedPassword string         `json:"-"`
	IsSuperuser    bool           `json:"is_superuser" gorm:"not null;default:false"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}
