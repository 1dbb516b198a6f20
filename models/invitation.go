package models

import "time"

type InviteStatus string

const (
	InvitePending   InviteStatus = "pending"
	InviteAccepted  InviteStatus = "accepted"
	InviteDeclined  InviteStatus = "declined"
	InviteCancelled InviteStatus = "cancelled"
)

// CompanyInvitation is created by the company owner for an outside user.
type CompanyInvitation struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	CompanyID     uint         `json:"company_id" gorm:"not null;index"`
	InvitedUserID uint         `json:"invited_user_id" gorm:"not null;index"`
	Status        InviteStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt     time.Time    `json:"created_at"`

	// Relationships
	Company     Company `json:"company,omitempty"`
	InvitedUser User    `json:"invited_user,omitempty" gorm:"foreignKey:InvitedUserID"`
}

// CompanyRequest is created by an outside user who wants to join a company.
type CompanyRequest struct {
	ID              uint         `json:"id" gorm:"primaryKey"`
	CompanyID       uint         `json:"company_id" gorm:"not null;index"`
	RequestedUserID uint         `json:"requested_user_id" gorm:"not null;index"`
	Status          InviteStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt       time.Time    `json:"created_at"`

	// Relationships
	Company       Company `json:"company,omitempty"`
	RequestedUser User    `json:"requested_user,omitempty" gorm:"foreignKey:RequestedUserID"`
}
