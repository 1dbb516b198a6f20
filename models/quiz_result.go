package models

import "time"

// QuizResult is one attempt at a quiz. Rows are immutable once written.
type QuizResult struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserID         uint      `json:"user_id" gorm:"not null;index"`
	QuizID         uint      `json:"quiz_id" gorm:"not null;index"`
	CompanyID      uint      `json:"company_id" gorm:"not null;index"`
	TotalQuestions int       `json:"total_questions" gorm:"not null"`
	TotalAnswers   int       `json:"total_answers" gorm:"not null"` // correct count
	Score          float64   `json:"score" gorm:"not null"`         // 0-100, two decimals
	CreatedAt      time.Time `json:"created_at"`

	// Relationships
	User User `json:"user,omitempty"`
	Quiz Quiz `json:"quiz,omitempty"`
}
