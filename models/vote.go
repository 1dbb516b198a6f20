package models

import "fmt"

// UserQuizVote is the denormalized per-question vote record kept in Redis
// for 48 hours. It is never stored relationally.
type UserQuizVote struct {
	UserID       uint   `json:"user_id"`
	CompanyID    uint   `json:"company_id"`
	QuizID       uint   `json:"quiz_id"`
	QuestionID   uint   `json:"question_id"`
	QuestionText string `json:"question_text"`
	AnswerText   string `json:"answer_text"`
	IsCorrect    bool   `json:"is_correct"`
	Timestamp    int64  `json:"timestamp"`
}

const voteKeyPrefix = "quiz_vote"

// VoteKey builds the Redis key for a single vote.
func VoteKey(userID, companyID, quizID, questionID uint) string {
	return fmt.Sprintf("%s:%d:%d:%d:%d", voteKeyPrefix, userID, companyID, quizID, questionID)
}

// VoteKeyPattern matches every vote of a quiz within a company, any user.
func VoteKeyPattern(companyID, quizID uint) string {
	return fmt.Sprintf("%s:*:%d:%d:*", voteKeyPrefix, companyID, quizID)
}

// UserVoteKeyPattern matches every vote of one user on a quiz.
func UserVoteKeyPattern(userID, companyID, quizID uint) string {
	return fmt.Sprintf("%s:%d:%d:%d:*", voteKeyPrefix, userID, companyID, quizID)
}
