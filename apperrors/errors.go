// Package apperrors defines the error kinds services raise and the single
// mapping from kinds to HTTP status codes used at the HTTP edge.
package apperrors

import (
	"errors"
	"net/http"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrCompanyNotFound    = errors.New("company not found")
	ErrCompanyPermission  = errors.New("no permission on this company")
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrRequestNotFound    = errors.New("request not found")
	ErrMemberNotFound     = errors.New("member not found")
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrAnswerNotFound     = errors.New("answer not found")
	ErrRecordNotFound     = errors.New("record not found")
	ErrAddRecord          = errors.New("failed to add record")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrBadRequest         = errors.New("bad request")
)

// HTTPStatus maps an error kind to a status code. Unknown errors are
// reported as 500; services are expected to wrap one of the kinds above.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrCompanyPermission),
		errors.Is(err, ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrCompanyNotFound),
		errors.Is(err, ErrInvitationNotFound),
		errors.Is(err, ErrRequestNotFound),
		errors.Is(err, ErrMemberNotFound),
		errors.Is(err, ErrQuizNotFound),
		errors.Is(err, ErrQuestionNotFound),
		errors.Is(err, ErrAnswerNotFound),
		errors.Is(err, ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUserAlreadyExists),
		errors.Is(err, ErrEmailAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, ErrAddRecord):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
