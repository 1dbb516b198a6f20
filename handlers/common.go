package handlers

import (
	"net/http"
	"strconv"
	"time"

	"corpquiz/apperrors"
	"corpquiz/models"

	"github.com/gin-gonic/gin"
)

// respondError is the single place that maps service error kinds to HTTP
// status codes.
func respondError(c *gin.Context, err error) {
	c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
}

func currentUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return 0, false
	}
	return userID.(uint), true
}

func currentUser(c *gin.Context) (*models.User, bool) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return nil, false
	}
	return user.(*models.User), true
}

// pathID parses a numeric path parameter.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// rangeParams reads optional from/to query parameters in RFC 3339 or
// YYYY-MM-DD form.
func rangeParams(c *gin.Context) (from, to *time.Time, ok bool) {
	parse := func(value string) (*time.Time, bool) {
		if value == "" {
			return nil, true
		}
		if t, err := time.Parse(time.RFC3339, value); err == nil {
			return &t, true
		}
		if t, err := time.Parse("2006-01-02", value); err == nil {
			return &t, true
		}
		return nil, false
	}

	from, ok = parse(c.Query("from"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date"})
		return nil, nil, false
	}
	to, ok = parse(c.Query("to"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date"})
		return nil, nil, false
	}
	return from, to, true
}
