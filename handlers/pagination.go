package handlers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultSkip  = 0
	defaultLimit = 10
)

type PageLinks struct {
	Previous *string `json:"previous"`
	Next     *string `json:"next"`
}

// Page is the uniform pagination envelope of every listing endpoint.
type Page struct {
	TotalPages  int       `json:"total_pages"`
	CurrentPage int       `json:"current_page"`
	Pagination  PageLinks `json:"pagination"`
	Items       any       `json:"items"`
}

func pageParams(c *gin.Context) (skip, limit int) {
	skip = defaultSkip
	limit = defaultLimit
	if v, err := strconv.Atoi(c.Query("skip")); err == nil && v >= 0 {
		skip = v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	return skip, limit
}

// newPage builds the envelope for one listing response. Links echo the
// request's base path.
func newPage(c *gin.Context, items any, total int64, skip, limit int) Page {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	page := Page{
		TotalPages:  totalPages,
		CurrentPage: skip/limit + 1,
		Items:       items,
	}

	base := c.Request.URL.Path
	if skip > 0 {
		prevSkip := skip - limit
		if prevSkip < 0 {
			prevSkip = 0
		}
		link := pageLink(base, prevSkip, limit)
		page.Pagination.Previous = &link
	}
	if int64(skip+limit) < total {
		link := pageLink(base, skip+limit, limit)
		page.Pagination.Next = &link
	}
	return page
}

func pageLink(base string, skip, limit int) string {
	return fmt.Sprintf("%s?skip=%d&limit=%d", base, skip, limit)
}
