package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/medcore/hospital-api/internal/model"
	apperrors "github.com/medcore/hospital-api/pkg/errors"
	"github.com/medcore/hospital-api/pkg/href"
)

// APIPrefix is the base path every resource URL hangs off.
const APIPrefix = "/api/v1"

// PageResponse is the pagination envelope for list endpoints.
type PageResponse struct {
	Count    int         `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// Resolver builds the per-request hyperlink resolver.
func Resolver(c *gin.Context) *href.Resolver {
	return href.FromRequest(c, APIPrefix)
}

// BindPagination reads page parameters off the query string.
func BindPagination(c *gin.Context) model.Pagination {
	p := model.Pagination{}
	p.Page, _ = strconv.Atoi(c.Query("page"))
	p.PageSize, _ = strconv.Atoi(c.Query("page_size"))
	p.Normalize()
	return p
}

// NewPageResponse wraps results with count and next/previous page links.
// Scoping has already been applied by the time results reach here.
func NewPageResponse(c *gin.Context, count int, p model.Pagination, results interface{}) PageResponse {
	resp := PageResponse{Count: count, Results: results}

	if p.Offset()+p.Limit() < count {
		resp.Next = pageLink(c, p.Page+1)
	}
	if p.Page > 1 {
		resp.Previous = pageLink(c, p.Page-1)
	}
	return resp
}

func pageLink(c *gin.Context, page int) *string {
	u := *c.Request.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	link := fmt.Sprintf("%s://%s%s", scheme, c.Request.Host, u.String())
	return &link
}

// Error defers rendering to the error-handling middleware.
func Error(c *gin.Context, err error) {
	_ = c.Error(err)
}

// BindJSON decodes the request body, reporting malformed payloads as a
// validation failure.
func BindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		Error(c, apperrors.FieldError("non_field_errors", "Malformed request."))
		return false
	}
	return true
}

// UserURL renders a nullable user reference as a hyperlink.
func UserURL(r *href.Resolver, id *int64) *string {
	if id == nil {
		return nil
	}
	u := r.URL("users", *id)
	return &u
}

// AuditURLs renders the created_by/updated_by audit references.
func AuditURLs(r *href.Resolver, a model.Audit) (createdBy, updatedBy *string) {
	return UserURL(r, a.CreatedBy), UserURL(r, a.UpdatedBy)
}

// ParseID parses a numeric path parameter; a malformed id reads as a
// missing resource.
func ParseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
