// Package href builds and resolves the hyperlink references used in API
// representations. Relations are exchanged as resource URLs rather than raw
// numeric keys; an unresolvable URL on a relation field is a field-level
// validation failure.
package href

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// ErrNoMatch is returned when a submitted reference does not resolve to a
// resource URL.
var ErrNoMatch = errors.New("no URL match")

// Resolver builds absolute resource URLs under a fixed base (scheme, host
// and API prefix) and resolves submitted URLs back to numeric ids.
type Resolver struct {
	base string
}

// New returns a Resolver for the given base, e.g.
// "http://localhost:8080/api/v1".
func New(base string) *Resolver {
	return &Resolver{base: strings.TrimRight(base, "/")}
}

// FromRequest derives a Resolver from the incoming request so generated
// links carry the host the client used.
func FromRequest(c *gin.Context, prefix string) *Resolver {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return New(fmt.Sprintf("%s://%s%s", scheme, c.Request.Host, prefix))
}

// URL returns the canonical URL for a resource instance.
func (r *Resolver) URL(resource string, id int64) string {
	return fmt.Sprintf("%s/%s/%d", r.base, resource, id)
}

// Resolve parses raw as a URL for the given resource and returns the
// numeric id. Any mismatch, including a well-formed URL for a different
// resource, yields ErrNoMatch.
func (r *Resolver) Resolve(resource, raw string) (int64, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" {
		return 0, ErrNoMatch
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 {
		return 0, ErrNoMatch
	}
	if parts[len(parts)-2] != resource {
		return 0, ErrNoMatch
	}

	id, err := strconv.ParseInt(parts[len(parts)-1], 10, 64)
	if err != nil || id < 1 {
		return 0, ErrNoMatch
	}
	return id, nil
}
