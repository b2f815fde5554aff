package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-todo-auth/pkg/apperror"
	"github.com/oksasatya/go-todo-auth/pkg/validation"
)

// bindJSON binds and validates the body into dst. On failure it records a validation error and returns false.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		fail(c, apperror.Wrap(apperror.KindValidation, "Invalid input data", err).WithDetails(validation.ToDetails(err)))
		return false
	}
	return true
}

func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func rejectField(field, message string) error {
	return apperror.New(apperror.KindValidation, message).WithDetails(map[string]string{field: "not allowed"})
}

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// parseDate accepts RFC 3339 timestamps and plain dates; an empty string means no date.
func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, apperror.New(apperror.KindValidation, "Invalid input data").
		WithDetails(map[string]string{"date": "must be an RFC 3339 timestamp or a YYYY-MM-DD date"})
}

// requestOrigin is scheme://host of the request as seen by the client.
func requestOrigin(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if p := c.GetHeader("X-Forwarded-Proto"); p == "http" || p == "https" {
		scheme = p
	}
	return scheme + "://" + c.Request.Host
}
