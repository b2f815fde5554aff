package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-todo-auth/pkg/apperror"
	"github.com/oksasatya/go-todo-auth/pkg/response"
)

type errorBody struct {
	Kind    apperror.Kind `json:"kind"`
	Details any           `json:"details,omitempty"`
	Detail  string        `json:"detail,omitempty"`
}

// ErrorHandler renders the last error pushed with c.Error once the handlers are done.
// In development every error carries its detail; otherwise only operational errors keep their message
// and everything else becomes a generic 500.
func ErrorHandler(logger *logrus.Logger, development bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil {
			return
		}
		e := apperror.From(last.Err)

		fields := logrus.Fields{
			"request_id": c.GetString("request_id"),
			"route":      routePath(c),
			"kind":       e.Kind,
			"status":     e.Status,
		}
		if uid := c.GetString(CtxUserIDKey); uid != "" {
			fields["user_id"] = uid
		}
		if logger != nil {
			entry := logger.WithFields(fields)
			if e.Err != nil {
				entry = entry.WithError(e.Err)
			}
			if e.Operational {
				entry.Debug(e.Message)
			} else {
				entry.Error("unhandled error")
			}
		}

		if c.Writer.Written() {
			return
		}

		body := errorBody{Kind: e.Kind, Details: e.Details}
		message := e.Message
		status := e.Status
		switch {
		case development:
			body.Detail = e.Error()
		case !e.Operational:
			status = http.StatusInternalServerError
			message = "something went wrong"
			body = errorBody{Kind: apperror.KindInternal}
		}
		response.Error[any](c, status, message, body)
	}
}

// NotFound answers unknown routes.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = c.Error(apperror.New(apperror.KindNotFound, "unknown URL"))
	}
}
