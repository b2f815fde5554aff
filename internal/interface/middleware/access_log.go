package middleware

import (
	"fmt"
	"io"
	"time"

	"github.com/gin-gonic/gin"
)

const ctxRouteKey = "route"

// routePath is the matched route template, so path parameters such as reset tokens never reach a log line.
func routePath(c *gin.Context) string {
	if fp := c.FullPath(); fp != "" {
		return fp
	}
	return "(no route)"
}

// AccessLog is gin's request logger printing the route template instead of the raw path.
func AccessLog(out io.Writer) gin.HandlerFunc {
	logger := gin.LoggerWithConfig(gin.LoggerConfig{Output: out, Formatter: accessLogLine})
	return func(c *gin.Context) {
		c.Set(ctxRouteKey, routePath(c))
		logger(c)
	}
}

func accessLogLine(p gin.LogFormatterParams) string {
	route, _ := p.Keys[ctxRouteKey].(string)
	return fmt.Sprintf("[GIN] %v | %3d | %13v | %15s | %-7s %s\n",
		p.TimeStamp.Format(time.RFC3339),
		p.StatusCode,
		p.Latency,
		p.ClientIP,
		p.Method,
		route,
	)
}
