package middleware

import (
	"github.com/gin-gonic/gin"
)

// TrustProxies limits which peers may set the client IP through X-Forwarded-For / X-Real-IP.
// No proxies means forwarding headers are ignored. With cloudflare set, CF-Connecting-IP is honored.
func TrustProxies(r *gin.Engine, proxies []string, cloudflare bool) error {
	if len(proxies) == 0 {
		proxies = nil
	}
	if err := r.SetTrustedProxies(proxies); err != nil {
		return err
	}
	r.RemoteIPHeaders = []string{"X-Forwarded-For", "X-Real-IP"}
	if cloudflare {
		r.TrustedPlatform = gin.PlatformCloudflare
	}
	return nil
}

// RealIP sets the client IP into the Gin context (key: "real_ip").
// Forwarding headers count only as far as TrustProxies allows.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("real_ip", c.ClientIP())
		c.Next()
	}
}

// ClientIP returns the IP resolved by RealIP, falling back to Gin's view and finally "unknown".
func ClientIP(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}
