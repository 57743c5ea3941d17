package middleware

import (
	"github.com/gin-gonic/gin"
)

// RealIP stores the client address under "real_ip". Forwarding headers are
// only honored when the engine trusts the sending proxy or platform.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("real_ip", c.ClientIP())
		c.Next()
	}
}

// TrustProxies restricts which peers may set forwarding headers. An empty
// list trusts none. platform is "cloudflare", "appengine" or empty.
func TrustProxies(e *gin.Engine, proxies []string, platform string) error {
	switch platform {
	case "cloudflare":
		e.TrustedPlatform = gin.PlatformCloudflare
	case "appengine":
		e.TrustedPlatform = gin.PlatformGoogleAppEngine
	default:
		e.TrustedPlatform = ""
	}
	if len(proxies) == 0 {
		proxies = nil
	}
	return e.SetTrustedProxies(proxies)
}
