package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// RealIP resolves the client address behind proxies and stores it under
// "real_ip". CF-Connecting-IP wins, then the left-most X-Forwarded-For
// entry, then gin's own ClientIP.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := headerIP(c.GetHeader("CF-Connecting-IP"))
		if ip == "" {
			if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
				first, _, _ := strings.Cut(xff, ",")
				ip = headerIP(first)
			}
		}
		if ip == "" {
			ip = c.ClientIP()
		}
		c.Set("real_ip", ip)
		c.Next()
	}
}

func headerIP(raw string) string {
	ip := net.ParseIP(strings.TrimSpace(raw))
	if ip == nil {
		return ""
	}
	return ip.String()
}
