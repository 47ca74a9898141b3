// Package security provides HTTP hardening middleware for the rendezvous API.
package security

import (
	"github.com/gin-gonic/gin"
)

// HeadersMiddleware adds generic hardening headers to all responses.
// The rendezvous endpoint's own CORS/cache-control contract (spec-mandated,
// not generic hardening) is set in internal/rendezvous, not here.
func HeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Prevent MIME type sniffing
		c.Header("X-Content-Type-Options", "nosniff")

		// Prevent clickjacking
		c.Header("X-Frame-Options", "DENY")

		// Enable XSS filter
		c.Header("X-XSS-Protection", "1; mode=block")

		// Referrer policy
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		// Content Security Policy — no UI surface, so this stays maximally restrictive
		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		// Permissions Policy
		c.Header("Permissions-Policy", "geolocation=(), microphone=(), camera=()")

		c.Next()
	}
}
