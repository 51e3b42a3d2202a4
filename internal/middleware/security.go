package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// PageSecurityConfig sets the response headers of the server-rendered doctor
// pages.
type PageSecurityConfig struct {
	// FormActions are the CSP sources the doctor form may post to. Empty means 'self'.
	FormActions []string
	// FrameAncestors are the origins allowed to embed the pages. Empty means none.
	FrameAncestors []string
	// HSTSMaxAge of zero leaves Strict-Transport-Security unset.
	HSTSMaxAge time.Duration
}

// ContentSecurityPolicy returns the policy for the doctor pages. They run no
// scripts and load nothing but same-origin styles.
func (c PageSecurityConfig) ContentSecurityPolicy() string {
	formActions := c.FormActions
	if len(formActions) == 0 {
		formActions = []string{"'self'"}
	}
	frameAncestors := c.FrameAncestors
	if len(frameAncestors) == 0 {
		frameAncestors = []string{"'none'"}
	}

	return strings.Join([]string{
		"default-src 'none'",
		"style-src 'self'",
		"img-src 'self' data:",
		"base-uri 'none'",
		"form-action " + strings.Join(formActions, " "),
		"frame-ancestors " + strings.Join(frameAncestors, " "),
	}, "; ")
}

// PageSecurity adds the security headers of the doctor pages.
func PageSecurity(config PageSecurityConfig) gin.HandlerFunc {
	csp := config.ContentSecurityPolicy()

	var hsts string
	if config.HSTSMaxAge > 0 {
		hsts = "max-age=" + strconv.Itoa(int(config.HSTSMaxAge/time.Second))
	}

	return func(c *gin.Context) {
		c.Header("Content-Security-Policy", csp)
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "same-origin")
		// X-Frame-Options cannot name origins; CSP frame-ancestors covers that case.
		if len(config.FrameAncestors) == 0 {
			c.Header("X-Frame-Options", "DENY")
		}
		if hsts != "" {
			c.Header("Strict-Transport-Security", hsts)
		}
		c.Next()
	}
}
