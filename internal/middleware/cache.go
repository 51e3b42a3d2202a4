package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// CachePolicy is the Cache-Control policy of a route group.
type CachePolicy struct {
	// MaxAge in seconds. Zero makes caches revalidate every time.
	MaxAge  int
	Private bool
	NoStore bool
}

// PublicCache lets browsers and proxies keep GET responses for maxAge seconds.
func PublicCache(maxAge int) CachePolicy {
	return CachePolicy{MaxAge: maxAge}
}

// NoStore keeps responses out of every cache. Pages that echo user input use it.
func NoStore() CachePolicy {
	return CachePolicy{Private: true, NoStore: true}
}

func (p CachePolicy) String() string {
	value := "public"
	if p.Private {
		value = "private"
	}
	switch {
	case p.NoStore:
		return value + ", no-store"
	case p.MaxAge > 0:
		return value + ", max-age=" + strconv.Itoa(p.MaxAge)
	default:
		return value + ", no-cache"
	}
}

// Cache applies policy to GET and HEAD responses. Responses to any other
// method are never stored.
func Cache(policy CachePolicy) gin.HandlerFunc {
	value := policy.String()
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead:
			c.Header("Cache-Control", value)
			if !policy.NoStore {
				c.Header("Vary", "Accept")
			}
		default:
			c.Header("Cache-Control", "no-store")
		}
		c.Next()
	}
}
