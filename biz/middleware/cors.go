package middleware

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/yi-nology/opsboard/pkg/config"
)

// corsPolicy holds the resolved header values written on every response.
type corsPolicy struct {
	origin      string
	methods     string
	headers     string
	credentials string
	maxAge      string
}

// Dashboard clients only ever send JSON plus the caller identity headers.
func resolveCORS(cfg *config.CORSConfig) corsPolicy {
	p := corsPolicy{
		origin:      "*",
		methods:     "GET,POST,PUT,OPTIONS",
		headers:     "Content-Type,X-User-Id,X-Role",
		credentials: "false",
		maxAge:      strconv.Itoa(600),
	}
	if cfg == nil {
		return p
	}
	if cfg.AllowOrigin != "" {
		p.origin = cfg.AllowOrigin
	}
	if cfg.AllowMethods != "" {
		p.methods = cfg.AllowMethods
	}
	if cfg.AllowHeaders != "" {
		p.headers = cfg.AllowHeaders
	}
	// Browsers reject credentials combined with a wildcard origin.
	if cfg.AllowCredentials && p.origin != "*" {
		p.credentials = "true"
	}
	return p
}

// CORS answers preflight requests and decorates every response for browser clients.
func CORS(cfg *config.CORSConfig) app.HandlerFunc {
	p := resolveCORS(cfg)
	return func(ctx context.Context, c *app.RequestContext) {
		h := &c.Response.Header
		h.Set("Access-Control-Allow-Origin", p.origin)
		h.Set("Access-Control-Allow-Credentials", p.credentials)
		if p.origin != "*" {
			h.Add("Vary", "Origin")
		}

		if string(c.Request.Method()) != consts.MethodOptions {
			c.Next(ctx)
			return
		}
		h.Set("Access-Control-Allow-Methods", p.methods)
		h.Set("Access-Control-Allow-Headers", p.headers)
		h.Set("Access-Control-Max-Age", p.maxAge)
		c.AbortWithStatus(consts.StatusNoContent)
	}
}
