package server

import (
	"time"
)

const startKey = "server.start"

type requestLogger struct{}

// RequestLogger logs each page request with its status and duration
func RequestLogger() Middleware {
	return requestLogger{}
}

func (requestLogger) Before(ctx Ctx) error {
	ctx.Set(startKey, time.Now())
	return nil
}

func (requestLogger) After(ctx Ctx) error {
	start, _ := ctx.Get(startKey).(time.Time)
	ctx.Logger().Info("request",
		"status", ctx.StatusCode(),
		"duration", time.Since(start),
	)
	return nil
}

type securityHeaders struct{}

// SecurityHeaders sets conservative response headers on pages
func SecurityHeaders() Middleware {
	return securityHeaders{}
}

func (securityHeaders) Before(ctx Ctx) error {
	h := ctx.Header()
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("X-Frame-Options", "DENY")
	h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
	return nil
}

func (securityHeaders) After(Ctx) error { return nil }
