package server

import (
	nethttp "net/http"

	khttp "github.com/go-kratos/kratos/v2/transport/http"
	"golang.org/x/time/rate"
)

// RateLimit caps the request rate on the routes it wraps. Requests beyond
// the burst are rejected immediately rather than queued.
func RateLimit(qps, burst int) khttp.FilterFunc {
	if burst < qps {
		burst = qps
	}
	limiter := rate.NewLimiter(rate.Limit(qps), burst)
	return func(next nethttp.Handler) nethttp.Handler {
		return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			if !limiter.Allow() {
				writeMessage(w, nethttp.StatusTooManyRequests, "Too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
