package hira

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Middleware wraps an http.RoundTripper with one request-level concern.
type Middleware func(http.RoundTripper) http.RoundTripper

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// Chain composes middlewares around a base transport. The first middleware
// is outermost.
func Chain(base http.RoundTripper, middlewares ...Middleware) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	for i := len(middlewares) - 1; i >= 0; i-- {
		base = middlewares[i](base)
	}
	return base
}

// ServiceKeyInjector adds the open-data service key to every outgoing
// request. Keeping this as transport middleware keeps the key out of every
// call site and out of the client's URL-building code.
func ServiceKeyInjector(serviceKey string) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			q := req.URL.Query()
			q.Set("ServiceKey", serviceKey)
			clone := req.Clone(req.Context())
			clone.URL.RawQuery = q.Encode()
			return next.RoundTrip(clone)
		})
	}
}

// RequestLogger logs each upstream call at debug level with the service key
// redacted.
func RequestLogger() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.RoundTrip(req)

			event := log.Debug().
				Str("method", req.Method).
				Str("url", redactedURL(req)).
				Dur("duration", time.Since(start))
			if err != nil {
				event.Err(err).Msg("hira request failed")
				return resp, err
			}
			event.Int("status", resp.StatusCode).Msg("hira request")
			return resp, nil
		})
	}
}

func redactedURL(req *http.Request) string {
	u := *req.URL
	q := u.Query()
	if q.Has("ServiceKey") {
		q.Set("ServiceKey", "***")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
