package http

import (
	"context"
	"net"
	"net/http"
)

type ctxKey int

const ctxKeyUnixSock ctxKey = iota

// NewBaseContext initializes the context for all requests, marking those received on a unix socket
func NewBaseContext(ctx context.Context) func(l net.Listener) context.Context {
	return func(l net.Listener) context.Context {
		if l.Addr().Network() == "unix" {
			return context.WithValue(ctx, ctxKeyUnixSock, true)
		}
		return ctx
	}
}

// IsUnixSocket checks if the request was received on a unix socket, used to skip CORS
func IsUnixSocket(r *http.Request) bool {
	v, _ := r.Context().Value(ctxKeyUnixSock).(bool)
	return v
}
