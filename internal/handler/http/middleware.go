package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/KeHamTruyen/SoCo-DATN-sub000/pkg/httputil"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const shopperIDKey contextKey = "shopper_id"

// ShopperIDFromHeader reads the X-User-ID header (injected by the gateway
// after session validation) and stores it in the request context. Requests
// without it are rejected with 401.
func ShopperIDFromHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-User-ID")
		if id == "" {
			httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "authentication required"},
			})
			return
		}
		ctx := context.WithValue(r.Context(), shopperIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// shopperIDFromContext extracts the shopper ID stored by ShopperIDFromHeader.
func shopperIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(shopperIDKey).(string)
	return id
}

// ContentTypeJSON enforces that requests with a body use application/json.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 || r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") {
				httputil.WriteJSON(w, http.StatusUnsupportedMediaType, httputil.Response{
					Error: &httputil.ErrorResponse{Code: "UNSUPPORTED_MEDIA_TYPE", Message: "Content-Type must be application/json"},
				})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
