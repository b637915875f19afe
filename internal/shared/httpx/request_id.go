package httpx

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/k1networth/issue-tracker/internal/shared/requestid"
)

const requestIDHeader = "X-Request-Id"

// RequestID reuses an incoming X-Request-Id or generates one, echoes it in
// the response header, and stashes it in the request context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if rid == "" {
			rid = newRequestID()
		}

		w.Header().Set(requestIDHeader, rid)

		next.ServeHTTP(w, r.WithContext(requestid.With(r.Context(), rid)))
	})
}

func newRequestID() string {
	var b [16]byte
	_, err := rand.Read(b[:])
	if err != nil {
		return "00000000000000000000000000000000"
	}
	return hex.EncodeToString(b[:])
}
