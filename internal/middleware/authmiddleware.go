package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest/httpx"

	"coinwatch-api/internal/types"
)

// AuthKeyHeader carries the shared secret on every API request.
const AuthKeyHeader = "auth-key"

type AuthMiddleware struct {
	key []byte
}

func NewAuthMiddleware(key string) *AuthMiddleware {
	return &AuthMiddleware{key: []byte(key)}
}

func (m *AuthMiddleware) Handle(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.allowed(r.Header.Get(AuthKeyHeader)) {
			logx.WithContext(r.Context()).Infof("auth: rejected %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)
			httpx.WriteJsonCtx(r.Context(), w, http.StatusUnauthorized, types.ErrorResp{Error: "Unauthorized"})
			return
		}
		next(w, r)
	}
}

func (m *AuthMiddleware) allowed(got string) bool {
	if len(m.key) == 0 || got == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), m.key) == 1
}
