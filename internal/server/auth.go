package server

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
)

// EnvAuthToken names the environment variable carrying the shared bearer
// token for the HTTP transports. When unset, the transports are open.
const EnvAuthToken = "MCP_AUTH_TOKEN"

// unauthorizedResponse is the JSON-RPC error body returned for requests
// missing or carrying a wrong bearer token.
type unauthorizedResponse struct {
	JSONRPC string `json:"jsonrpc"`
	ID      any    `json:"id"`
	Error   struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// BearerAuthMiddleware enforces a shared bearer token on the HTTP transports.
// Requests without a matching Authorization header get a JSON-RPC invalid
// request error with remediation text; an empty expected token disables the
// check entirely.
func BearerAuthMiddleware(expectedToken string, next http.Handler) http.Handler {
	if expectedToken == "" {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(expectedToken)) != 1 {
			writeUnauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeUnauthorized(w http.ResponseWriter) {
	resp := unauthorizedResponse{JSONRPC: "2.0"}
	resp.Error.Code = -32600
	resp.Error.Message = "Unauthorized: provide a bearer token via the Authorization header"

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(resp)
}
