package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/handler/http/response"
)

// decodeJSON reads the request body into dst and answers 400 when it cannot.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		slog.Debug("Failed to decode request body", "path", r.URL.Path, "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}

// queryPositiveInt returns the query value when it is a positive integer, def otherwise.
func queryPositiveInt(r *http.Request, key string, def int) int {
	if v, err := strconv.Atoi(r.URL.Query().Get(key)); err == nil && v > 0 {
		return v
	}
	return def
}

// queryOptionalString returns nil for an absent or empty parameter.
func queryOptionalString(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}

// queryOptionalBool returns nil unless the parameter parses as a bool.
func queryOptionalBool(r *http.Request, key string) *bool {
	if v, err := strconv.ParseBool(r.URL.Query().Get(key)); err == nil {
		return &v
	}
	return nil
}
