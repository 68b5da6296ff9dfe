package handler

import (
	"net/http"

	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/api/response"
)

// HealthCheck returns a simple health check response
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{
		"status": "ok",
	})
}
