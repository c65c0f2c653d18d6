package http

import (
	"net/http"

	"github.com/mekorot/linker/pkg/domain/model"
	"github.com/mekorot/linker/pkg/domain/types"
)

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.Healthy("linker", types.Version))
}
