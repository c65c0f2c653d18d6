package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/m-mizutani/ctxlog"
	"github.com/mekorot/linker/pkg/domain/interfaces"
	"github.com/mekorot/linker/pkg/domain/model"
)

// EntitiesHandler serves the entity recognition endpoints
type EntitiesHandler struct {
	linkerUC interfaces.LinkerUseCase
}

// NewEntitiesHandler creates a new EntitiesHandler
func NewEntitiesHandler(linkerUC interfaces.LinkerUseCase) *EntitiesHandler {
	return &EntitiesHandler{
		linkerUC: linkerUC,
	}
}

// HandleRecognize processes POST /recognize-entities requests
func (h *EntitiesHandler) HandleRecognize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Error("Failed to read request body", "error", err)
		writeError(w, "failed to read request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var req model.RecognizeRequest
	if err := json.Unmarshal(body, &req); err != nil || req.Text == nil {
		writeError(w, "Missing 'text' in request body.", http.StatusBadRequest)
		return
	}

	result, err := h.linkerUC.RecognizeEntities(ctx, *req.Text, req.Lang, withSpanText(r))
	if err != nil {
		logger.Error("Failed to recognize entities", "error", err)
		writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleBulkRecognize processes POST /bulk-recognize-entities requests
func (h *EntitiesHandler) HandleBulkRecognize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Error("Failed to read request body", "error", err)
		writeError(w, "failed to read request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var req model.BulkRecognizeRequest
	if err := json.Unmarshal(body, &req); err != nil || req.Texts == nil {
		writeError(w, "Missing 'texts' in request body.", http.StatusBadRequest)
		return
	}

	result, err := h.linkerUC.BulkRecognizeEntities(ctx, req.Texts, req.Lang, withSpanText(r))
	if err != nil {
		logger.Error("Failed to recognize entities in bulk", "error", err)
		writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// withSpanText reports whether the caller asked for span surface text in the
// response via the with_span_text query parameter
func withSpanText(r *http.Request) bool {
	return r.URL.Query().Get("with_span_text") == "1"
}
