package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/studytrack/internal/api/shared"
	"github.com/phrazzld/studytrack/internal/service"
)

// TagHandler serves the tag catalog.
type TagHandler struct {
	tags   service.TagService
	logger *slog.Logger
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(tags service.TagService, logger *slog.Logger) *TagHandler {
	if tags == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("tag service cannot be nil for TagHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TagHandler{
		tags:   tags,
		logger: logger.With(slog.String("component", "tag_handler")),
	}
}

// List handles GET /api/tags. The "All" sentinel is listed last.
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tags.ListTags(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tags")
		return
	}

	resp := make([]TagResponse, 0, len(tags))
	for _, tag := range tags {
		resp = append(resp, TagResponse{ID: tag.ID, Name: tag.Name})
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}
