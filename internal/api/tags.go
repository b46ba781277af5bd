package api

import (
	"errors"
	"net/http"
	"slices"

	"github.com/trjordan/glance/internal/db"
)

// listTags handles GET /v2/images/{id}/tags.
func (h *Handler) listTags(w http.ResponseWriter, r *http.Request) {
	h.metrics.RegisterRequest("tags")

	tags, err := h.store.Tags(contextFrom(r), r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)

		return
	}

	writeJSON(w, http.StatusOK, map[string][]string{"tags": tags})
}

// updateTag handles PUT /v2/images/{id}/tags/{tag}.
// Adding a tag that is already present succeeds without duplicating it.
func (h *Handler) updateTag(w http.ResponseWriter, r *http.Request) {
	h.metrics.RegisterRequest("tags")

	tag := r.PathValue("tag")
	if !tagPattern.MatchString(tag) {
		http.Error(w, "invalid tag", http.StatusBadRequest)

		return
	}

	ctx := contextFrom(r)
	imageID := r.PathValue("id")

	tags, err := h.store.Tags(ctx, imageID)
	if err != nil {
		http.NotFound(w, r)

		return
	}

	if !slices.Contains(tags, tag) {
		if err := h.store.CreateTag(ctx, imageID, tag); err != nil {
			http.NotFound(w, r)

			return
		}

		h.metrics.RegisterTagCreated()
	}

	w.WriteHeader(http.StatusNoContent)
}

// deleteTag handles DELETE /v2/images/{id}/tags/{tag}.
func (h *Handler) deleteTag(w http.ResponseWriter, r *http.Request) {
	h.metrics.RegisterRequest("tags")

	err := h.store.DeleteTag(contextFrom(r), r.PathValue("id"), r.PathValue("tag"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			http.NotFound(w, r)

			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	h.metrics.RegisterTagDeleted()
	w.WriteHeader(http.StatusNoContent)
}
