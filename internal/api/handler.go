package api

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/distribution/reference"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/trjordan/glance/internal/db"
	"github.com/trjordan/glance/pkg/metrics"
)

// tagPattern anchors the distribution tag grammar so a request tag
// must match it entirely.
var tagPattern = regexp.MustCompile(`^` + reference.TagRegexp.String() + `$`)

// Handler implements the v2 image and image-tag endpoints.
type Handler struct {
	store   *db.Store
	metrics *metrics.Metrics
}

// NewHandler creates a Handler over the given store and metrics
// recorder.
func NewHandler(store *db.Store, recorder *metrics.Metrics) *Handler {
	return &Handler{store: store, metrics: recorder}
}

// RegisterRoutes wires the image, tag, and metrics endpoints onto the
// server. The metrics route serves the given Prometheus registry and
// is skipped when registry is nil.
func (h *Handler) RegisterRoutes(server *Server, registry *prometheus.Registry) {
	server.RegisterFunc("POST /v2/images", h.createImage)
	server.RegisterFunc("GET /v2/images", h.listImages)
	server.RegisterFunc("GET /v2/images/{id}", h.getImage)
	server.RegisterFunc("GET /v2/images/{id}/tags", h.listTags)
	server.RegisterFunc("PUT /v2/images/{id}/tags/{tag}", h.updateTag)
	server.RegisterFunc("DELETE /v2/images/{id}/tags/{tag}", h.deleteTag)

	if registry != nil {
		server.RegisterHandler("GET /v1/metrics",
			promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}
}

// imageView is the JSON representation of a stored image.
type imageView struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Owner      string            `json:"owner,omitempty"`
	Location   string            `json:"location,omitempty"`
	Status     string            `json:"status"`
	IsPublic   bool              `json:"is_public"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
	Tags       []string          `json:"tags"`
	Properties map[string]string `json:"properties,omitempty"`
}

// imageRequest is the JSON body accepted when creating an image.
type imageRequest struct {
	Name       string            `json:"name"`
	Owner      string            `json:"owner"`
	Location   string            `json:"location"`
	IsPublic   bool              `json:"is_public"`
	Tags       []string          `json:"tags"`
	Properties map[string]string `json:"properties"`
}

// contextFrom derives the request context from identity headers.
func contextFrom(r *http.Request) db.Context {
	return db.Context{
		Owner:   r.Header.Get("X-Owner"),
		IsAdmin: strings.Contains(r.Header.Get("X-Roles"), "admin"),
	}
}

// viewOf converts a stored image to its JSON representation.
func viewOf(image db.Image) imageView {
	tags := image.Tags
	if tags == nil {
		tags = []string{}
	}

	return imageView{
		ID:         image.ID,
		Name:       image.Name,
		Owner:      image.Owner,
		Location:   image.Location,
		Status:     image.Status,
		IsPublic:   image.IsPublic,
		CreatedAt:  image.CreatedAt,
		UpdatedAt:  image.UpdatedAt,
		Tags:       tags,
		Properties: image.Properties,
	}
}

// writeJSON encodes a response body with the given status.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("Failed to encode response")
	}
}

// createImage handles POST /v2/images.
func (h *Handler) createImage(w http.ResponseWriter, r *http.Request) {
	h.metrics.RegisterRequest("images")

	var request imageRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)

		return
	}

	image := h.store.CreateImage(db.Image{
		Name:       request.Name,
		Owner:      request.Owner,
		Location:   request.Location,
		IsPublic:   request.IsPublic,
		Tags:       request.Tags,
		Properties: request.Properties,
	})
	h.metrics.RegisterImageCreated()

	writeJSON(w, http.StatusCreated, viewOf(image))
}

// getImage handles GET /v2/images/{id}. Images the caller may not see
// are reported as absent.
func (h *Handler) getImage(w http.ResponseWriter, r *http.Request) {
	h.metrics.RegisterRequest("images")

	ctx := contextFrom(r)

	image, err := h.store.GetImage(ctx, r.PathValue("id"))
	if err != nil || !h.store.IsImageVisible(ctx, image) {
		http.NotFound(w, r)

		return
	}

	writeJSON(w, http.StatusOK, viewOf(image))
}

// listImages handles GET /v2/images with sort_key, sort_dir, marker,
// and limit query parameters.
func (h *Handler) listImages(w http.ResponseWriter, r *http.Request) {
	h.metrics.RegisterRequest("images")

	ctx := contextFrom(r)
	query := r.URL.Query()

	limit := 0

	if rawLimit := query.Get("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)

			return
		}

		limit = parsed
	}

	images, err := h.store.ListImages(ctx, db.ListOptions{
		SortKey: query.Get("sort_key"),
		SortDir: query.Get("sort_dir"),
		Marker:  query.Get("marker"),
		Limit:   limit,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	views := make([]imageView, 0, len(images))

	for _, image := range images {
		if !h.store.IsImageVisible(ctx, image) {
			continue
		}

		views = append(views, viewOf(image))
	}

	writeJSON(w, http.StatusOK, map[string][]imageView{"images": views})
}
