// AngelaMos | 2026
// handler.go

package media

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/smartcityfix/api/internal/core"
)

type SignResponse struct {
	CloudName string `json:"cloud_name"`
	APIKey    string `json:"api_key"`
	Timestamp int64  `json:"timestamp"`
	Signature string `json:"signature"`
	Folder    string `json:"folder,omitempty"`
}

type UploadRequest struct {
	ImageData string `json:"image_data" validate:"required"`
}

type UploadResponse struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

type Handler struct {
	signer    *Signer
	client    *Client
	validator *validator.Validate
}

func NewHandler(signer *Signer, client *Client) *Handler {
	return &Handler{
		signer:    signer,
		client:    client,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/media", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/sign", h.Sign)
		r.Post("/upload", h.Upload)
	})
}

// Sign hands the browser everything it needs for a direct signed
// upload, keeping the API secret on the server.
func (h *Handler) Sign(w http.ResponseWriter, r *http.Request) {
	if !h.signer.Configured() {
		h.notConfigured(w)
		return
	}

	timestamp := time.Now().Unix()
	folder := h.signer.Folder()

	core.OK(w, SignResponse{
		CloudName: h.signer.CloudName(),
		APIKey:    h.signer.APIKey(),
		Timestamp: timestamp,
		Signature: h.signer.SignUpload(timestamp, folder),
		Folder:    folder,
	})
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if !h.signer.Configured() {
		h.notConfigured(w)
		return
	}

	var req UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	if !strings.HasPrefix(req.ImageData, "data:image/") {
		core.BadRequest(w, "image_data must be a base64 image data URI")
		return
	}

	result, err := h.client.Upload(r.Context(), req.ImageData)
	if err != nil {
		core.UpstreamError(w, err)
		return
	}

	core.OK(w, UploadResponse{
		URL:      result.SecureURL,
		PublicID: result.PublicID,
	})
}

func (h *Handler) notConfigured(w http.ResponseWriter) {
	core.JSONError(w, core.NewAppError(
		nil,
		"media uploads are not configured",
		http.StatusServiceUnavailable,
		"MEDIA_NOT_CONFIGURED",
	))
}
