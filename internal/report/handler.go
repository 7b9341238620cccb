// AngelaMos | 2026
// handler.go

package report

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/smartcityfix/api/internal/core"
	"github.com/smartcityfix/api/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/reports", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/", h.Create)
		r.Get("/", h.ListMine)
		r.Get("/{reportID}", h.Get)
	})
}

func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin/reports", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/", h.ListAll)
		r.Put("/{reportID}/status", h.SetStatus)
		r.Delete("/{reportID}", h.Delete)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	var req CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	// Operator-filed reports carry no author and earn no points.
	var author *string
	if !middleware.IsAdmin(r.Context()) {
		author = &userID
	}

	resp, err := h.service.Create(r.Context(), author, req)
	if err != nil {
		if errors.Is(err, ErrDailyLimit) {
			core.JSONError(w, core.NewAppError(
				ErrDailyLimit,
				"daily report limit reached, try again tomorrow",
				http.StatusTooManyRequests,
				"DAILY_LIMIT",
			))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, resp)
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	reports, err := h.service.ListForUser(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ReportListResponse{Reports: ToReportResponseList(reports)})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "reportID")

	report, err := h.service.Get(r.Context(), reportID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "report")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	// Citizens can only read their own reports.
	if !middleware.IsAdmin(r.Context()) {
		userID := middleware.GetUserID(r.Context())
		if report.UserID == nil || *report.UserID != userID {
			core.NotFound(w, "report")
			return
		}
	}

	core.OK(w, ToReportResponse(report))
}

func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	params := ListReportsParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
		Status:   r.URL.Query().Get("status"),
		Category: r.URL.Query().Get("category"),
	}

	reports, total, err := h.service.ListAll(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToReportResponseList(reports),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "reportID")

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	report, err := h.service.SetStatus(r.Context(), reportID, req.Status)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, "invalid status")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	// A vanished report counts as handled.
	if report == nil {
		core.OK(w, map[string]string{"status": req.Status})
		return
	}

	core.OK(w, ToReportResponse(report))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "reportID")

	if err := h.service.Delete(r.Context(), reportID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "report")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}
