// AngelaMos | 2026
// dto.go

package report

import (
	"time"
)

type CreateReportRequest struct {
	Title       string `json:"title"       validate:"required,min=3,max=200"`
	Description string `json:"description" validate:"required,min=10,max=2000"`
	Category    string `json:"category"    validate:"required,max=100"`
	Location    string `json:"location"    validate:"omitempty,max=200"`
	ImageURL    string `json:"image_url"   validate:"omitempty,url,max=500"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in-progress resolved"`
}

type ReportResponse struct {
	ID          string    `json:"id"`
	UserID      *string   `json:"user_id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Location    string    `json:"location,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ReportListResponse struct {
	Reports []ReportResponse `json:"reports"`
}

type CreateReportResponse struct {
	Report        ReportResponse `json:"report"`
	PointsAwarded int            `json:"points_awarded"`
}

type ListReportsParams struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Status   string `json:"status"`
	Category string `json:"category"`
}

func (p *ListReportsParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListReportsParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToReportResponse(r *Report) ReportResponse {
	return ReportResponse{
		ID:          r.ID,
		UserID:      r.UserID,
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Location:    r.Location,
		ImageURL:    r.ImageURL,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func ToReportResponseList(reports []Report) []ReportResponse {
	responses := make([]ReportResponse, 0, len(reports))
	for _, r := range reports {
		responses = append(responses, ToReportResponse(&r))
	}
	return responses
}
