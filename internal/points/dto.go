// AngelaMos | 2026
// dto.go

package points

import (
	"time"
)

type AwardPointsRequest struct {
	Points int    `json:"points"  validate:"required,gt=0,lte=1000"`
	GameID string `json:"game_id" validate:"omitempty,max=100"`
}

type AwardPointsResponse struct {
	Points int `json:"points"`
	Total  int `json:"total"`
}

type HistoryResponse struct {
	Entries []HistoryEntryResponse `json:"entries"`
}

type HistoryEntryResponse struct {
	ID        string    `json:"id"`
	Amount    int       `json:"amount"`
	Reason    string    `json:"reason"`
	ReportID  *string   `json:"report_id,omitempty"`
	GameID    *string   `json:"game_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toHistoryResponse(entries []HistoryEntry) HistoryResponse {
	out := make([]HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, HistoryEntryResponse{
			ID:        e.ID,
			Amount:    e.Amount,
			Reason:    e.Reason,
			ReportID:  e.ReportID,
			GameID:    e.GameID,
			CreatedAt: e.CreatedAt,
		})
	}
	return HistoryResponse{Entries: out}
}
