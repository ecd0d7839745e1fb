package response

import (
	"time"

	"book-rental/internal/domain/rental"
	"book-rental/internal/usecase/queries"
	"book-rental/internal/usecase/reclaimer"

	"github.com/google/uuid"
)

type RentalResponse struct {
	ID               uuid.UUID  `json:"id"`
	BookID           uuid.UUID  `json:"bookId"`
	BookTitle        string     `json:"bookTitle,omitempty"`
	BookAuthor       string     `json:"bookAuthor,omitempty"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"createdAt"`
	DueAt            time.Time  `json:"dueAt"`
	ReturnedAt       *time.Time `json:"returnedAt,omitempty"`
	PricePerDayCents int64      `json:"pricePerDayCents"`
	DurationDays     int        `json:"durationDays"`
	TotalAmountCents int64      `json:"totalAmountCents"`
	IsOverdue        bool       `json:"isOverdue"`
}

type RentalListResponse struct {
	ID               uuid.UUID  `json:"id"`
	BookID           uuid.UUID  `json:"bookId"`
	BookTitle        string     `json:"bookTitle"`
	BookAuthor       string     `json:"bookAuthor"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"createdAt"`
	DueAt            time.Time  `json:"dueAt"`
	ReturnedAt       *time.Time `json:"returnedAt,omitempty"`
	TotalAmountCents int64      `json:"totalAmountCents"`
	IsOverdue        bool       `json:"isOverdue"`
}

type ReclaimResponse struct {
	Selected int `json:"selected"`
	Expired  int `json:"expired"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

func FromHeader(h *rental.Header) *RentalResponse {
	d := h.Detail()
	return &RentalResponse{
		ID:               h.ID(),
		BookID:           h.BookID(),
		Status:           h.Status().String(),
		CreatedAt:        h.CreatedAt(),
		DueAt:            h.DueAt(),
		ReturnedAt:       h.ReturnedAt(),
		PricePerDayCents: d.PricePerDay().Cents(),
		DurationDays:     d.Duration().Days(),
		TotalAmountCents: h.TotalAmount().Cents(),
	}
}

func FromRentalView(v *queries.RentalView) *RentalResponse {
	return &RentalResponse{
		ID:               v.ID,
		BookID:           v.BookID,
		BookTitle:        v.BookTitle,
		BookAuthor:       v.BookAuthor,
		Status:           v.Status,
		CreatedAt:        v.CreatedAt,
		DueAt:            v.DueAt,
		ReturnedAt:       v.ReturnedAt,
		PricePerDayCents: v.PricePerDayCents,
		DurationDays:     v.DurationDays,
		TotalAmountCents: v.TotalAmountCents,
		IsOverdue:        v.IsOverdue,
	}
}

func FromRentalList(items []*queries.RentalListItem) []RentalListResponse {
	out := make([]RentalListResponse, 0, len(items))
	for _, it := range items {
		out = append(out, RentalListResponse{
			ID:               it.ID,
			BookID:           it.BookID,
			BookTitle:        it.BookTitle,
			BookAuthor:       it.BookAuthor,
			Status:           it.Status,
			CreatedAt:        it.CreatedAt,
			DueAt:            it.DueAt,
			ReturnedAt:       it.ReturnedAt,
			TotalAmountCents: it.TotalAmountCents,
			IsOverdue:        it.IsOverdue,
		})
	}
	return out
}

func FromReclaimResult(r reclaimer.Result) ReclaimResponse {
	return ReclaimResponse{
		Selected: r.Selected,
		Expired:  r.Expired,
		Skipped:  r.Skipped,
		Failed:   r.Failed,
	}
}
