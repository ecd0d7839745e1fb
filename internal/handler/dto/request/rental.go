package request

import (
	"github.com/google/uuid"
)

type CreateRentalRequest struct {
	BookID uuid.UUID `json:"bookId" binding:"required"`
	// DurationDays defaults to 7 when omitted.
	DurationDays int `json:"durationDays" binding:"omitempty,min=1,max=30"`
}
