package httperr

import (
	"net/http"

	"book-rental/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

type mapping struct {
	kind   error
	status int
	msg    string
}

var mappings = []mapping{
	{errs.ErrUnauthenticated, http.StatusUnauthorized, "Please sign in to continue"},
	{errs.ErrItemNotFound, http.StatusNotFound, "The requested book does not exist"},
	{errs.ErrNotFound, http.StatusNotFound, "Rental not found"},
	{errs.ErrOutOfStock, http.StatusConflict, "This book is currently out of stock"},
	{errs.ErrItemNotRentable, http.StatusConflict, "This book cannot be rented right now"},
	{errs.ErrDuplicateActiveReservation, http.StatusConflict, "You already have an active rental for this book"},
	{errs.ErrInvalidTransition, http.StatusConflict, "This rental cannot be changed in its current state"},
	{errs.ErrAlreadyFinalized, http.StatusConflict, "This rental has already been returned or expired"},
	{errs.ErrConflict, http.StatusConflict, "The rental was changed by another request, please retry"},
	{errs.ErrInvalidDuration, http.StatusBadRequest, "Rental duration must be between 1 and 30 days"},
	{errs.ErrStoreUnavailable, http.StatusServiceUnavailable, "The service is temporarily unavailable"},
}

// Status returns the HTTP status and user-facing message for a rental error kind.
func Status(err error) (int, string) {
	for _, m := range mappings {
		if errs.Is(err, m.kind) {
			return m.status, m.msg
		}
	}
	return http.StatusInternalServerError, "Internal server error"
}

func AbortWithKind(c *gin.Context, err error) {
	status, msg := Status(err)
	AbortWithError(c, status, err, msg, nil)
}
