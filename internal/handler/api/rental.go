package api

import (
	"context"
	"net/http"

	reqdto "book-rental/internal/handler/dto/request"
	resdto "book-rental/internal/handler/dto/response"
	"book-rental/internal/handler/httperr"
	"book-rental/internal/handler/middleware"
	"book-rental/internal/pkg/errs"
	"book-rental/internal/usecase/commands"
	"book-rental/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RentalHandler struct {
	cmds commands.RentalCommands
	q    queries.RentalQueries
}

func NewRentalHandler(cmds commands.RentalCommands, q queries.RentalQueries) *RentalHandler {
	return &RentalHandler{cmds: cmds, q: q}
}

// Create reserves one copy of a book for the caller. POST /api/rentals
func (h *RentalHandler) Create(c *gin.Context) {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == "" {
		httperr.AbortWithKind(c, errs.ErrUnauthenticated)
		return
	}

	var req reqdto.CreateRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	header, err := h.cmds.Create(c.Request.Context(), ownerID, req.BookID, req.DurationDays)
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}

	c.Header("Location", "/api/rentals/"+header.ID().String())
	view, err := h.q.GetForOwner(c.Request.Context(), ownerID, header.ID())
	if err != nil {
		// the rental exists; answer with what the command returned
		c.JSON(http.StatusCreated, resdto.FromHeader(header))
		return
	}
	c.JSON(http.StatusCreated, resdto.FromRentalView(view))
}

// List returns the caller's rentals, newest first. GET /api/rentals
func (h *RentalHandler) List(c *gin.Context) {
	items, err := h.q.ListByOwner(c.Request.Context(), middleware.GetOwnerID(c))
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRentalList(items))
}

// Get GET /api/rentals/:id
func (h *RentalHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	view, err := h.q.GetForOwner(c.Request.Context(), middleware.GetOwnerID(c), id)
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRentalView(view))
}

// Confirm POST /api/rentals/:id/confirm
func (h *RentalHandler) Confirm(c *gin.Context) {
	h.transition(c, h.cmds.Confirm)
}

// Return POST /api/rentals/:id/return
func (h *RentalHandler) Return(c *gin.Context) {
	h.transition(c, h.cmds.Return)
}

// transition checks ownership through the read side before running op,
// so a rental of another owner looks exactly like a missing one.
func (h *RentalHandler) transition(c *gin.Context, op func(ctx context.Context, id uuid.UUID) error) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ownerID := middleware.GetOwnerID(c)
	ctx := c.Request.Context()

	if _, err := h.q.GetForOwner(ctx, ownerID, id); err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	if err := op(ctx, id); err != nil {
		httperr.AbortWithKind(c, err)
		return
	}

	view, err := h.q.GetForOwner(ctx, ownerID, id)
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRentalView(view))
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}
