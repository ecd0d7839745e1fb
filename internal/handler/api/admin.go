package api

import (
	"net/http"

	resdto "book-rental/internal/handler/dto/response"
	"book-rental/internal/handler/httperr"
	"book-rental/internal/pkg/errs"
	"book-rental/internal/usecase/reclaimer"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	reclaimer reclaimer.Runner
}

func NewAdminHandler(r reclaimer.Runner) *AdminHandler {
	return &AdminHandler{reclaimer: r}
}

// Reclaim runs one reclaimer sweep synchronously. POST /api/admin/reclaim
func (h *AdminHandler) Reclaim(c *gin.Context) {
	res, err := h.reclaimer.RunOnce(c.Request.Context())
	if err != nil {
		if errs.Is(err, reclaimer.ErrRunInProgress) {
			httperr.AbortWithError(c, http.StatusConflict, err, "A reclaim run is already in progress", nil)
			return
		}
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReclaimResult(res))
}
