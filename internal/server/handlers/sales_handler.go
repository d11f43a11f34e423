package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/sales-manager/internal/server/view"
	"github.com/mamadbah2/sales-manager/internal/service/sales"
)

// draftForm is the body posted by the sale form.
type draftForm struct {
	Name     string `form:"name" json:"name"`
	Price    string `form:"price" json:"price"`
	Delivery string `form:"delivery" json:"delivery"`
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// SalesHandler adapts HTTP requests to sales manager actions.
type SalesHandler struct {
	svc    sales.Manager
	logger *zap.Logger
}

// NewSalesHandler constructs the HTTP handler adapter.
func NewSalesHandler(svc sales.Manager, logger *zap.Logger) *SalesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SalesHandler{svc: svc, logger: logger}
}

// Page renders the whole sales manager page.
func (h *SalesHandler) Page(c *gin.Context) {
	c.HTML(http.StatusOK, view.PageTemplate, h.svc.State())
}

// State returns the current state as JSON.
func (h *SalesHandler) State(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.State())
}

// Refresh reloads the list from the store.
func (h *SalesHandler) Refresh(c *gin.Context) {
	h.respond(c, h.svc.Load(c.Request.Context()))
}

// Submit creates or updates a sale from the posted draft.
func (h *SalesHandler) Submit(c *gin.Context) {
	var form draftForm
	if err := c.ShouldBind(&form); err != nil {
		h.logger.Warn("invalid draft payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	state := h.svc.Submit(c.Request.Context(), sales.DraftFields{
		Name:     form.Name,
		Price:    form.Price,
		Delivery: form.Delivery,
	})
	if len(state.DraftErrors) > 0 && wantsJSON(c) {
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: state.Error, Details: state.DraftErrors})
		return
	}
	h.respond(c, state)
}

// View opens the detail panel for a sale.
func (h *SalesHandler) View(c *gin.Context) {
	h.withID(c, h.svc.View)
}

// Edit selects a sale and loads it into the form.
func (h *SalesHandler) Edit(c *gin.Context) {
	h.withID(c, h.svc.StartEdit)
}

// Delete removes a sale.
func (h *SalesHandler) Delete(c *gin.Context) {
	h.withID(c, func(id int64) (sales.State, error) {
		return h.svc.Delete(c.Request.Context(), id)
	})
}

// NewDraft switches the form to create mode.
func (h *SalesHandler) NewDraft(c *gin.Context) {
	h.respond(c, h.svc.StartCreate())
}

// ResetDraft clears the form and the selection.
func (h *SalesHandler) ResetDraft(c *gin.Context) {
	h.respond(c, h.svc.Reset())
}

// CloseDetails closes the detail panel.
func (h *SalesHandler) CloseDetails(c *gin.Context) {
	h.respond(c, h.svc.CloseDetails())
}

func (h *SalesHandler) withID(c *gin.Context, action func(id int64) (sales.State, error)) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.notFound(c)
		return
	}

	state, err := action(id)
	if errors.Is(err, sales.ErrSaleNotFound) {
		h.notFound(c)
		return
	}
	if err != nil {
		h.logger.Error("sales action failed", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	h.respond(c, state)
}

func (h *SalesHandler) notFound(c *gin.Context) {
	if wantsJSON(c) {
		c.JSON(http.StatusNotFound, errorResponse{Error: "sale not found"})
		return
	}
	c.String(http.StatusNotFound, "sale not found")
}

// respond answers JSON clients with the state and browsers with a redirect
// back to the page.
func (h *SalesHandler) respond(c *gin.Context, state sales.State) {
	if wantsJSON(c) {
		c.JSON(http.StatusOK, state)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func wantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}
