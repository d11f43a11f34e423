package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/mamadbah2/sales-manager/internal/service/sales"
)

// stubManager returns canned results and records the submitted draft.
type stubManager struct {
	state     sales.State
	actionErr error
	submitted *sales.DraftFields
}

func (m *stubManager) State() sales.State { return m.state }
func (m *stubManager) Load(context.Context) sales.State { return m.state }
func (m *stubManager) Submit(_ context.Context, f sales.DraftFields) sales.State {
	m.submitted = &f
	return m.state
}
func (m *stubManager) Delete(context.Context, int64) (sales.State, error) {
	return m.state, m.actionErr
}
func (m *stubManager) View(int64) (sales.State, error) { return m.state, m.actionErr }
func (m *stubManager) StartEdit(int64) (sales.State, error) { return m.state, m.actionErr }
func (m *stubManager) StartCreate() sales.State { return m.state }
func (m *stubManager) UpdateDraft(sales.DraftFields) sales.State {
	return m.state
}
func (m *stubManager) CloseDetails() sales.State { return m.state }
func (m *stubManager) Reset() sales.State { return m.state }

func serve(h gin.HandlerFunc, route, method, path, contentType, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Handle(method, route, h)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitPassesFormText(t *testing.T) {
	m := &stubManager{state: sales.NewState()}
	h := NewSalesHandler(m, nil)

	w := serve(h.Submit, "/sales", http.MethodPost, "/sales",
		"application/x-www-form-urlencoded", "name=Lamp&price=5.00&delivery=1")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	if assert.NotNil(t, m.submitted) {
		assert.Equal(t, sales.DraftFields{Name: "Lamp", Price: "5.00", Delivery: "1"}, *m.submitted)
	}
}

func TestSubmitRejectsMalformedJSON(t *testing.T) {
	m := &stubManager{state: sales.NewState()}
	h := NewSalesHandler(m, nil)

	w := serve(h.Submit, "/sales", http.MethodPost, "/sales", "application/json", "{")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, m.submitted)
}

func TestUnexpectedActionErrorIsInternal(t *testing.T) {
	m := &stubManager{state: sales.NewState(), actionErr: errors.New("boom")}
	h := NewSalesHandler(m, nil)

	w := serve(h.Delete, "/sales/:id/delete", http.MethodPost, "/sales/3/delete", "", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestNotFoundActionError(t *testing.T) {
	m := &stubManager{state: sales.NewState(), actionErr: sales.ErrSaleNotFound}
	h := NewSalesHandler(m, nil)

	w := serve(h.View, "/sales/:id/view", http.MethodPost, "/sales/3/view", "", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "sale not found", w.Body.String())
}
