package sales

import (
	"slices"

	"github.com/mamadbah2/sales-manager/internal/domain/models"
)

// State is everything the view renders. Transitions below never mutate their
// input; each returns the next State.
type State struct {
	Sales       []models.Sale     `json:"sales"`
	Draft       models.Draft      `json:"draft"`
	Selected    *models.Sale      `json:"selected"`
	Error       string            `json:"error,omitempty"`
	DraftErrors map[string]string `json:"draft_errors,omitempty"`
}

// NewState returns the empty initial state.
func NewState() State {
	return State{Sales: []models.Sale{}}
}

// Find looks a sale up by identifier in the current list.
func (s State) Find(id int64) (models.Sale, bool) {
	idx := slices.IndexFunc(s.Sales, func(sale models.Sale) bool { return sale.ID == id })
	if idx < 0 {
		return models.Sale{}, false
	}
	return s.Sales[idx], true
}

// Clone returns a copy that shares no mutable memory with s.
func (s State) Clone() State {
	out := s
	out.Sales = slices.Clone(s.Sales)
	if out.Sales == nil {
		out.Sales = []models.Sale{}
	}
	if s.Draft.ID != nil {
		id := *s.Draft.ID
		out.Draft.ID = &id
	}
	if s.Selected != nil {
		sel := *s.Selected
		out.Selected = &sel
	}
	if s.DraftErrors != nil {
		out.DraftErrors = make(map[string]string, len(s.DraftErrors))
		for k, v := range s.DraftErrors {
			out.DraftErrors[k] = v
		}
	}
	return out
}

// Loaded replaces the whole collection after a validated fetch.
func Loaded(s State, sales []models.Sale) State {
	next := s.Clone()
	next.Sales = slices.Clone(sales)
	if next.Sales == nil {
		next.Sales = []models.Sale{}
	}
	next.Error = ""
	next.DraftErrors = nil
	return next
}

// Failed records a display message, replacing any previous one. Field
// violations belong to an earlier message and are dropped with it.
func Failed(s State, message string) State {
	next := s.Clone()
	next.Error = message
	next.DraftErrors = nil
	return next
}

// InvalidDraft records field violations for the form alongside the message.
func InvalidDraft(s State, message string, fields map[string]string) State {
	next := Failed(s, message)
	next.DraftErrors = make(map[string]string, len(fields))
	for k, v := range fields {
		next.DraftErrors[k] = v
	}
	return next
}

// StartCreate clears the draft into create mode.
func StartCreate(s State) State {
	next := s.Clone()
	next.Draft = models.Draft{}
	next.DraftErrors = nil
	return next
}

// StartEdit selects the sale and loads it into the draft.
func StartEdit(s State, sale models.Sale) State {
	next := s.Clone()
	next.Selected = &sale
	next.Draft = models.DraftFromSale(sale)
	next.DraftErrors = nil
	return next
}

// View selects the sale for the detail panel and leaves the draft alone.
func View(s State, sale models.Sale) State {
	next := s.Clone()
	next.Selected = &sale
	return next
}

// CloseDetails closes the detail panel.
func CloseDetails(s State) State {
	next := s.Clone()
	next.Selected = nil
	return next
}

// Reset clears both the draft and the selection.
func Reset(s State) State {
	next := s.Clone()
	next.Draft = models.Draft{}
	next.DraftErrors = nil
	next.Selected = nil
	return next
}

// EditDraft overwrites the text fields of the draft, keeping its identifier.
// Violations found on the previous text no longer apply.
func EditDraft(s State, name, price, delivery string) State {
	next := s.Clone()
	next.Draft.Name = name
	next.Draft.Price = price
	next.Draft.Delivery = delivery
	next.DraftErrors = nil
	return next
}

// Created appends the stored sale and returns the form to create mode.
func Created(s State, sale models.Sale) State {
	next := Reset(s)
	next.Sales = append(next.Sales, sale)
	next.Error = ""
	return next
}

// Updated replaces the sale that was edited with the stored version.
func Updated(s State, id int64, sale models.Sale) State {
	next := Reset(s)
	for i := range next.Sales {
		if next.Sales[i].ID == id {
			next.Sales[i] = sale
		}
	}
	next.Error = ""
	return next
}

// Deleted drops the sale with the given identifier.
func Deleted(s State, id int64) State {
	next := Reset(s)
	next.Sales = slices.DeleteFunc(next.Sales, func(sale models.Sale) bool { return sale.ID == id })
	next.Error = ""
	return next
}
