package models

import "strconv"

// Sale is a validated record as held in application state.
type Sale struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Delivery float64 `json:"delivery"`
	Total    float64 `json:"total"`
}

// RawSale is one untyped object exactly as decoded from the remote store.
// Numeric fields may arrive as JSON numbers or as text.
type RawSale map[string]any

// Draft mirrors the form inputs. A nil ID means the draft creates a new sale.
type Draft struct {
	ID       *int64 `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Delivery string `json:"delivery"`
}

// IsEdit reports whether the draft targets an existing sale.
func (d Draft) IsEdit() bool {
	return d.ID != nil
}

// DraftFromSale loads an existing sale into form text.
func DraftFromSale(s Sale) Draft {
	id := s.ID
	return Draft{
		ID:       &id,
		Name:     s.Name,
		Price:    strconv.FormatFloat(s.Price, 'f', -1, 64),
		Delivery: strconv.FormatFloat(s.Delivery, 'f', -1, 64),
	}
}

// SalePayload is the body sent to the remote store on create and update.
type SalePayload struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Delivery float64 `json:"delivery"`
}
