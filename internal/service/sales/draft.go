package sales

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/sales-manager/internal/domain/models"
)

// ErrInvalidDraft is returned when the form input cannot be submitted.
var ErrInvalidDraft = errors.New("invalid draft")

const (
	violationRequired   = "required"
	violationNotNumeric = "must_be_numeric"
	violationNegative   = "must_not_be_negative"

	fieldName     = "name"
	fieldPrice    = "price"
	fieldDelivery = "delivery"
)

// DraftError lists the offending fields of a draft.
type DraftError struct {
	Fields map[string]string
}

func (e *DraftError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidDraft, e.describe())
}

func (e *DraftError) Unwrap() error { return ErrInvalidDraft }

// Message is the human readable form shown above the sales list.
func (e *DraftError) Message() string {
	return "Please check the form: " + e.describe()
}

func (e *DraftError) describe() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		switch e.Fields[k] {
		case violationRequired:
			parts = append(parts, k+" is required")
		case violationNotNumeric:
			parts = append(parts, k+" must be a number")
		case violationNegative:
			parts = append(parts, k+" must not be negative")
		}
	}
	return strings.Join(parts, ", ")
}

// ValidateDraft turns form text into the payload sent to the store. A non-nil
// error is always a *DraftError.
func ValidateDraft(d models.Draft) (models.SalePayload, error) {
	fields := map[string]string{}

	name := strings.TrimSpace(d.Name)
	if name == "" {
		fields[fieldName] = violationRequired
	}

	price := amount(fieldPrice, d.Price, fields)
	delivery := amount(fieldDelivery, d.Delivery, fields)

	if len(fields) > 0 {
		return models.SalePayload{}, &DraftError{Fields: fields}
	}

	return models.SalePayload{Name: name, Price: price, Delivery: delivery}, nil
}

func amount(field, text string, fields map[string]string) float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		fields[field] = violationRequired
		return 0
	}

	value, err := decimal.NewFromString(text)
	if err != nil {
		fields[field] = violationNotNumeric
		return 0
	}
	if value.IsNegative() {
		fields[field] = violationNegative
		return 0
	}

	f, _ := value.Float64()
	return f
}
