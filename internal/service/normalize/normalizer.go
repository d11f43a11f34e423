// Package normalize turns untyped remote store payloads into validated sales.
package normalize

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mamadbah2/sales-manager/internal/domain/models"
)

// ErrInvalidSalesData is returned when any element of a payload fails validation.
var ErrInvalidSalesData = errors.New("invalid sales data format")

const (
	keyID       = "id"
	keyName     = "name"
	keyPrice    = "price"
	keyDelivery = "delivery"
	keyTotal    = "TOTAL"
	keyTotalAlt = "total"
)

// Sales coerces and validates a whole batch. A single bad element rejects the
// batch; the returned slice is never partially filled.
func Sales(raw []any) ([]models.Sale, error) {
	sales := make([]models.Sale, 0, len(raw))
	for i, item := range raw {
		sale, err := Sale(item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		sales = append(sales, sale)
	}
	return sales, nil
}

// Sale applies the batch rules to a single raw record. Anything other than a
// JSON object is rejected.
func Sale(item any) (models.Sale, error) {
	var raw models.RawSale
	switch v := item.(type) {
	case models.RawSale:
		raw = v
	case map[string]any:
		raw = v
	default:
		return models.Sale{}, fmt.Errorf("%w: not an object: %T", ErrInvalidSalesData, item)
	}
	if raw == nil {
		return models.Sale{}, fmt.Errorf("%w: empty record", ErrInvalidSalesData)
	}

	id, err := parseID(raw[keyID])
	if err != nil {
		return models.Sale{}, invalid(keyID, err)
	}

	name, ok := raw[keyName].(string)
	if !ok {
		return models.Sale{}, invalid(keyName, fmt.Errorf("not text: %v", raw[keyName]))
	}

	price, err := parseAmount(raw[keyPrice])
	if err != nil {
		return models.Sale{}, invalid(keyPrice, err)
	}

	delivery, err := parseAmount(raw[keyDelivery])
	if err != nil {
		return models.Sale{}, invalid(keyDelivery, err)
	}

	totalValue, found := raw[keyTotal]
	if !found {
		totalValue = raw[keyTotalAlt]
	}
	total, err := parseAmount(totalValue)
	if err != nil {
		return models.Sale{}, invalid(keyTotalAlt, err)
	}

	return models.Sale{
		ID:       id,
		Name:     name,
		Price:    price,
		Delivery: delivery,
		Total:    total,
	}, nil
}

func invalid(field string, cause error) error {
	return fmt.Errorf("%w: field %s: %v", ErrInvalidSalesData, field, cause)
}

func parseID(value interface{}) (int64, error) {
	f, err := parseAmount(value)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("not an integer: %v", value)
	}
	return int64(f), nil
}

// parseAmount accepts JSON numbers and numeric text. NaN and infinities are
// rejected even though strconv parses them.
func parseAmount(value interface{}) (float64, error) {
	if value == nil {
		return 0, fmt.Errorf("missing value")
	}
	str := strings.TrimSpace(fmt.Sprint(value))
	if str == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	f, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a finite number: %s", str)
	}
	return f, nil
}
