package sales

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/sales-manager/internal/domain/models"
)

func TestValidateDraftBuildsPayload(t *testing.T) {
	payload, err := ValidateDraft(models.Draft{Name: " Widget ", Price: "9.99", Delivery: " 2.50"})
	require.NoError(t, err)
	assert.Equal(t, models.SalePayload{Name: "Widget", Price: 9.99, Delivery: 2.5}, payload)
}

func TestValidateDraftAcceptsZero(t *testing.T) {
	payload, err := ValidateDraft(models.Draft{Name: "Free", Price: "0", Delivery: "0.00"})
	require.NoError(t, err)
	assert.Zero(t, payload.Price)
	assert.Zero(t, payload.Delivery)
}

func TestValidateDraftViolations(t *testing.T) {
	_, err := ValidateDraft(models.Draft{Name: "  ", Price: "abc", Delivery: "-1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDraft)

	var draftErr *DraftError
	require.True(t, errors.As(err, &draftErr))
	assert.Equal(t, map[string]string{
		"name":     "required",
		"price":    "must_be_numeric",
		"delivery": "must_not_be_negative",
	}, draftErr.Fields)
	assert.Equal(t,
		"Please check the form: delivery must not be negative, name is required, price must be a number",
		draftErr.Message())
}

func TestValidateDraftRejectsNaN(t *testing.T) {
	_, err := ValidateDraft(models.Draft{Name: "x", Price: "NaN", Delivery: ""})

	var draftErr *DraftError
	require.True(t, errors.As(err, &draftErr))
	assert.Equal(t, "must_be_numeric", draftErr.Fields["price"])
	assert.Equal(t, "required", draftErr.Fields["delivery"])
}
