package salesstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/mamadbah2/sales-manager/internal/config"
	"github.com/mamadbah2/sales-manager/internal/domain/models"
)

const salesPath = "/api/sales"

// ErrTransport marks a failed round-trip: network error, undecodable body or
// a non-success status.
var ErrTransport = errors.New("sales store request failed")

// Client exposes the remote sales store operations used by the application.
type Client interface {
	List(ctx context.Context) ([]any, error)
	Create(ctx context.Context, payload models.SalePayload) (any, error)
	Update(ctx context.Context, id int64, payload models.SalePayload) (any, error)
	Delete(ctx context.Context, id int64) error
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewClient builds a store client using the provided configuration values.
func NewClient(cfg config.StoreConfig, logger *zap.Logger) *APIClient {
	if logger == nil {
		logger = zap.NewNop()
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(cfg.Timeout)

	return &APIClient{
		httpClient: restyClient,
		logger:     logger,
	}
}

// List fetches every sale as raw, unvalidated elements. Elements are left
// undecoded beyond JSON so that shape checks happen in one place.
func (c *APIClient) List(ctx context.Context) ([]any, error) {
	var result []any

	resp, err := c.httpClient.R().
		SetContext(ctx).
		ForceContentType("application/json").
		SetResult(&result).
		Get(salesPath)
	if err := c.check(resp, err, "list sales"); err != nil {
		return nil, err
	}

	if result == nil {
		result = []any{}
	}
	return result, nil
}

// Create posts a new sale and returns the stored record.
func (c *APIClient) Create(ctx context.Context, payload models.SalePayload) (any, error) {
	var result any

	resp, err := c.httpClient.R().
		SetContext(ctx).
		ForceContentType("application/json").
		SetBody(payload).
		SetResult(&result).
		Post(salesPath)
	if err := c.check(resp, err, "create sale"); err != nil {
		return nil, err
	}

	return result, nil
}

// Update replaces the sale identified by id and returns the stored record.
func (c *APIClient) Update(ctx context.Context, id int64, payload models.SalePayload) (any, error) {
	var result any

	resp, err := c.httpClient.R().
		SetContext(ctx).
		ForceContentType("application/json").
		SetBody(payload).
		SetResult(&result).
		Put(salePath(id))
	if err := c.check(resp, err, "update sale"); err != nil {
		return nil, err
	}

	return result, nil
}

// Delete removes the sale identified by id. The response body is ignored.
func (c *APIClient) Delete(ctx context.Context, id int64) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		Delete(salePath(id))
	return c.check(resp, err, "delete sale")
}

func (c *APIClient) check(resp *resty.Response, err error, op string) error {
	if err != nil {
		c.logger.Debug("sales store round-trip failed", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("%w: %s: %w", ErrTransport, op, err)
	}

	if !resp.IsSuccess() {
		c.logger.Debug("sales store returned non-success status",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode()),
			zap.ByteString("body", resp.Body()))
		return fmt.Errorf("%w: %s: status %d", ErrTransport, op, resp.StatusCode())
	}

	return nil
}

func salePath(id int64) string {
	return fmt.Sprintf("%s/%d", salesPath, id)
}
