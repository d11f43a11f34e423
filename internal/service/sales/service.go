package sales

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/mamadbah2/sales-manager/internal/service/normalize"
	"github.com/mamadbah2/sales-manager/pkg/clients/salesstore"
)

// ErrSaleNotFound is returned when an action names a sale missing from state.
var ErrSaleNotFound = errors.New("sale not found")

const (
	msgFetchFailed  = "Failed to fetch sales"
	msgCreateFailed = "Failed to create sale"
	msgUpdateFailed = "Failed to update sale"
	msgDeleteFailed = "Failed to delete sale"
	msgInvalidData  = "Invalid sales data format"
)

// DraftFields is the text submitted by the form.
type DraftFields struct {
	Name     string
	Price    string
	Delivery string
}

// Manager describes the actions the HTTP layer can trigger.
type Manager interface {
	State() State
	Load(ctx context.Context) State
	Submit(ctx context.Context, fields DraftFields) State
	Delete(ctx context.Context, id int64) (State, error)
	View(id int64) (State, error)
	StartEdit(id int64) (State, error)
	StartCreate() State
	UpdateDraft(fields DraftFields) State
	CloseDetails() State
	Reset() State
}

// Service owns the application state. Actions run one at a time: the lock is
// held across the store round-trip so a handler finishes before the next begins.
type Service struct {
	store  salesstore.Client
	logger *zap.Logger

	mu    sync.Mutex
	state State
}

// NewService wires a new sales service instance.
func NewService(store salesstore.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		logger: logger,
		state:  NewState(),
	}
}

// State returns a snapshot of the current state.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Load fetches and validates the whole list, replacing it on success.
func (s *Service) Load(ctx context.Context) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.store.List(ctx)
	if err != nil {
		return s.fail("load", msgFetchFailed, err)
	}

	sales, err := normalize.Sales(raw)
	if err != nil {
		return s.fail("load", msgInvalidData, err)
	}

	s.state = Loaded(s.state, sales)
	s.logger.Info("sales loaded", zap.Int("count", len(sales)))
	return s.state.Clone()
}

// Submit stores the form text in the draft and sends it: an update when the
// draft carries an identifier, a create otherwise.
func (s *Service) Submit(ctx context.Context, fields DraftFields) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = EditDraft(s.state, fields.Name, fields.Price, fields.Delivery)
	draft := s.state.Draft

	payload, err := ValidateDraft(draft)
	var draftErr *DraftError
	if errors.As(err, &draftErr) {
		s.logger.Info("draft rejected", zap.Any("fields", draftErr.Fields))
		s.state = InvalidDraft(s.state, draftErr.Message(), draftErr.Fields)
		return s.state.Clone()
	}

	if draft.IsEdit() {
		id := *draft.ID
		raw, err := s.store.Update(ctx, id, payload)
		if err != nil {
			return s.fail("update", msgUpdateFailed, err)
		}
		sale, err := normalize.Sale(raw)
		if err != nil {
			return s.fail("update", msgInvalidData, err)
		}
		s.state = Updated(s.state, id, sale)
		s.logger.Info("sale updated", zap.Int64("id", id))
		return s.state.Clone()
	}

	raw, err := s.store.Create(ctx, payload)
	if err != nil {
		return s.fail("create", msgCreateFailed, err)
	}
	sale, err := normalize.Sale(raw)
	if err != nil {
		return s.fail("create", msgInvalidData, err)
	}
	s.state = Created(s.state, sale)
	s.logger.Info("sale created", zap.Int64("id", sale.ID))
	return s.state.Clone()
}

// Delete removes a listed sale from the store and then from state.
func (s *Service) Delete(ctx context.Context, id int64) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.Find(id); !ok {
		return s.state.Clone(), ErrSaleNotFound
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return s.fail("delete", msgDeleteFailed, err), nil
	}

	s.state = Deleted(s.state, id)
	s.logger.Info("sale deleted", zap.Int64("id", id))
	return s.state.Clone(), nil
}

// View opens the detail panel for a listed sale.
func (s *Service) View(id int64) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sale, ok := s.state.Find(id)
	if !ok {
		return s.state.Clone(), ErrSaleNotFound
	}
	s.state = View(s.state, sale)
	return s.state.Clone(), nil
}

// StartEdit selects a listed sale and loads it into the draft.
func (s *Service) StartEdit(id int64) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sale, ok := s.state.Find(id)
	if !ok {
		return s.state.Clone(), ErrSaleNotFound
	}
	s.state = StartEdit(s.state, sale)
	return s.state.Clone(), nil
}

// StartCreate puts the form in create mode.
func (s *Service) StartCreate() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StartCreate(s.state)
	return s.state.Clone()
}

// UpdateDraft records form text without submitting it.
func (s *Service) UpdateDraft(fields DraftFields) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = EditDraft(s.state, fields.Name, fields.Price, fields.Delivery)
	return s.state.Clone()
}

// CloseDetails closes the detail panel.
func (s *Service) CloseDetails() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = CloseDetails(s.state)
	return s.state.Clone()
}

// Reset clears the draft and the selection.
func (s *Service) Reset() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reset(s.state)
	return s.state.Clone()
}

// fail must be called with the lock held.
func (s *Service) fail(op, message string, err error) State {
	s.logger.Warn("sales action failed", zap.String("op", op), zap.Error(err))
	s.state = Failed(s.state, message)
	return s.state.Clone()
}
