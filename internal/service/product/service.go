package product

import (
	"context"
	"errors"

	"padaria/internal/domain"
	"padaria/internal/events"
	productrepo "padaria/internal/repository/product"

	"github.com/rs/zerolog"
)

// Observer is notified about catalog mutations and store failures.
type Observer interface {
	ProductCreated()
	ProductDeleted()
	StoreFailed(op string)
}

type nopObserver struct{}

func (nopObserver) ProductCreated()    {}
func (nopObserver) ProductDeleted()    {}
func (nopObserver) StoreFailed(string) {}

type Service struct {
	repo      productrepo.Repository
	publisher events.Publisher
	observer  Observer
	logger    zerolog.Logger
}

// New wires the service. publisher and observer may be nil.
func New(repo productrepo.Repository, publisher events.Publisher, observer Observer, logger zerolog.Logger) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &Service{repo: repo, publisher: publisher, observer: observer, logger: logger}
}

// List returns every product, newest first.
func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		s.observer.StoreFailed("list")
		return nil, &StoreError{Message: MsgListFailed, Err: err}
	}
	return products, nil
}

// Create validates in and inserts it. Validation failures never reach the store.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Product, error) {
	candidate, err := in.Validate()
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, candidate)
	if err != nil {
		s.observer.StoreFailed("create")
		return nil, &StoreError{Message: MsgCreateFailed, Err: err}
	}

	s.observer.ProductCreated()
	s.publish(ctx, events.Created(*created))
	return created, nil
}

// Delete removes the product and returns the name it had. The row is read
// first because the delete itself does not return the removed fields.
func (s *Service) Delete(ctx context.Context, id int64) (string, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrNotFound
		}
		s.observer.StoreFailed("lookup")
		return "", &StoreError{Message: MsgLookupFailed, Err: err}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.observer.StoreFailed("delete")
		return "", &StoreError{Message: MsgDeleteFailed, Err: err}
	}

	s.observer.ProductDeleted()
	s.publish(ctx, events.Deleted(existing.ID, existing.Nome))
	return existing.Nome, nil
}

// Ping checks the store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *Service) publish(ctx context.Context, ev events.ProductEvent) {
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.logger.Warn().Err(err).Str("event", ev.Type).Int64("id", ev.ProductID).Msg("publish product event")
	}
}
