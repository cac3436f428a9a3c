// Package service provides the implementation of item-related business logic.
package service

import (
	"context"
	"fmt"

	itemerrors "github.com/abgdnv/itemservice/internal/errors"
	"github.com/abgdnv/itemservice/internal/store"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// ItemService defines the methods for managing items.
// It abstracts the underlying business logic and data access.
type ItemService interface {
	// FindAll returns all items ordered by ID.
	// Returns an empty slice if no items exist.
	FindAll(ctx context.Context) ([]ItemDto, error)

	// FindByID retrieves a single item by its identifier.
	// Returns ErrItemNotFound if no item exists with the given ID.
	FindByID(ctx context.Context, id int64) (*ItemDto, error)

	// Create adds a new item; the ID is assigned by the store.
	Create(ctx context.Context, item ItemCreateDto) (*ItemDto, error)

	// Update replaces name and quantity of an existing item.
	// Returns ErrItemNotFound if no item exists with the given ID.
	Update(ctx context.Context, id int64, item ItemUpdateDto) (*ItemDto, error)

	// DeleteByID removes an item by its ID.
	// Returns ErrItemNotFound if no item exists with the given ID.
	DeleteByID(ctx context.Context, id int64) error
}

// Service implements ItemService on top of an ItemStore.
type Service struct {
	store        store.ItemStore
	itemsCounter metric.Int64Counter
}

// NewService creates a new instance of ItemService with the provided store.
func NewService(itemStore store.ItemStore) *Service {
	meter := otel.Meter("item-service")
	itemsCounter, err := meter.Int64Counter("items_created", metric.WithDescription("Total number of created items"))
	if err != nil {
		panic(fmt.Sprintf("failed to create items_created counter: %v", err))
	}
	return &Service{
		store:        itemStore,
		itemsCounter: itemsCounter,
	}
}

// ItemDto is the JSON representation of an item.
type ItemDto struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Quantity int32  `json:"quantity"`
}

// ItemCreateDto carries the fields accepted when creating an item. Missing fields take zero values.
type ItemCreateDto struct {
	Name     string `json:"name"`
	Quantity int32  `json:"quantity"`
}

// ItemUpdateDto carries the replacement values for an existing item.
type ItemUpdateDto struct {
	Name     string `json:"name"`
	Quantity int32  `json:"quantity"`
}

func (s *Service) FindAll(ctx context.Context) ([]ItemDto, error) {
	items, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch items: %w", err)
	}
	itemDTOs := make([]ItemDto, len(items))
	for i, item := range items {
		itemDTOs[i] = toDto(item)
	}
	return itemDTOs, nil
}

func (s *Service) FindByID(ctx context.Context, id int64) (*ItemDto, error) {
	item, ok, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch item by ID %d: %w", id, err)
	}
	if !ok {
		return nil, fmt.Errorf("item with ID %d: %w", id, itemerrors.ErrItemNotFound)
	}
	dto := toDto(item)
	return &dto, nil
}

func (s *Service) Create(ctx context.Context, item ItemCreateDto) (*ItemDto, error) {
	created, err := s.store.Insert(ctx, item.Name, item.Quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}
	s.itemsCounter.Add(ctx, 1)
	dto := toDto(created)
	return &dto, nil
}

// Update reads the item first and then writes the new values. Concurrent writers are not
// serialized, the last write wins. A row deleted between the read and the write is reported
// as ErrItemNotFound.
func (s *Service) Update(ctx context.Context, id int64, item ItemUpdateDto) (*ItemDto, error) {
	if _, err := s.FindByID(ctx, id); err != nil {
		return nil, err
	}
	updated, ok, err := s.store.Update(ctx, id, item.Name, item.Quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to update item with ID %d: %w", id, err)
	}
	if !ok {
		return nil, fmt.Errorf("item with ID %d: %w", id, itemerrors.ErrItemNotFound)
	}
	dto := toDto(updated)
	return &dto, nil
}

func (s *Service) DeleteByID(ctx context.Context, id int64) error {
	exists, err := s.store.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check item with ID %d: %w", id, err)
	}
	if !exists {
		return fmt.Errorf("item with ID %d: %w", id, itemerrors.ErrItemNotFound)
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete item with ID %d: %w", id, err)
	}
	return nil
}

func toDto(item store.Item) ItemDto {
	return ItemDto{
		ID:       item.ID,
		Name:     item.Name,
		Quantity: item.Quantity,
	}
}
