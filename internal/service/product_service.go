package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/noorskin/storefront/internal/api/dto"
	"github.com/noorskin/storefront/internal/domain"
	"github.com/noorskin/storefront/internal/events"
	"github.com/noorskin/storefront/internal/repository"
	apperrors "github.com/noorskin/storefront/pkg/util/errorutil"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	maxPage         = 1_000_000
)

// ProductService coordinates catalog reads and permission-checked writes.
type ProductService struct {
	products   repository.ProductRepository
	dispatcher events.Dispatcher
}

// NewProductService builds the service.
func NewProductService(products repository.ProductRepository, dispatcher events.Dispatcher) *ProductService {
	return &ProductService{products: products, dispatcher: dispatcher}
}

func requireCatalogEditor(actor *domain.ManagerUser) error {
	if actor == nil || !actor.HasPermission(domain.PermissionManageProducts) {
		return apperrors.NewForbidden("")
	}
	return nil
}

// NormalizeFilter clamps paging parameters.
func NormalizeFilter(filter domain.ProductFilter) domain.ProductFilter {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Page > maxPage {
		filter.Page = maxPage
	}
	if filter.PageSize <= 0 {
		filter.PageSize = defaultPageSize
	}
	if filter.PageSize > maxPageSize {
		filter.PageSize = maxPageSize
	}
	filter.Category = strings.TrimSpace(filter.Category)
	filter.Search = strings.TrimSpace(filter.Search)
	return filter
}

// List returns a page of products and its pagination block.
func (s *ProductService) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, *dto.Pagination, error) {
	filter = NormalizeFilter(filter)
	items, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, nil, apperrors.NewInternalError(err)
	}
	return items, dto.NewPagination(filter.Page, filter.PageSize, total), nil
}

// Get returns a single product.
func (s *ProductService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, mapProductError(err, id)
	}
	return product, nil
}

// Create validates and stores a new product.
func (s *ProductService) Create(ctx context.Context, actor *domain.ManagerUser, req dto.ProductRequest) (*domain.Product, error) {
	if err := requireCatalogEditor(actor); err != nil {
		return nil, err
	}
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	product := req.ToDomain(0)
	if err := s.products.Create(ctx, product); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	s.publish(ctx, actor, product.ID, "created")
	return product, nil
}

// Update replaces a product's fields.
func (s *ProductService) Update(ctx context.Context, actor *domain.ManagerUser, id int64, req dto.ProductRequest) (*domain.Product, error) {
	if err := requireCatalogEditor(actor); err != nil {
		return nil, err
	}
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	product := req.ToDomain(id)
	if err := s.products.Update(ctx, product); err != nil {
		return nil, mapProductError(err, id)
	}
	s.publish(ctx, actor, id, "updated")
	return product, nil
}

// Delete removes a product.
func (s *ProductService) Delete(ctx context.Context, actor *domain.ManagerUser, id int64) error {
	if err := requireCatalogEditor(actor); err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return mapProductError(err, id)
	}
	s.publish(ctx, actor, id, "deleted")
	return nil
}

func mapProductError(err error, id int64) error {
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewProductNotFound(id)
	}
	return apperrors.NewInternalError(err)
}

func (s *ProductService) publish(ctx context.Context, actor *domain.ManagerUser, id int64, action string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventProductsChanged,
		Actor:     events.Actor{Username: actor.Username, Role: actor.Role},
		Timestamp: time.Now(),
		Payload:   events.ProductsChangedPayload{ProductID: id, Action: action},
	})
}
