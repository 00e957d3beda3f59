package menu

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"tavola/internal/shared/config"
	"tavola/pkg/cache"
	"tavola/pkg/logger"
)

var ErrInvalidCategory = errors.New("invalid category")

const (
	menuCacheKeyAll      = "tavola:menu:all"
	menuCacheKeyCategory = "tavola:menu:category:%s"
	menuCacheKeyItem     = "tavola:menu:item:%s"
	menuCachePattern     = "tavola:menu:*"
)

type Service interface {
	GetMenu(ctx context.Context) ([]MenuItem, error)
	GetMenuByCategory(ctx context.Context, category string) ([]MenuItem, error)
	GetCategories(ctx context.Context) []Category
	GetItem(ctx context.Context, id uuid.UUID) (*MenuItem, error)
	SearchItems(ctx context.Context, query string) ([]MenuItem, error)

	CreateItem(ctx context.Context, req *MenuItemRequest) (*MenuItem, error)
	UpdateItem(ctx context.Context, id uuid.UUID, req *MenuItemRequest) (*MenuItem, error)
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) (*MenuItem, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error

	ToggleFavorite(ctx context.Context, userID, menuItemID uuid.UUID) (bool, error)
	GetFavorites(ctx context.Context, userID uuid.UUID) ([]Favorite, error)
}

type service struct {
	repo   Repository
	cache  cache.Service
	config *config.Config
	logger *logger.Logger
}

func NewService(repo Repository, cacheService cache.Service, cfg *config.Config) Service {
	return &service{
		repo:   repo,
		cache:  cacheService,
		config: cfg,
		logger: logger.GetDefault(),
	}
}

func (s *service) GetMenu(ctx context.Context) ([]MenuItem, error) {
	var items []MenuItem
	if s.cache != nil {
		err := s.cache.GetOrSet(ctx, menuCacheKeyAll, s.config.Redis.MenuCacheTTL, func() (interface{}, error) {
			return s.repo.GetAll(ctx, false)
		}, &items)
		if err == nil {
			return items, nil
		}
		s.logger.Warn("menu cache read failed, falling back to database", "error", err)
	}
	return s.repo.GetAll(ctx, false)
}

func (s *service) GetMenuByCategory(ctx context.Context, category string) ([]MenuItem, error) {
	cat := Category(category)
	if !cat.IsValid() {
		return nil, ErrInvalidCategory
	}

	var items []MenuItem
	if s.cache != nil {
		key := fmt.Sprintf(menuCacheKeyCategory, cat)
		err := s.cache.GetOrSet(ctx, key, s.config.Redis.MenuCacheTTL, func() (interface{}, error) {
			return s.repo.GetByCategory(ctx, cat, false)
		}, &items)
		if err == nil {
			return items, nil
		}
		s.logger.Warn("menu cache read failed, falling back to database", "error", err)
	}
	return s.repo.GetByCategory(ctx, cat, false)
}

func (s *service) GetCategories(ctx context.Context) []Category {
	return []Category{
		CategoryAppetizers, CategoryMainCourse, CategoryDesserts, CategoryBeverages,
		CategorySalads, CategorySoups, CategoryPasta, CategorySeafood,
		CategoryVegetarian, CategorySpecials,
	}
}

func (s *service) GetItem(ctx context.Context, id uuid.UUID) (*MenuItem, error) {
	var item MenuItem
	if s.cache != nil {
		key := fmt.Sprintf(menuCacheKeyItem, id)
		err := s.cache.GetOrSet(ctx, key, s.config.Redis.MenuCacheTTL, func() (interface{}, error) {
			return s.repo.GetByID(ctx, id)
		}, &item)
		if err == nil {
			return &item, nil
		}
		if err == ErrMenuItemNotFound {
			return nil, err
		}
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) SearchItems(ctx context.Context, query string) ([]MenuItem, error) {
	return s.repo.Search(ctx, query)
}

func (s *service) CreateItem(ctx context.Context, req *MenuItemRequest) (*MenuItem, error) {
	cat := Category(req.Category)
	if !cat.IsValid() {
		return nil, ErrInvalidCategory
	}

	item := &MenuItem{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		ImageURL:        req.ImageURL,
		Category:        cat,
		Available:       true,
		PreparationTime: req.PreparationTime,
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.invalidateMenuCache(ctx)
	return item, nil
}

func (s *service) UpdateItem(ctx context.Context, id uuid.UUID, req *MenuItemRequest) (*MenuItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cat := Category(req.Category)
	if !cat.IsValid() {
		return nil, ErrInvalidCategory
	}

	item.Name = req.Name
	item.Description = req.Description
	item.Price = req.Price
	item.ImageURL = req.ImageURL
	item.Category = cat
	item.PreparationTime = req.PreparationTime
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.invalidateMenuCache(ctx)
	return item, nil
}

func (s *service) SetAvailability(ctx context.Context, id uuid.UUID, available bool) (*MenuItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	item.Available = available
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.invalidateMenuCache(ctx)
	return item, nil
}

func (s *service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateMenuCache(ctx)
	return nil
}

// ToggleFavorite stars or unstars an item. Returns the resulting state,
// true meaning the item is now a favorite.
func (s *service) ToggleFavorite(ctx context.Context, userID, menuItemID uuid.UUID) (bool, error) {
	if _, err := s.repo.GetByID(ctx, menuItemID); err != nil {
		return false, err
	}

	isFavorite, err := s.repo.IsFavorite(ctx, userID, menuItemID)
	if err != nil {
		return false, err
	}

	if isFavorite {
		if err := s.repo.RemoveFavorite(ctx, userID, menuItemID); err != nil {
			return false, err
		}
		return false, nil
	}

	if err := s.repo.AddFavorite(ctx, userID, menuItemID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *service) GetFavorites(ctx context.Context, userID uuid.UUID) ([]Favorite, error) {
	return s.repo.GetFavorites(ctx, userID)
}

func (s *service) invalidateMenuCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, menuCachePattern); err != nil {
		s.logger.Warn("failed to invalidate menu cache", "error", err)
	}
}
