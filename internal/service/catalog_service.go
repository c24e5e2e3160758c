package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/fsdevblog/dzstore/internal/domain"
	"github.com/fsdevblog/dzstore/internal/repository/repoargs"
	"github.com/fsdevblog/dzstore/pkg/uow"
)

type CatalogService struct {
	uow      uow.UOW
	itemRepo ItemRepository
	uploader ImageUploader
}

// NewCatalogService accepts a nil uploader, image uploads then fail with domain.ErrImageStorageMissing.
func NewCatalogService(u uow.UOW, uploader ImageUploader) (*CatalogService, error) {
	itemRepo, err := uow.GetRepositoryAs[ItemRepository](u, uow.RepositoryName(repoargs.ItemRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &CatalogService{
		uow:      u,
		itemRepo: itemRepo,
		uploader: uploader,
	}, nil
}

// GetActiveItem returns a purchasable item. Inactive items yield domain.ErrItemInactive which
// also matches domain.ErrItemNotFound.
func (c *CatalogService) GetActiveItem(ctx context.Context, itemID int64) (*domain.Item, error) {
	item, err := c.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.IsActive {
		return nil, fmt.Errorf("getting item %d: %w", itemID, domain.ErrItemInactive)
	}
	return item, nil
}

// GetItem returns the item whatever its active flag is. Delivery of already paid line items
// uses it, since an item may be disabled after it was bought.
func (c *CatalogService) GetItem(ctx context.Context, itemID int64) (*domain.Item, error) {
	item, err := c.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, fmt.Errorf("getting item %d: %w", itemID, domain.ErrItemNotFound)
		}
		return nil, fmt.Errorf("getting item %d: %w", itemID, err)
	}
	return item, nil
}

// ReserveStockInTx takes qty units of a finite stock inside the purchase transaction. Unlimited
// items are left untouched.
func (c *CatalogService) ReserveStockInTx(ctx context.Context, tx uow.TX, item *domain.Item, qty int64) error {
	if item.StockUnlimited {
		return nil
	}
	itemRepo, err := uow.GetAs[ItemRepository](tx, uow.RepositoryName(repoargs.ItemRepoName))
	if err != nil {
		return err //nolint:wrapcheck
	}
	if reserveErr := itemRepo.ReserveStock(ctx, item.ID, qty); reserveErr != nil {
		return fmt.Errorf("reserving stock of item %d: %w", item.ID, reserveErr)
	}
	return nil
}

// ListActiveItems returns the storefront, optionally narrowed to one category.
func (c *CatalogService) ListActiveItems(ctx context.Context, category *domain.ItemCategory) ([]domain.Item, error) {
	items, err := c.itemRepo.ListActive(ctx, category)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return items, nil
}

func (c *CatalogService) Categories(ctx context.Context) ([]repoargs.CategoryCount, error) {
	res, err := c.itemRepo.CategoryCounts(ctx)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return res, nil
}

func (c *CatalogService) ListItems(ctx context.Context) ([]domain.Item, error) {
	items, err := c.itemRepo.ListAll(ctx)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return items, nil
}

type ItemArgs struct {
	Name           string
	Description    string
	Price          int64
	Category       domain.ItemCategory
	Classname      string
	Attachments    domain.Attachments
	SortOrder      int
	StockUnlimited bool
	StockQuantity  int64
	IsActive       bool
}

func (a ItemArgs) validate() error {
	switch {
	case strings.TrimSpace(a.Name) == "":
		return fmt.Errorf("%w: name is required", domain.ErrInvalidItem)
	case a.Price <= 0:
		return fmt.Errorf("%w: price must be positive", domain.ErrInvalidItem)
	case !a.Category.IsValid():
		return fmt.Errorf("%w: unknown category %q", domain.ErrInvalidItem, a.Category)
	case !domain.IsValidClassname(a.Classname):
		return fmt.Errorf("%w: invalid classname %q", domain.ErrInvalidItem, a.Classname)
	case a.StockQuantity < 0:
		return fmt.Errorf("%w: stock quantity must not be negative", domain.ErrInvalidItem)
	}
	return a.Attachments.Validate() //nolint:wrapcheck
}

func (a ItemArgs) toUpsert() repoargs.ItemUpsert {
	return repoargs.ItemUpsert{
		Name:           strings.TrimSpace(a.Name),
		Description:    a.Description,
		Price:          a.Price,
		Category:       a.Category,
		Classname:      strings.TrimSpace(a.Classname),
		Attachments:    a.Attachments,
		SortOrder:      a.SortOrder,
		StockUnlimited: a.StockUnlimited,
		StockQuantity:  a.StockQuantity,
		IsActive:       a.IsActive,
	}
}

func (c *CatalogService) CreateItem(ctx context.Context, args ItemArgs) (*domain.Item, error) {
	if err := args.validate(); err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}
	item, err := c.itemRepo.Create(ctx, args.toUpsert())
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}
	return item, nil
}

func (c *CatalogService) UpdateItem(ctx context.Context, itemID int64, args ItemArgs) (*domain.Item, error) {
	if err := args.validate(); err != nil {
		return nil, fmt.Errorf("updating item %d: %w", itemID, err)
	}
	item, err := c.itemRepo.Update(ctx, itemID, args.toUpsert())
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, fmt.Errorf("updating item %d: %w", itemID, domain.ErrItemNotFound)
		}
		return nil, fmt.Errorf("updating item %d: %w", itemID, err)
	}
	return item, nil
}

func (c *CatalogService) SetItemActive(ctx context.Context, itemID int64, active bool) error {
	if err := c.itemRepo.SetActive(ctx, itemID, active); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return fmt.Errorf("toggling item %d: %w", itemID, domain.ErrItemNotFound)
		}
		return fmt.Errorf("toggling item %d: %w", itemID, err)
	}
	return nil
}

// AttachImage uploads the picture to object storage and stores its public url on the item.
func (c *CatalogService) AttachImage(
	ctx context.Context,
	itemID int64,
	filename, contentType string,
	body io.Reader,
) (string, error) {
	if c.uploader == nil {
		return "", domain.ErrImageStorageMissing
	}
	if _, err := c.GetItem(ctx, itemID); err != nil {
		return "", err
	}
	key := fmt.Sprintf("items/%d/%s%s", itemID, uuid.NewString(), strings.ToLower(path.Ext(filename)))
	url, err := c.uploader.Upload(ctx, key, contentType, body)
	if err != nil {
		return "", fmt.Errorf("uploading image of item %d: %w", itemID, err)
	}
	if setErr := c.itemRepo.SetImageURL(ctx, itemID, url); setErr != nil {
		return "", fmt.Errorf("saving image of item %d: %w", itemID, setErr)
	}
	return url, nil
}
