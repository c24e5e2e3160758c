package pgrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/dzstore/internal/domain"
	"github.com/fsdevblog/dzstore/internal/repository/repoargs"
	"github.com/fsdevblog/dzstore/pkg/uow"
)

const itemColumns = `id, created_at, updated_at, name, description, price, category, classname, attachments,
	image_url, sort_order, stock_unlimited, stock_quantity, is_active`

type ItemRepository struct {
	conn uow.DBTX
}

func NewItemRepository(conn uow.DBTX) *ItemRepository {
	return &ItemRepository{conn: conn}
}

// FindByID returns the item regardless of its active flag.
func (r *ItemRepository) FindByID(ctx context.Context, id int64) (*domain.Item, error) {
	item, err := scanItem(r.conn.QueryRow(ctx, `SELECT `+itemColumns+` FROM store_items WHERE id = $1`, id))
	if err != nil {
		return nil, convertErr(err, "finding item by id %d", id)
	}
	return item, nil
}

func (r *ItemRepository) ListActive(ctx context.Context, category *domain.ItemCategory) ([]domain.Item, error) {
	var cat *string
	if category != nil {
		c := string(*category)
		cat = &c
	}
	rows, err := r.conn.Query(ctx,
		`SELECT `+itemColumns+` FROM store_items
		WHERE is_active AND ($1::varchar IS NULL OR category = $1)
		ORDER BY sort_order, name`,
		cat,
	)
	if err != nil {
		return nil, convertErr(err, "listing active items")
	}
	return collectItems(rows, "listing active items")
}

func (r *ItemRepository) ListAll(ctx context.Context) ([]domain.Item, error) {
	rows, err := r.conn.Query(ctx, `SELECT `+itemColumns+` FROM store_items ORDER BY category, sort_order, name`)
	if err != nil {
		return nil, convertErr(err, "listing items")
	}
	return collectItems(rows, "listing items")
}

func (r *ItemRepository) CategoryCounts(ctx context.Context) ([]repoargs.CategoryCount, error) {
	rows, err := r.conn.Query(ctx,
		`SELECT category, COUNT(*) FROM store_items WHERE is_active GROUP BY category ORDER BY category`)
	if err != nil {
		return nil, convertErr(err, "counting item categories")
	}
	res, collectErr := pgx.CollectRows(rows, func(row pgx.CollectableRow) (repoargs.CategoryCount, error) {
		var c repoargs.CategoryCount
		var cat string
		scanErr := row.Scan(&cat, &c.Count)
		c.Category = domain.ItemCategory(cat)
		return c, scanErr //nolint:wrapcheck
	})
	if collectErr != nil {
		return nil, convertErr(collectErr, "scanning item categories")
	}
	return res, nil
}

func (r *ItemRepository) Create(ctx context.Context, item repoargs.ItemUpsert) (*domain.Item, error) {
	attachments, mErr := marshalAttachments(item.Attachments)
	if mErr != nil {
		return nil, convertErr(mErr, "marshaling attachments of item %s", item.Name)
	}
	row := r.conn.QueryRow(ctx,
		`INSERT INTO store_items (name, description, price, category, classname, attachments, sort_order,
			stock_unlimited, stock_quantity, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+itemColumns,
		item.Name, item.Description, item.Price, string(item.Category), item.Classname, attachments,
		item.SortOrder, item.StockUnlimited, item.StockQuantity, item.IsActive,
	)
	dbItem, err := scanItem(row)
	if err != nil {
		return nil, convertErr(err, "creating item %s", item.Name)
	}
	return dbItem, nil
}

func (r *ItemRepository) Update(ctx context.Context, id int64, item repoargs.ItemUpsert) (*domain.Item, error) {
	attachments, mErr := marshalAttachments(item.Attachments)
	if mErr != nil {
		return nil, convertErr(mErr, "marshaling attachments of item %d", id)
	}
	row := r.conn.QueryRow(ctx,
		`UPDATE store_items SET name = $1, description = $2, price = $3, category = $4, classname = $5,
			attachments = $6, sort_order = $7, stock_unlimited = $8, stock_quantity = $9, is_active = $10,
			updated_at = NOW()
		WHERE id = $11
		RETURNING `+itemColumns,
		item.Name, item.Description, item.Price, string(item.Category), item.Classname, attachments,
		item.SortOrder, item.StockUnlimited, item.StockQuantity, item.IsActive, id,
	)
	dbItem, err := scanItem(row)
	if err != nil {
		return nil, convertErr(err, "updating item %d", id)
	}
	return dbItem, nil
}

func (r *ItemRepository) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := r.conn.Exec(ctx,
		`UPDATE store_items SET is_active = $1, updated_at = NOW() WHERE id = $2`, active, id)
	if err != nil {
		return convertErr(err, "setting active=%t for item %d", active, id)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(pgx.ErrNoRows, "setting active=%t for item %d", active, id)
	}
	return nil
}

func (r *ItemRepository) SetImageURL(ctx context.Context, id int64, url string) error {
	tag, err := r.conn.Exec(ctx,
		`UPDATE store_items SET image_url = $1, updated_at = NOW() WHERE id = $2`, url, id)
	if err != nil {
		return convertErr(err, "setting image of item %d", id)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(pgx.ErrNoRows, "setting image of item %d", id)
	}
	return nil
}

func (r *ItemRepository) ReserveStock(ctx context.Context, id int64, qty int64) error {
	tag, err := r.conn.Exec(ctx,
		`UPDATE store_items SET stock_quantity = stock_quantity - $1, updated_at = NOW()
		WHERE id = $2 AND NOT stock_unlimited AND stock_quantity >= $1`,
		qty, id,
	)
	if err != nil {
		return convertErr(err, "reserving %d units of item %d", qty, id)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

func collectItems(rows pgx.Rows, op string) ([]domain.Item, error) {
	res, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Item, error) {
		item, scanErr := scanItem(row)
		if scanErr != nil {
			return domain.Item{}, scanErr
		}
		return *item, nil
	})
	if err != nil {
		return nil, convertErr(err, "%s", op)
	}
	return res, nil
}

func scanItem(row pgx.Row) (*domain.Item, error) {
	var item domain.Item
	var category string
	var attachments []byte
	if err := row.Scan(
		&item.ID,
		&item.CreatedAt,
		&item.UpdatedAt,
		&item.Name,
		&item.Description,
		&item.Price,
		&category,
		&item.Classname,
		&attachments,
		&item.ImageURL,
		&item.SortOrder,
		&item.StockUnlimited,
		&item.StockQuantity,
		&item.IsActive,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	item.Category = domain.ItemCategory(category)

	// attachments are parsed once here, a broken column leaves the item without them.
	parsed, parseErr := domain.ParseAttachments(attachments)
	if parseErr == nil {
		item.Attachments = parsed
	}
	return &item, nil
}

func marshalAttachments(a domain.Attachments) ([]byte, error) {
	if len(a) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal attachments: %w", err)
	}
	return b, nil
}
