package pgrepo

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/dzstore/internal/domain"
	"github.com/fsdevblog/dzstore/internal/repository/repoargs"
	"github.com/fsdevblog/dzstore/pkg/uow"
)

const orderColumns = `id, created_at, updated_at, completed_at, order_number, user_id, total_amount, status,
	payment_method, notes`

var orderItemFields = []string{
	"id", "created_at", "updated_at", "order_id", "item_id", "quantity", "unit_price", "total_price",
	"delivery_status", "delivery_attempts", "delivery_data", "delivered_at",
}

func orderItemColumns(prefix string) string {
	if prefix == "" {
		return strings.Join(orderItemFields, ", ")
	}
	cols := make([]string, len(orderItemFields))
	for i, f := range orderItemFields {
		cols[i] = prefix + "." + f
	}
	return strings.Join(cols, ", ")
}

type OrderRepository struct {
	conn uow.DBTX
}

func NewOrderRepository(conn uow.DBTX) *OrderRepository {
	return &OrderRepository{conn: conn}
}

// Create returns domain.ErrDuplicateKey on an order number collision.
func (o *OrderRepository) Create(ctx context.Context, order repoargs.OrderCreate) (*domain.Order, error) {
	row := o.conn.QueryRow(ctx,
		`INSERT INTO orders (order_number, user_id, total_amount, status, payment_method, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+orderColumns,
		order.OrderNumber, order.UserID, order.TotalAmount, string(order.Status), order.PaymentMethod, order.Notes,
	)
	dbOrder, err := scanOrder(row)
	if err != nil {
		return nil, convertErr(err, "creating order `%s`", order.OrderNumber)
	}
	return dbOrder, nil
}

func (o *OrderRepository) CreateItem(ctx context.Context, item repoargs.OrderItemCreate) (*domain.OrderItem, error) {
	row := o.conn.QueryRow(ctx,
		`INSERT INTO order_items (order_id, item_id, quantity, unit_price, total_price, delivery_status)
		VALUES ($1, $2, $3, $4, $5, 'pending')
		RETURNING `+orderItemColumns(""),
		item.OrderID, item.ItemID, item.Quantity, item.UnitPrice, item.TotalPrice,
	)
	dbItem, err := scanOrderItem(row)
	if err != nil {
		return nil, convertErr(err, "creating line item for order %d", item.OrderID)
	}
	return dbItem, nil
}

func (o *OrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	dbOrder, err := scanOrder(o.conn.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		return nil, convertErr(err, "finding order by id %d", id)
	}
	return dbOrder, nil
}

// List returns orders sorted by creation date descending.
func (o *OrderRepository) List(ctx context.Context, filter repoargs.OrderFilter) ([]domain.Order, error) {
	var status *string
	if filter.Status != nil {
		s := string(*filter.Status)
		status = &s
	}
	limit, offset := pageArgs(filter.Limit, filter.Offset)
	rows, err := o.conn.Query(ctx,
		`SELECT `+orderColumns+` FROM orders
		WHERE ($1::bigint IS NULL OR user_id = $1) AND ($2::varchar IS NULL OR status = $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4`,
		filter.UserID, status, limit, offset,
	)
	if err != nil {
		return nil, convertErr(err, "listing orders")
	}
	res, collectErr := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Order, error) {
		dbOrder, scanErr := scanOrder(row)
		if scanErr != nil {
			return domain.Order{}, scanErr
		}
		return *dbOrder, nil
	})
	if collectErr != nil {
		return nil, convertErr(collectErr, "scanning orders")
	}
	return res, nil
}

func (o *OrderRepository) Stats(ctx context.Context) ([]repoargs.OrderStatusCount, error) {
	rows, err := o.conn.Query(ctx,
		`SELECT status, COUNT(*), COALESCE(SUM(total_amount), 0) FROM orders GROUP BY status ORDER BY status`)
	if err != nil {
		return nil, convertErr(err, "collecting order stats")
	}
	res, collectErr := pgx.CollectRows(rows, func(row pgx.CollectableRow) (repoargs.OrderStatusCount, error) {
		var c repoargs.OrderStatusCount
		var status string
		scanErr := row.Scan(&status, &c.Count, &c.TotalAmount)
		c.Status = domain.OrderStatusType(status)
		return c, scanErr //nolint:wrapcheck
	})
	if collectErr != nil {
		return nil, convertErr(collectErr, "scanning order stats")
	}
	return res, nil
}

func (o *OrderRepository) GetItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	rows, err := o.conn.Query(ctx,
		`SELECT `+orderItemColumns("")+` FROM order_items WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, convertErr(err, "getting line items of order %d", orderID)
	}
	res, collectErr := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.OrderItem, error) {
		item, scanErr := scanOrderItem(row)
		if scanErr != nil {
			return domain.OrderItem{}, scanErr
		}
		return *item, nil
	})
	if collectErr != nil {
		return nil, convertErr(collectErr, "scanning line items of order %d", orderID)
	}
	return res, nil
}

// UpdateStatus is a compare-and-set on the order status. domain.ErrRecordNotFound means the order
// is missing or its status is not in update.From.
func (o *OrderRepository) UpdateStatus(ctx context.Context, update repoargs.OrderStatusUpdate) (*domain.Order, error) {
	from := make([]string, len(update.From))
	for i, s := range update.From {
		from[i] = string(s)
	}
	row := o.conn.QueryRow(ctx,
		`UPDATE orders SET status = $1::varchar,
			notes = COALESCE($2::text, notes),
			completed_at = CASE WHEN $1::varchar = 'completed' THEN NOW() ELSE completed_at END,
			updated_at = NOW()
		WHERE id = $3 AND status = ANY($4::varchar[])
		RETURNING `+orderColumns,
		string(update.Status), update.Notes, update.OrderID, from,
	)
	dbOrder, err := scanOrder(row)
	if err != nil {
		return nil, convertErr(err, "moving order %d to %s", update.OrderID, update.Status)
	}
	return dbOrder, nil
}

func (o *OrderRepository) UpdateNotes(ctx context.Context, orderID int64, notes string) (*domain.Order, error) {
	row := o.conn.QueryRow(ctx,
		`UPDATE orders SET notes = $1, updated_at = NOW() WHERE id = $2 RETURNING `+orderColumns,
		notes, orderID,
	)
	dbOrder, err := scanOrder(row)
	if err != nil {
		return nil, convertErr(err, "updating notes of order %d", orderID)
	}
	return dbOrder, nil
}

func (o *OrderRepository) RecordDeliveryAttempt(
	ctx context.Context,
	attempt repoargs.DeliveryAttempt,
) (*domain.OrderItem, error) {
	row := o.conn.QueryRow(ctx,
		`UPDATE order_items SET delivery_status = $1::varchar,
			delivery_data = $2,
			delivery_attempts = delivery_attempts + 1,
			delivered_at = CASE WHEN $1::varchar = 'delivered' THEN NOW() ELSE delivered_at END,
			updated_at = NOW()
		WHERE id = $3 AND delivery_status <> 'delivered'
		RETURNING `+orderItemColumns(""),
		string(attempt.Status), nullIfEmpty(attempt.Data), attempt.OrderItemID,
	)
	item, err := scanOrderItem(row)
	if err != nil {
		return nil, convertErr(err, "recording delivery attempt of line item %d", attempt.OrderItemID)
	}
	return item, nil
}

func (o *OrderRepository) CancelOpenItems(ctx context.Context, orderID int64) error {
	_, err := o.conn.Exec(ctx,
		`UPDATE order_items SET delivery_status = 'cancelled', updated_at = NOW()
		WHERE order_id = $1 AND delivery_status IN ('pending', 'failed')`,
		orderID,
	)
	if err != nil {
		return convertErr(err, "cancelling open line items of order %d", orderID)
	}
	return nil
}

// GetForRedelivery returns ids of paid orders that have retryable line items under the attempt cap.
func (o *OrderRepository) GetForRedelivery(ctx context.Context, filter repoargs.RedeliveryFilter) ([]int64, error) {
	limit, _ := pageArgs(filter.Limit, 0)
	rows, err := o.conn.Query(ctx,
		`SELECT o.id FROM orders o
		WHERE o.status = 'paid' AND EXISTS (
			SELECT 1 FROM order_items oi
			WHERE oi.order_id = o.id
				AND oi.delivery_status IN ('pending', 'failed')
				AND oi.delivery_attempts < $1
				AND (oi.delivery_attempts > 0 OR $2::boolean)
		)
		ORDER BY o.id
		LIMIT $3`,
		filter.MaxAttempts, filter.IncludeUnattempted, limit,
	)
	if err != nil {
		return nil, convertErr(err, "getting orders for redelivery")
	}
	ids, collectErr := pgx.CollectRows(rows, pgx.RowTo[int64])
	if collectErr != nil {
		return nil, convertErr(collectErr, "scanning orders for redelivery")
	}
	return ids, nil
}

func (o *OrderRepository) ListDeliveries(
	ctx context.Context,
	filter repoargs.DeliveryFilter,
) ([]repoargs.DeliveryRecord, error) {
	var status *string
	if filter.Status != nil {
		s := string(*filter.Status)
		status = &s
	}
	limit, offset := pageArgs(filter.Limit, filter.Offset)
	rows, err := o.conn.Query(ctx,
		`SELECT `+orderItemColumns("oi")+`, o.order_number, u.username, u.steam_id, si.name, si.classname
		FROM order_items oi
			JOIN orders o ON o.id = oi.order_id
			JOIN users u ON u.id = o.user_id
			JOIN store_items si ON si.id = oi.item_id
		WHERE ($1::varchar = '' OR u.steam_id = $1)
			AND ($2::varchar = '' OR u.username ILIKE '%' || $2 || '%')
			AND ($3::varchar IS NULL OR oi.delivery_status = $3)
			AND ($4::timestamptz IS NULL OR oi.created_at >= $4)
			AND ($5::timestamptz IS NULL OR oi.created_at <= $5)
		ORDER BY oi.created_at DESC, oi.id DESC
		LIMIT $6 OFFSET $7`,
		filter.SteamID, filter.PlayerName, status, filter.StartDate, filter.EndDate, limit, offset,
	)
	if err != nil {
		return nil, convertErr(err, "listing deliveries")
	}
	res, collectErr := pgx.CollectRows(rows, func(row pgx.CollectableRow) (repoargs.DeliveryRecord, error) {
		var rec repoargs.DeliveryRecord
		var status string
		var data []byte
		scanErr := row.Scan(
			&rec.OrderItem.ID,
			&rec.OrderItem.CreatedAt,
			&rec.OrderItem.UpdatedAt,
			&rec.OrderItem.OrderID,
			&rec.OrderItem.ItemID,
			&rec.OrderItem.Quantity,
			&rec.OrderItem.UnitPrice,
			&rec.OrderItem.TotalPrice,
			&status,
			&rec.OrderItem.DeliveryAttempts,
			&data,
			&rec.OrderItem.DeliveredAt,
			&rec.OrderNumber,
			&rec.Username,
			&rec.SteamID,
			&rec.ItemName,
			&rec.Classname,
		)
		rec.OrderItem.DeliveryStatus = domain.DeliveryStatusType(status)
		rec.OrderItem.DeliveryData = data
		return rec, scanErr //nolint:wrapcheck
	})
	if collectErr != nil {
		return nil, convertErr(collectErr, "scanning deliveries")
	}
	return res, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var order domain.Order
	var status string
	if err := row.Scan(
		&order.ID,
		&order.CreatedAt,
		&order.UpdatedAt,
		&order.CompletedAt,
		&order.OrderNumber,
		&order.UserID,
		&order.TotalAmount,
		&status,
		&order.PaymentMethod,
		&order.Notes,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	order.Status = domain.OrderStatusType(status)
	return &order, nil
}

func scanOrderItem(row pgx.Row) (*domain.OrderItem, error) {
	var item domain.OrderItem
	var status string
	var data []byte
	if err := row.Scan(
		&item.ID,
		&item.CreatedAt,
		&item.UpdatedAt,
		&item.OrderID,
		&item.ItemID,
		&item.Quantity,
		&item.UnitPrice,
		&item.TotalPrice,
		&status,
		&item.DeliveryAttempts,
		&data,
		&item.DeliveredAt,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	item.DeliveryStatus = domain.DeliveryStatusType(status)
	item.DeliveryData = data
	return &item, nil
}
