package pgdb

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/minishop-tech/go-backend/internal/domain"
	"github.com/minishop-tech/go-backend/internal/repository/pgdb/converter"
	"github.com/minishop-tech/go-backend/internal/usecase"
	"github.com/minishop-tech/go-backend/pkg/e"
	"github.com/minishop-tech/go-backend/pkg/tr"
)

// OrderRepo реализует репозиторий заказов поверх PostgreSQL.
type OrderRepo struct {
	pool *pgxpool.Pool
	conv converter.OrderConverter
}

func NewOrderRepo(pool *pgxpool.Pool, conv converter.OrderConverter) *OrderRepo {
	return &OrderRepo{
		pool: pool,
		conv: conv,
	}
}

const orderColumns = `id, customer_name, customer_email, customer_phone, shipping_address, total_amount, status, created_at, updated_at`

// Create вставляет заказ вместе с позициями в рамках текущей транзакции.
func (o *OrderRepo) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := o.conv.ToModel(order)
	query := `
		INSERT INTO orders (customer_name, customer_email, customer_phone, shipping_address, total_amount, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err = tx.QueryRow(ctx, query,
		model.CustomerName,
		model.CustomerEmail,
		model.CustomerPhone,
		model.ShippingAddress,
		model.TotalAmount,
		model.Status,
	).Scan(&model.ID, &model.CreatedAt)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	itemQuery := `
		INSERT INTO order_items (order_id, product_id, product_name, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	for i := range model.Items {
		item := &model.Items[i]
		item.OrderID = model.ID

		err = tx.QueryRow(ctx, itemQuery,
			item.OrderID,
			item.ProductID,
			item.ProductName,
			item.Quantity,
			item.UnitPrice,
			item.Subtotal,
		).Scan(&item.ID)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
	}

	return o.conv.ToEntity(model), nil
}

// GetByID возвращает заказ с позициями.
func (o *OrderRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE id = $1
	`

	var model converter.OrderModel
	err := scanOrder(o.pool.QueryRow(ctx, query, id), &model)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrOrderNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	items, err := o.itemsByOrderID(ctx, model.ID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	model.Items = items

	return o.conv.ToEntity(&model), nil
}

// UpdateStatus выполняет условный переход статуса (compare-and-set).
// Возвращает false, если заказ не находится в статусе from.
func (o *OrderRepo) UpdateStatus(ctx context.Context, id int64, from, to domain.OrderStatus) (bool, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE orders
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
	`

	result, err := tx.Exec(ctx, query, id, string(from), string(to))
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return result.RowsAffected() > 0, nil
}

// Recent возвращает последние заказы с позициями, новые первыми.
func (o *OrderRepo) Recent(ctx context.Context, limit int) ([]domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`

	rows, err := o.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]converter.OrderModel, 0, limit)
	for rows.Next() {
		var model converter.OrderModel
		if err := scanOrder(rows, &model); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, model)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	result := make([]domain.Order, 0, len(models))
	for i := range models {
		items, err := o.itemsByOrderID(ctx, models[i].ID)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		models[i].Items = items

		result = append(result, *o.conv.ToEntity(&models[i]))
	}

	return result, nil
}

// Stats возвращает агрегаты по оплаченным заказам.
func (o *OrderRepo) Stats(ctx context.Context) (*usecase.OrderStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(total_amount), 0),
			COALESCE(AVG(total_amount), 0)::BIGINT
		FROM orders
		WHERE status = 'PAID'
	`

	var stats usecase.OrderStats
	err := o.pool.QueryRow(ctx, query).
		Scan(&stats.TotalOrders, &stats.TotalRevenue, &stats.AverageValue)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &stats, nil
}

func (o *OrderRepo) itemsByOrderID(ctx context.Context, orderID int64) ([]converter.OrderItemModel, error) {
	query := `
		SELECT id, order_id, product_id, product_name, quantity, unit_price, subtotal
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := o.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	items := make([]converter.OrderItemModel, 0)
	for rows.Next() {
		var item converter.OrderItemModel
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductName,
			&item.Quantity,
			&item.UnitPrice,
			&item.Subtotal,
		)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return items, nil
}

func scanOrder(row pgx.Row, model *converter.OrderModel) error {
	return row.Scan(
		&model.ID,
		&model.CustomerName,
		&model.CustomerEmail,
		&model.CustomerPhone,
		&model.ShippingAddress,
		&model.TotalAmount,
		&model.Status,
		&model.CreatedAt,
		&model.UpdatedAt,
	)
}
