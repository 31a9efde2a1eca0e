package pgdb

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/minishop-tech/go-backend/internal/domain"
	"github.com/minishop-tech/go-backend/internal/repository/pgdb/converter"
	"github.com/minishop-tech/go-backend/pkg/e"
	"github.com/minishop-tech/go-backend/pkg/tr"
)

// ProductRepo реализует репозиторий продуктов поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

const productColumns = `id, name, description, price, stock, image_url, status, created_at, updated_at`

// List возвращает продукты, новые первыми. Без includeInactive
// возвращаются только продукты со статусом ACTIVE.
func (p *ProductRepo) List(ctx context.Context, includeInactive bool) ([]domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE status = 'ACTIVE' OR $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := p.pool.Query(ctx, query, includeInactive)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.Product, 0)
	for rows.Next() {
		var model converter.ProductModel
		if err := scanProduct(rows, &model); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, *p.conv.ToEntity(&model))
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

func (p *ProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
	`

	var model converter.ProductModel
	err := scanProduct(p.pool.QueryRow(ctx, query, id), &model)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := p.conv.ToModel(product)
	query := `
		INSERT INTO products (name, description, price, stock, image_url, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + productColumns + `
	`

	err = scanProduct(tx.QueryRow(ctx, query,
		model.Name,
		model.Description,
		model.Price,
		model.Stock,
		model.ImageURL,
		model.Status,
	), model)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

func (p *ProductRepo) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := p.conv.ToModel(product)
	query := `
		UPDATE products
		SET name = $2,
			description = $3,
			price = $4,
			stock = $5,
			image_url = $6,
			status = $7,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + productColumns + `
	`

	err = scanProduct(tx.QueryRow(ctx, query,
		model.ID,
		model.Name,
		model.Description,
		model.Price,
		model.Stock,
		model.ImageURL,
		model.Status,
	), model)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

// Delete удаляет продукт. Позиции заказов ссылаются на продукт
// без внешнего ключа и хранят снимки имени и цены.
func (p *ProductRepo) Delete(ctx context.Context, id int64) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		DELETE FROM products
		WHERE id = $1
	`

	result, err := tx.Exec(ctx, query, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if result.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
	}

	return nil
}

// ReserveStock атомарно списывает qty условным UPDATE: строка меняется
// только если продукт активен и остатка достаточно. Ноль затронутых
// строк классифицируется повторным SELECT в конкретную причину отказа.
func (p *ProductRepo) ReserveStock(ctx context.Context, id int64, qty int32) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE products
		SET stock = stock - $2, updated_at = NOW()
		WHERE id = $1 AND status = 'ACTIVE' AND stock >= $2
		RETURNING ` + productColumns + `
	`

	var model converter.ProductModel
	err = scanProduct(tx.QueryRow(ctx, query, id, qty), &model)
	if err == nil {
		return p.conv.ToEntity(&model), nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var status string
	var stock int32
	err = tx.QueryRow(ctx, `SELECT status, stock FROM products WHERE id = $1`, id).
		Scan(&status, &stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if status != string(domain.ProductStatusActive) {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductUnavailable)
	}

	return nil, e.Wrap(whereami.WhereAmI(), e.ErrInsufficientStock)
}

// ReleaseStock возвращает qty на склад после неуспешной оплаты.
func (p *ProductRepo) ReleaseStock(ctx context.Context, id int64, qty int32) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE products
		SET stock = stock + $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := tx.Exec(ctx, query, id, qty)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if result.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
	}

	return nil
}

func scanProduct(row pgx.Row, model *converter.ProductModel) error {
	return row.Scan(
		&model.ID,
		&model.Name,
		&model.Description,
		&model.Price,
		&model.Stock,
		&model.ImageURL,
		&model.Status,
		&model.CreatedAt,
		&model.UpdatedAt,
	)
}
