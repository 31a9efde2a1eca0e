package pgdb

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/minishop-tech/go-backend/pkg/e"
	"github.com/minishop-tech/go-backend/pkg/tr"
)

// PaymentEventRepo — журнал входящих событий платёжного процессора.
// Уникальность по event_id обеспечивает дедупликацию повторных доставок.
type PaymentEventRepo struct {
	pool *pgxpool.Pool
}

func NewPaymentEventRepo(pool *pgxpool.Pool) *PaymentEventRepo {
	return &PaymentEventRepo{pool: pool}
}

// Register регистрирует событие по его идентификатору.
// Возвращает false, если событие уже было зарегистрировано ранее.
func (p *PaymentEventRepo) Register(ctx context.Context, eventID string, eventType string, orderID int64) (bool, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO payment_events (event_id, event_type, order_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (event_id) DO NOTHING
	`

	result, err := tx.Exec(ctx, query, eventID, eventType, orderID)
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return result.RowsAffected() > 0, nil
}
