package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/procurement-core/internal/application/requisition"
	"github.com/tu-usuario/procurement-core/internal/domain/repository"
)

var _ requisition.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunConversion inicia una transacción con los repos de requisición y orden de
// compra atados a la tx, y hace Commit o Rollback. La conversión PR→PO usa
// esto para que los inserts de órdenes y el cambio de estado sean atómicos.
func (r *TxRunner) RunConversion(ctx context.Context, fn func(
	reqRepo repository.RequisitionRepository,
	poRepo repository.PurchaseOrderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	reqRepo := NewRequisitionRepository(tx)
	poRepo := NewPurchaseOrderRepository(tx)

	if err := fn(reqRepo, poRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
