package repository

import (
	"context"
	"errors"
	"log/slog"

	"ticket-checkout/internal/domain/inventory"
	"ticket-checkout/internal/infra"
	sqlc "ticket-checkout/internal/infra/sqlc/generated"
	"ticket-checkout/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type InventoryQueries interface {
	DecrementEventInventory(ctx context.Context, db sqlc.DBTX, arg []sqlc.DecrementEventInventoryParams) *sqlc.DecrementEventInventoryBatchResults
	ListExistingEventIDs(ctx context.Context, db sqlc.DBTX, ids []uuid.UUID) ([]uuid.UUID, error)
}

// savepointer is satisfied by pgx.Tx (nested Begin opens a savepoint) and by
// *pgxpool.Pool (Begin opens a fresh transaction).
type savepointer interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type InventoryLedger struct {
	queries InventoryQueries
	db      sqlc.DBTX
}

func NewInventoryLedger(queries InventoryQueries, db sqlc.DBTX) *InventoryLedger {
	return &InventoryLedger{
		queries: queries,
		db:      db,
	}
}

// ApplyPurchase sends one conditional decrement per event in a single batch.
// Stock is never read into Go first: each UPDATE only matches while enough
// units remain. Any non-matching line rolls the whole batch back.
func (l *InventoryLedger) ApplyPurchase(ctx context.Context, adjs []inventory.Adjustment) (inventory.Outcome, error) {
	normalized, err := inventory.Normalize(adjs)
	if err != nil {
		return inventory.Outcome{}, err
	}

	sp, ok := l.db.(savepointer)
	if !ok {
		return inventory.Outcome{}, infra.WrapRepoErr("inventory ledger needs a transactional connection", nil)
	}

	scope, err := sp.Begin(ctx)
	if err != nil {
		return inventory.Outcome{}, infra.WrapRepoErr("failed to open inventory savepoint", err)
	}
	defer func() {
		if rbErr := scope.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			slog.Warn("failed to roll back inventory savepoint", "error", rbErr.Error())
		}
	}()

	params := make([]sqlc.DecrementEventInventoryParams, len(normalized))
	for i, a := range normalized {
		params[i] = sqlc.DecrementEventInventoryParams{ID: a.EventID, Qty: a.Quantity}
	}

	lines := make([]inventory.LineResult, len(normalized))
	var batchErr error
	l.queries.DecrementEventInventory(ctx, scope, params).QueryRow(func(i int, _ sqlc.DecrementEventInventoryRow, err error) {
		lines[i] = inventory.LineResult{EventID: normalized[i].EventID, Requested: normalized[i].Quantity, Status: inventory.LineApplied}
		switch {
		case err == nil:
		case pgconv.IsNoRows(err):
			lines[i].Status = inventory.LineInsufficient
		default:
			if batchErr == nil {
				batchErr = err
			}
		}
	})
	if batchErr != nil {
		return inventory.Outcome{}, infra.WrapRepoErr("failed to apply inventory batch", batchErr)
	}

	outcome := inventory.Outcome{Lines: lines}
	if outcome.Applied() {
		if err := scope.Commit(ctx); err != nil {
			return inventory.Outcome{}, infra.WrapRepoErr("failed to release inventory savepoint", err)
		}
		return outcome, nil
	}

	if err := l.markMissing(ctx, scope, lines); err != nil {
		return inventory.Outcome{}, err
	}

	if err := scope.Rollback(ctx); err != nil {
		return inventory.Outcome{}, infra.WrapRepoErr("failed to compensate inventory batch", err)
	}
	return outcome, nil
}

// markMissing tells unknown events apart from ones that are merely sold out.
func (l *InventoryLedger) markMissing(ctx context.Context, db sqlc.DBTX, lines []inventory.LineResult) error {
	var ids []uuid.UUID
	for _, ln := range lines {
		if ln.Status == inventory.LineInsufficient {
			ids = append(ids, ln.EventID)
		}
	}

	existing, err := l.queries.ListExistingEventIDs(ctx, db, ids)
	if err != nil {
		return infra.WrapRepoErr("failed to look up events", err)
	}
	found := make(map[uuid.UUID]struct{}, len(existing))
	for _, id := range existing {
		found[id] = struct{}{}
	}

	for i := range lines {
		if lines[i].Status != inventory.LineInsufficient {
			continue
		}
		if _, ok := found[lines[i].EventID]; !ok {
			lines[i].Status = inventory.LineMissing
		}
	}
	return nil
}
