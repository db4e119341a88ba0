package repository

import (
	"context"

	"ticket-checkout/internal/domain/cart"
	"ticket-checkout/internal/infra"
	sqlc "ticket-checkout/internal/infra/sqlc/generated"
	"ticket-checkout/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type CartQueries interface {
	GetCartByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.GetCartByIDRow, error)
	LockCartByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.LockCartByIDRow, error)
	ListCartItems(ctx context.Context, db sqlc.DBTX, cartID uuid.UUID) ([]sqlc.ListCartItemsRow, error)
	DeleteCart(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (int64, error)
}

type CartRepository struct {
	queries CartQueries
	db      sqlc.DBTX
}

func NewCartRepository(queries CartQueries, db sqlc.DBTX) *CartRepository {
	return &CartRepository{
		queries: queries,
		db:      db,
	}
}

func (r *CartRepository) FindByID(ctx context.Context, id uuid.UUID) (*cart.Snapshot, error) {
	row, err := r.queries.GetCartByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("cart not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find cart by ID", err)
	}
	return r.snapshot(ctx, row.ID, row.UserID, row.TotalCartPrice, row.TotalPriceAfterDiscount)
}

// LockByID holds the cart row until the surrounding transaction ends, so two
// conversions of one cart run one after the other.
func (r *CartRepository) LockByID(ctx context.Context, id uuid.UUID) (*cart.Snapshot, error) {
	row, err := r.queries.LockCartByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("cart not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock cart", err)
	}
	return r.snapshot(ctx, row.ID, row.UserID, row.TotalCartPrice, row.TotalPriceAfterDiscount)
}

func (r *CartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.queries.DeleteCart(ctx, r.db, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete cart", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("cart not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *CartRepository) snapshot(ctx context.Context, id, ownerID uuid.UUID, total, discounted pgtype.Numeric) (*cart.Snapshot, error) {
	rows, err := r.queries.ListCartItems(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list cart items", err)
	}

	totalPrice, err := pgconv.DecimalFromNumeric(total)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid cart total", err, infra.KindDataCorrupted)
	}
	afterDiscount, err := pgconv.DecimalPtrFromNumeric(discounted)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid discounted cart total", err, infra.KindDataCorrupted)
	}

	items := make([]cart.Item, len(rows))
	for i, row := range rows {
		price, err := pgconv.DecimalFromNumeric(row.UnitPrice)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid cart item price", err, infra.KindDataCorrupted)
		}
		items[i] = cart.Item{EventID: row.EventID, Quantity: row.Quantity, UnitPrice: price}
	}

	return &cart.Snapshot{
		ID:                      id,
		OwnerID:                 ownerID,
		Items:                   items,
		TotalCartPrice:          totalPrice,
		TotalPriceAfterDiscount: afterDiscount,
	}, nil
}
