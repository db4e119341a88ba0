package repository

import (
	"context"
	"strings"
	"time"

	"ticket-checkout/internal/domain/payment"
	"ticket-checkout/internal/infra"
	sqlc "ticket-checkout/internal/infra/sqlc/generated"
	"ticket-checkout/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const maxLastErrorLen = 2000

type PaymentEventQueries interface {
	ClaimPaymentEvent(ctx context.Context, db sqlc.DBTX, arg sqlc.ClaimPaymentEventParams) (int64, error)
	CompletePaymentEvent(ctx context.Context, db sqlc.DBTX, arg sqlc.CompletePaymentEventParams) (int64, error)
	RecordPaymentEventFailure(ctx context.Context, db sqlc.DBTX, arg sqlc.RecordPaymentEventFailureParams) error
}

// PaymentEventRepository is the inbox of gateway events. A row per gateway event
// id makes redelivered webhooks harmless.
type PaymentEventRepository struct {
	queries PaymentEventQueries
	db      sqlc.DBTX
}

func NewPaymentEventRepository(queries PaymentEventQueries, db sqlc.DBTX) *PaymentEventRepository {
	return &PaymentEventRepository{
		queries: queries,
		db:      db,
	}
}

func (r *PaymentEventRepository) Claim(ctx context.Context, evt payment.CheckoutCompleted, now time.Time) (bool, error) {
	n, err := r.queries.ClaimPaymentEvent(ctx, r.db, sqlc.ClaimPaymentEventParams{
		EventID:   evt.EventID,
		EventType: payment.EventTypeCheckoutCompleted,
		SessionID: evt.SessionID,
		CartID:    cartIDToPgtype(evt.CartID),
		CreatedAt: pgconv.TimeToPgtype(now),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to claim payment event", err)
	}
	return n == 1, nil
}

func (r *PaymentEventRepository) Complete(ctx context.Context, eventID string, status payment.InboxStatus, bookingID *uuid.UUID, now time.Time) error {
	n, err := r.queries.CompletePaymentEvent(ctx, r.db, sqlc.CompletePaymentEventParams{
		EventID:   eventID,
		Status:    string(status),
		BookingID: pgconv.UUIDPtrToPgtype(bookingID),
		UpdatedAt: pgconv.TimeToPgtype(now),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to complete payment event", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("payment event not claimed", nil, infra.KindNotFound)
	}
	return nil
}

func (r *PaymentEventRepository) RecordFailure(ctx context.Context, evt payment.CheckoutCompleted, reason string, now time.Time) error {
	err := r.queries.RecordPaymentEventFailure(ctx, r.db, sqlc.RecordPaymentEventFailureParams{
		EventID:   evt.EventID,
		EventType: payment.EventTypeCheckoutCompleted,
		SessionID: evt.SessionID,
		CartID:    cartIDToPgtype(evt.CartID),
		LastError: pgconv.StringToPgtype(truncateReason(reason)),
		CreatedAt: pgconv.TimeToPgtype(now),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to record payment event failure", err)
	}
	return nil
}

// truncateReason caps reason at maxLastErrorLen bytes without splitting a rune.
func truncateReason(reason string) string {
	if len(reason) <= maxLastErrorLen {
		return reason
	}
	return strings.ToValidUTF8(reason[:maxLastErrorLen], "")
}

func cartIDToPgtype(id uuid.UUID) pgtype.UUID {
	if id == uuid.Nil {
		return pgconv.UUIDPtrToPgtype(nil)
	}
	return pgconv.UUIDToPgtype(id)
}
