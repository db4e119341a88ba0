//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type CartLine struct {
	EventID   uuid.UUID
	Quantity  int32
	UnitPrice decimal.Decimal
}

func CreateTestUser(t *testing.T, db DBLike, email, name, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO users (id, email, name, role) VALUES ($1, $2, $3, $4) ON CONFLICT (email) DO NOTHING",
		userID, strings.ToLower(email), name, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		require.NoError(t, db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", strings.ToLower(email)).Scan(&userID))
	}

	return userID
}

func CreateTestEvent(t *testing.T, db DBLike, title string, price decimal.Decimal, quantity int32) uuid.UUID {
	t.Helper()

	eventID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO events (id, title, price, quantity) VALUES ($1, $2, $3, $4)",
		eventID, title, price, quantity)
	require.NoError(t, err)

	return eventID
}

// CreateTestCart stores a cart whose total is the sum of its lines. A non-nil
// discounted total is stored as total_price_after_discount.
func CreateTestCart(t *testing.T, db DBLike, userID uuid.UUID, discounted *decimal.Decimal, lines ...CartLine) uuid.UUID {
	t.Helper()

	cartID := uuid.New()
	ctx := context.Background()

	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt32(l.Quantity)))
	}

	_, err := db.Exec(ctx,
		"INSERT INTO carts (id, user_id, total_cart_price, total_price_after_discount) VALUES ($1, $2, $3, $4)",
		cartID, userID, total, discounted)
	require.NoError(t, err)

	for i, l := range lines {
		_, err := db.Exec(ctx,
			"INSERT INTO cart_items (cart_id, event_id, quantity, unit_price, position) VALUES ($1, $2, $3, $4, $5)",
			cartID, l.EventID, l.Quantity, l.UnitPrice, i)
		require.NoError(t, err)
	}

	return cartID
}

func EventStock(t *testing.T, db DBLike, eventID uuid.UUID) (quantity, sold int32) {
	t.Helper()

	err := db.QueryRow(context.Background(), "SELECT quantity, sold FROM events WHERE id = $1", eventID).Scan(&quantity, &sold)
	require.NoError(t, err)
	return quantity, sold
}

func CartExists(t *testing.T, db DBLike, cartID uuid.UUID) bool {
	t.Helper()

	var exists bool
	err := db.QueryRow(context.Background(), "SELECT EXISTS (SELECT 1 FROM carts WHERE id = $1)", cartID).Scan(&exists)
	require.NoError(t, err)
	return exists
}

func CountBookingsForCart(t *testing.T, db DBLike, cartID uuid.UUID) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM bookings WHERE cart_id = $1", cartID).Scan(&n)
	require.NoError(t, err)
	return n
}

// PaymentEventStatus returns "" while the event has not reached the inbox.
func PaymentEventStatus(t *testing.T, db DBLike, eventID string) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(),
		"SELECT COALESCE((SELECT status FROM payment_events WHERE event_id = $1), '')", eventID).Scan(&status)
	require.NoError(t, err)
	return status
}

func CountNotificationJobs(t *testing.T, db DBLike, kind string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM notification_jobs WHERE kind = $1", kind).Scan(&n)
	require.NoError(t, err)
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
