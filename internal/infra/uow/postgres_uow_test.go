//go:build unit

package uow

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"ticket-checkout/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"シリアライズ失敗", &pgconn.PgError{Code: pgErrCodeSerializationFailure}, true},
		{"デッドロック", &pgconn.PgError{Code: pgErrCodeDeadlockDetected}, true},
		{"ラップされたデッドロック", fmt.Errorf("apply purchase: %w", &pgconn.PgError{Code: pgErrCodeDeadlockDetected}), true},
		{"マークされたシリアライズ失敗", errs.Mark(&pgconn.PgError{Code: pgErrCodeSerializationFailure}, errTransactionCommit), true},
		{"一意制約違反", &pgconn.PgError{Code: "23505"}, false},
		{"PostgreSQL 以外のエラー", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableError(tt.err))
		})
	}
}

func TestShouldRetry(t *testing.T) {
	deadlock := &pgconn.PgError{Code: pgErrCodeDeadlockDetected}

	assert.True(t, shouldRetry(deadlock, 0, maxTxRetries))
	assert.True(t, shouldRetry(deadlock, maxTxRetries-1, maxTxRetries))
	assert.False(t, shouldRetry(deadlock, maxTxRetries, maxTxRetries))
	assert.False(t, shouldRetry(errors.New("boom"), 0, maxTxRetries))
}

func TestCalculateBackoff(t *testing.T) {
	for attempt := 0; attempt < 4; attempt++ {
		t.Run(fmt.Sprintf("attempt=%d", attempt), func(t *testing.T) {
			base := time.Duration(1<<attempt) * baseBackoff
			got := calculateBackoff(attempt, baseBackoff)

			assert.GreaterOrEqual(t, got, base)
			assert.Less(t, got, base+base/5)
		})
	}
}
