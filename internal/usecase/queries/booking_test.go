//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"

	"ticket-checkout/internal/domain/user"
	"ticket-checkout/internal/infra"
	"ticket-checkout/internal/pkg/errs"
	"ticket-checkout/internal/usecase/queries"
	queriesmock "ticket-checkout/tests/mock/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func intPtr(i int) *int { return &i }

func TestBookingQueries_GetByID(t *testing.T) {
	ownerID := uuid.New()
	bookingID := uuid.New()
	view := &queries.BookingView{ID: bookingID, UserID: ownerID}

	tests := []struct {
		name    string
		actor   queries.Actor
		find    func(*queriesmock.MockBookingReadStore)
		wantErr error
	}{
		{
			name:  "購入者本人は取得できる",
			actor: queries.Actor{UserID: ownerID, Role: user.RoleUser},
			find: func(s *queriesmock.MockBookingReadStore) {
				s.EXPECT().FindByID(gomock.Any(), bookingID).Return(view, nil)
			},
		},
		{
			name:  "管理者は他人の予約も取得できる",
			actor: queries.Actor{UserID: uuid.New(), Role: user.RoleAdmin},
			find: func(s *queriesmock.MockBookingReadStore) {
				s.EXPECT().FindByID(gomock.Any(), bookingID).Return(view, nil)
			},
		},
		{
			name:  "他人の予約は存在しない扱い",
			actor: queries.Actor{UserID: uuid.New(), Role: user.RoleUser},
			find: func(s *queriesmock.MockBookingReadStore) {
				s.EXPECT().FindByID(gomock.Any(), bookingID).Return(view, nil)
			},
			wantErr: queries.ErrBookingNotFound,
		},
		{
			name:  "存在しない予約",
			actor: queries.Actor{UserID: ownerID, Role: user.RoleUser},
			find: func(s *queriesmock.MockBookingReadStore) {
				s.EXPECT().FindByID(gomock.Any(), bookingID).
					Return(nil, infra.WrapRepoErr("booking not found", errors.New("no rows"), infra.KindNotFound))
			},
			wantErr: queries.ErrBookingNotFound,
		},
		{
			name:  "ストアの障害",
			actor: queries.Actor{UserID: ownerID, Role: user.RoleUser},
			find: func(s *queriesmock.MockBookingReadStore) {
				s.EXPECT().FindByID(gomock.Any(), bookingID).Return(nil, errors.New("connection reset"))
			},
			wantErr: queries.ErrQueryFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := queriesmock.NewMockBookingReadStore(ctrl)
			tt.find(store)

			got, err := queries.NewBookingQueries(store).GetByID(context.Background(), tt.actor, bookingID)
			if tt.wantErr != nil {
				assert.True(t, errs.Is(err, tt.wantErr), "got %v", err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, bookingID, got.ID)
		})
	}
}

func TestBookingQueries_List(t *testing.T) {
	t.Run("一般ユーザーは自分の予約に絞り込まれる", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockBookingReadStore(ctrl)
		actor := queries.Actor{UserID: uuid.New(), Role: user.RoleUser}
		someoneElse := uuid.New()
		paid := true

		want := queries.BookingFilter{UserID: &actor.UserID, IsPaid: &paid}
		matchFilter := gomock.Cond(func(x any) bool {
			return cmp.Equal(want, x)
		})
		store.EXPECT().Count(gomock.Any(), matchFilter).Return(int64(3), nil)
		store.EXPECT().List(gomock.Any(), matchFilter, int32(2), int32(2)).
			Return([]*queries.BookingView{{ID: uuid.New()}}, nil)

		page, err := queries.NewBookingQueries(store).List(context.Background(), actor,
			queries.BookingFilter{UserID: &someoneElse, IsPaid: &paid},
			queries.PageRequest{Page: 2, Limit: 2})
		require.NoError(t, err)

		assert.Equal(t, 1, page.Results)
		want2 := queries.PaginationResult{CurrentPage: 2, Limit: 2, NumberOfPages: 2, Prev: intPtr(1)}
		if diff := cmp.Diff(want2, page.Pagination); diff != "" {
			t.Errorf("pagination mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("スタッフは絞り込みなしで全件を見られる", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockBookingReadStore(ctrl)
		actor := queries.Actor{UserID: uuid.New(), Role: user.RoleManager}

		store.EXPECT().Count(gomock.Any(), queries.BookingFilter{}).Return(int64(120), nil)
		store.EXPECT().List(gomock.Any(), queries.BookingFilter{}, int32(queries.DefaultPageLimit), int32(0)).
			Return(nil, nil)

		page, err := queries.NewBookingQueries(store).List(context.Background(), actor, queries.BookingFilter{}, queries.PageRequest{})
		require.NoError(t, err)

		want := queries.PaginationResult{CurrentPage: 1, Limit: queries.DefaultPageLimit, NumberOfPages: 3, Next: intPtr(2)}
		if diff := cmp.Diff(want, page.Pagination); diff != "" {
			t.Errorf("pagination mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, 0, page.Results)
	})

	t.Run("上限を超える件数は切り詰める", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockBookingReadStore(ctrl)
		actor := queries.Actor{UserID: uuid.New(), Role: user.RoleAdmin}

		store.EXPECT().Count(gomock.Any(), gomock.Any()).Return(int64(0), nil)
		store.EXPECT().List(gomock.Any(), gomock.Any(), int32(queries.MaxPageLimit), int32(0)).Return(nil, nil)

		page, err := queries.NewBookingQueries(store).List(context.Background(), actor, queries.BookingFilter{}, queries.PageRequest{Page: 1, Limit: 500})
		require.NoError(t, err)
		assert.Equal(t, queries.MaxPageLimit, page.Pagination.Limit)
		assert.Equal(t, 0, page.Pagination.NumberOfPages)
		assert.Nil(t, page.Pagination.Next)
		assert.Nil(t, page.Pagination.Prev)
	})

	t.Run("巨大なページ番号でもオフセットが溢れない", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockBookingReadStore(ctrl)
		actor := queries.Actor{UserID: uuid.New(), Role: user.RoleAdmin}

		store.EXPECT().Count(gomock.Any(), gomock.Any()).Return(int64(3), nil)
		store.EXPECT().List(gomock.Any(), gomock.Any(), int32(100), int32(2147483600)).Return(nil, nil)

		page, err := queries.NewBookingQueries(store).List(context.Background(), actor, queries.BookingFilter{}, queries.PageRequest{Page: 30000000, Limit: 100})
		require.NoError(t, err)
		assert.Equal(t, 21474837, page.Pagination.CurrentPage)
		assert.Nil(t, page.Pagination.Next)
	})

	t.Run("ストアの障害", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockBookingReadStore(ctrl)
		actor := queries.Actor{UserID: uuid.New(), Role: user.RoleAdmin}

		store.EXPECT().Count(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("timeout"))
		store.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

		_, err := queries.NewBookingQueries(store).List(context.Background(), actor, queries.BookingFilter{}, queries.PageRequest{})
		assert.True(t, errs.Is(err, queries.ErrQueryFailed))
	})
}
