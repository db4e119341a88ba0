package queries

import (
	"context"
	"math"

	"ticket-checkout/internal/infra"
	"ticket-checkout/internal/pkg/errs"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 100
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrQueryFailed     = errs.New("booking query failed")
)

type BookingQueries interface {
	// GetByID hides other buyers' bookings from role user behind not-found.
	GetByID(ctx context.Context, actor Actor, id uuid.UUID) (*BookingView, error)
	// GetByIDSystem skips ownership checks; for read-after-write in commands.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, actor Actor, filter BookingFilter, page PageRequest) (*BookingPage, error)
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, filter BookingFilter, limit, offset int32) ([]*BookingView, error)
	Count(ctx context.Context, filter BookingFilter) (int64, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actor Actor, id uuid.UUID) (*BookingView, error) {
	view, err := q.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Role.IsStaff() && view.UserID != actor.UserID {
		return nil, ErrBookingNotFound
	}
	return view, nil
}

func (q *bookingQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return view, nil
}

func (q *bookingQueriesImpl) List(ctx context.Context, actor Actor, filter BookingFilter, page PageRequest) (*BookingPage, error) {
	if !actor.Role.IsStaff() {
		own := actor.UserID
		filter.UserID = &own
	}
	page = normalizePage(page)
	offset := (page.Page - 1) * page.Limit

	var (
		total int64
		rows  []*BookingView
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := q.store.Count(gctx, filter)
		if err != nil {
			return err
		}
		total = n
		return nil
	})
	g.Go(func() error {
		// #nosec G115 -- page and limit are bounded by normalizePage
		r, err := q.store.List(gctx, filter, int32(page.Limit), int32(offset))
		if err != nil {
			return err
		}
		rows = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}

	return &BookingPage{
		Results:    len(rows),
		Pagination: paginate(page, total),
		Data:       rows,
	}, nil
}

func normalizePage(p PageRequest) PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	switch {
	case p.Limit < 1:
		p.Limit = DefaultPageLimit
	case p.Limit > MaxPageLimit:
		p.Limit = MaxPageLimit
	}
	// keeps (Page-1)*Limit inside the int32 OFFSET
	if maxPage := math.MaxInt32/p.Limit + 1; p.Page > maxPage {
		p.Page = maxPage
	}
	return p
}

func paginate(p PageRequest, total int64) PaginationResult {
	limit := int64(p.Limit)
	pages := int((total + limit - 1) / limit)

	res := PaginationResult{
		CurrentPage:   p.Page,
		Limit:         p.Limit,
		NumberOfPages: pages,
	}
	if int64(p.Page)*limit < total {
		next := p.Page + 1
		res.Next = &next
	}
	if p.Page > 1 {
		prev := p.Page - 1
		res.Prev = &prev
	}
	return res
}
