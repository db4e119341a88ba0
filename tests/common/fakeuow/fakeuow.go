//go:build unit

// Package fakeuow is an in-memory shared.UnitOfWork for use case tests. Within
// restores the previous state when fn fails, like a rolled back transaction.
package fakeuow

import (
	"context"
	"errors"
	"maps"
	"sync"
	"time"

	"ticket-checkout/internal/domain/booking"
	"ticket-checkout/internal/domain/cart"
	"ticket-checkout/internal/domain/inventory"
	"ticket-checkout/internal/domain/payment"
	"ticket-checkout/internal/domain/user"
	"ticket-checkout/internal/infra"
	"ticket-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrInjected = errors.New("injected failure")

type Job struct {
	Kind    string
	Topic   string
	Payload []byte
}

type InboxRow struct {
	Status    payment.InboxStatus
	BookingID *uuid.UUID
	Attempts  int
	LastError string
}

type state struct {
	carts    map[uuid.UUID]*cart.Snapshot
	bookings map[uuid.UUID]*booking.Booking
	stock    map[uuid.UUID]int32
	users    map[uuid.UUID]*user.User
	inbox    map[string]InboxRow
	jobs     []Job
}

func (s state) clone() state {
	return state{
		carts:    maps.Clone(s.carts),
		bookings: maps.Clone(s.bookings),
		stock:    maps.Clone(s.stock),
		users:    maps.Clone(s.users),
		inbox:    maps.Clone(s.inbox),
		jobs:     append([]Job(nil), s.jobs...),
	}
}

type UoW struct {
	mu sync.Mutex
	st state

	// FailLedger makes ApplyPurchase return ErrInjected.
	FailLedger bool
	// FailNotifications makes CreateJob return ErrInjected.
	FailNotifications bool
	// WithinCalls counts committed and rolled back transactions.
	WithinCalls int
}

var _ shared.UnitOfWork = (*UoW)(nil)

func New() *UoW {
	return &UoW{st: state{
		carts:    map[uuid.UUID]*cart.Snapshot{},
		bookings: map[uuid.UUID]*booking.Booking{},
		stock:    map[uuid.UUID]int32{},
		users:    map[uuid.UUID]*user.User{},
		inbox:    map[string]InboxRow{},
	}}
}

func (u *UoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.WithinCalls++

	saved := u.st.clone()
	if err := fn(ctx, &tx{u: u}); err != nil {
		u.st = saved
		return err
	}
	return nil
}

func (u *UoW) WithDB(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return fn(ctx, &tx{u: u})
}

// Seeding and inspection helpers

func (u *UoW) PutCart(s *cart.Snapshot)            { u.st.carts[s.ID] = s }
func (u *UoW) PutUser(usr *user.User)              { u.st.users[usr.ID()] = usr }
func (u *UoW) PutBooking(b *booking.Booking)       { u.st.bookings[b.ID()] = b }
func (u *UoW) SetStock(eventID uuid.UUID, n int32) { u.st.stock[eventID] = n }
func (u *UoW) Stock(eventID uuid.UUID) int32       { return u.st.stock[eventID] }
func (u *UoW) Jobs() []Job                         { return append([]Job(nil), u.st.jobs...) }

func (u *UoW) HasCart(id uuid.UUID) bool {
	_, ok := u.st.carts[id]
	return ok
}

func (u *UoW) Booking(id uuid.UUID) *booking.Booking { return u.st.bookings[id] }

func (u *UoW) BookingCount() int { return len(u.st.bookings) }

func (u *UoW) Inbox(eventID string) (InboxRow, bool) {
	row, ok := u.st.inbox[eventID]
	return row, ok
}

func (u *UoW) PutInbox(eventID string, row InboxRow) { u.st.inbox[eventID] = row }

type tx struct{ u *UoW }

func (t *tx) Bookings() shared.BookingRepository           { return bookingRepo{t.u} }
func (t *tx) Carts() shared.CartRepository                 { return cartRepo{t.u} }
func (t *tx) Inventory() shared.InventoryLedger            { return ledger{t.u} }
func (t *tx) PaymentEvents() shared.PaymentEventRepository { return inboxRepo{t.u} }
func (t *tx) Notifications() shared.NotificationRepository { return notificationRepo{t.u} }
func (t *tx) Users() shared.UserRepository                 { return userRepo{t.u} }

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

type bookingRepo struct{ u *UoW }

func (r bookingRepo) Create(_ context.Context, b *booking.Booking) (bool, error) {
	for _, existing := range r.u.st.bookings {
		if existing.CartID() == b.CartID() {
			return false, nil
		}
	}
	r.u.st.bookings[b.ID()] = b
	return true, nil
}

func (r bookingRepo) FindByCartID(_ context.Context, cartID uuid.UUID) (*booking.Booking, error) {
	for _, b := range r.u.st.bookings {
		if b.CartID() == cartID {
			return b, nil
		}
	}
	return nil, notFound("booking not found")
}

func (r bookingRepo) LockByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, ok := r.u.st.bookings[id]
	if !ok {
		return nil, notFound("booking not found")
	}
	// hand out a copy so uncommitted changes do not leak
	cp := *b
	return &cp, nil
}

func (r bookingRepo) UpdateStatus(_ context.Context, b *booking.Booking) error {
	if _, ok := r.u.st.bookings[b.ID()]; !ok {
		return notFound("booking not found")
	}
	cp := *b
	r.u.st.bookings[b.ID()] = &cp
	return nil
}

type cartRepo struct{ u *UoW }

func (r cartRepo) FindByID(_ context.Context, id uuid.UUID) (*cart.Snapshot, error) {
	s, ok := r.u.st.carts[id]
	if !ok {
		return nil, notFound("cart not found")
	}
	return s, nil
}

func (r cartRepo) LockByID(ctx context.Context, id uuid.UUID) (*cart.Snapshot, error) {
	return r.FindByID(ctx, id)
}

func (r cartRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.u.st.carts, id)
	return nil
}

type ledger struct{ u *UoW }

func (l ledger) ApplyPurchase(_ context.Context, adjs []inventory.Adjustment) (inventory.Outcome, error) {
	if l.u.FailLedger {
		return inventory.Outcome{}, ErrInjected
	}
	norm, err := inventory.Normalize(adjs)
	if err != nil {
		return inventory.Outcome{}, err
	}

	out := inventory.Outcome{Lines: make([]inventory.LineResult, len(norm))}
	applied := true
	for i, a := range norm {
		line := inventory.LineResult{EventID: a.EventID, Requested: a.Quantity, Status: inventory.LineApplied}
		avail, ok := l.u.st.stock[a.EventID]
		switch {
		case !ok:
			line.Status = inventory.LineMissing
			applied = false
		case avail < a.Quantity:
			line.Status = inventory.LineInsufficient
			applied = false
		}
		out.Lines[i] = line
	}
	if applied {
		for _, a := range norm {
			l.u.st.stock[a.EventID] -= a.Quantity
		}
	}
	return out, nil
}

type inboxRepo struct{ u *UoW }

func (r inboxRepo) Claim(_ context.Context, evt payment.CheckoutCompleted, _ time.Time) (bool, error) {
	row, ok := r.u.st.inbox[evt.EventID]
	if ok && row.Status != payment.InboxFailed {
		return false, nil
	}
	row.Status = payment.InboxReceived
	row.Attempts++
	r.u.st.inbox[evt.EventID] = row
	return true, nil
}

func (r inboxRepo) Complete(_ context.Context, eventID string, status payment.InboxStatus, bookingID *uuid.UUID, _ time.Time) error {
	row := r.u.st.inbox[eventID]
	row.Status = status
	row.BookingID = bookingID
	row.LastError = ""
	r.u.st.inbox[eventID] = row
	return nil
}

func (r inboxRepo) RecordFailure(_ context.Context, evt payment.CheckoutCompleted, reason string, _ time.Time) error {
	row, ok := r.u.st.inbox[evt.EventID]
	if ok {
		switch row.Status {
		case payment.InboxProcessed, payment.InboxDuplicate, payment.InboxOrphaned:
			return nil
		}
	}
	row.Status = payment.InboxFailed
	row.LastError = reason
	r.u.st.inbox[evt.EventID] = row
	return nil
}

type notificationRepo struct{ u *UoW }

func (r notificationRepo) CreateJob(_ context.Context, kind, topic string, payload []byte, _ time.Time) error {
	if r.u.FailNotifications {
		return ErrInjected
	}
	r.u.st.jobs = append(r.u.st.jobs, Job{Kind: kind, Topic: topic, Payload: payload})
	return nil
}

type userRepo struct{ u *UoW }

func (r userRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	usr, ok := r.u.st.users[id]
	if !ok {
		return nil, notFound("user not found")
	}
	return usr, nil
}

func (r userRepo) FindByEmail(_ context.Context, email user.Email) (*user.User, error) {
	for _, usr := range r.u.st.users {
		if usr.Email() == email {
			return usr, nil
		}
	}
	return nil, notFound("user not found")
}
