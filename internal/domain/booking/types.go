package booking

import "errors"

var (
	ErrInvalidPaymentMethod   = errors.New("invalid payment method")
	ErrInvalidInventoryStatus = errors.New("invalid inventory status")
	ErrInvalidCashPolicy      = errors.New("invalid cash payment policy")
)

type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodCard PaymentMethod = "card"
)

func (m PaymentMethod) String() string { return string(m) }

func NewPaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(s); m {
	case PaymentMethodCash, PaymentMethodCard:
		return m, nil
	default:
		return "", ErrInvalidPaymentMethod
	}
}

// InventoryStatus records whether the sold units were actually taken from stock.
// A short booking was paid for but the ledger could not cover it.
type InventoryStatus string

const (
	InventoryAllocated InventoryStatus = "allocated"
	InventoryShort     InventoryStatus = "short"
)

func (s InventoryStatus) String() string { return string(s) }

func NewInventoryStatus(s string) (InventoryStatus, error) {
	switch st := InventoryStatus(s); st {
	case InventoryAllocated, InventoryShort:
		return st, nil
	default:
		return "", ErrInvalidInventoryStatus
	}
}

// CashPaymentPolicy decides whether a cash booking counts as paid at creation
// or only once staff confirm the collection.
type CashPaymentPolicy string

const (
	CashPaidOnDelivery CashPaymentPolicy = "on_delivery"
	CashPaidOnCreate   CashPaymentPolicy = "on_create"
)

func NewCashPaymentPolicy(s string) (CashPaymentPolicy, error) {
	switch p := CashPaymentPolicy(s); p {
	case CashPaidOnDelivery, CashPaidOnCreate:
		return p, nil
	default:
		return "", ErrInvalidCashPolicy
	}
}

func (p CashPaymentPolicy) PaidOnCreate() bool {
	return p == CashPaidOnCreate
}
