package model

// Status and type fields are typed internally and serialized as text only
// at the storage and wire boundaries.

type OrderType string

const (
	OrderTypeScript     OrderType = "script"
	OrderTypeEscapeRoom OrderType = "escape_room"
)

func (t OrderType) Valid() bool {
	return t == OrderTypeScript || t == OrderTypeEscapeRoom
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentPartial  PaymentStatus = "partial"
	PaymentRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentPartial, PaymentRefunded:
		return true
	}
	return false
}

// AccountLevel is the actor's position in the platform > company > store
// hierarchy.
type AccountLevel string

const (
	LevelPlatform AccountLevel = "platform"
	LevelCompany  AccountLevel = "company"
	LevelStore    AccountLevel = "store"
)

type DayType string

const (
	DayWeekday DayType = "weekday"
	DayWeekend DayType = "weekend"
)
