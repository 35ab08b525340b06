package model

type OrderPlayer struct {
	DTO
	OrderID     uint   `gorm:"uniqueIndex:idx_order_player_seq" json:"orderId"`
	PlayerOrder int    `gorm:"uniqueIndex:idx_order_player_seq" json:"playerOrder"`
	Name        string `gorm:"size:64" json:"name"`
	Phone       string `gorm:"size:32" json:"phone"`
	Role        string `gorm:"size:64" json:"role"`

	RolePrice      float64 `json:"rolePrice"`
	DiscountAmount float64 `json:"discountAmount"`
	FinalPrice     float64 `json:"finalPrice"`

	PaymentStatus PaymentStatus `gorm:"size:20;default:pending" json:"paymentStatus"`
	Notes         string        `gorm:"size:255" json:"notes"`

	CreatedBy uint `json:"createdBy"`
	UpdatedBy uint `json:"updatedBy"`
}

type CreatePlayerInput struct {
	OrderID     uint   `json:"orderId" validate:"required,gt=0"`
	PlayerOrder int    `json:"playerOrder" validate:"gte=0"` // 0 = auto-assign next
	Name        string `json:"name" validate:"required,max=64"`
	Phone       string `json:"phone" validate:"omitempty,max=32"`
	Role        string `json:"role" validate:"omitempty,max=64"`

	RolePrice      float64 `json:"rolePrice" validate:"gte=0"`
	DiscountAmount float64 `json:"discountAmount" validate:"gte=0"`

	PaymentStatus PaymentStatus `json:"paymentStatus" validate:"omitempty,oneof=pending paid partial refunded"`
	Notes         string        `json:"notes" validate:"omitempty,max=255"`
}

type BatchPlayerItem struct {
	PlayerOrder int    `json:"playerOrder" validate:"required,gt=0"`
	Name        string `json:"name" validate:"required,max=64"`
	Phone       string `json:"phone" validate:"omitempty,max=32"`
	Role        string `json:"role" validate:"omitempty,max=64"`

	RolePrice      float64 `json:"rolePrice" validate:"gte=0"`
	DiscountAmount float64 `json:"discountAmount" validate:"gte=0"`

	PaymentStatus PaymentStatus `json:"paymentStatus" validate:"omitempty,oneof=pending paid partial refunded"`
	Notes         string        `json:"notes" validate:"omitempty,max=255"`
}

type BatchCreatePlayersInput struct {
	OrderID uint              `json:"orderId" validate:"required,gt=0"`
	Players []BatchPlayerItem `json:"players" validate:"required,min=1,dive"`
}

type UpdatePlayerInput struct {
	PlayerOrder *int    `json:"playerOrder" validate:"omitempty,gt=0"`
	Name        *string `json:"name" validate:"omitempty,max=64"`
	Phone       *string `json:"phone" validate:"omitempty,max=32"`
	Role        *string `json:"role" validate:"omitempty,max=64"`

	RolePrice      *float64 `json:"rolePrice" validate:"omitempty,gte=0"`
	DiscountAmount *float64 `json:"discountAmount" validate:"omitempty,gte=0"`

	PaymentStatus *PaymentStatus `json:"paymentStatus" validate:"omitempty,oneof=pending paid partial refunded"`
	Notes         *string        `json:"notes" validate:"omitempty,max=255"`
}

type PlayerPaymentStatusInput struct {
	PaymentStatus PaymentStatus `json:"paymentStatus" validate:"required,oneof=pending paid partial refunded"`
}

type BatchPlayerPaymentStatusInput struct {
	IDs           []uint        `json:"ids" validate:"required,min=1,dive,gt=0"`
	PaymentStatus PaymentStatus `json:"paymentStatus" validate:"required,oneof=pending paid partial refunded"`
}

type CopyPlayersInput struct {
	SourceOrderID uint `json:"sourceOrderId" validate:"required,gt=0"`
	TargetOrderID uint `json:"targetOrderId" validate:"required,gt=0"`
}
