package model

import "time"

type Order struct {
	DTO
	PublicCode string `gorm:"size:24;uniqueIndex" json:"publicCode"`

	CompanyID uint  `gorm:"index" json:"companyId"`
	StoreID   uint  `gorm:"index" json:"storeId"`
	RoomID    uint  `gorm:"index:idx_room_slot" json:"roomId"`
	ScriptID  *uint `json:"scriptId,omitempty"`

	OrderType    OrderType `gorm:"size:20" json:"orderType"`
	OrderDate    time.Time `gorm:"index:idx_room_slot" json:"orderDate"`
	StartTime    time.Time `gorm:"index:idx_room_slot" json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	DurationMins int       `json:"durationMins"`

	CustomerName  string `gorm:"size:64" json:"customerName"`
	CustomerPhone string `gorm:"size:32" json:"customerPhone"`
	CustomerEmail string `gorm:"size:128" json:"customerEmail"`
	PlayerCount   int    `json:"playerCount"`

	HostID         *uint  `json:"hostId,omitempty"`
	SupportID      *uint  `json:"supportId,omitempty"`
	PICName        string `gorm:"size:64" json:"picName"`
	PaymentContact string `gorm:"size:64" json:"paymentContact"`
	BookingType    string `gorm:"size:20" json:"bookingType"` // walk_in, phone, online

	Status        OrderStatus   `gorm:"size:20;default:pending" json:"status"`
	PaymentStatus PaymentStatus `gorm:"size:20;default:pending" json:"paymentStatus"`

	TotalAmount      float64 `json:"totalAmount"`
	DiscountAmount   float64 `json:"discountAmount"`
	MemberDiscount   float64 `json:"memberDiscount"`
	ActivityDiscount float64 `json:"activityDiscount"`
	TaxAmount        float64 `json:"taxAmount"`
	PrepaidAmount    float64 `json:"prepaidAmount"`
	RemainingAmount  float64 `json:"remainingAmount"`
	RefundAmount     float64 `json:"refundAmount"`

	Notes    string `gorm:"size:500" json:"notes"`
	IsActive bool   `gorm:"default:true;index" json:"isActive"`

	CreatedBy uint `json:"createdBy"`
	UpdatedBy uint `json:"updatedBy"`

	Room    Room          `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;foreignKey:RoomID" json:"room,omitempty"`
	Script  *Script       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;foreignKey:ScriptID" json:"script,omitempty"`
	Images  []OrderImage  `gorm:"foreignKey:OrderID" json:"images"`
	Players []OrderPlayer `gorm:"foreignKey:OrderID" json:"players,omitempty"`
}

// OrderImage holds one stored image reference. The blob itself lives in the
// external image storage; only the returned URL and its position are kept.
type OrderImage struct {
	DTO
	OrderID   uint   `gorm:"index" json:"orderId"`
	URL       string `gorm:"size:500" json:"url"`
	SortOrder int    `json:"sortOrder"`
}

type OrderImageInput struct {
	URL       string `json:"url" validate:"required,max=500"`
	SortOrder int    `json:"sortOrder"`
}

type CreateOrderInput struct {
	StoreID  uint  `json:"storeId" validate:"required,gt=0"`
	RoomID   uint  `json:"roomId" validate:"required,gt=0"`
	ScriptID *uint `json:"scriptId" validate:"omitempty,gt=0"`

	OrderType OrderType `json:"orderType" validate:"required,oneof=script escape_room"`
	OrderDate string    `json:"orderDate" validate:"required,datetime=2006-01-02"`
	StartTime string    `json:"startTime" validate:"required"` // HH:MM
	EndTime   string    `json:"endTime" validate:"required"`

	CustomerName  string `json:"customerName" validate:"required,max=64"`
	CustomerPhone string `json:"customerPhone" validate:"omitempty,max=32"`
	CustomerEmail string `json:"customerEmail" validate:"omitempty,email,max=128"`
	PlayerCount   int    `json:"playerCount" validate:"required,gt=0"`

	HostID         *uint  `json:"hostId"`
	SupportID      *uint  `json:"supportId"`
	PICName        string `json:"picName"`
	PaymentContact string `json:"paymentContact"`
	BookingType    string `json:"bookingType" validate:"omitempty,oneof=walk_in phone online"`

	TotalAmount      float64 `json:"totalAmount" validate:"gte=0"`
	DiscountAmount   float64 `json:"discountAmount" validate:"gte=0"`
	MemberDiscount   float64 `json:"memberDiscount" validate:"gte=0"`
	ActivityDiscount float64 `json:"activityDiscount" validate:"gte=0"`
	TaxAmount        float64 `json:"taxAmount" validate:"gte=0"`
	PrepaidAmount    float64 `json:"prepaidAmount" validate:"gte=0"`

	Notes  string            `json:"notes" validate:"omitempty,max=500"`
	Images []OrderImageInput `json:"images" validate:"omitempty,dive"`
}

// UpdateOrderInput carries partial update semantics: nil fields are left
// untouched, a non-nil empty image list clears the images.
type UpdateOrderInput struct {
	RoomID    *uint   `json:"roomId" validate:"omitempty,gt=0"`
	ScriptID  *uint   `json:"scriptId" validate:"omitempty,gt=0"`
	OrderDate *string `json:"orderDate" validate:"omitempty,datetime=2006-01-02"`
	StartTime *string `json:"startTime"`
	EndTime   *string `json:"endTime"`

	CustomerName  *string `json:"customerName" validate:"omitempty,max=64"`
	CustomerPhone *string `json:"customerPhone" validate:"omitempty,max=32"`
	CustomerEmail *string `json:"customerEmail" validate:"omitempty,email,max=128"`
	PlayerCount   *int    `json:"playerCount" validate:"omitempty,gt=0"`

	HostID         *uint   `json:"hostId"`
	SupportID      *uint   `json:"supportId"`
	PICName        *string `json:"picName"`
	PaymentContact *string `json:"paymentContact"`
	BookingType    *string `json:"bookingType" validate:"omitempty,oneof=walk_in phone online"`

	Status        *OrderStatus   `json:"status" validate:"omitempty,oneof=pending confirmed completed cancelled"`
	PaymentStatus *PaymentStatus `json:"paymentStatus" validate:"omitempty,oneof=pending paid partial refunded"`

	TotalAmount      *float64 `json:"totalAmount" validate:"omitempty,gte=0"`
	DiscountAmount   *float64 `json:"discountAmount" validate:"omitempty,gte=0"`
	MemberDiscount   *float64 `json:"memberDiscount" validate:"omitempty,gte=0"`
	ActivityDiscount *float64 `json:"activityDiscount" validate:"omitempty,gte=0"`
	TaxAmount        *float64 `json:"taxAmount" validate:"omitempty,gte=0"`
	PrepaidAmount    *float64 `json:"prepaidAmount" validate:"omitempty,gte=0"`
	RefundAmount     *float64 `json:"refundAmount" validate:"omitempty,gte=0"`

	Notes  *string            `json:"notes" validate:"omitempty,max=500"`
	Images *[]OrderImageInput `json:"images" validate:"omitempty,dive"`
}

type FilterOrderInput struct {
	Pagination
	StoreID       uint           `query:"storeId" validate:"omitempty,gt=0"`
	RoomID        uint           `query:"roomId" validate:"omitempty,gt=0"`
	OrderType     *OrderType     `query:"orderType" validate:"omitempty,oneof=script escape_room"`
	Status        *OrderStatus   `query:"status" validate:"omitempty,oneof=pending confirmed completed cancelled"`
	PaymentStatus *PaymentStatus `query:"paymentStatus" validate:"omitempty,oneof=pending paid partial refunded"`
	StartDate     string         `query:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate       string         `query:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Customer      string         `query:"customer"`
}

type BatchOrderStatusInput struct {
	IDs    []uint      `json:"ids" validate:"required,min=1,dive,gt=0"`
	Status OrderStatus `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
}

type CancelOrderInput struct {
	RefundAmount float64 `json:"refundAmount" validate:"gte=0"`
	Reason       string  `json:"reason" validate:"omitempty,max=255"`
}

// RoomSlot is one occupied interval in the room occupancy view.
type RoomSlot struct {
	OrderID      uint        `json:"orderId"`
	PublicCode   string      `json:"publicCode"`
	StartTime    time.Time   `json:"startTime"`
	EndTime      time.Time   `json:"endTime"`
	OrderType    OrderType   `json:"orderType"`
	Status       OrderStatus `json:"status"`
	CustomerName string      `json:"customerName"`
	PlayerCount  int         `json:"playerCount"`
}
