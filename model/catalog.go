package model

type Company struct {
	DTO
	Name         string `gorm:"size:100" json:"name"`
	ContactName  string `gorm:"size:64" json:"contactName"`
	ContactPhone string `gorm:"size:32" json:"contactPhone"`
	IsActive     bool   `gorm:"default:true" json:"isActive"`

	Stores []Store `gorm:"foreignKey:CompanyID" json:"stores,omitempty"`
}

type Store struct {
	DTO
	CompanyID uint   `gorm:"index" json:"companyId"`
	Name      string `gorm:"size:100" json:"name"`
	Address   string `gorm:"size:255" json:"address"`
	Phone     string `gorm:"size:32" json:"phone"`
	IsActive  bool   `gorm:"default:true" json:"isActive"`

	Company Company `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;foreignKey:CompanyID" json:"company,omitempty"`
	Rooms   []Room  `gorm:"foreignKey:StoreID" json:"rooms,omitempty"`
}

type Room struct {
	DTO
	StoreID  uint   `gorm:"index" json:"storeId"`
	Name     string `gorm:"size:100" json:"name"`
	Capacity int    `json:"capacity"`
	RoomType string `gorm:"size:20" json:"roomType"` // script, escape_room, mixed
	IsActive bool   `gorm:"default:true" json:"isActive"`

	Store Store `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;foreignKey:StoreID" json:"store,omitempty"`
}

// Script is the catalog read model the core consumes for display names and
// base prices. Full catalog CRUD lives elsewhere.
type Script struct {
	DTO
	Name         string  `gorm:"size:100" json:"name"`
	MinPlayers   int     `json:"minPlayers"`
	MaxPlayers   int     `json:"maxPlayers"`
	BasePrice    float64 `json:"basePrice"`
	DurationMins int     `json:"durationMins"`
	IsActive     bool    `gorm:"default:true" json:"isActive"`
}

// RolePricing is a row of the external pricing-rule catalog: an optional
// price override and a discount for a role on a day type. ScriptID nil
// means the rule applies to every script.
type RolePricing struct {
	DTO
	ScriptID       *uint    `gorm:"index" json:"scriptId,omitempty"`
	Role           string   `gorm:"size:64" json:"role"`
	DayType        DayType  `gorm:"size:10" json:"dayType"`
	Price          *float64 `json:"price,omitempty"`
	DiscountAmount float64  `json:"discountAmount"`
	IsActive       bool     `gorm:"default:true" json:"isActive"`
}
