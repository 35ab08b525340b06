package service

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ciby9833/xspace-sub002/model"
	"github.com/ciby9833/xspace-sub002/utils"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBCounter atomic.Int64

func setupTestDB(t *testing.T) *gorm.DB {
	// A plain ":memory:" DSN gives every pooled connection its own empty
	// database; use a named shared in-memory database so queries issued
	// outside an open transaction still see the migrated schema.
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.Company{},
		&model.Store{},
		&model.Room{},
		&model.Script{},
		&model.RolePricing{},
		&model.Order{},
		&model.OrderImage{},
		&model.OrderPlayer{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// venue is the shared fixture: one company with one store and two rooms,
// plus a second company for cross-tenant cases.
type venue struct {
	Company      model.Company
	Store        model.Store
	RoomA        model.Room
	RoomB        model.Room
	Script       model.Script
	OtherCompany model.Company
	OtherStore   model.Store
	OtherRoom    model.Room
}

func seedVenue(t *testing.T, db *gorm.DB) venue {
	v := venue{
		Company: model.Company{Name: "Xspace Jakarta", IsActive: true},
	}
	if err := db.Create(&v.Company).Error; err != nil {
		t.Fatalf("seed company: %v", err)
	}
	v.Store = model.Store{CompanyID: v.Company.ID, Name: "PIK Store", IsActive: true}
	if err := db.Create(&v.Store).Error; err != nil {
		t.Fatalf("seed store: %v", err)
	}
	v.RoomA = model.Room{StoreID: v.Store.ID, Name: "Room A", Capacity: 8, RoomType: "script", IsActive: true}
	v.RoomB = model.Room{StoreID: v.Store.ID, Name: "Room B", Capacity: 10, RoomType: "mixed", IsActive: true}
	if err := db.Create(&v.RoomA).Error; err != nil {
		t.Fatalf("seed room: %v", err)
	}
	if err := db.Create(&v.RoomB).Error; err != nil {
		t.Fatalf("seed room: %v", err)
	}
	v.Script = model.Script{Name: "Night at the Manor", MinPlayers: 4, MaxPlayers: 8, BasePrice: 150, DurationMins: 180, IsActive: true}
	if err := db.Create(&v.Script).Error; err != nil {
		t.Fatalf("seed script: %v", err)
	}

	v.OtherCompany = model.Company{Name: "Rival Entertainment", IsActive: true}
	if err := db.Create(&v.OtherCompany).Error; err != nil {
		t.Fatalf("seed company: %v", err)
	}
	v.OtherStore = model.Store{CompanyID: v.OtherCompany.ID, Name: "Rival Store", IsActive: true}
	if err := db.Create(&v.OtherStore).Error; err != nil {
		t.Fatalf("seed store: %v", err)
	}
	v.OtherRoom = model.Room{StoreID: v.OtherStore.ID, Name: "Rival Room", Capacity: 6, RoomType: "escape_room", IsActive: true}
	if err := db.Create(&v.OtherRoom).Error; err != nil {
		t.Fatalf("seed room: %v", err)
	}
	return v
}

func platformActor() model.Actor {
	return model.Actor{UserID: 1, Name: "Platform Admin", Level: model.LevelPlatform}
}

func companyActor(companyID uint, perms ...string) model.Actor {
	return model.Actor{UserID: 2, Name: "Company Manager", Level: model.LevelCompany, CompanyID: &companyID, Permissions: perms}
}

func storeActor(companyID uint, storeIDs []uint, perms ...string) model.Actor {
	return model.Actor{UserID: 3, Name: "Store Staff", Level: model.LevelStore, CompanyID: &companyID, StoreIDs: storeIDs, Permissions: perms}
}

func mustDate(t *testing.T, value string) time.Time {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("bad date fixture %q: %v", value, err)
	}
	return d
}

func mustSlot(t *testing.T, date time.Time, clock string) time.Time {
	c, err := time.Parse("15:04", clock)
	if err != nil {
		t.Fatalf("bad clock fixture %q: %v", clock, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour(), c.Minute(), 0, 0, date.Location())
}

// seedOrder inserts an order row directly, bypassing the service, for
// tests that exercise queries rather than the create path.
func seedOrder(t *testing.T, db *gorm.DB, v venue, roomID uint, date, start, end string, mutate ...func(*model.Order)) model.Order {
	d := mustDate(t, date)
	order := model.Order{
		PublicCode:   newPublicCode(),
		CompanyID:    v.Company.ID,
		StoreID:      v.Store.ID,
		RoomID:       roomID,
		OrderType:    model.OrderTypeEscapeRoom,
		OrderDate:    d,
		StartTime:    mustSlot(t, d, start),
		EndTime:      mustSlot(t, d, end),
		CustomerName: "Walk-in Customer",
		PlayerCount:  4,
		Status:       model.OrderConfirmed,
		IsActive:     true,
	}
	for _, m := range mutate {
		m(&order)
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return order
}

func baseCreateInput(v venue) model.CreateOrderInput {
	return model.CreateOrderInput{
		StoreID:      v.Store.ID,
		RoomID:       v.RoomA.ID,
		ScriptID:     utils.Ptr(v.Script.ID),
		OrderType:    model.OrderTypeScript,
		OrderDate:    "2026-09-04",
		StartTime:    "19:00",
		EndTime:      "22:00",
		CustomerName: "Dina",
		PlayerCount:  6,
		TotalAmount:  900,
	}
}
