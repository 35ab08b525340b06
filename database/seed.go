package database

import (
	"log"

	"github.com/ciby9833/xspace-sub002/model"
	"github.com/ciby9833/xspace-sub002/utils"

	"gorm.io/gorm"
)

// SeedData creates a minimal catalog so a fresh install is usable.
// FirstOrCreate keeps it idempotent across restarts.
func SeedData(db *gorm.DB) {
	var company model.Company
	if err := db.Where(model.Company{Name: "XSpace Entertainment"}).
		Attrs(model.Company{ContactName: "Operations", IsActive: true}).
		FirstOrCreate(&company).Error; err != nil {
		log.Printf("seed company: %v", err)
		return
	}

	var store model.Store
	if err := db.Where(model.Store{CompanyID: company.ID, Name: "Downtown Store"}).
		Attrs(model.Store{IsActive: true}).
		FirstOrCreate(&store).Error; err != nil {
		log.Printf("seed store: %v", err)
		return
	}

	rooms := []model.Room{
		{StoreID: store.ID, Name: "Room A", Capacity: 8, RoomType: "script", IsActive: true},
		{StoreID: store.ID, Name: "Room B", Capacity: 10, RoomType: "script", IsActive: true},
		{StoreID: store.ID, Name: "Escape 1", Capacity: 6, RoomType: "escape_room", IsActive: true},
	}
	for _, r := range rooms {
		if err := db.Where(model.Room{StoreID: r.StoreID, Name: r.Name}).
			Attrs(r).FirstOrCreate(&model.Room{}).Error; err != nil {
			log.Printf("seed room %s: %v", r.Name, err)
		}
	}

	scripts := []model.Script{
		{Name: "Night at the Manor", MinPlayers: 5, MaxPlayers: 8, BasePrice: 188, DurationMins: 240, IsActive: true},
		{Name: "The Lost Expedition", MinPlayers: 4, MaxPlayers: 6, BasePrice: 128, DurationMins: 180, IsActive: true},
	}
	for _, s := range scripts {
		if err := db.Where(model.Script{Name: s.Name}).
			Attrs(s).FirstOrCreate(&model.Script{}).Error; err != nil {
			log.Printf("seed script %s: %v", s.Name, err)
		}
	}

	pricing := []model.RolePricing{
		{Role: "detective", DayType: model.DayWeekend, Price: utils.Ptr(208.0), DiscountAmount: 0, IsActive: true},
		{Role: "detective", DayType: model.DayWeekday, DiscountAmount: 20, IsActive: true},
		{Role: "npc", DayType: model.DayWeekday, DiscountAmount: 50, IsActive: true},
	}
	for _, p := range pricing {
		if err := db.Where(model.RolePricing{Role: p.Role, DayType: p.DayType}).
			Attrs(p).FirstOrCreate(&model.RolePricing{}).Error; err != nil {
			log.Printf("seed role pricing %s/%s: %v", p.Role, p.DayType, err)
		}
	}

	log.Println("Seed data ready")
}
