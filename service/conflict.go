package service

import (
	"time"

	"github.com/ciby9833/xspace-sub002/model"

	"gorm.io/gorm"
)

// ConflictChecker guards a physical room against double booking. Intervals
// are half-open [start, end): a session ending exactly when another begins
// is not a conflict.
type ConflictChecker struct {
	db *gorm.DB
}

func NewConflictChecker(db *gorm.DB) *ConflictChecker {
	return &ConflictChecker{db: db}
}

// FindOverlaps returns the active, non-cancelled orders on the room and
// date whose window overlaps [start, end), ordered by start time.
// excludeID skips the order being edited so a no-op time change does not
// conflict with itself. Pass tx to run inside a caller's transaction.
func (cc *ConflictChecker) FindOverlaps(tx *gorm.DB, roomID uint, date, start, end time.Time, excludeID uint) ([]model.Order, error) {
	if tx == nil {
		tx = cc.db
	}
	q := tx.Model(&model.Order{}).
		Where("room_id = ? AND order_date = ?", roomID, date).
		Where("is_active = ?", true).
		Where("status <> ?", model.OrderCancelled).
		Where("start_time < ? AND end_time > ?", end, start)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var conflicts []model.Order
	if err := q.Order("start_time asc").Find(&conflicts).Error; err != nil {
		return nil, err
	}
	return conflicts, nil
}

func (cc *ConflictChecker) IsAvailable(roomID uint, date, start, end time.Time) (bool, error) {
	conflicts, err := cc.FindOverlaps(nil, roomID, date, start, end, 0)
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}

// Occupancy builds the room occupancy view for a room and date: the
// occupied intervals in start order with their booking metadata.
func (cc *ConflictChecker) Occupancy(roomID uint, date time.Time) ([]model.RoomSlot, error) {
	var orders []model.Order
	if err := cc.db.Model(&model.Order{}).
		Where("room_id = ? AND order_date = ?", roomID, date).
		Where("is_active = ?", true).
		Where("status <> ?", model.OrderCancelled).
		Order("start_time asc").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return toRoomSlots(orders), nil
}

func toRoomSlots(orders []model.Order) []model.RoomSlot {
	slots := make([]model.RoomSlot, 0, len(orders))
	for _, o := range orders {
		slots = append(slots, model.RoomSlot{
			OrderID:      o.ID,
			PublicCode:   o.PublicCode,
			StartTime:    o.StartTime,
			EndTime:      o.EndTime,
			OrderType:    o.OrderType,
			Status:       o.Status,
			CustomerName: o.CustomerName,
			PlayerCount:  o.PlayerCount,
		})
	}
	return slots
}
