package service

import (
	"errors"
	"strings"
	"time"

	"github.com/ciby9833/xspace-sub002/model"
	"github.com/ciby9833/xspace-sub002/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderService owns the order lifecycle: create, partial update, soft
// delete and the scoped batch status update. Every write that can move an
// order's room/date/time runs the conflict check inside the same
// transaction as the write.
type OrderService struct {
	db        *gorm.DB
	scope     *ScopeResolver
	conflicts *ConflictChecker
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{
		db:        db,
		scope:     NewScopeResolver(db),
		conflicts: NewConflictChecker(db),
	}
}

func parseOrderDate(value string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "orderDate", Message: "must be YYYY-MM-DD"}
	}
	return d, nil
}

func parseSlot(field string, date time.Time, value string) (time.Time, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return time.Time{}, &ValidationError{Field: field, Message: "must be HH:MM"}
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}

func newPublicCode() string {
	return "XS-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

func (s *OrderService) loadRoomForStore(roomID, storeID uint) (*model.Room, error) {
	var room model.Room
	if err := s.db.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ValidationError{Field: "roomId", Message: "room does not exist"}
		}
		return nil, err
	}
	if !room.IsActive {
		return nil, &ValidationError{Field: "roomId", Message: "room is not active"}
	}
	if room.StoreID != storeID {
		return nil, &ValidationError{Field: "roomId", Message: "room does not belong to the store"}
	}
	return &room, nil
}

// authorizeRoom resolves the room and gates it through the actor's store
// scope. Availability reads go through here so one tenant never sees
// another tenant's rooms.
func (s *OrderService) authorizeRoom(actor model.Actor, roomID uint) (*model.Room, error) {
	var room model.Room
	if err := s.db.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var store model.Store
	if err := s.db.First(&store, room.StoreID).Error; err != nil {
		return nil, err
	}
	if err := s.scope.AuthorizeStore(actor, &store); err != nil {
		return nil, err
	}
	return &room, nil
}

// Occupancy returns the room occupancy view for actors whose scope covers
// the room's store.
func (s *OrderService) Occupancy(roomID uint, date time.Time, actor model.Actor) ([]model.RoomSlot, error) {
	if err := s.scope.Authorize(actor, "order.view"); err != nil {
		return nil, err
	}
	if _, err := s.authorizeRoom(actor, roomID); err != nil {
		return nil, err
	}
	return s.conflicts.Occupancy(roomID, date)
}

// CheckSlot answers an availability query for an in-scope room. Conflicts
// come back as the occupancy projection, not full order rows.
func (s *OrderService) CheckSlot(roomID uint, date, start, end time.Time, actor model.Actor) ([]model.RoomSlot, error) {
	if err := s.scope.Authorize(actor, "order.view"); err != nil {
		return nil, err
	}
	if _, err := s.authorizeRoom(actor, roomID); err != nil {
		return nil, err
	}
	conflicts, err := s.conflicts.FindOverlaps(nil, roomID, date, start, end, 0)
	if err != nil {
		return nil, err
	}
	return toRoomSlots(conflicts), nil
}

func (s *OrderService) Create(input model.CreateOrderInput, actor model.Actor) (*model.Order, error) {
	if err := s.scope.Authorize(actor, "order.edit"); err != nil {
		return nil, err
	}
	if !input.OrderType.Valid() {
		return nil, &ValidationError{Field: "orderType", Message: "unknown order type"}
	}
	if input.OrderType == model.OrderTypeScript && input.ScriptID == nil {
		return nil, &ValidationError{Field: "scriptId", Message: "required for script orders"}
	}

	var store model.Store
	if err := s.db.First(&store, input.StoreID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ValidationError{Field: "storeId", Message: "store does not exist"}
		}
		return nil, err
	}
	if err := s.scope.AuthorizeStore(actor, &store); err != nil {
		return nil, err
	}
	if _, err := s.loadRoomForStore(input.RoomID, input.StoreID); err != nil {
		return nil, err
	}
	if input.ScriptID != nil {
		var script model.Script
		if err := s.db.First(&script, *input.ScriptID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &ValidationError{Field: "scriptId", Message: "script does not exist"}
			}
			return nil, err
		}
	}

	date, err := parseOrderDate(input.OrderDate)
	if err != nil {
		return nil, err
	}
	start, err := parseSlot("startTime", date, input.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := parseSlot("endTime", date, input.EndTime)
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, &ValidationError{Field: "endTime", Message: "must be after startTime"}
	}

	order := model.Order{
		PublicCode:       newPublicCode(),
		CompanyID:        store.CompanyID,
		StoreID:          input.StoreID,
		RoomID:           input.RoomID,
		ScriptID:         input.ScriptID,
		OrderType:        input.OrderType,
		OrderDate:        date,
		StartTime:        start,
		EndTime:          end,
		DurationMins:     int(end.Sub(start).Minutes()),
		CustomerName:     input.CustomerName,
		CustomerPhone:    input.CustomerPhone,
		CustomerEmail:    input.CustomerEmail,
		PlayerCount:      input.PlayerCount,
		HostID:           input.HostID,
		SupportID:        input.SupportID,
		PICName:          input.PICName,
		PaymentContact:   input.PaymentContact,
		BookingType:      input.BookingType,
		Status:           model.OrderPending,
		PaymentStatus:    model.PaymentPending,
		TotalAmount:      input.TotalAmount,
		DiscountAmount:   input.DiscountAmount,
		MemberDiscount:   input.MemberDiscount,
		ActivityDiscount: input.ActivityDiscount,
		TaxAmount:        input.TaxAmount,
		PrepaidAmount:    input.PrepaidAmount,
		RemainingAmount:  input.TotalAmount - input.PrepaidAmount,
		Notes:            input.Notes,
		IsActive:         true,
		CreatedBy:        actor.UserID,
		UpdatedBy:        actor.UserID,
	}
	for _, img := range input.Images {
		order.Images = append(order.Images, model.OrderImage{URL: img.URL, SortOrder: img.SortOrder})
	}

	// Order and image rows commit together or not at all. The conflict
	// check runs on the same transaction so the gate and the insert see
	// one storage state.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		conflicts, err := s.conflicts.FindOverlaps(tx, order.RoomID, order.OrderDate, order.StartTime, order.EndTime, 0)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return &SlotConflictError{Conflicts: conflicts}
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderService) Get(orderID uint, actor model.Actor) (*model.Order, error) {
	if err := s.scope.Authorize(actor, "order.view"); err != nil {
		return nil, err
	}
	order, err := s.scope.AuthorizeOrder(nil, actor, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(order).Association("Players").Find(&order.Players); err != nil {
		return nil, err
	}
	return order, nil
}

// GetByCode resolves an order by its public code under the same scope
// rules as Get.
func (s *OrderService) GetByCode(code string, actor model.Actor) (*model.Order, error) {
	if err := s.scope.Authorize(actor, "order.view"); err != nil {
		return nil, err
	}
	var order model.Order
	if err := s.db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order asc")
	}).Preload("Players").Preload("Room").Where("public_code = ?", code).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.scope.checkOrderScope(actor, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderService) List(filter model.FilterOrderInput, actor model.Actor) (*model.ResponseCustom, error) {
	if err := s.scope.Authorize(actor, "order.view"); err != nil {
		return nil, err
	}

	q := s.scope.Filter(actor).Apply(s.db.Model(&model.Order{})).Where("is_active = ?", true)
	if filter.StoreID != 0 {
		q = q.Where("store_id = ?", filter.StoreID)
	}
	if filter.RoomID != 0 {
		q = q.Where("room_id = ?", filter.RoomID)
	}
	if filter.OrderType != nil {
		q = q.Where("order_type = ?", *filter.OrderType)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.PaymentStatus != nil {
		q = q.Where("payment_status = ?", *filter.PaymentStatus)
	}
	if filter.StartDate != "" {
		from, err := parseOrderDate(filter.StartDate)
		if err != nil {
			return nil, err
		}
		q = q.Where("order_date >= ?", from)
	}
	if filter.EndDate != "" {
		to, err := parseOrderDate(filter.EndDate)
		if err != nil {
			return nil, err
		}
		q = q.Where("order_date <= ?", to)
	}
	if filter.Customer != "" {
		q = q.Where("customer_name LIKE ? OR customer_phone LIKE ?", "%"+filter.Customer+"%", "%"+filter.Customer+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var orders []model.Order
	if err := utils.ApplyPagination(q, filter.Limit, filter.Page).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order asc") }).
		Order("order_date desc, start_time desc").
		Find(&orders).Error; err != nil {
		return nil, err
	}

	return &model.ResponseCustom{Rows: orders, Limit: filter.Limit, Page: filter.Page, TotalCount: total}, nil
}

func (s *OrderService) Update(orderID uint, patch model.UpdateOrderInput, actor model.Actor) (*model.Order, error) {
	if err := s.scope.Authorize(actor, "order.edit"); err != nil {
		return nil, err
	}
	order, err := s.scope.AuthorizeOrder(nil, actor, orderID)
	if err != nil {
		return nil, err
	}

	date := order.OrderDate
	if patch.OrderDate != nil {
		if date, err = parseOrderDate(*patch.OrderDate); err != nil {
			return nil, err
		}
	}
	// Re-anchor the existing window to the (possibly new) date, then apply
	// any new clock values on top.
	start := time.Date(date.Year(), date.Month(), date.Day(),
		order.StartTime.Hour(), order.StartTime.Minute(), 0, 0, date.Location())
	end := time.Date(date.Year(), date.Month(), date.Day(),
		order.EndTime.Hour(), order.EndTime.Minute(), 0, 0, date.Location())
	if patch.StartTime != nil {
		if start, err = parseSlot("startTime", date, *patch.StartTime); err != nil {
			return nil, err
		}
	}
	if patch.EndTime != nil {
		if end, err = parseSlot("endTime", date, *patch.EndTime); err != nil {
			return nil, err
		}
	}
	if !end.After(start) {
		return nil, &ValidationError{Field: "endTime", Message: "must be after startTime"}
	}

	roomID := order.RoomID
	if patch.RoomID != nil && *patch.RoomID != order.RoomID {
		if _, err := s.loadRoomForStore(*patch.RoomID, order.StoreID); err != nil {
			return nil, err
		}
		roomID = *patch.RoomID
	}

	slotChanged := roomID != order.RoomID ||
		!date.Equal(order.OrderDate) ||
		!start.Equal(order.StartTime) ||
		!end.Equal(order.EndTime)

	updates := map[string]interface{}{"updated_by": actor.UserID}
	if slotChanged {
		updates["room_id"] = roomID
		updates["order_date"] = date
		updates["start_time"] = start
		updates["end_time"] = end
		updates["duration_mins"] = int(end.Sub(start).Minutes())
	}
	if patch.ScriptID != nil {
		updates["script_id"] = *patch.ScriptID
	}
	if patch.CustomerName != nil {
		updates["customer_name"] = *patch.CustomerName
	}
	if patch.CustomerPhone != nil {
		updates["customer_phone"] = *patch.CustomerPhone
	}
	if patch.CustomerEmail != nil {
		updates["customer_email"] = *patch.CustomerEmail
	}
	if patch.PlayerCount != nil {
		updates["player_count"] = *patch.PlayerCount
	}
	if patch.HostID != nil {
		updates["host_id"] = *patch.HostID
	}
	if patch.SupportID != nil {
		updates["support_id"] = *patch.SupportID
	}
	if patch.PICName != nil {
		updates["pic_name"] = *patch.PICName
	}
	if patch.PaymentContact != nil {
		updates["payment_contact"] = *patch.PaymentContact
	}
	if patch.BookingType != nil {
		updates["booking_type"] = *patch.BookingType
	}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if patch.PaymentStatus != nil {
		updates["payment_status"] = *patch.PaymentStatus
	}
	if patch.DiscountAmount != nil {
		updates["discount_amount"] = *patch.DiscountAmount
	}
	if patch.MemberDiscount != nil {
		updates["member_discount"] = *patch.MemberDiscount
	}
	if patch.ActivityDiscount != nil {
		updates["activity_discount"] = *patch.ActivityDiscount
	}
	if patch.TaxAmount != nil {
		updates["tax_amount"] = *patch.TaxAmount
	}
	if patch.RefundAmount != nil {
		updates["refund_amount"] = *patch.RefundAmount
	}
	if patch.Notes != nil {
		updates["notes"] = *patch.Notes
	}
	if patch.TotalAmount != nil || patch.PrepaidAmount != nil {
		total := order.TotalAmount
		prepaid := order.PrepaidAmount
		if patch.TotalAmount != nil {
			total = *patch.TotalAmount
			updates["total_amount"] = total
		}
		if patch.PrepaidAmount != nil {
			prepaid = *patch.PrepaidAmount
			updates["prepaid_amount"] = prepaid
		}
		updates["remaining_amount"] = total - prepaid
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if slotChanged {
			conflicts, err := s.conflicts.FindOverlaps(tx, roomID, date, start, end, order.ID)
			if err != nil {
				return err
			}
			if len(conflicts) > 0 {
				return &SlotConflictError{Conflicts: conflicts}
			}
		}
		if err := tx.Model(&model.Order{}).Where("id = ?", order.ID).Updates(updates).Error; err != nil {
			return err
		}
		if patch.Images != nil {
			if err := tx.Where("order_id = ?", order.ID).Delete(&model.OrderImage{}).Error; err != nil {
				return err
			}
			for _, img := range *patch.Images {
				row := model.OrderImage{OrderID: order.ID, URL: img.URL, SortOrder: img.SortOrder}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.scope.AuthorizeOrder(nil, actor, order.ID)
}

// SoftDelete flips the active flag. The roster and images stay in place
// for audit history; the slot is released because inactive orders are
// invisible to the conflict checker.
func (s *OrderService) SoftDelete(orderID uint, actor model.Actor) error {
	if err := s.scope.Authorize(actor, "order.delete"); err != nil {
		return err
	}
	order, err := s.scope.AuthorizeOrder(nil, actor, orderID)
	if err != nil {
		return err
	}
	return s.db.Model(&model.Order{}).Where("id = ?", order.ID).
		Updates(map[string]interface{}{"is_active": false, "updated_by": actor.UserID}).Error
}

// BatchUpdateStatus updates only the rows inside the actor's scope and
// reports exactly which ids changed. Out-of-scope ids are skipped, not an
// error: failing the whole batch would leak existence across tenants.
func (s *OrderService) BatchUpdateStatus(ids []uint, status model.OrderStatus, actor model.Actor) ([]uint, error) {
	if err := s.scope.Authorize(actor, "order.edit"); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, &ValidationError{Field: "status", Message: "unknown status"}
	}

	filter := s.scope.Filter(actor)
	var updated []uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		q := filter.Apply(tx.Model(&model.Order{})).
			Where("id IN ? AND is_active = ?", ids, true)
		if err := q.Pluck("id", &updated).Error; err != nil {
			return err
		}
		if len(updated) == 0 {
			return nil
		}
		return tx.Model(&model.Order{}).Where("id IN ?", updated).
			Updates(map[string]interface{}{"status": status, "updated_by": actor.UserID}).Error
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Cancel marks the order cancelled and records the refund. The room slot
// frees up immediately since cancelled orders never count as conflicts.
func (s *OrderService) Cancel(orderID uint, input model.CancelOrderInput, actor model.Actor) (*model.Order, error) {
	if err := s.scope.Authorize(actor, "order.edit"); err != nil {
		return nil, err
	}
	order, err := s.scope.AuthorizeOrder(nil, actor, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == model.OrderCancelled {
		return nil, &ValidationError{Field: "status", Message: "order is already cancelled"}
	}

	updates := map[string]interface{}{
		"status":        model.OrderCancelled,
		"refund_amount": input.RefundAmount,
		"updated_by":    actor.UserID,
	}
	if input.RefundAmount > 0 {
		updates["payment_status"] = model.PaymentRefunded
	}
	if err := s.db.Model(&model.Order{}).Where("id = ?", order.ID).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.scope.AuthorizeOrder(nil, actor, order.ID)
}
