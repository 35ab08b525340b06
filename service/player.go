package service

import (
	"errors"
	"sort"

	"github.com/ciby9833/xspace-sub002/model"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

// PlayerService owns per-order roster rows. Sequence numbers
// (player_order) are unique within one order; payment status is
// informational and may move freely inside its closed set.
type PlayerService struct {
	db    *gorm.DB
	scope *ScopeResolver
}

func NewPlayerService(db *gorm.DB) *PlayerService {
	return &PlayerService{db: db, scope: NewScopeResolver(db)}
}

func (s *PlayerService) resolvePlayer(playerID uint, actor model.Actor) (*model.OrderPlayer, error) {
	var player model.OrderPlayer
	if err := s.db.First(&player, playerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	// Touching a player always means touching its parent order.
	if _, err := s.scope.AuthorizeOrder(nil, actor, player.OrderID); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *PlayerService) sequenceTaken(tx *gorm.DB, orderID uint, seq int, excludeID uint) (bool, error) {
	if tx == nil {
		tx = s.db
	}
	q := tx.Model(&model.OrderPlayer{}).
		Where("order_id = ? AND player_order = ?", orderID, seq)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *PlayerService) nextSequence(orderID uint) (int, error) {
	var max int
	err := s.db.Model(&model.OrderPlayer{}).
		Where("order_id = ?", orderID).
		Select("COALESCE(MAX(player_order), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

func (s *PlayerService) Create(input model.CreatePlayerInput, actor model.Actor) (*model.OrderPlayer, error) {
	if err := s.scope.Authorize(actor, "player.edit"); err != nil {
		return nil, err
	}
	if _, err := s.scope.AuthorizeOrder(nil, actor, input.OrderID); err != nil {
		return nil, err
	}

	seq := input.PlayerOrder
	if seq == 0 {
		next, err := s.nextSequence(input.OrderID)
		if err != nil {
			return nil, err
		}
		seq = next
	} else {
		taken, err := s.sequenceTaken(nil, input.OrderID, seq, 0)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, &DuplicateSequenceError{Duplicates: []int{seq}}
		}
	}

	status := input.PaymentStatus
	if status == "" {
		status = model.PaymentPending
	}
	player := model.OrderPlayer{
		OrderID:        input.OrderID,
		PlayerOrder:    seq,
		Name:           input.Name,
		Phone:          input.Phone,
		Role:           input.Role,
		RolePrice:      input.RolePrice,
		DiscountAmount: input.DiscountAmount,
		FinalPrice:     clampPrice(input.RolePrice - input.DiscountAmount),
		PaymentStatus:  status,
		Notes:          input.Notes,
		CreatedBy:      actor.UserID,
		UpdatedBy:      actor.UserID,
	}
	if err := s.db.Create(&player).Error; err != nil {
		return nil, err
	}
	return &player, nil
}

// CreateBatch validates the whole batch before any row is written: the
// incoming sequence numbers must be unique among themselves and against
// the order's existing players. All rows insert in one transaction.
func (s *PlayerService) CreateBatch(input model.BatchCreatePlayersInput, actor model.Actor) ([]model.OrderPlayer, error) {
	if err := s.scope.Authorize(actor, "player.edit"); err != nil {
		return nil, err
	}
	if _, err := s.scope.AuthorizeOrder(nil, actor, input.OrderID); err != nil {
		return nil, err
	}

	seen := make(map[int]bool, len(input.Players))
	var dups []int
	for _, p := range input.Players {
		if seen[p.PlayerOrder] {
			dups = append(dups, p.PlayerOrder)
		}
		seen[p.PlayerOrder] = true
	}
	if len(dups) > 0 {
		sort.Ints(dups)
		return nil, &DuplicateSequenceError{Duplicates: dups}
	}

	incoming := make([]int, 0, len(seen))
	for seq := range seen {
		incoming = append(incoming, seq)
	}
	var taken []int
	if err := s.db.Model(&model.OrderPlayer{}).
		Where("order_id = ? AND player_order IN ?", input.OrderID, incoming).
		Pluck("player_order", &taken).Error; err != nil {
		return nil, err
	}
	if len(taken) > 0 {
		sort.Ints(taken)
		return nil, &DuplicateSequenceError{Duplicates: taken}
	}

	players := make([]model.OrderPlayer, 0, len(input.Players))
	for _, p := range input.Players {
		status := p.PaymentStatus
		if status == "" {
			status = model.PaymentPending
		}
		players = append(players, model.OrderPlayer{
			OrderID:        input.OrderID,
			PlayerOrder:    p.PlayerOrder,
			Name:           p.Name,
			Phone:          p.Phone,
			Role:           p.Role,
			RolePrice:      p.RolePrice,
			DiscountAmount: p.DiscountAmount,
			FinalPrice:     clampPrice(p.RolePrice - p.DiscountAmount),
			PaymentStatus:  status,
			Notes:          p.Notes,
			CreatedBy:      actor.UserID,
			UpdatedBy:      actor.UserID,
		})
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&players).Error
	})
	if err != nil {
		return nil, err
	}
	return players, nil
}

func (s *PlayerService) ListByOrder(orderID uint, actor model.Actor) ([]model.OrderPlayer, error) {
	if err := s.scope.Authorize(actor, "player.view"); err != nil {
		return nil, err
	}
	if _, err := s.scope.AuthorizeOrder(nil, actor, orderID); err != nil {
		return nil, err
	}
	var players []model.OrderPlayer
	if err := s.db.Where("order_id = ?", orderID).
		Order("player_order asc").
		Find(&players).Error; err != nil {
		return nil, err
	}
	return players, nil
}

func (s *PlayerService) Update(playerID uint, patch model.UpdatePlayerInput, actor model.Actor) (*model.OrderPlayer, error) {
	if err := s.scope.Authorize(actor, "player.edit"); err != nil {
		return nil, err
	}
	player, err := s.resolvePlayer(playerID, actor)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"updated_by": actor.UserID}
	if patch.PlayerOrder != nil && *patch.PlayerOrder != player.PlayerOrder {
		taken, err := s.sequenceTaken(nil, player.OrderID, *patch.PlayerOrder, player.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, &DuplicateSequenceError{Duplicates: []int{*patch.PlayerOrder}}
		}
		updates["player_order"] = *patch.PlayerOrder
	}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Phone != nil {
		updates["phone"] = *patch.Phone
	}
	if patch.Role != nil {
		updates["role"] = *patch.Role
	}
	if patch.PaymentStatus != nil {
		updates["payment_status"] = *patch.PaymentStatus
	}
	if patch.Notes != nil {
		updates["notes"] = *patch.Notes
	}
	if patch.RolePrice != nil || patch.DiscountAmount != nil {
		rolePrice := player.RolePrice
		discount := player.DiscountAmount
		if patch.RolePrice != nil {
			rolePrice = *patch.RolePrice
			updates["role_price"] = rolePrice
		}
		if patch.DiscountAmount != nil {
			discount = *patch.DiscountAmount
			updates["discount_amount"] = discount
		}
		updates["final_price"] = clampPrice(rolePrice - discount)
	}

	if err := s.db.Model(&model.OrderPlayer{}).Where("id = ?", player.ID).Updates(updates).Error; err != nil {
		return nil, err
	}

	var updated model.OrderPlayer
	if err := s.db.First(&updated, player.ID).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *PlayerService) UpdatePaymentStatus(playerID uint, status model.PaymentStatus, actor model.Actor) (*model.OrderPlayer, error) {
	if err := s.scope.Authorize(actor, "player.edit"); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, &ValidationError{Field: "paymentStatus", Message: "unknown payment status"}
	}
	player, err := s.resolvePlayer(playerID, actor)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(&model.OrderPlayer{}).Where("id = ?", player.ID).
		Updates(map[string]interface{}{"payment_status": status, "updated_by": actor.UserID}).Error; err != nil {
		return nil, err
	}
	player.PaymentStatus = status
	return player, nil
}

// BatchUpdatePaymentStatus authorizes every distinct parent order in the
// batch before anything is written; one denied order fails the whole call.
func (s *PlayerService) BatchUpdatePaymentStatus(ids []uint, status model.PaymentStatus, actor model.Actor) ([]uint, error) {
	if err := s.scope.Authorize(actor, "player.edit"); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, &ValidationError{Field: "paymentStatus", Message: "unknown payment status"}
	}

	seen := make(map[uint]bool, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	var players []model.OrderPlayer
	if err := s.db.Where("id IN ?", unique).Find(&players).Error; err != nil {
		return nil, err
	}
	if len(players) != len(unique) {
		return nil, ErrNotFound
	}

	orderIDs := make(map[uint]bool)
	for _, p := range players {
		orderIDs[p.OrderID] = true
	}
	for orderID := range orderIDs {
		if _, err := s.scope.AuthorizeOrder(nil, actor, orderID); err != nil {
			return nil, err
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&model.OrderPlayer{}).Where("id IN ?", unique).
			Updates(map[string]interface{}{"payment_status": status, "updated_by": actor.UserID}).Error
	})
	if err != nil {
		return nil, err
	}
	return unique, nil
}

// Delete removes the row outright. Players carry no business record of
// their own beyond the order, so there is no soft delete.
func (s *PlayerService) Delete(playerID uint, actor model.Actor) error {
	if err := s.scope.Authorize(actor, "player.edit"); err != nil {
		return err
	}
	player, err := s.resolvePlayer(playerID, actor)
	if err != nil {
		return err
	}
	return s.db.Delete(&model.OrderPlayer{}, player.ID).Error
}

// NextSequence suggests max(player_order)+1 for the order, 1 when the
// roster is empty. It suggests only; creation re-checks uniqueness.
func (s *PlayerService) NextSequence(orderID uint, actor model.Actor) (int, error) {
	if err := s.scope.Authorize(actor, "player.view"); err != nil {
		return 0, err
	}
	if _, err := s.scope.AuthorizeOrder(nil, actor, orderID); err != nil {
		return 0, err
	}
	return s.nextSequence(orderID)
}

// CopyToOrder duplicates the source roster into the target with payment
// status reset to pending and sequence numbers kept. Colliding sequence
// numbers in the target fail the copy up front with the colliding values;
// nothing is written on failure.
func (s *PlayerService) CopyToOrder(input model.CopyPlayersInput, actor model.Actor) ([]model.OrderPlayer, error) {
	if err := s.scope.Authorize(actor, "player.edit"); err != nil {
		return nil, err
	}
	if _, err := s.scope.AuthorizeOrder(nil, actor, input.SourceOrderID); err != nil {
		return nil, err
	}
	if _, err := s.scope.AuthorizeOrder(nil, actor, input.TargetOrderID); err != nil {
		return nil, err
	}
	if input.SourceOrderID == input.TargetOrderID {
		return nil, &ValidationError{Field: "targetOrderId", Message: "source and target must differ"}
	}

	var source []model.OrderPlayer
	if err := s.db.Where("order_id = ?", input.SourceOrderID).
		Order("player_order asc").
		Find(&source).Error; err != nil {
		return nil, err
	}
	if len(source) == 0 {
		return []model.OrderPlayer{}, nil
	}

	sequences := make([]int, 0, len(source))
	for _, p := range source {
		sequences = append(sequences, p.PlayerOrder)
	}
	var taken []int
	if err := s.db.Model(&model.OrderPlayer{}).
		Where("order_id = ? AND player_order IN ?", input.TargetOrderID, sequences).
		Pluck("player_order", &taken).Error; err != nil {
		return nil, err
	}
	if len(taken) > 0 {
		sort.Ints(taken)
		return nil, &DuplicateSequenceError{Duplicates: taken}
	}

	copies := make([]model.OrderPlayer, 0, len(source))
	for _, p := range source {
		var dup model.OrderPlayer
		if err := copier.Copy(&dup, &p); err != nil {
			return nil, err
		}
		dup.DTO = model.DTO{}
		dup.OrderID = input.TargetOrderID
		dup.PaymentStatus = model.PaymentPending
		dup.CreatedBy = actor.UserID
		dup.UpdatedBy = actor.UserID
		copies = append(copies, dup)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&copies).Error
	})
	if err != nil {
		return nil, err
	}
	return copies, nil
}

func clampPrice(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
