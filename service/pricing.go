package service

import (
	"time"

	"github.com/ciby9833/xspace-sub002/model"

	"gorm.io/gorm"
)

// PricingService refreshes player-level amounts from the order's base
// price and the role-pricing catalog. Pure per player; no interaction with
// the conflict checker.
type PricingService struct {
	db    *gorm.DB
	scope *ScopeResolver
}

func NewPricingService(db *gorm.DB) *PricingService {
	return &PricingService{db: db, scope: NewScopeResolver(db)}
}

func DayTypeOf(date time.Time) model.DayType {
	if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
		return model.DayWeekend
	}
	return model.DayWeekday
}

// basePrice prefers the script's catalog price, falling back to an even
// split of the order total across players.
func (s *PricingService) basePrice(order *model.Order) (float64, error) {
	if order.ScriptID != nil {
		var script model.Script
		if err := s.db.First(&script, *order.ScriptID).Error; err == nil {
			return script.BasePrice, nil
		}
	}
	if order.PlayerCount > 0 {
		return order.TotalAmount / float64(order.PlayerCount), nil
	}
	return 0, nil
}

// ruleFor picks the most specific active rule for a role on a day type:
// script-specific first, then the generic rule with no script binding.
func (s *PricingService) ruleFor(scriptID *uint, role string, dayType model.DayType) (*model.RolePricing, error) {
	if role == "" {
		return nil, nil
	}
	var rules []model.RolePricing
	q := s.db.Where("role = ? AND day_type = ? AND is_active = ?", role, dayType, true)
	if scriptID != nil {
		q = q.Where("script_id = ? OR script_id IS NULL", *scriptID)
	} else {
		q = q.Where("script_id IS NULL")
	}
	if err := q.Find(&rules).Error; err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return nil, nil
	}
	for i := range rules {
		if rules[i].ScriptID != nil {
			return &rules[i], nil
		}
	}
	return &rules[0], nil
}

// Recalculate derives role_price, discount_amount and final_price for
// every player on the order. Final price never goes below zero.
func (s *PricingService) Recalculate(orderID uint, actor model.Actor) ([]model.OrderPlayer, error) {
	if err := s.scope.Authorize(actor, "player.edit"); err != nil {
		return nil, err
	}
	order, err := s.scope.AuthorizeOrder(nil, actor, orderID)
	if err != nil {
		return nil, err
	}

	var players []model.OrderPlayer
	if err := s.db.Where("order_id = ?", order.ID).
		Order("player_order asc").
		Find(&players).Error; err != nil {
		return nil, err
	}
	if len(players) == 0 {
		return players, nil
	}

	base, err := s.basePrice(order)
	if err != nil {
		return nil, err
	}
	dayType := DayTypeOf(order.OrderDate)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for i := range players {
			p := &players[i]
			rolePrice := base
			discount := 0.0

			rule, err := s.ruleFor(order.ScriptID, p.Role, dayType)
			if err != nil {
				return err
			}
			if rule != nil {
				if rule.Price != nil {
					rolePrice = *rule.Price
				}
				discount = rule.DiscountAmount
			}

			p.RolePrice = rolePrice
			p.DiscountAmount = discount
			p.FinalPrice = clampPrice(rolePrice - discount)
			p.UpdatedBy = actor.UserID

			if err := tx.Model(&model.OrderPlayer{}).Where("id = ?", p.ID).
				Updates(map[string]interface{}{
					"role_price":      p.RolePrice,
					"discount_amount": p.DiscountAmount,
					"final_price":     p.FinalPrice,
					"updated_by":      actor.UserID,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return players, nil
}
