package service

import (
	"time"

	"github.com/ciby9833/xspace-sub002/model"

	"gorm.io/gorm"
)

// StatsService aggregates payment and role figures over a date range,
// always narrowed to the actor's scope.
type StatsService struct {
	db    *gorm.DB
	scope *ScopeResolver
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db, scope: NewScopeResolver(db)}
}

type PaymentStatRow struct {
	PaymentStatus model.PaymentStatus `json:"paymentStatus"`
	PlayerCount   int64               `json:"playerCount"`
	Amount        float64             `json:"amount"`
}

type PaymentStats struct {
	Rows        []PaymentStatRow `json:"rows"`
	TotalAmount float64          `json:"totalAmount"`
	OrderCount  int64            `json:"orderCount"`
}

type RoleStatRow struct {
	Role        string  `json:"role"`
	PlayerCount int64   `json:"playerCount"`
	Revenue     float64 `json:"revenue"`
}

func (s *StatsService) scopedPlayers(actor model.Actor, from, to string) (*gorm.DB, time.Time, time.Time, error) {
	fromDate, err := parseOrderDate(from)
	if err != nil {
		return nil, time.Time{}, time.Time{}, err
	}
	toDate, err := parseOrderDate(to)
	if err != nil {
		return nil, time.Time{}, time.Time{}, err
	}
	if toDate.Before(fromDate) {
		return nil, time.Time{}, time.Time{}, &ValidationError{Field: "endDate", Message: "must not be before startDate"}
	}

	q := s.db.Model(&model.OrderPlayer{}).
		Joins("JOIN orders ON orders.id = order_players.order_id").
		Where("orders.is_active = ?", true).
		Where("orders.status <> ?", model.OrderCancelled).
		Where("orders.order_date BETWEEN ? AND ?", fromDate, toDate)

	filter := s.scope.Filter(actor)
	if filter.CompanyID != nil {
		q = q.Where("orders.company_id = ?", *filter.CompanyID)
	}
	if len(filter.StoreIDs) > 0 {
		q = q.Where("orders.store_id IN ?", filter.StoreIDs)
	}
	return q, fromDate, toDate, nil
}

func (s *StatsService) PaymentStats(from, to string, actor model.Actor) (*PaymentStats, error) {
	if err := s.scope.Authorize(actor, "statistic.view"); err != nil {
		return nil, err
	}

	q, fromDate, toDate, err := s.scopedPlayers(actor, from, to)
	if err != nil {
		return nil, err
	}

	var rows []PaymentStatRow
	if err := q.
		Select("order_players.payment_status AS payment_status, COUNT(*) AS player_count, COALESCE(SUM(order_players.final_price), 0) AS amount").
		Group("order_players.payment_status").
		Order("order_players.payment_status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	stats := &PaymentStats{Rows: rows}
	for _, r := range rows {
		stats.TotalAmount += r.Amount
	}

	oq := s.scope.Filter(actor).Apply(s.db.Model(&model.Order{})).
		Where("is_active = ?", true).
		Where("status <> ?", model.OrderCancelled).
		Where("order_date BETWEEN ? AND ?", fromDate, toDate)
	if err := oq.Count(&stats.OrderCount).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *StatsService) RoleStats(from, to string, actor model.Actor) ([]RoleStatRow, error) {
	if err := s.scope.Authorize(actor, "statistic.view"); err != nil {
		return nil, err
	}

	q, _, _, err := s.scopedPlayers(actor, from, to)
	if err != nil {
		return nil, err
	}

	var rows []RoleStatRow
	if err := q.
		Select("order_players.role AS role, COUNT(*) AS player_count, COALESCE(SUM(order_players.final_price), 0) AS revenue").
		Group("order_players.role").
		Order("revenue desc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
