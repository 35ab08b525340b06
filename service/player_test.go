package service

import (
	"testing"

	"github.com/ciby9833/xspace-sub002/model"
	"github.com/ciby9833/xspace-sub002/utils"

	"github.com/stretchr/testify/assert"
)

func TestCreatePlayer(t *testing.T) {
	db := setupTestDB(t)
	v := seedVenue(t, db)
	svc := NewPlayerService(db)
	editor := storeActor(v.Company.ID, []uint{v.Store.ID}, "player.*")

	order := seedOrder(t, db, v, v.RoomA.ID, "2026-09-01", "10:00", "12:00")

	t.Run("zero sequence auto-assigns the next slot", func(t *testing.T) {
		first, err := svc.Create(model.CreatePlayerInput{OrderID: order.ID, Name: "Ana"}, editor)
		assert.NoError(t, err)
		assert.Equal(t, 1, first.PlayerOrder)
		assert.Equal(t, model.PaymentPending, first.PaymentStatus)

		second, err := svc.Create(model.CreatePlayerInput{OrderID: order.ID, Name: "Ben"}, editor)
		assert.NoError(t, err)
		assert.Equal(t, 2, second.PlayerOrder)
	})

	t.Run("explicit free sequence is kept", func(t *testing.T) {
		got, err := svc.Create(model.CreatePlayerInput{OrderID: order.ID, PlayerOrder: 7, Name: "Cleo"}, editor)
		assert.NoError(t, err)
		assert.Equal(t, 7, got.PlayerOrder)
	})

	t.Run("auto-assign continues from the highest", func(t *testing.T) {
		got, err := svc.Create(model.CreatePlayerInput{OrderID: order.ID, Name: "Dion"}, editor)
		assert.NoError(t, err)
		assert.Equal(t, 8, got.PlayerOrder)
	})

	t.Run("taken sequence is refused with the collision", func(t *testing.T) {
		_, err := svc.Create(model.CreatePlayerInput{OrderID: order.ID, PlayerOrder: 7, Name: "Eve"}, editor)
		var dsErr *DuplicateSequenceError
		if assert.ErrorAs(t, err, &dsErr) {
			assert.Equal(t, []int{7}, dsErr.Duplicates)
		}
	})

	t.Run("final price clamps at zero", func(t *testing.T) {
		got, err := svc.Create(model.CreatePlayerInput{
			OrderID: order.ID, Name: "Fay", RolePrice: 50, DiscountAmount: 80,
		}, editor)
		assert.NoError(t, err)
		assert.Equal(t, 0.0, got.FinalPrice)
	})

	t.Run("requires player.edit", func(t *testing.T) {
		viewer := storeActor(v.Company.ID, []uint{v.Store.ID}, "player.view")
		_, err := svc.Create(model.CreatePlayerInput{OrderID: order.ID, Name: "Gus"}, viewer)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("parent order outside scope is denied", func(t *testing.T) {
		foreign := seedOrder(t, db, v, v.OtherRoom.ID, "2026-09-01", "10:00", "12:00", func(o *model.Order) {
			o.CompanyID = v.OtherCompany.ID
			o.StoreID = v.OtherStore.ID
		})
		_, err := svc.Create(model.CreatePlayerInput{OrderID: foreign.ID, Name: "Hal"}, editor)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})
}

func TestCreatePlayersBatch(t *testing.T) {
	db := setupTestDB(t)
	v := seedVenue(t, db)
	svc := NewPlayerService(db)
	editor := storeActor(v.Company.ID, []uint{v.Store.ID}, "player.edit")

	order := seedOrder(t, db, v, v.RoomA.ID, "2026-09-01", "10:00", "12:00")

	t.Run("duplicate inside the batch fails before any write", func(t *testing.T) {
		_, err := svc.CreateBatch(model.BatchCreatePlayersInput{
			OrderID: order.ID,
			Players: []model.BatchPlayerItem{
				{PlayerOrder: 1, Name: "Ana"},
				{PlayerOrder: 2, Name: "Ben"},
				{PlayerOrder: 1, Name: "Cleo"},
			},
		}, editor)
		var dsErr *DuplicateSequenceError
		if assert.ErrorAs(t, err, &dsErr) {
			assert.Equal(t, []int{1}, dsErr.Duplicates)
		}

		var count int64
		db.Model(&model.OrderPlayer{}).Count(&count)
		assert.Equal(t, int64(0), count)
	})

	t.Run("whole batch lands together", func(t *testing.T) {
		players, err := svc.CreateBatch(model.BatchCreatePlayersInput{
			OrderID: order.ID,
			Players: []model.BatchPlayerItem{
				{PlayerOrder: 1, Name: "Ana", RolePrice: 150},
				{PlayerOrder: 2, Name: "Ben", RolePrice: 150, DiscountAmount: 20},
			},
		}, editor)
		assert.NoError(t, err)
		assert.Len(t, players, 2)
		assert.Equal(t, 130.0, players[1].FinalPrice)
	})

	t.Run("collision with existing roster lists the taken values", func(t *testing.T) {
		_, err := svc.CreateBatch(model.BatchCreatePlayersInput{
			OrderID: order.ID,
			Players: []model.BatchPlayerItem{
				{PlayerOrder: 2, Name: "Cleo"},
				{PlayerOrder: 3, Name: "Dion"},
			},
		}, editor)
		var dsErr *DuplicateSequenceError
		if assert.ErrorAs(t, err, &dsErr) {
			assert.Equal(t, []int{2}, dsErr.Duplicates)
		}

		var count int64
		db.Model(&model.OrderPlayer{}).Count(&count)
		assert.Equal(t, int64(2), count, "failed batch writes nothing")
	})
}

func TestUpdatePlayer(t *testing.T) {
	db := setupTestDB(t)
	v := seedVenue(t, db)
	svc := NewPlayerService(db)
	editor := storeActor(v.Company.ID, []uint{v.Store.ID}, "player.edit")

	order := seedOrder(t, db, v, v.RoomA.ID, "2026-09-01", "10:00", "12:00")
	ana, _ := svc.Create(model.CreatePlayerInput{OrderID: order.ID, Name: "Ana", RolePrice: 150}, editor)
	ben, _ := svc.Create(model.CreatePlayerInput{OrderID: order.ID, Name: "Ben"}, editor)

	t.Run("renumbering to a taken slot is refused", func(t *testing.T) {
		_, err := svc.Update(ben.ID, model.UpdatePlayerInput{PlayerOrder: utils.Ptr(1)}, editor)
		var dsErr *DuplicateSequenceError
		if assert.ErrorAs(t, err, &dsErr) {
			assert.Equal(t, []int{1}, dsErr.Duplicates)
		}
	})

	t.Run("keeping the own slot is a no-op, not a collision", func(t *testing.T) {
		got, err := svc.Update(ben.ID, model.UpdatePlayerInput{
			PlayerOrder: utils.Ptr(ben.PlayerOrder),
			Name:        utils.Ptr("Benjamin"),
		}, editor)
		assert.NoError(t, err)
		assert.Equal(t, "Benjamin", got.Name)
		assert.Equal(t, ben.PlayerOrder, got.PlayerOrder)
	})

	t.Run("price patch recomputes the final price", func(t *testing.T) {
		got, err := svc.Update(ana.ID, model.UpdatePlayerInput{DiscountAmount: utils.Ptr(200.0)}, editor)
		assert.NoError(t, err)
		assert.Equal(t, 0.0, got.FinalPrice, "discount above price clamps at zero")
	})

	t.Run("missing player is not found", func(t *testing.T) {
		_, err := svc.Update(99999, model.UpdatePlayerInput{Name: utils.Ptr("Ghost")}, editor)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPlayerPaymentStatus(t *testing.T) {
	db := setupTestDB(t)
	v := seedVenue(t, db)
	svc := NewPlayerService(db)
	editor := storeActor(v.Company.ID, []uint{v.Store.ID}, "player.edit")

	order := seedOrder(t, db, v, v.RoomA.ID, "2026-09-01", "10:00", "12:00")
	ana, _ := svc.Create(model.CreatePlayerInput{OrderID: order.ID, Name: "Ana"}, editor)

	t.Run("moves inside the closed set", func(t *testing.T) {
		got, err := svc.UpdatePaymentStatus(ana.ID, model.PaymentPaid, editor)
		assert.NoError(t, err)
		assert.Equal(t, model.PaymentPaid, got.PaymentStatus)
	})

	t.Run("unknown status is refused", func(t *testing.T) {
		_, err := svc.UpdatePaymentStatus(ana.ID, model.PaymentStatus("owed"), editor)
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
}

func TestBatchPlayerPaymentStatus(t *testing.T) {
	db := setupTestDB(t)
	v := seedVenue(t, db)
	svc := NewPlayerService(db)
	editor := companyActor(v.Company.ID, "player.edit")

	order := seedOrder(t, db, v, v.RoomA.ID, "2026-09-01", "10:00", "12:00")
	ana, _ := svc.Create(model.CreatePlayerInput{OrderID: order.ID, Name: "Ana"}, platformActor())
	ben, _ := svc.Create(model.CreatePlayerInput{OrderID: order.ID, Name: "Ben"}, platformActor())

	foreignOrder := seedOrder(t, db, v, v.OtherRoom.ID, "2026-09-01", "10:00", "12:00", func(o *model.Order) {
		o.CompanyID = v.OtherCompany.ID
		o.StoreID = v.OtherStore.ID
	})
	foreignPlayer, _ := svc.Create(model.CreatePlayerInput{OrderID: foreignOrder.ID, Name: "Rival"}, platformActor())

	t.Run("unknown id fails the whole batch", func(t *testing.T) {
		_, err := svc.BatchUpdatePaymentStatus([]uint{ana.ID, 99999}, model.PaymentPaid, editor)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("one foreign parent denies the whole batch", func(t *testing.T) {
		_, err := svc.BatchUpdatePaymentStatus([]uint{ana.ID, foreignPlayer.ID}, model.PaymentPaid, editor)
		assert.ErrorIs(t, err, ErrPermissionDenied)

		var unchanged model.OrderPlayer
		db.First(&unchanged, ana.ID)
		assert.Equal(t, model.PaymentPending, unchanged.PaymentStatus)
	})

	t.Run("in-scope batch updates everything", func(t *testing.T) {
		updated, err := svc.BatchUpdatePaymentStatus([]uint{ana.ID, ben.ID}, model.PaymentPartial, editor)
		assert.NoError(t, err)
		assert.ElementsMatch(t, []uint{ana.ID, ben.ID}, updated)

		var rows []model.OrderPlayer
		db.Where("id IN ?", updated).Find(&rows)
		for _, r := range rows {
			assert.Equal(t, model.PaymentPartial, r.PaymentStatus)
		}
	})

	t.Run("repeated ids in the batch are harmless", func(t *testing.T) {
		updated, err := svc.BatchUpdatePaymentStatus([]uint{ana.ID, ana.ID, ben.ID}, model.PaymentPaid, editor)
		assert.NoError(t, err)
		assert.ElementsMatch(t, []uint{ana.ID, ben.ID}, updated)

		var row model.OrderPlayer
		db.First(&row, ana.ID)
		assert.Equal(t, model.PaymentPaid, row.PaymentStatus)
	})
}

func TestDeletePlayerAndNextSequence(t *testing.T) {
	db := setupTestDB(t)
	v := seedVenue(t, db)
	svc := NewPlayerService(db)
	editor := storeActor(v.Company.ID, []uint{v.Store.ID}, "player.*")

	order := seedOrder(t, db, v, v.RoomA.ID, "2026-09-01", "10:00", "12:00")

	t.Run("empty roster starts at one", func(t *testing.T) {
		next, err := svc.NextSequence(order.ID, editor)
		assert.NoError(t, err)
		assert.Equal(t, 1, next)
	})

	t.Run("suggestion is max plus one, gaps are not refilled", func(t *testing.T) {
		for _, seq := range []int{1, 2, 4} {
			_, err := svc.Create(model.CreatePlayerInput{OrderID: order.ID, PlayerOrder: seq, Name: "P"}, editor)
			assert.NoError(t, err)
		}
		next, err := svc.NextSequence(order.ID, editor)
		assert.NoError(t, err)
		assert.Equal(t, 5, next)
	})

	t.Run("delete is hard and frees the sequence", func(t *testing.T) {
		players, _ := svc.ListByOrder(order.ID, editor)
		last := players[len(players)-1]

		err := svc.Delete(last.ID, editor)
		assert.NoError(t, err)

		var count int64
		db.Model(&model.OrderPlayer{}).Where("id = ?", last.ID).Count(&count)
		assert.Equal(t, int64(0), count)

		next, err := svc.NextSequence(order.ID, editor)
		assert.NoError(t, err)
		assert.Equal(t, 3, next)
	})
}

func TestRosterSurvivesOrderSoftDelete(t *testing.T) {
	db := setupTestDB(t)
	v := seedVenue(t, db)
	players := NewPlayerService(db)
	orders := NewOrderService(db)
	editor := storeActor(v.Company.ID, []uint{v.Store.ID}, "order.*", "player.*")

	order := seedOrder(t, db, v, v.RoomA.ID, "2026-09-01", "10:00", "12:00")
	ana, err := players.Create(model.CreatePlayerInput{OrderID: order.ID, Name: "Ana"}, editor)
	assert.NoError(t, err)

	assert.NoError(t, orders.SoftDelete(order.ID, editor))

	// The order left every listing and conflict check, but its roster is
	// still reachable by id for audit history.
	got, err := players.ListByOrder(order.ID, editor)
	assert.NoError(t, err)
	if assert.Len(t, got, 1) {
		assert.Equal(t, ana.ID, got[0].ID)
	}
}

func TestListPlayersByOrder(t *testing.T) {
	db := setupTestDB(t)
	v := seedVenue(t, db)
	svc := NewPlayerService(db)
	editor := storeActor(v.Company.ID, []uint{v.Store.ID}, "player.*")

	order := seedOrder(t, db, v, v.RoomA.ID, "2026-09-01", "10:00", "12:00")
	svc.Create(model.CreatePlayerInput{OrderID: order.ID, PlayerOrder: 3, Name: "Cleo"}, editor)
	svc.Create(model.CreatePlayerInput{OrderID: order.ID, PlayerOrder: 1, Name: "Ana"}, editor)

	players, err := svc.ListByOrder(order.ID, editor)
	assert.NoError(t, err)
	if assert.Len(t, players, 2) {
		assert.Equal(t, "Ana", players[0].Name)
		assert.Equal(t, "Cleo", players[1].Name)
	}
}

func TestCopyPlayers(t *testing.T) {
	db := setupTestDB(t)
	v := seedVenue(t, db)
	svc := NewPlayerService(db)
	editor := storeActor(v.Company.ID, []uint{v.Store.ID}, "player.edit")

	source := seedOrder(t, db, v, v.RoomA.ID, "2026-09-01", "10:00", "12:00")
	target := seedOrder(t, db, v, v.RoomA.ID, "2026-09-01", "14:00", "16:00")

	svc.Create(model.CreatePlayerInput{OrderID: source.ID, PlayerOrder: 1, Name: "Ana", Role: "detective", RolePrice: 150, PaymentStatus: model.PaymentPaid}, editor)
	svc.Create(model.CreatePlayerInput{OrderID: source.ID, PlayerOrder: 2, Name: "Ben", Role: "suspect"}, editor)

	t.Run("source equals target is refused", func(t *testing.T) {
		_, err := svc.CopyToOrder(model.CopyPlayersInput{SourceOrderID: source.ID, TargetOrderID: source.ID}, editor)
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("copy keeps sequence and role, resets payment", func(t *testing.T) {
		copies, err := svc.CopyToOrder(model.CopyPlayersInput{SourceOrderID: source.ID, TargetOrderID: target.ID}, editor)
		assert.NoError(t, err)
		if assert.Len(t, copies, 2) {
			assert.Equal(t, target.ID, copies[0].OrderID)
			assert.Equal(t, 1, copies[0].PlayerOrder)
			assert.Equal(t, "detective", copies[0].Role)
			assert.Equal(t, 150.0, copies[0].RolePrice)
			assert.Equal(t, model.PaymentPending, copies[0].PaymentStatus, "paid status does not travel")
			assert.NotZero(t, copies[0].ID)
			assert.NotEqual(t, copies[0].ID, copies[1].ID)
		}
	})

	t.Run("colliding target sequences fail the copy untouched", func(t *testing.T) {
		_, err := svc.CopyToOrder(model.CopyPlayersInput{SourceOrderID: source.ID, TargetOrderID: target.ID}, editor)
		var dsErr *DuplicateSequenceError
		if assert.ErrorAs(t, err, &dsErr) {
			assert.Equal(t, []int{1, 2}, dsErr.Duplicates)
		}

		var count int64
		db.Model(&model.OrderPlayer{}).Where("order_id = ?", target.ID).Count(&count)
		assert.Equal(t, int64(2), count)
	})

	t.Run("empty source copies nothing", func(t *testing.T) {
		empty := seedOrder(t, db, v, v.RoomB.ID, "2026-09-01", "10:00", "12:00")
		copies, err := svc.CopyToOrder(model.CopyPlayersInput{SourceOrderID: empty.ID, TargetOrderID: source.ID}, editor)
		assert.NoError(t, err)
		assert.Empty(t, copies)
	})
}
