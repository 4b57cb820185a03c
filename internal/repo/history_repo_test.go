package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stationops/go-supply-backend/internal/domain"
)

func TestAppendHistory_SetsFields(t *testing.T) {
	db := newRepoDB(t, &domain.StockHistory{})

	start := time.Now().UTC().Add(-time.Minute)
	h, err := AppendHistory(db, "t1", 4000, domain.ChangeDecrease)
	if err != nil {
		t.Fatalf("AppendHistory: %v", err)
	}
	if h.ID == "" || h.ResourceTypeID != "t1" || h.Stock != 4000 || h.ChangeKind != domain.ChangeDecrease {
		t.Fatalf("unexpected fields: %+v", h)
	}
	if h.CreatedAt.Before(start) {
		t.Fatalf("CreatedAt seems unset: %v", h.CreatedAt)
	}
}

func TestAppendHistory_Error_NoTable(t *testing.T) {
	db := newRepoDB(t /* no migrations */)
	if _, err := AppendHistory(db, "t1", 1, domain.ChangeUpdate); err == nil {
		t.Fatalf("expected error without table")
	}
}

func TestListHistoryForType_NewestFirstAndLimit(t *testing.T) {
	db := newRepoDB(t, &domain.StockHistory{})

	base := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)
	rows := []domain.StockHistory{
		{ID: "h1", Stock: 10, ResourceTypeID: "t1", ChangeKind: domain.ChangeUpdate, CreatedAt: base},
		{ID: "h2", Stock: 20, ResourceTypeID: "t1", ChangeKind: domain.ChangeIncrease, CreatedAt: base.Add(time.Minute)},
		{ID: "h3", Stock: 15, ResourceTypeID: "t1", ChangeKind: domain.ChangeDecrease, CreatedAt: base.Add(2 * time.Minute)},
		{ID: "hx", Stock: 99, ResourceTypeID: "t2", ChangeKind: domain.ChangeSnapshot, CreatedAt: base.Add(3 * time.Minute)},
	}
	for _, h := range rows {
		if err := db.Create(&h).Error; err != nil {
			t.Fatalf("seed %s: %v", h.ID, err)
		}
	}

	list, err := ListHistoryForType(context.Background(), db, "t1", 0)
	if err != nil {
		t.Fatalf("ListHistoryForType: %v", err)
	}
	if len(list) != 3 || list[0].ID != "h3" || list[2].ID != "h1" {
		t.Fatalf("unexpected order/content: %#v", list)
	}

	limited, err := ListHistoryForType(context.Background(), db, "t1", 2)
	if err != nil || len(limited) != 2 {
		t.Fatalf("limit not applied: n=%d err=%v", len(limited), err)
	}
	if limited[0].ID != "h3" || limited[1].ID != "h2" {
		t.Fatalf("unexpected limited order: %#v", limited)
	}
}

func TestListHistoryForType_TiesBreakByInsertOrder(t *testing.T) {
	db := newRepoDB(t, &domain.StockHistory{})

	ts := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)
	for _, id := range []string{"a", "b", "c"} {
		h := domain.StockHistory{ID: id, Stock: 1, ResourceTypeID: "t1", ChangeKind: domain.ChangeUpdate, CreatedAt: ts}
		if err := db.Create(&h).Error; err != nil {
			t.Fatalf("seed %s: %v", id, err)
		}
	}

	list, err := ListHistoryForType(context.Background(), db, "t1", 0)
	if err != nil {
		t.Fatalf("ListHistoryForType: %v", err)
	}
	// Same timestamp: secondary key (id DESC) keeps the order deterministic.
	if list[0].ID != "c" || list[1].ID != "b" || list[2].ID != "a" {
		t.Fatalf("tie-break not deterministic: %#v", list)
	}
}

func TestListRecentHistory_WindowAcrossTypes(t *testing.T) {
	db := newRepoDB(t, &domain.StockHistory{})

	now := time.Now().UTC()
	old := domain.StockHistory{ID: "old", Stock: 1, ResourceTypeID: "t1", ChangeKind: domain.ChangeUpdate, CreatedAt: now.Add(-2 * time.Hour)}
	in1 := domain.StockHistory{ID: "in1", Stock: 2, ResourceTypeID: "t1", ChangeKind: domain.ChangeUpdate, CreatedAt: now.Add(-30 * time.Minute)}
	in2 := domain.StockHistory{ID: "in2", Stock: 3, ResourceTypeID: "t2", ChangeKind: domain.ChangeSnapshot, CreatedAt: now.Add(-10 * time.Minute)}
	for _, h := range []domain.StockHistory{old, in1, in2} {
		if err := db.Create(&h).Error; err != nil {
			t.Fatalf("seed %s: %v", h.ID, err)
		}
	}

	list, err := ListRecentHistory(context.Background(), db, now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("ListRecentHistory: %v", err)
	}
	if len(list) != 2 || list[0].ID != "in2" || list[1].ID != "in1" {
		t.Fatalf("unexpected recent window: %#v", list)
	}
}

func TestListHistorySince_OldestFirst(t *testing.T) {
	db := newRepoDB(t, &domain.StockHistory{})

	now := time.Now().UTC()
	rows := []domain.StockHistory{
		{ID: "h1", Stock: 100, ResourceTypeID: "t1", ChangeKind: domain.ChangeUpdate, CreatedAt: now.Add(-3 * time.Hour)},
		{ID: "h2", Stock: 200, ResourceTypeID: "t1", ChangeKind: domain.ChangeUpdate, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "h3", Stock: 150, ResourceTypeID: "t1", ChangeKind: domain.ChangeUpdate, CreatedAt: now.Add(-time.Hour)},
	}
	for _, h := range rows {
		if err := db.Create(&h).Error; err != nil {
			t.Fatalf("seed %s: %v", h.ID, err)
		}
	}

	list, err := ListHistorySince(context.Background(), db, "t1", now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("ListHistorySince: %v", err)
	}
	if len(list) != 3 || list[0].ID != "h1" || list[2].ID != "h3" {
		t.Fatalf("expected oldest-first order, got %#v", list)
	}
}

func TestPurgeHistoryOlderThan_StrictBoundary(t *testing.T) {
	db := newRepoDB(t, &domain.StockHistory{})

	cutoff := time.Date(2025, 1, 31, 3, 0, 0, 0, time.UTC)
	before := domain.StockHistory{ID: "before", Stock: 1, ResourceTypeID: "t1", ChangeKind: domain.ChangeUpdate, CreatedAt: cutoff.Add(-time.Second)}
	exact := domain.StockHistory{ID: "exact", Stock: 2, ResourceTypeID: "t1", ChangeKind: domain.ChangeUpdate, CreatedAt: cutoff}
	after := domain.StockHistory{ID: "after", Stock: 3, ResourceTypeID: "t1", ChangeKind: domain.ChangeUpdate, CreatedAt: cutoff.Add(time.Second)}
	for _, h := range []domain.StockHistory{before, exact, after} {
		if err := db.Create(&h).Error; err != nil {
			t.Fatalf("seed %s: %v", h.ID, err)
		}
	}

	n, err := PurgeHistoryOlderThan(context.Background(), db, cutoff)
	if err != nil {
		t.Fatalf("PurgeHistoryOlderThan: %v", err)
	}
	if n != 1 {
		t.Fatalf("deleted %d rows, want exactly 1 (strictly before cutoff)", n)
	}

	var remaining []domain.StockHistory
	if err := db.Find(&remaining).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(remaining) != 2 {
		t.Fatalf("expected 2 survivors, got %d", len(remaining))
	}
	for _, h := range remaining {
		if h.ID == "before" {
			t.Fatalf("row strictly before cutoff survived the purge")
		}
	}
}

func TestCountHistoryForType_Error_NoTable(t *testing.T) {
	db := newRepoDB(t /* no migrations */)
	if _, err := CountHistoryForType(context.Background(), db, "t1"); err == nil {
		t.Fatalf("expected error when table missing")
	}
}
