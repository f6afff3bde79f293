package order

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	entity "shopfront.GO/model/entity"
)

func orderDB(t *testing.T) *gorm.DB {
	t.Helper()
	tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("order_test_%s_%d.db", t.Name(), time.Now().UnixNano()))
	t.Cleanup(func() { os.Remove(tmpFile) })
	db, err := gorm.Open(sqlite.Open(tmpFile), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&entity.Order{}, &entity.CartItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestDeliveryDate_UsesMaxUpperBound(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	items := []entity.OrderItem{
		{DeliveryOption: "5-7 дней"},
		{DeliveryOption: "10-14 дней"},
		{DeliveryOption: "2-3 дня"},
	}
	got := DeliveryDate(now, items)
	if got == nil {
		t.Fatal("DeliveryDate = nil")
	}
	want := now.AddDate(0, 0, 14)
	if !got.Equal(want) {
		t.Errorf("DeliveryDate = %v, want %v", got, want)
	}
}

func TestDeliveryDate_SingleNumberLabel(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	got := DeliveryDate(now, []entity.OrderItem{{DeliveryOption: "7 дней"}})
	if got == nil {
		t.Fatal("DeliveryDate = nil, want now+7d")
	}
	want := now.AddDate(0, 0, 7)
	if !got.Equal(want) {
		t.Errorf("DeliveryDate = %v, want %v", got, want)
	}

	// a lone number still loses to a larger range on another item
	got = DeliveryDate(now, []entity.OrderItem{
		{DeliveryOption: "7 дней"},
		{DeliveryOption: "10-14 дней"},
	})
	if got == nil || !got.Equal(now.AddDate(0, 0, 14)) {
		t.Errorf("DeliveryDate = %v, want now+14d", got)
	}
}

func TestDeliveryDate_NoParsableLabel(t *testing.T) {
	now := time.Now()
	if got := DeliveryDate(now, []entity.OrderItem{{DeliveryOption: "самовывоз"}}); got != nil {
		t.Errorf("DeliveryDate = %v, want nil", got)
	}
	if got := DeliveryDate(now, nil); got != nil {
		t.Errorf("DeliveryDate(empty) = %v, want nil", got)
	}
}

func TestTotal(t *testing.T) {
	items := []entity.OrderItem{
		{Price: 100, Qty: 2},
		{Price: 50, Qty: 0}, // zero qty counts as one
	}
	if got := Total(items, 10); got != 260 {
		t.Errorf("Total = %v, want 260", got)
	}
}

func TestPlace_CreatesOrderAndClearsCart(t *testing.T) {
	db := orderDB(t)
	db.Create(&entity.CartItem{UserID: "u1", VariantSKU: "V-1", Qty: 2})
	db.Create(&entity.CartItem{UserID: "u2", VariantSKU: "V-9", Qty: 1})

	in := &PlaceInput{
		Items: []entity.OrderItem{
			{VariantSKU: "V-1", Price: 1000, Qty: 2, DeliveryOption: "5-7 дней"},
		},
		DeliveryPrice: 300,
		FirstName:     "Иван",
		LastName:      "Петров",
		Phone:         "+79990000000",
	}
	o, err := Place(db, "u1", in)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if o.OrderID == "" {
		t.Error("OrderID is empty")
	}
	if o.Total != 2300 {
		t.Errorf("Total = %v, want 2300", o.Total)
	}
	if o.Status != entity.OrderStatusNew {
		t.Errorf("Status = %q, want new", o.Status)
	}
	if o.DeliveryDate == nil {
		t.Error("DeliveryDate not set")
	}

	// Items snapshot survives as JSON
	var stored entity.Order
	db.First(&stored)
	var items []entity.OrderItem
	if err := json.Unmarshal(stored.Items, &items); err != nil {
		t.Fatalf("unmarshal items: %v", err)
	}
	if len(items) != 1 || items[0].VariantSKU != "V-1" {
		t.Errorf("items = %v", items)
	}

	// u1's cart is gone, u2's untouched
	var count int64
	db.Model(&entity.CartItem{}).Where("user_id = ?", "u1").Count(&count)
	if count != 0 {
		t.Errorf("u1 cart rows = %d, want 0", count)
	}
	db.Model(&entity.CartItem{}).Where("user_id = ?", "u2").Count(&count)
	if count != 1 {
		t.Errorf("u2 cart rows = %d, want 1", count)
	}
}

func TestPlace_RejectsEmptyOrder(t *testing.T) {
	db := orderDB(t)
	if _, err := Place(db, "u1", &PlaceInput{}); err == nil {
		t.Fatal("want error for empty order")
	}
}
