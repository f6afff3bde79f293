package order

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	entity "shopfront.GO/model/entity"
	cartRepo "shopfront.GO/model/repository/cart"
	orderRepo "shopfront.GO/model/repository/order"
)

// PlaceInput is the checkout payload: the grouped cart lines plus customer
// and delivery details collected on the order form.
type PlaceInput struct {
	Items         []entity.OrderItem `json:"items" validate:"required,min=1,dive"`
	PaymentMethod string             `json:"payment_method"`
	DeliveryType  string             `json:"delivery_type"`
	DeliveryPrice float64            `json:"delivery_price"`
	FirstName     string             `json:"first_name" validate:"required"`
	LastName      string             `json:"last_name" validate:"required"`
	MiddleName    string             `json:"middle_name"`
	Phone         string             `json:"phone" validate:"required"`
	Email         string             `json:"email"`
}

// deliveryDaysRe pulls the day range out of labels like "5-7 дней" or
// "10–14 days". The second number is the upper bound used for the estimate.
// Labels with a single number ("7 дней") fall back to deliveryDayRe.
var (
	deliveryDaysRe = regexp.MustCompile(`(\d+)\D+(\d+)`)
	deliveryDayRe  = regexp.MustCompile(`\d+`)
)

// parseMaxDays returns the day estimate for one delivery label, 0 when the
// label carries no number.
func parseMaxDays(label string) int {
	if m := deliveryDaysRe.FindStringSubmatch(label); m != nil {
		if days, err := strconv.Atoi(m[2]); err == nil {
			return days
		}
	}
	if m := deliveryDayRe.FindString(label); m != "" {
		if days, err := strconv.Atoi(m); err == nil {
			return days
		}
	}
	return 0
}

// DeliveryDate estimates arrival as now plus the longest day count found
// across the items' delivery labels. Returns nil when no label parses.
func DeliveryDate(now time.Time, items []entity.OrderItem) *time.Time {
	maxDays := 0
	for _, it := range items {
		if days := parseMaxDays(it.DeliveryOption); days > maxDays {
			maxDays = days
		}
	}
	if maxDays == 0 {
		return nil
	}
	d := now.AddDate(0, 0, maxDays)
	return &d
}

// Total sums line prices times quantity plus the delivery charge.
func Total(items []entity.OrderItem, deliveryPrice float64) float64 {
	total := deliveryPrice
	for _, it := range items {
		qty := it.Qty
		if qty <= 0 {
			qty = 1
		}
		total += it.Price * float64(qty)
	}
	return total
}

// Place persists a new order for the user and empties their cart. The items
// snapshot is stored as JSON so later catalog edits never rewrite it.
func Place(db *gorm.DB, userID string, in *PlaceInput) (*entity.Order, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("order has no items")
	}
	itemsJSON, err := json.Marshal(in.Items)
	if err != nil {
		return nil, fmt.Errorf("encode items: %w", err)
	}

	o := &entity.Order{
		OrderID:       uuid.NewString(),
		UserID:        userID,
		Items:         datatypes.JSON(itemsJSON),
		Total:         Total(in.Items, in.DeliveryPrice),
		PaymentMethod: in.PaymentMethod,
		DeliveryType:  in.DeliveryType,
		DeliveryPrice: in.DeliveryPrice,
		DeliveryDate:  DeliveryDate(time.Now(), in.Items),
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		MiddleName:    in.MiddleName,
		Phone:         in.Phone,
		Email:         in.Email,
		Status:        entity.OrderStatusNew,
	}
	if err := orderRepo.NewOrderRepository(db).Create(o); err != nil {
		return nil, err
	}
	if err := cartRepo.NewCartRepository(db).Clear(userID); err != nil {
		return nil, err
	}
	return o, nil
}
