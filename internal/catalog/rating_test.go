package catalog

import (
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/osama1403/multimartserver/models"
)

func TestRateProductRequiresDeliveredOrder(t *testing.T) {
	db := setupDB(t)
	p := createProduct(t, db, models.Product{Owner: "seller@x.com", Name: "Mug", Price: 5})

	// No order at all.
	err := RateProduct(db, "buyer@x.com", p.ID, 4)
	if !errors.Is(err, ErrNotEligible) {
		t.Fatalf("RateProduct() error = %v, want ErrNotEligible", err)
	}

	// An undelivered order is not enough.
	createOrder(t, db, "buyer@x.com", models.OrderStatusShipping,
		models.OrderItem{ProductID: p.ID, Count: 1})
	err = RateProduct(db, "buyer@x.com", p.ID, 4)
	if !errors.Is(err, ErrNotEligible) {
		t.Fatalf("RateProduct() error = %v, want ErrNotEligible", err)
	}

	// Someone else's delivered order does not qualify the caller.
	createOrder(t, db, "other@x.com", models.OrderStatusDelivered,
		models.OrderItem{ProductID: p.ID, Count: 1})
	err = RateProduct(db, "buyer@x.com", p.ID, 4)
	if !errors.Is(err, ErrNotEligible) {
		t.Fatalf("RateProduct() error = %v, want ErrNotEligible", err)
	}

	// No rating row may exist after the rejections.
	var ratings int64
	db.Model(&models.Rating{}).Count(&ratings)
	if ratings != 0 {
		t.Errorf("ratings = %d, want 0", ratings)
	}
	if got := productByID(t, db, p.ID); got.TotalRating != 0 || got.TotalRatingCount != 0 {
		t.Errorf("aggregates changed: %d/%d", got.TotalRating, got.TotalRatingCount)
	}
}

func TestRateProductFirstRating(t *testing.T) {
	db := setupDB(t)
	p := createProduct(t, db, models.Product{Owner: "seller@x.com", Name: "Mug", Price: 5})
	createOrder(t, db, "buyer@x.com", models.OrderStatusDelivered,
		models.OrderItem{ProductID: p.ID, Count: 1})

	if err := RateProduct(db, "buyer@x.com", p.ID, 4); err != nil {
		t.Fatalf("RateProduct() error = %v", err)
	}

	got := productByID(t, db, p.ID)
	if got.TotalRating != 4 || got.TotalRatingCount != 1 {
		t.Errorf("aggregates = %d/%d, want 4/1", got.TotalRating, got.TotalRatingCount)
	}

	var rating models.Rating
	if err := db.Where("user_email = ? AND product_id = ?", "buyer@x.com", p.ID).Take(&rating).Error; err != nil {
		t.Fatalf("rating row missing: %v", err)
	}
	if rating.Rating != 4 {
		t.Errorf("rating = %d, want 4", rating.Rating)
	}
}

func TestRateProductRepeatRatingAdjustsByDelta(t *testing.T) {
	db := setupDB(t)
	p := createProduct(t, db, models.Product{Owner: "seller@x.com", Name: "Mug", Price: 5})
	createOrder(t, db, "buyer@x.com", models.OrderStatusDelivered,
		models.OrderItem{ProductID: p.ID, Count: 1})

	if err := RateProduct(db, "buyer@x.com", p.ID, 5); err != nil {
		t.Fatalf("first RateProduct() error = %v", err)
	}
	if err := RateProduct(db, "buyer@x.com", p.ID, 2); err != nil {
		t.Fatalf("second RateProduct() error = %v", err)
	}

	got := productByID(t, db, p.ID)
	if got.TotalRating != 2 || got.TotalRatingCount != 1 {
		t.Errorf("aggregates = %d/%d, want 2/1", got.TotalRating, got.TotalRatingCount)
	}

	var ratings int64
	db.Model(&models.Rating{}).Where("user_email = ?", "buyer@x.com").Count(&ratings)
	if ratings != 1 {
		t.Errorf("rating rows = %d, want 1 (upsert, not duplicate)", ratings)
	}
}

func TestRateProductTwoBuyers(t *testing.T) {
	db := setupDB(t)
	p := createProduct(t, db, models.Product{Owner: "seller@x.com", Name: "Mug", Price: 5})
	createOrder(t, db, "b1@x.com", models.OrderStatusDelivered,
		models.OrderItem{ProductID: p.ID, Count: 1})
	createOrder(t, db, "b2@x.com", models.OrderStatusDelivered,
		models.OrderItem{ProductID: p.ID, Count: 1})

	if err := RateProduct(db, "b1@x.com", p.ID, 5); err != nil {
		t.Fatalf("RateProduct() error = %v", err)
	}
	if err := RateProduct(db, "b2@x.com", p.ID, 2); err != nil {
		t.Fatalf("RateProduct() error = %v", err)
	}

	got := productByID(t, db, p.ID)
	if got.TotalRating != 7 || got.TotalRatingCount != 2 {
		t.Errorf("aggregates = %d/%d, want 7/2", got.TotalRating, got.TotalRatingCount)
	}
}

func TestRateProductLosingFirstRatingRaceKeepsOneRow(t *testing.T) {
	db := setupDB(t)
	p := createProduct(t, db, models.Product{Owner: "seller@x.com", Name: "Mug", Price: 5})
	createOrder(t, db, "buyer@x.com", models.OrderStatusDelivered,
		models.OrderItem{ProductID: p.ID, Count: 1})

	// A rival first rating by the same buyer lands between the existence
	// check and the insert. The callback fires once, only for the ratings
	// insert, and applies the rival's full effect: its row plus its
	// aggregate increment.
	injected := false
	err := db.Callback().Create().Before("gorm:create").Register("rival_first_rating", func(tx *gorm.DB) {
		if injected || tx.Statement.Table != "ratings" {
			return
		}
		injected = true
		sess := tx.Session(&gorm.Session{NewDB: true})
		if err := sess.Exec(
			"INSERT INTO ratings (user_email, product_id, rating, date) VALUES (?, ?, ?, ?)",
			"buyer@x.com", p.ID, 5, time.Now()).Error; err != nil {
			t.Errorf("rival rating insert: %v", err)
		}
		if err := sess.Exec(
			"UPDATE products SET total_rating = total_rating + 5, total_rating_count = total_rating_count + 1 WHERE id = ?",
			p.ID).Error; err != nil {
			t.Errorf("rival aggregate update: %v", err)
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	if err := RateProduct(db, "buyer@x.com", p.ID, 3); err != nil {
		t.Fatalf("RateProduct() error = %v", err)
	}
	if !injected {
		t.Fatal("rival rating never fired")
	}

	// The losing insert must resolve as a repeat rating: one row carrying
	// the late value, count 1, total adjusted by the delta.
	var ratings int64
	db.Model(&models.Rating{}).Where("user_email = ? AND product_id = ?", "buyer@x.com", p.ID).Count(&ratings)
	if ratings != 1 {
		t.Fatalf("rating rows = %d, want 1", ratings)
	}
	var rating models.Rating
	if err := db.Where("user_email = ? AND product_id = ?", "buyer@x.com", p.ID).Take(&rating).Error; err != nil {
		t.Fatalf("rating row missing: %v", err)
	}
	if rating.Rating != 3 {
		t.Errorf("rating = %d, want 3", rating.Rating)
	}
	got := productByID(t, db, p.ID)
	if got.TotalRating != 3 || got.TotalRatingCount != 1 {
		t.Errorf("aggregates = %d/%d, want 3/1", got.TotalRating, got.TotalRatingCount)
	}
}

func TestRateProductValueBounds(t *testing.T) {
	db := setupDB(t)
	p := createProduct(t, db, models.Product{Owner: "seller@x.com", Name: "Mug", Price: 5})
	createOrder(t, db, "buyer@x.com", models.OrderStatusDelivered,
		models.OrderItem{ProductID: p.ID, Count: 1})

	for _, value := range []int{-1, 6} {
		if err := RateProduct(db, "buyer@x.com", p.ID, value); !errors.Is(err, ErrValue) {
			t.Errorf("RateProduct(%d) error = %v, want ErrValue", value, err)
		}
	}
}
