package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"storefront/internal/database"
	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds ninety days of demo data so every dashboard report has something to show:
// customers, a small catalog, orders with items/payments/deliveries, monthly expenses,
// and storefront funnel events. Deterministic via a fixed rand seed.
func main() {
	log.Println("Starting database seeder...")

	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		envOr("DB_USER", "postgres"),
		envOr("DB_PASSWORD", "postgres"),
		envOr("DB_HOST", "localhost"),
		envOr("DB_PORT", "5432"),
		envOr("DB_NAME", "postgres"),
		envOr("DB_SSLMODE", "disable"),
	)

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	rng := rand.New(rand.NewSource(42))
	now := time.Now()

	cleanTables(db)
	seedUsers(db)
	profiles := seedProfiles(db, rng, now)
	products := seedProducts(db)
	seedOrders(db, rng, now, profiles, products)
	seedExpenses(db, now)
	seedEvents(db, rng, now, products)

	log.Println("Database seeding completed successfully!")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func cleanTables(db *gorm.DB) {
	// Children before parents; products are soft-deletable so Unscoped clears them too.
	tables := []any{
		&model.AnalyticsEvent{}, &model.Delivery{}, &model.Payment{},
		&model.OrderItem{}, &model.Order{}, &model.Expense{},
		&model.Profile{}, &model.RefreshToken{},
	}
	for _, t := range tables {
		if err := db.Unscoped().Where("1 = 1").Delete(t).Error; err != nil {
			log.Printf("Failed to clean %T: %v", t, err)
		}
	}
	if err := db.Unscoped().Where("1 = 1").Delete(&model.Product{}).Error; err != nil {
		log.Printf("Failed to clean products: %v", err)
	}
}

func seedUsers(db *gorm.DB) {
	log.Println("Seeding back-office users...")
	users := []struct {
		username, email, password, role string
	}{
		{"admin", "admin@storefront.local", "admin123", model.RoleAdmin},
		{"ops", "ops@storefront.local", "ops12345", model.RoleStaff},
	}
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", u.username, err)
		}
		user := model.User{Username: u.username, Email: u.email, Password: string(hash), Role: u.role}
		if err := db.Where("username = ?", u.username).FirstOrCreate(&user).Error; err != nil {
			log.Fatalf("Failed to seed user %s: %v", u.username, err)
		}
	}
}

func seedProfiles(db *gorm.DB, rng *rand.Rand, now time.Time) []model.Profile {
	log.Println("Seeding customer profiles...")
	names := []string{
		"Raj Sharma", "Priya Patel", "Amit Verma", "Sneha Iyer", "Vikram Rao",
		"Ananya Desai", "Karan Mehta", "Divya Nair", "Rohan Gupta", "Meera Joshi",
		"Arjun Reddy", "Kavya Menon", "Siddharth Bose", "Nisha Agarwal", "Varun Malhotra",
	}
	profiles := make([]model.Profile, 0, len(names))
	for i, name := range names {
		// Signup dates straddle the report window so new-vs-returning has both kinds.
		created := now.AddDate(0, 0, -rng.Intn(180))
		profiles = append(profiles, model.Profile{
			UserID:       uuid.New(),
			FullName:     name,
			Email:        fmt.Sprintf("customer%02d@example.com", i+1),
			MobileNumber: fmt.Sprintf("98%08d", 10000000+i),
			CreatedAt:    created,
		})
	}
	if err := db.Create(&profiles).Error; err != nil {
		log.Fatalf("Failed to seed profiles: %v", err)
	}
	return profiles
}

func seedProducts(db *gorm.DB) []model.Product {
	log.Println("Seeding products...")
	products := []model.Product{
		{Name: "Cotton Kurta", Category: "Apparel", Price: 1299, Quantity: 40, LowStockThreshold: 5},
		{Name: "Linen Shirt", Category: "Apparel", Price: 1799, Quantity: 3, LowStockThreshold: 5},
		{Name: "Silk Saree", Category: "Apparel", Price: 4499, Quantity: 12, LowStockThreshold: 3},
		{Name: "Leather Wallet", Category: "Accessories", Price: 899, Quantity: 60, LowStockThreshold: 10},
		{Name: "Canvas Tote", Category: "Accessories", Price: 599, Quantity: 0, LowStockThreshold: 5},
		{Name: "Brass Lamp", Category: "Home", Price: 2199, Quantity: 8, LowStockThreshold: 5},
		{Name: "Ceramic Vase", Category: "Home", Price: 1499, Quantity: 25, LowStockThreshold: 5},
		{Name: "Scented Candle Set", Category: "Home", Price: 749, Quantity: 90, LowStockThreshold: 15},
		{Name: "Herbal Face Pack", Category: "Beauty", Price: 349, Quantity: 120, LowStockThreshold: 20},
		{Name: "Almond Hair Oil", Category: "Beauty", Price: 449, Quantity: 4, LowStockThreshold: 10},
	}
	if err := db.Create(&products).Error; err != nil {
		log.Fatalf("Failed to seed products: %v", err)
	}
	return products
}

func seedOrders(db *gorm.DB, rng *rand.Rand, now time.Time, profiles []model.Profile, products []model.Product) {
	log.Println("Seeding orders, payments and deliveries...")
	statuses := []string{
		model.OrderStatusDelivered, model.OrderStatusDelivered, model.OrderStatusDelivered,
		model.OrderStatusShipped, model.OrderStatusConfirmed, model.OrderStatusNew,
		model.OrderStatusCancelled, model.OrderStatusReturned,
	}
	methods := []string{"upi", "upi", "card", "cod", "cod", "netbanking", "wallet"}
	coupons := []string{"", "", "", "WELCOME10", "FESTIVE20", ""}
	partners := []string{"Delhivery", "BlueDart", "Ecom Express", "DTDC"}

	for i := 0; i < 220; i++ {
		createdAt := now.Add(-time.Duration(rng.Intn(90*24)) * time.Hour)
		status := statuses[rng.Intn(len(statuses))]
		method := methods[rng.Intn(len(methods))]

		var userID *uuid.UUID
		if rng.Intn(10) > 1 { // ~2 in 10 orders are guest checkouts
			id := profiles[rng.Intn(len(profiles))].UserID
			userID = &id
		}

		var items []model.OrderItem
		subtotal := 0.0
		for n := rng.Intn(3) + 1; n > 0; n-- {
			p := products[rng.Intn(len(products))]
			qty := rng.Intn(3) + 1
			total := p.Price * float64(qty)
			subtotal += total
			pid := p.ID
			items = append(items, model.OrderItem{
				ProductID:   &pid,
				ProductName: p.Name,
				Quantity:    qty,
				Price:       p.Price,
				Total:       total,
			})
		}

		coupon := coupons[rng.Intn(len(coupons))]
		discount := 0.0
		if coupon != "" {
			discount = float64(int(subtotal * 0.1))
		}
		shipping := 0.0
		if subtotal < 999 {
			shipping = 79
		}
		tax := float64(int(subtotal * 0.05))
		total := subtotal - discount + shipping + tax

		paymentStatus := model.PaymentStatusPaid
		if method == "cod" && status != model.OrderStatusDelivered {
			paymentStatus = model.PaymentStatusPending
		}
		if status == model.OrderStatusCancelled || status == model.OrderStatusReturned {
			paymentStatus = model.PaymentStatusRefunded
		}

		order := model.Order{
			UserID:         userID,
			OrderNumber:    fmt.Sprintf("ORD-%05d", 10001+i),
			Status:         status,
			PaymentMethod:  method,
			PaymentStatus:  paymentStatus,
			Subtotal:       subtotal,
			Discount:       discount,
			ShippingCharge: shipping,
			Tax:            tax,
			Total:          total,
			CouponCode:     coupon,
			Items:          items,
			CreatedAt:      createdAt,
		}
		if err := db.Create(&order).Error; err != nil {
			log.Fatalf("Failed to seed order %d: %v", i, err)
		}

		payment := model.Payment{
			OrderID:   order.ID,
			Method:    method,
			Status:    paymentStatus,
			Amount:    decimal.NewFromFloat(total),
			CreatedAt: createdAt,
		}
		if paymentStatus == model.PaymentStatusRefunded {
			payment.RefundAmount = decimal.NewFromFloat(total)
			payment.RefundReason = "Order " + status
		}
		if err := db.Create(&payment).Error; err != nil {
			log.Fatalf("Failed to seed payment for order %s: %v", order.OrderNumber, err)
		}

		// Deliveries exist once an order leaves packing.
		if status == model.OrderStatusShipped || status == model.OrderStatusDelivered || status == model.OrderStatusReturned {
			delivery := model.Delivery{
				OrderID:     order.ID,
				Status:      model.DeliveryStatusInTransit,
				PartnerName: partners[rng.Intn(len(partners))],
				IsCOD:       method == "cod",
				CreatedAt:   createdAt,
			}
			if method == "cod" {
				delivery.CODAmount = decimal.NewFromFloat(total)
			}
			if status != model.OrderStatusShipped {
				deliveredAt := createdAt.Add(time.Duration(rng.Intn(96)+24) * time.Hour)
				delivery.Status = model.DeliveryStatusDelivered
				delivery.DeliveredAt = &deliveredAt
				delivery.CODCollected = method == "cod"
			}
			if err := db.Create(&delivery).Error; err != nil {
				log.Fatalf("Failed to seed delivery for order %s: %v", order.OrderNumber, err)
			}
		}
	}
}

func seedExpenses(db *gorm.DB, now time.Time) {
	log.Println("Seeding expenses...")
	monthly := []struct {
		category string
		amount   float64
	}{
		{model.ExpenseCategoryAds, 18000},
		{model.ExpenseCategoryPackaging, 4500},
		{model.ExpenseCategoryShipping, 9200},
		{model.ExpenseCategoryRent, 25000},
		{model.ExpenseCategorySalary, 60000},
		{model.ExpenseCategorySoftware, 3100},
	}
	var expenses []model.Expense
	for back := 0; back < 3; back++ {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -back, 0)
		for _, m := range monthly {
			expenses = append(expenses, model.Expense{
				Category:    m.category,
				Description: m.category + " for " + monthStart.Format("Jan 2006"),
				Amount:      decimal.NewFromFloat(m.amount),
				SpentOn:     monthStart.AddDate(0, 0, 4),
			})
		}
	}
	if err := db.Create(&expenses).Error; err != nil {
		log.Fatalf("Failed to seed expenses: %v", err)
	}
}

func seedEvents(db *gorm.DB, rng *rand.Rand, now time.Time, products []model.Product) {
	log.Println("Seeding analytics events...")
	pages := []string{"/", "/products", "/products", "/offers", "/about"}
	var events []model.AnalyticsEvent

	for i := 0; i < 400; i++ {
		sessionID := fmt.Sprintf("sess-%04d", i)
		visitorID := fmt.Sprintf("vis-%04d", rng.Intn(260))
		at := now.Add(-time.Duration(rng.Intn(90*24)) * time.Hour)

		events = append(events, model.AnalyticsEvent{
			EventType: model.EventPageView,
			SessionID: sessionID,
			VisitorID: visitorID,
			PagePath:  pages[rng.Intn(len(pages))],
			CreatedAt: at,
		})

		// Roughly 60% browse a product, 40% add to cart, 25% start checkout,
		// 15% purchase, each stage a subset of the previous.
		r := rng.Intn(100)
		if r < 60 {
			p := products[rng.Intn(len(products))]
			pid := p.ID
			events = append(events, model.AnalyticsEvent{
				EventType: model.EventProductView,
				SessionID: sessionID,
				VisitorID: visitorID,
				ProductID: &pid,
				PagePath:  "/products/" + p.ID.String(),
				CreatedAt: at.Add(time.Minute),
			})
		}
		if r < 40 {
			events = append(events, model.AnalyticsEvent{
				EventType: model.EventAddToCart,
				SessionID: sessionID,
				VisitorID: visitorID,
				CreatedAt: at.Add(2 * time.Minute),
			})
		}
		if r < 25 {
			events = append(events, model.AnalyticsEvent{
				EventType: model.EventCheckoutStarted,
				SessionID: sessionID,
				VisitorID: visitorID,
				PagePath:  "/checkout",
				CreatedAt: at.Add(3 * time.Minute),
			})
		}
		if r < 15 {
			events = append(events, model.AnalyticsEvent{
				EventType: model.EventOrderCompleted,
				SessionID: sessionID,
				VisitorID: visitorID,
				PagePath:  "/checkout/done",
				CreatedAt: at.Add(5 * time.Minute),
			})
		}
	}
	if err := db.CreateInBatches(&events, 200).Error; err != nil {
		log.Fatalf("Failed to seed analytics events: %v", err)
	}
}
