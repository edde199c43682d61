// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/coffeeshop-backend/internal/domain/catalog"
	"github.com/your-org/coffeeshop-backend/internal/domain/feedback"
	"github.com/your-org/coffeeshop-backend/internal/domain/order"
	"github.com/your-org/coffeeshop-backend/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Models in dependency order
	models := []interface{}{
		// User domain
		&user.User{},

		// Catalog domain
		&catalog.Category{},
		&catalog.Product{},
		&catalog.Banner{},

		// Order domain - live and archive tables
		&order.Order{},
		&order.OrderDetail{},
		&order.ArchivedOrder{},
		&order.ArchivedOrderDetail{},

		// Feedback domain
		&feedback.Feedback{},
	}

	// Run auto-migration for each model
	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email_active ON users(email, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at DESC)",

		// Catalog indexes
		"CREATE INDEX IF NOT EXISTS idx_products_category_active ON products(category_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_price ON products(price)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_categories_sort_order ON categories(sort_order)",
		"CREATE INDEX IF NOT EXISTS idx_banners_active_created ON banners(is_active, created_at DESC)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_user_date ON orders(user_id, order_date DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status)",
		"CREATE INDEX IF NOT EXISTS idx_order_details_order ON order_details(order_id)",
		"CREATE INDEX IF NOT EXISTS idx_order_details_product ON order_details(product_id)",

		// Archive indexes
		"CREATE INDEX IF NOT EXISTS idx_archived_orders_source ON archived_orders(source_order_id)",
		"CREATE INDEX IF NOT EXISTS idx_archived_orders_user ON archived_orders(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_archived_orders_date ON archived_orders(archived_date DESC)",
		"CREATE INDEX IF NOT EXISTS idx_archived_order_details_order ON archived_order_details(archived_order_id)",

		// Feedback indexes
		"CREATE INDEX IF NOT EXISTS idx_feedbacks_status_created ON feedbacks(status, created_at DESC)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData inserts initial data into the database
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	// Create default categories
	if err := m.seedCategories(); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	// Create default admin user
	if err := m.seedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	// Create sample menu for development
	if err := m.seedMenu(); err != nil {
		return fmt.Errorf("failed to seed menu: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

// seedCategories creates default menu categories
func (m *Migration) seedCategories() error {
	log.Println("🏷️ Seeding categories...")

	categories := []catalog.Category{
		{
			Name:        "Espresso",
			Description: "Espresso-based drinks",
			SortOrder:   1,
			IsActive:    true,
		},
		{
			Name:        "Brewed Coffee",
			Description: "Filter and pour-over coffee",
			SortOrder:   2,
			IsActive:    true,
		},
		{
			Name:        "Tea",
			Description: "Hot and iced teas",
			SortOrder:   3,
			IsActive:    true,
		},
		{
			Name:        "Pastries",
			Description: "Fresh baked goods",
			SortOrder:   4,
			IsActive:    true,
		},
	}

	for _, category := range categories {
		var existing catalog.Category
		result := m.db.Where("name = ?", category.Name).First(&existing)
		if result.Error == gorm.ErrRecordNotFound {
			if err := m.db.Create(&category).Error; err != nil {
				return err
			}
			log.Printf("Created category: %s", category.Name)
		}
	}

	return nil
}

// seedAdminUser creates the default admin account
func (m *Migration) seedAdminUser() error {
	log.Println("👤 Seeding admin user...")

	var existing user.User
	result := m.db.Where("email = ?", "admin@coffeeshop.local").First(&existing)
	if result.Error != gorm.ErrRecordNotFound {
		return result.Error
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("Admin123!"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := user.User{
		Email:     "admin@coffeeshop.local",
		Password:  string(hashedPassword),
		FirstName: "Store",
		LastName:  "Admin",
		IsActive:  true,
		IsAdmin:   true,
	}

	if err := m.db.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("Created admin user: admin@coffeeshop.local")
	return nil
}

// seedMenu creates sample products and a banner for development
func (m *Migration) seedMenu() error {
	log.Println("☕ Seeding menu...")

	var count int64
	if err := m.db.Model(&catalog.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var espresso, pastries catalog.Category
	if err := m.db.Where("name = ?", "Espresso").First(&espresso).Error; err != nil {
		return err
	}
	if err := m.db.Where("name = ?", "Pastries").First(&pastries).Error; err != nil {
		return err
	}

	products := []catalog.Product{
		{Name: "Espresso", Description: "Double shot", Price: 300, CategoryID: espresso.ID, IsActive: true},
		{Name: "Flat White", Description: "Double shot with steamed milk", Price: 450, CategoryID: espresso.ID, IsActive: true},
		{Name: "Cappuccino", Description: "Espresso with foamed milk", Price: 425, CategoryID: espresso.ID, IsActive: true},
		{Name: "Mocha", Description: "Espresso with chocolate and milk", Price: 500, CategoryID: espresso.ID, IsActive: true},
		{Name: "Croissant", Description: "Butter croissant", Price: 250, CategoryID: pastries.ID, IsActive: true},
		{Name: "Cinnamon Roll", Description: "Baked fresh daily", Price: 350, CategoryID: pastries.ID, IsActive: true},
	}

	for _, product := range products {
		if err := m.db.Create(&product).Error; err != nil {
			return err
		}
		log.Printf("Created product: %s", product.Name)
	}

	banner := catalog.Banner{
		Title:    "Seasonal Specials",
		Image:    "/images/banners/seasonal.jpg",
		LinkURL:  "/menu",
		IsActive: true,
	}
	return m.db.Create(&banner).Error
}

// GetTableInfo logs row counts for the main tables
func (m *Migration) GetTableInfo() {
	tables := []string{"users", "categories", "products", "banners", "orders", "order_details", "archived_orders", "feedbacks"}

	log.Println("📊 Table information:")
	for _, table := range tables {
		var count int64
		if err := m.db.Table(table).Count(&count).Error; err != nil {
			log.Printf("  %s: error (%v)", table, err)
			continue
		}
		log.Printf("  %s: %d rows", table, count)
	}
}
