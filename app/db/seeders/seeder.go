package seeders

import (
	"context"
	"log"

	"github.com/shopspring/decimal"
	"github.com/signworks/go-orderportal/app/configs"
	"github.com/signworks/go-orderportal/app/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var defaultCategories = []models.Category{
	{Name: "Mandatory Signs", Emoji: "✅", Description: "Mandatory instruction and compliance signs"},
	{Name: "Banner Signs", Emoji: "🏳️", Description: "Large format banner signs for display"},
	{Name: "Door Signs", Emoji: "🚪", Description: "Signs for doors and entrances"},
	{Name: "Hazard Notifier Boards Signs", Emoji: "⚠️", Description: "Hazard notification and warning board signs"},
	{Name: "Recycling Signs", Emoji: "♻️", Description: "Recycling and waste management signs"},
	{Name: "Road Signs", Emoji: "🛣️", Description: "Road safety and traffic signs"},
	{Name: "Site Notice Board Signs", Emoji: "📋", Description: "Site notice boards and information signs"},
	{Name: "Bespoke Multipurpose Signs", Emoji: "🎨", Description: "Custom-made multipurpose signs"},
	{Name: "First Aid Fire Safety Signs", Emoji: "🧯", Description: "First aid and fire safety signs"},
	{Name: "Multi Purpose Signs", Emoji: "📌", Description: "General multi-purpose signs"},
	{Name: "PPE Signs", Emoji: "🦺", Description: "Personal protective equipment signs"},
	{Name: "Hazard Signs", Emoji: "☢️", Description: "Hazard warning and danger signs"},
	{Name: "Prohibition Signs", Emoji: "🚫", Description: "Prohibition and restriction signs"},
}

type sampleProduct struct {
	Name        string
	Description string
	Price       string
	Category    string
}

var sampleProducts = []sampleProduct{
	{"Fire Exit Sign", "Photoluminescent fire exit sign, ISO 7010 compliant", "12.99", "Mandatory Signs"},
	{"Safety Helmet Required", "Mandatory safety helmet sign for construction areas", "8.99", "Mandatory Signs"},
	{"Caution Wet Floor", "Yellow caution wet floor warning sign", "14.99", "Hazard Signs"},
	{"High Voltage Warning", "Electric shock hazard warning sign", "10.99", "Hazard Signs"},
	{"Speed Limit 30 Sign", "Standard speed limit 30mph road sign", "29.99", "Road Signs"},
	{"Stop Sign", "Reflective octagonal stop sign for road use", "34.99", "Road Signs"},
}

// Seed loads the default categories, the admin account, and a handful of
// sample products. Safe to re-run; existing rows are left alone.
func Seed(ctx context.Context, db *gorm.DB, env configs.ENV) error {
	tx := db.WithContext(ctx)

	categoriesByName := make(map[string]string, len(defaultCategories))
	for _, seed := range defaultCategories {
		category := models.Category{Name: seed.Name}
		if err := tx.Where("name = ?", seed.Name).
			Attrs(models.Category{Emoji: seed.Emoji, Description: seed.Description}).
			FirstOrCreate(&category).Error; err != nil {
			return err
		}
		categoriesByName[category.Name] = category.ID
	}
	log.Println("✅ Categories seeded")

	adminUsername := env.AdminUsername
	if adminUsername == "" {
		adminUsername = "admin"
	}
	adminPassword := env.AdminPassword
	if adminPassword == "" {
		adminPassword = "admin123"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{Username: adminUsername}
	if err := tx.Where("username = ?", adminUsername).
		Attrs(models.User{Password: string(hash), Role: models.RoleAdmin}).
		FirstOrCreate(&admin).Error; err != nil {
		return err
	}
	log.Printf("✅ Admin user seeded (username: %s)", adminUsername)

	for _, seed := range sampleProducts {
		categoryID, ok := categoriesByName[seed.Category]
		if !ok {
			continue
		}
		price, err := decimal.NewFromString(seed.Price)
		if err != nil {
			return err
		}
		product := models.Product{Name: seed.Name, CategoryID: categoryID}
		if err := tx.Where("name = ? AND category_id = ?", seed.Name, categoryID).
			Attrs(models.Product{Description: seed.Description, Price: price}).
			FirstOrCreate(&product).Error; err != nil {
			return err
		}
	}
	log.Println("✅ Sample products seeded")

	return nil
}
