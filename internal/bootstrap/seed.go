package bootstrap

import (
	"log"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"aimrealty.com/estateapi/internal/model"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.UserLanguage{},
		&model.Wave{},
		&model.CustomerWavePermission{},
		&model.Property{},
		&model.PropertyImage{},
		&model.PropertyAmenity{},
		&model.PropertyFeature{},
		&model.Favorite{},
		&model.Inquiry{},
		&model.SearchHistory{},
		&model.SearchFilter{},
		&model.CustomerActivity{},
		&model.ActivityMetadata{},
		&model.CustomerPoints{},
		&model.CurrencyRate{},
		&model.ClientLocation{},
	)
}

func SeedRoles(db *gorm.DB) error {
	defaultRoles := []model.Role{
		{Name: model.RoleAdmin, Description: "Super administrator"},
		{Name: model.RoleAgent, Description: "Listing agent"},
		{Name: model.RoleCustomer, Description: "Customer"},
	}

	for _, role := range defaultRoles {
		var count int64
		if err := db.Model(&model.Role{}).
			Where("name = ?", role.Name).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&role).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func SeedAdminUser(db *gorm.DB) error {
	var adminRole model.Role
	if err := db.Where("name = ?", model.RoleAdmin).First(&adminRole).Error; err != nil {
		return err
	}

	var count int64
	if err := db.Model(&model.User{}).
		Where("email = ?", "admin@aimrealty.com").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin user already exists, skipping seed")
		return nil
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	adminUser := model.User{
		Username:     "admin",
		Email:        "admin@aimrealty.com",
		PasswordHash: string(hashedPasswordBytes),
		RoleID:       &adminRole.ID,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	log.Println("Admin user seeded (admin@aimrealty.com / admin123)")
	return nil
}

// SeedCurrencyRates installs a starting USD/IQD rate so price conversion
// works on a fresh database.
func SeedCurrencyRates(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.CurrencyRate{}).
		Where("from_currency = ? AND to_currency = ?", "USD", "IQD").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	rate := model.CurrencyRate{
		FromCurrency:  "USD",
		ToCurrency:    "IQD",
		Rate:          decimal.NewFromInt(1310),
		IsActive:      true,
		EffectiveDate: time.Now(),
	}

	return db.Create(&rate).Error
}
