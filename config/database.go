package config

import (
	"docpress/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Subject{},
		&models.Topic{},
		&models.Concept{},
		&models.Rating{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
