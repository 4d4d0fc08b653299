package database

import (
	"git.solsynth.dev/hypernet/quill/pkg/internal/models"
	"gorm.io/gorm"
)

var AutoMaintainRange = []any{
	&models.Account{},
	&models.Post{},
	&models.Comment{},
	&models.Follow{},
	&models.PostLike{},
	&models.SavedPost{},
}

func RunMigration(source *gorm.DB) error {
	if err := source.AutoMigrate(
		append(
			AutoMaintainRange,
			&models.AccountDeletion{},
		)...,
	); err != nil {
		return err
	}

	return nil
}
