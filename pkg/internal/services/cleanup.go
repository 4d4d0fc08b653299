package services

import (
	"time"

	"git.solsynth.dev/hypernet/quill/pkg/internal/database"
	"git.solsynth.dev/hypernet/quill/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func DoAutoDatabaseCleanup() {
	log.Debug().Time("now", time.Now()).Msg("Now cleaning up entire database...")

	if err := RetryPendingDeletions(); err != nil {
		log.Error().Err(err).Msg("An error occurred when retrying account deletions...")
	}

	accounts := func() *gorm.DB {
		return database.C.Model(&models.Account{}).Select("id")
	}
	posts := func() *gorm.DB {
		return database.C.Model(&models.Post{}).Select("id")
	}

	var total int64
	purge := func(table string, tx *gorm.DB) {
		if tx.Error != nil {
			log.Error().Err(tx.Error).Str("table", table).Msg("An error occurred when purging orphan rows...")
			return
		}
		total += tx.RowsAffected
		orphanPurged.WithLabelValues(table).Add(float64(tx.RowsAffected))
	}

	purge("follows", database.C.
		Where("follower_id NOT IN (?) OR followee_id NOT IN (?)", accounts(), accounts()).
		Delete(&models.Follow{}))
	purge("post_likes", database.C.
		Where("post_id NOT IN (?) OR account_id NOT IN (?)", posts(), accounts()).
		Delete(&models.PostLike{}))
	purge("saved_posts", database.C.
		Where("post_id NOT IN (?) OR account_id NOT IN (?)", posts(), accounts()).
		Delete(&models.SavedPost{}))
	purge("comments", database.C.
		Where("post_id NOT IN (?) OR account_id NOT IN (?)", posts(), accounts()).
		Delete(&models.Comment{}))

	log.Info().Int64("count", total).Msg("Clean up entire database accomplished.")
}
