package services

import (
	"time"

	"git.solsynth.dev/hypernet/quill/pkg/internal/database"
	"git.solsynth.dev/hypernet/quill/pkg/internal/gap"
	"git.solsynth.dev/hypernet/quill/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// DeleteAccount removes the account and everything attached to it.
// Calling it again for an account already removed is a no-op.
func DeleteAccount(id uint) error {
	deletion := models.AccountDeletion{AccountID: id}
	if err := database.C.
		Where("account_id = ?", id).
		Attrs(models.AccountDeletion{Status: models.AccountDeletionPending}).
		FirstOrCreate(&deletion).Error; err != nil {
		return storeFailure("record account deletion", err)
	}
	if deletion.Status == models.AccountDeletionDone {
		return nil
	}

	return runAccountDeletion(deletion)
}

// RetryPendingDeletions reruns every cascade that has not finished yet.
func RetryPendingDeletions() error {
	var deletions []models.AccountDeletion
	if err := database.C.
		Where("status <> ?", models.AccountDeletionDone).
		Order("id ASC").
		Find(&deletions).Error; err != nil {
		return storeFailure("list account deletions", err)
	}

	var lastErr error
	for _, deletion := range deletions {
		if err := runAccountDeletion(deletion); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

func runAccountDeletion(deletion models.AccountDeletion) error {
	deletion.Attempts++

	var related []uint
	err := database.C.Transaction(func(tx *gorm.DB) error {
		var err error
		related, err = cascadeDeleteAccount(tx, deletion.AccountID)
		return err
	})
	if err != nil {
		cascadeFailures.Inc()
		deletion.Status = models.AccountDeletionFailed
		deletion.LastError = err.Error()
		log.Error().Err(err).
			Uint("account", deletion.AccountID).
			Int("attempts", deletion.Attempts).
			Msg("An error occurred when deleting account, will retry later...")
		if err := database.C.Save(&deletion).Error; err != nil {
			log.Error().Err(err).Msg("An error occurred when saving account deletion state...")
		}
		return storeFailure("delete account", err)
	}

	deletion.Status = models.AccountDeletionDone
	deletion.LastError = ""
	deletion.FinishedAt = lo.ToPtr(time.Now())
	if err := database.C.Save(&deletion).Error; err != nil {
		log.Error().Err(err).Msg("An error occurred when saving account deletion state...")
	}

	InvalidateRelationCache(append(related, deletion.AccountID)...)
	gap.PublishEvent("accounts.deleted", map[string]any{"id": deletion.AccountID})
	log.Info().Uint("account", deletion.AccountID).Msg("Account deleted with all of its relations.")

	return nil
}

// cascadeDeleteAccount returns the accounts whose follow lists changed.
func cascadeDeleteAccount(tx *gorm.DB, id uint) ([]uint, error) {
	var owned []uint
	if err := tx.Model(&models.Post{}).Where("account_id = ?", id).Pluck("id", &owned).Error; err != nil {
		return nil, err
	}

	var edges []models.Follow
	if err := tx.Where("follower_id = ? OR followee_id = ?", id, id).Find(&edges).Error; err != nil {
		return nil, err
	}
	related := lo.Uniq(lo.FlatMap(edges, func(item models.Follow, _ int) []uint {
		return []uint{item.FollowerID, item.FolloweeID}
	}))
	related = lo.Without(related, id)

	if err := tx.Where("follower_id = ? OR followee_id = ?", id, id).Delete(&models.Follow{}).Error; err != nil {
		return related, err
	}
	if err := tx.Where("account_id = ? OR post_id IN ?", id, owned).Delete(&models.PostLike{}).Error; err != nil {
		return related, err
	}
	if err := tx.Where("account_id = ? OR post_id IN ?", id, owned).Delete(&models.SavedPost{}).Error; err != nil {
		return related, err
	}
	if err := tx.Where("account_id = ? OR post_id IN ?", id, owned).Delete(&models.Comment{}).Error; err != nil {
		return related, err
	}
	if err := tx.Where("account_id = ?", id).Delete(&models.Post{}).Error; err != nil {
		return related, err
	}
	if err := tx.Where("id = ?", id).Delete(&models.Account{}).Error; err != nil {
		return related, err
	}

	return related, nil
}
