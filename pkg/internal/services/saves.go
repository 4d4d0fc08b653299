package services

import (
	"git.solsynth.dev/hypernet/quill/pkg/internal/database"
	"git.solsynth.dev/hypernet/quill/pkg/internal/models"
	"gorm.io/gorm"
)

type SaveResult struct {
	Saved      bool   `json:"saved"`
	SavedPosts []uint `json:"saved_posts"`
	Message    string `json:"message"`
}

func ToggleSave(viewer, post uint) (SaveResult, error) {
	var result SaveResult
	err := database.C.Transaction(func(tx *gorm.DB) error {
		if err := ensurePostExists(tx, post); err != nil {
			return err
		}
		var err error
		result.Saved, err = toggleEdge(
			tx,
			&models.SavedPost{AccountID: viewer, PostID: post},
			"account_id = ? AND post_id = ?", viewer, post,
		)
		if err != nil {
			return storeFailure("toggle save", err)
		}
		return nil
	})
	observeMutation("save", err)
	if err != nil {
		return result, err
	}

	if result.Saved {
		result.Message = "Post saved"
	} else {
		result.Message = "Post unsaved"
	}
	result.SavedPosts, err = ListSavedPostID(viewer)
	return result, err
}

// ListSavedPostID returns the saved post ids of the account, most recently saved first.
func ListSavedPostID(account uint) ([]uint, error) {
	list := make([]uint, 0)
	if err := database.C.Model(&models.SavedPost{}).
		Where("account_id = ?", account).
		Order("created_at DESC, post_id DESC").
		Pluck("post_id", &list).Error; err != nil {
		return list, storeFailure("list saved posts", err)
	}
	return list, nil
}

func ListSavedPosts(viewer uint) ([]models.Post, error) {
	saved := database.C.Model(&models.SavedPost{}).Select("post_id").Where("account_id = ?", viewer)
	return ListPost(database.C.Where("id IN (?)", saved), -1, -1, &viewer)
}
