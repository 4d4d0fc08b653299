package services

import (
	"fmt"

	"git.solsynth.dev/hypernet/quill/pkg/internal/database"
	"git.solsynth.dev/hypernet/quill/pkg/internal/gap"
	"git.solsynth.dev/hypernet/quill/pkg/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func ensurePostExists(tx *gorm.DB, post uint) error {
	var count int64
	if err := tx.Model(&models.Post{}).Where("id = ?", post).Count(&count).Error; err != nil {
		return storeFailure("load post", err)
	} else if count == 0 {
		return fmt.Errorf("%w: post was not found", ErrNotFound)
	}
	return nil
}

// toggleEdge removes the edge if present and inserts it otherwise.
// The returned flag tells whether this call inserted the edge.
func toggleEdge(tx *gorm.DB, edge any, query string, args ...any) (bool, error) {
	res := tx.Where(query, args...).Delete(edge)
	if res.Error != nil {
		return false, res.Error
	} else if res.RowsAffected > 0 {
		return false, nil
	}

	res = tx.Clauses(clause.OnConflict{DoNothing: true}).Create(edge)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func ToggleLike(viewer, post uint) (bool, models.Post, error) {
	var liked bool
	err := database.C.Transaction(func(tx *gorm.DB) error {
		if err := ensurePostExists(tx, post); err != nil {
			return err
		}
		var err error
		liked, err = toggleEdge(
			tx,
			&models.PostLike{PostID: post, AccountID: viewer},
			"post_id = ? AND account_id = ?", post, viewer,
		)
		if err != nil {
			return storeFailure("toggle like", err)
		}
		return nil
	})
	observeMutation("like", err)
	if err != nil {
		return false, models.Post{}, err
	}

	gap.PublishEvent("posts.like", map[string]any{
		"post_id":    post,
		"account_id": viewer,
		"liked":      liked,
	})

	item, err := GetPost(post, &viewer)
	return liked, item, err
}
