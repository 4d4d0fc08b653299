package services

import (
	"fmt"
	"strings"

	"git.solsynth.dev/hypernet/quill/pkg/internal/database"
	"git.solsynth.dev/hypernet/quill/pkg/internal/gap"
	"git.solsynth.dev/hypernet/quill/pkg/internal/models"
	"github.com/rs/zerolog/log"
)

func AddComment(viewer, post uint, text string) (models.Post, error) {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		err := fmt.Errorf("%w: comment text is required", ErrInvalidOperation)
		observeMutation("comment", err)
		return models.Post{}, err
	}
	if err := ensurePostExists(database.C, post); err != nil {
		observeMutation("comment", err)
		return models.Post{}, err
	}

	comment := models.Comment{
		Text:      text,
		PostID:    post,
		AccountID: viewer,
	}
	if err := database.C.Create(&comment).Error; err != nil {
		err = storeFailure("save comment", err)
		observeMutation("comment", err)
		return models.Post{}, err
	}
	observeMutation("comment", nil)

	gap.PublishEvent("posts.comment", map[string]any{
		"post_id":    post,
		"comment_id": comment.ID,
		"account_id": viewer,
	})

	return GetPost(post, &viewer)
}

// DeleteComment removes a comment when the requester wrote it or owns the post.
func DeleteComment(post, comment, requester uint) (models.Post, error) {
	var item models.Post
	if err := database.C.Select("id", "account_id").First(&item, post).Error; err != nil {
		return item, wrapStoreError(err, "post")
	}

	var target models.Comment
	if err := database.C.Where("id = ? AND post_id = ?", comment, post).First(&target).Error; err != nil {
		return item, wrapStoreError(err, "comment")
	}

	if target.AccountID != requester && item.AccountID != requester {
		err := fmt.Errorf("%w: you are not allowed to delete this comment", ErrForbidden)
		observeMutation("uncomment", err)
		return item, err
	}

	err := database.C.Delete(&target).Error
	if err != nil {
		err = storeFailure("delete comment", err)
	}
	observeMutation("uncomment", err)
	if err != nil {
		return item, err
	}

	log.Debug().Uint("post", post).Uint("comment", comment).Msg("Comment deleted.")
	return GetPost(post, &requester)
}
