package services

import (
	"fmt"
	"strings"
	"time"

	"git.solsynth.dev/hypernet/quill/pkg/internal/database"
	"git.solsynth.dev/hypernet/quill/pkg/internal/gap"
	"git.solsynth.dev/hypernet/quill/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func FilterPostWithAuthors(tx *gorm.DB, authors []uint) *gorm.DB {
	return tx.Where("account_id IN ?", authors)
}

func PreloadGeneral(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Account").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Preload("Comments.Account")
}

// NormalizeTags trims the tags and drops the empty and repeated ones, keeping the first order.
func NormalizeTags(tags []string) datatypes.JSONSlice[string] {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if len(tag) == 0 || lo.Contains(out, tag) {
			continue
		}
		out = append(out, tag)
	}
	return out
}

// CompletePostMeta batch loads likes and comment counts, and marks what the viewer liked or saved.
func CompletePostMeta(viewer *uint, in ...models.Post) ([]models.Post, error) {
	if len(in) == 0 {
		return in, nil
	}

	idx := make([]uint, len(in))
	for i, item := range in {
		idx[i] = item.ID
	}

	var likes []models.PostLike
	if err := database.C.
		Where("post_id IN ?", idx).
		Order("created_at ASC, account_id ASC").
		Find(&likes).Error; err != nil {
		return in, storeFailure("load likes", err)
	}
	likeMap := lo.GroupBy(likes, func(item models.PostLike) uint {
		return item.PostID
	})

	saved := make([]uint, 0)
	if viewer != nil {
		if err := database.C.Model(&models.SavedPost{}).
			Where("account_id = ? AND post_id IN ?", *viewer, idx).
			Pluck("post_id", &saved).Error; err != nil {
			return in, storeFailure("load saved posts", err)
		}
	}

	for i, item := range in {
		item.Likes = lo.Map(likeMap[item.ID], func(like models.PostLike, _ int) uint {
			return like.AccountID
		})
		if item.Comments == nil {
			item.Comments = make([]models.Comment, 0)
		}
		item.Metric = models.PostMetric{
			LikeCount:    len(item.Likes),
			CommentCount: len(item.Comments),
		}
		if viewer != nil {
			item.IsLiked = lo.Contains(item.Likes, *viewer)
			item.IsUserSaved = lo.Contains(saved, item.ID)
		}
		in[i] = item
	}

	return in, nil
}

func GetPost(id uint, viewer *uint) (models.Post, error) {
	var item models.Post
	if err := PreloadGeneral(database.C).First(&item, id).Error; err != nil {
		return item, wrapStoreError(err, "post")
	}

	out, err := CompletePostMeta(viewer, item)
	if err != nil {
		return item, err
	}
	return out[0], nil
}

func CountPost(tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Model(&models.Post{}).Count(&count).Error; err != nil {
		return count, storeFailure("count posts", err)
	}

	return count, nil
}

// ListPost lists the posts newest first, a negative take or offset disables that bound.
func ListPost(tx *gorm.DB, take int, offset int, viewer *uint) ([]models.Post, error) {
	if take > MaxPageSize() {
		take = MaxPageSize()
	}

	if take >= 0 {
		tx = tx.Limit(take)
	}
	if offset >= 0 {
		tx = tx.Offset(offset)
	}

	items := make([]models.Post, 0)
	if err := PreloadGeneral(tx).
		Order("created_at DESC, id DESC").
		Find(&items).Error; err != nil {
		return items, storeFailure("list posts", err)
	}

	return CompletePostMeta(viewer, items...)
}

func ListAccountPosts(account uint, viewer *uint) ([]models.Post, error) {
	if _, err := GetAccount(account); err != nil {
		return nil, err
	}
	return ListPost(FilterPostWithAuthors(database.C, []uint{account}), -1, -1, viewer)
}

func NewPost(author models.Account, item models.Post) (models.Post, error) {
	item.Title = strings.TrimSpace(item.Title)
	item.Content = strings.TrimSpace(item.Content)
	if len(item.Title) == 0 {
		return item, fmt.Errorf("%w: title is required", ErrInvalidOperation)
	} else if len(item.Content) == 0 {
		return item, fmt.Errorf("%w: content is required", ErrInvalidOperation)
	}

	start := time.Now()

	item.ID = 0
	item.AccountID = author.ID
	item.Account = models.Account{}
	item.Comments = nil
	item.Tags = NormalizeTags(item.Tags)
	item.Language = DetectLanguage(item.Content)

	log.Debug().Msg("Saving post record into database...")
	if err := database.C.Create(&item).Error; err != nil {
		return item, storeFailure("save post", err)
	}

	gap.PublishEvent("posts.new", map[string]any{
		"post_id":    item.ID,
		"account_id": author.ID,
	})

	log.Debug().Dur("elapsed", time.Since(start)).Msg("The post is posted.")
	return GetPost(item.ID, &author.ID)
}

type PostPatch struct {
	Title       string
	Content     string
	Tags        []string
	AIGenerated *bool
}

// EditPost applies the non-empty fields of the patch, only the owner may edit.
func EditPost(requester uint, post uint, patch PostPatch) (models.Post, error) {
	var item models.Post
	if err := database.C.First(&item, post).Error; err != nil {
		return item, wrapStoreError(err, "post")
	}
	if item.AccountID != requester {
		return item, fmt.Errorf("%w: you are not allowed to edit this post", ErrForbidden)
	}

	if title := strings.TrimSpace(patch.Title); len(title) > 0 {
		item.Title = title
	}
	if content := strings.TrimSpace(patch.Content); len(content) > 0 && content != item.Content {
		item.Content = content
		item.Language = DetectLanguage(content)
	}
	if patch.Tags != nil {
		item.Tags = NormalizeTags(patch.Tags)
	}
	if patch.AIGenerated != nil {
		item.AIGenerated = *patch.AIGenerated
	}
	item.EditedAt = lo.ToPtr(time.Now())

	if err := database.C.Save(&item).Error; err != nil {
		return item, storeFailure("update post", err)
	}

	return GetPost(item.ID, &requester)
}

// DeletePost removes the post with its likes, saves and comments, only the owner may delete.
func DeletePost(requester uint, post uint) error {
	var item models.Post
	if err := database.C.First(&item, post).Error; err != nil {
		return wrapStoreError(err, "post")
	}
	if item.AccountID != requester {
		return fmt.Errorf("%w: you are not allowed to delete this post", ErrForbidden)
	}

	if err := database.C.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", item.ID).Delete(&models.PostLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", item.ID).Delete(&models.SavedPost{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", item.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	}); err != nil {
		return storeFailure("delete post", err)
	}

	gap.PublishEvent("posts.delete", map[string]any{
		"post_id":    item.ID,
		"account_id": item.AccountID,
	})
	return nil
}
