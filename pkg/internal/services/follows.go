package services

import (
	"fmt"

	"git.solsynth.dev/hypernet/quill/pkg/internal/database"
	"git.solsynth.dev/hypernet/quill/pkg/internal/gap"
	"git.solsynth.dev/hypernet/quill/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowResult struct {
	Following []uint      `json:"following"`
	Followers []uint      `json:"followers"`
	Profile   ProfileView `json:"profile"`
}

func ensureAccountsExist(tx *gorm.DB, id ...uint) error {
	id = lo.Uniq(id)
	var count int64
	if err := tx.Model(&models.Account{}).Where("id IN ?", id).Count(&count).Error; err != nil {
		return storeFailure("load accounts", err)
	}
	if int(count) != len(id) {
		return fmt.Errorf("%w: account was not found", ErrNotFound)
	}
	return nil
}

func Follow(viewer, target uint) (FollowResult, error) {
	var result FollowResult
	if viewer == target {
		err := fmt.Errorf("%w: you cannot follow yourself", ErrInvalidOperation)
		observeMutation("follow", err)
		return result, err
	}

	err := database.C.Transaction(func(tx *gorm.DB) error {
		if err := ensureAccountsExist(tx, viewer, target); err != nil {
			return err
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.Follow{FollowerID: viewer, FolloweeID: target})
		if res.Error != nil {
			return storeFailure("save follow", res.Error)
		} else if res.RowsAffected == 0 {
			return fmt.Errorf("%w: already following this account", ErrInvalidOperation)
		}
		return nil
	})
	observeMutation("follow", err)
	if err != nil {
		return result, err
	}

	InvalidateRelationCache(viewer, target)
	gap.PublishEvent("accounts.follow", map[string]any{
		"follower_id": viewer,
		"followee_id": target,
	})
	log.Debug().Uint("follower", viewer).Uint("followee", target).Msg("Account followed.")

	return buildFollowResult(viewer, target)
}

func Unfollow(viewer, target uint) (FollowResult, error) {
	var result FollowResult
	if viewer == target {
		err := fmt.Errorf("%w: you cannot unfollow yourself", ErrInvalidOperation)
		observeMutation("unfollow", err)
		return result, err
	}

	err := database.C.Transaction(func(tx *gorm.DB) error {
		if err := ensureAccountsExist(tx, viewer, target); err != nil {
			return err
		}
		res := tx.Where("follower_id = ? AND followee_id = ?", viewer, target).Delete(&models.Follow{})
		if res.Error != nil {
			return storeFailure("remove follow", res.Error)
		} else if res.RowsAffected == 0 {
			return fmt.Errorf("%w: not following this account", ErrInvalidOperation)
		}
		return nil
	})
	observeMutation("unfollow", err)
	if err != nil {
		return result, err
	}

	InvalidateRelationCache(viewer, target)
	gap.PublishEvent("accounts.unfollow", map[string]any{
		"follower_id": viewer,
		"followee_id": target,
	})
	log.Debug().Uint("follower", viewer).Uint("followee", target).Msg("Account unfollowed.")

	return buildFollowResult(viewer, target)
}

func buildFollowResult(viewer, target uint) (FollowResult, error) {
	var result FollowResult
	var err error
	if result.Following, err = ListFollowingID(viewer); err != nil {
		return result, err
	}
	if result.Followers, err = ListFollowerID(target); err != nil {
		return result, err
	}
	if result.Profile, err = GetProfile(target, &viewer); err != nil {
		return result, err
	}
	return result, nil
}

// ListFollowingID returns the ids the account follows, oldest edge first.
func ListFollowingID(account uint) ([]uint, error) {
	key := GetFollowingCacheKey(account)
	if list, ok := getCachedIDList(key); ok {
		return list, nil
	}

	list := make([]uint, 0)
	if err := database.C.Model(&models.Follow{}).
		Where("follower_id = ?", account).
		Order("created_at ASC, followee_id ASC").
		Pluck("followee_id", &list).Error; err != nil {
		return list, storeFailure("list following", err)
	}

	setCachedIDList(key, list)
	return list, nil
}

// ListFollowerID returns the ids following the account, oldest edge first.
func ListFollowerID(account uint) ([]uint, error) {
	key := GetFollowersCacheKey(account)
	if list, ok := getCachedIDList(key); ok {
		return list, nil
	}

	list := make([]uint, 0)
	if err := database.C.Model(&models.Follow{}).
		Where("followee_id = ?", account).
		Order("created_at ASC, follower_id ASC").
		Pluck("follower_id", &list).Error; err != nil {
		return list, storeFailure("list followers", err)
	}

	setCachedIDList(key, list)
	return list, nil
}

func ListFollowers(account uint) ([]models.Account, error) {
	id, err := ListFollowerID(account)
	if err != nil {
		return nil, err
	}
	return ListAccountByID(id)
}

func ListFollowing(account uint) ([]models.Account, error) {
	id, err := ListFollowingID(account)
	if err != nil {
		return nil, err
	}
	return ListAccountByID(id)
}

func IsFollowing(viewer, target uint) bool {
	var count int64
	if err := database.C.Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", viewer, target).
		Count(&count).Error; err != nil {
		log.Warn().Err(err).Msg("An error occurred when checking follow state...")
		return false
	}
	return count > 0
}
