package services

import (
	"errors"
	"fmt"
	"strings"

	"git.solsynth.dev/hypernet/quill/pkg/internal/database"
	"git.solsynth.dev/hypernet/quill/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AccountClaims is the identity carried by a verified bearer token.
type AccountClaims struct {
	ID    uint
	Name  string
	Email string
}

type ProfileView struct {
	models.Account

	Followers   []models.Account `json:"followers"`
	Following   []models.Account `json:"following"`
	IsFollowing bool             `json:"is_following"`
}

type AccountStats struct {
	Posts            int64 `json:"posts"`
	Followers        int64 `json:"followers"`
	Following        int64 `json:"following"`
	LikesReceived    int64 `json:"likes_received"`
	CommentsReceived int64 `json:"comments_received"`
}

// EnsureAccount returns the local account of the token holder, creating it on first sight.
func EnsureAccount(claims AccountClaims) (models.Account, error) {
	var account models.Account
	if claims.ID == 0 {
		return account, fmt.Errorf("%w: token carries no account id", ErrUnauthorized)
	}

	var deletions int64
	if err := database.C.Model(&models.AccountDeletion{}).
		Where("account_id = ?", claims.ID).
		Count(&deletions).Error; err != nil {
		return account, storeFailure("check account deletion", err)
	} else if deletions > 0 {
		return account, fmt.Errorf("%w: account was deleted", ErrUnauthorized)
	}

	err := database.C.First(&account, claims.ID).Error
	if err == nil {
		return account, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return account, wrapStoreError(err, "account")
	}

	account = models.Account{
		BaseModel: models.BaseModel{ID: claims.ID},
		Name:      strings.TrimSpace(claims.Name),
		Email:     strings.TrimSpace(claims.Email),
	}
	if err := database.C.Clauses(clause.OnConflict{DoNothing: true}).Create(&account).Error; err != nil {
		return account, storeFailure("provision account", err)
	}
	if err := database.C.First(&account, claims.ID).Error; err != nil {
		return account, wrapStoreError(err, "account")
	}

	log.Info().Uint("account", account.ID).Msg("Provisioned a new account from token claims.")
	return account, nil
}

func GetAccount(id uint) (models.Account, error) {
	var account models.Account
	if err := database.C.First(&account, id).Error; err != nil {
		return account, wrapStoreError(err, "account")
	}
	return account, nil
}

func ListAccountByID(id []uint) ([]models.Account, error) {
	accounts := make([]models.Account, 0, len(id))
	if len(id) == 0 {
		return accounts, nil
	}
	if err := database.C.Where("id IN ?", id).Order("id ASC").Find(&accounts).Error; err != nil {
		return accounts, storeFailure("list accounts", err)
	}
	return accounts, nil
}

func GetProfile(target uint, viewer *uint) (ProfileView, error) {
	var profile ProfileView

	account, err := GetAccount(target)
	if err != nil {
		return profile, err
	}
	profile.Account = account

	if profile.Followers, err = ListFollowers(target); err != nil {
		return profile, err
	}
	if profile.Following, err = ListFollowing(target); err != nil {
		return profile, err
	}
	if viewer != nil && *viewer != target {
		profile.IsFollowing = IsFollowing(*viewer, target)
	}

	return profile, nil
}

type ProfilePatch struct {
	Name   string
	Bio    string
	Avatar string
}

// UpdateProfile applies the non-empty fields of the patch.
func UpdateProfile(id uint, patch ProfilePatch) (models.Account, error) {
	account, err := GetAccount(id)
	if err != nil {
		return account, err
	}

	if name := strings.TrimSpace(patch.Name); len(name) > 0 {
		account.Name = name
	}
	if bio := strings.TrimSpace(patch.Bio); len(bio) > 0 {
		account.Bio = bio
	}
	if avatar := strings.TrimSpace(patch.Avatar); len(avatar) > 0 {
		account.Avatar = avatar
	}

	if err := database.C.Save(&account).Error; err != nil {
		return account, storeFailure("update profile", err)
	}
	return account, nil
}

func GetAccountStats(id uint) (AccountStats, error) {
	var stats AccountStats
	if _, err := GetAccount(id); err != nil {
		return stats, err
	}

	owned := func() *gorm.DB {
		return database.C.Model(&models.Post{}).Select("id").Where("account_id = ?", id)
	}

	if err := database.C.Model(&models.Post{}).Where("account_id = ?", id).Count(&stats.Posts).Error; err != nil {
		return stats, storeFailure("count posts", err)
	}
	if err := database.C.Model(&models.Follow{}).Where("followee_id = ?", id).Count(&stats.Followers).Error; err != nil {
		return stats, storeFailure("count followers", err)
	}
	if err := database.C.Model(&models.Follow{}).Where("follower_id = ?", id).Count(&stats.Following).Error; err != nil {
		return stats, storeFailure("count following", err)
	}
	if err := database.C.Model(&models.PostLike{}).Where("post_id IN (?)", owned()).Count(&stats.LikesReceived).Error; err != nil {
		return stats, storeFailure("count likes", err)
	}
	if err := database.C.Model(&models.Comment{}).Where("post_id IN (?)", owned()).Count(&stats.CommentsReceived).Error; err != nil {
		return stats, storeFailure("count comments", err)
	}

	return stats, nil
}
