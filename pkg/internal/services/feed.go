package services

import (
	"fmt"
	"math"
	"time"

	"git.solsynth.dev/hypernet/quill/pkg/internal/database"
	"git.solsynth.dev/hypernet/quill/pkg/internal/models"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

const (
	FeedFilterAll       = "all"
	FeedFilterFollowing = "following"
)

type FeedQuery struct {
	Viewer   *uint
	Filter   string
	Page     int
	PageSize int
}

type FeedPage struct {
	Posts       []models.Post `json:"posts"`
	CurrentPage int           `json:"current_page"`
	TotalPages  int           `json:"total_pages"`
	TotalPosts  int64         `json:"total_posts"`
	HasMore     bool          `json:"has_more"`
}

func DefaultPageSize() int {
	if size := viper.GetInt("feed.default_page_size"); size > 0 {
		return size
	}
	return 5
}

func MaxPageSize() int {
	if size := viper.GetInt("feed.max_page_size"); size > 0 {
		return size
	}
	return 100
}

func GetFeed(query FeedQuery) (FeedPage, error) {
	if len(query.Filter) == 0 {
		query.Filter = FeedFilterAll
	}
	if query.Filter != FeedFilterAll && query.Filter != FeedFilterFollowing {
		return FeedPage{}, fmt.Errorf("%w: unknown feed filter %q", ErrInvalidOperation, query.Filter)
	}
	if query.Filter == FeedFilterFollowing && query.Viewer == nil {
		query.Filter = FeedFilterAll
	}
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PageSize <= 0 {
		query.PageSize = DefaultPageSize()
	}
	if query.PageSize > MaxPageSize() {
		query.PageSize = MaxPageSize()
	}

	start := time.Now()
	defer func() {
		feedDuration.WithLabelValues(query.Filter).Observe(time.Since(start).Seconds())
	}()

	page := FeedPage{
		Posts:       make([]models.Post, 0),
		CurrentPage: query.Page,
	}

	var authors []uint
	if query.Filter == FeedFilterFollowing {
		var err error
		if authors, err = ListFollowingID(*query.Viewer); err != nil {
			return page, err
		}
		if len(authors) == 0 {
			return page, nil
		}
	}

	newTx := func() *gorm.DB {
		tx := database.C.Model(&models.Post{})
		if authors != nil {
			tx = FilterPostWithAuthors(tx, authors)
		}
		return tx
	}

	count, err := CountPost(newTx())
	if err != nil {
		return page, err
	}

	page.TotalPosts = count
	page.TotalPages = int((count + int64(query.PageSize) - 1) / int64(query.PageSize))

	// Pages whose offset does not fit an int lie past any possible result.
	if query.Page-1 > (math.MaxInt-query.PageSize)/query.PageSize {
		return page, nil
	}
	offset := (query.Page - 1) * query.PageSize
	if int64(offset) >= count {
		return page, nil
	}

	items, err := ListPost(newTx(), query.PageSize, offset, query.Viewer)
	if err != nil {
		return page, err
	}

	page.Posts = items
	page.HasMore = int64(offset)+int64(len(items)) < count

	return page, nil
}
