package services

import (
	"sync"
	"testing"
	"time"

	"git.solsynth.dev/hypernet/quill/pkg/internal/database"
	"git.solsynth.dev/hypernet/quill/pkg/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestToggleLikeTwiceRestores(t *testing.T) {
	resetDatabase(t)
	author, viewer := newAccount(t, 1), newAccount(t, 2)
	post := newPost(t, author.ID, "Hello", time.Now())

	liked, item, err := ToggleLike(viewer.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, []uint{viewer.ID}, item.Likes)
	assert.True(t, item.IsLiked)
	assert.Equal(t, 1, item.Metric.LikeCount)

	liked, item, err = ToggleLike(viewer.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Empty(t, item.Likes)
	assert.False(t, item.IsLiked)
	assert.EqualValues(t, 0, countRows(t, &models.PostLike{}, "post_id = ?", post.ID))
}

func TestToggleLikeMissingPost(t *testing.T) {
	resetDatabase(t)
	viewer := newAccount(t, 1)

	_, _, err := ToggleLike(viewer.ID, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleSave(t *testing.T) {
	resetDatabase(t)
	author, viewer := newAccount(t, 1), newAccount(t, 2)
	post := newPost(t, author.ID, "Hello", time.Now())

	result, err := ToggleSave(viewer.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, result.Saved)
	assert.Equal(t, "Post saved", result.Message)
	assert.Equal(t, []uint{post.ID}, result.SavedPosts)

	saved, err := ListSavedPosts(viewer.ID)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.True(t, saved[0].IsUserSaved)

	result, err = ToggleSave(viewer.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, result.Saved)
	assert.Equal(t, "Post unsaved", result.Message)
	assert.Empty(t, result.SavedPosts)

	_, err = ToggleSave(viewer.ID, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddComment(t *testing.T) {
	resetDatabase(t)
	author, viewer := newAccount(t, 1), newAccount(t, 2)
	post := newPost(t, author.ID, "Hello", time.Now())

	_, err := AddComment(viewer.ID, post.ID, "   ")
	assert.ErrorIs(t, err, ErrInvalidOperation)

	_, err = AddComment(viewer.ID, 404, "First")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = AddComment(viewer.ID, post.ID, "  First  ")
	require.NoError(t, err)
	item, err := AddComment(author.ID, post.ID, "Second")
	require.NoError(t, err)

	require.Len(t, item.Comments, 2)
	assert.Equal(t, "First", item.Comments[0].Text)
	assert.Equal(t, viewer.ID, item.Comments[0].Account.ID)
	assert.Equal(t, "Second", item.Comments[1].Text)
	assert.Equal(t, 2, item.Metric.CommentCount)
}

func TestDeleteCommentAuthorization(t *testing.T) {
	resetDatabase(t)
	owner, commenter, stranger := newAccount(t, 1), newAccount(t, 2), newAccount(t, 3)
	post := newPost(t, owner.ID, "Hello", time.Now())

	item, err := AddComment(commenter.ID, post.ID, "By commenter")
	require.NoError(t, err)
	item, err = AddComment(stranger.ID, post.ID, "By stranger")
	require.NoError(t, err)
	require.Len(t, item.Comments, 2)
	first, second := item.Comments[0], item.Comments[1]

	_, err = DeleteComment(post.ID, first.ID, stranger.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// The author of the comment may remove it.
	item, err = DeleteComment(post.ID, first.ID, commenter.ID)
	require.NoError(t, err)
	require.Len(t, item.Comments, 1)

	// So may the owner of the post.
	item, err = DeleteComment(post.ID, second.ID, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, item.Comments)

	_, err = DeleteComment(post.ID, second.ID, owner.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = DeleteComment(404, second.ID, owner.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleEdgeReportsOnlyItsOwnInsert(t *testing.T) {
	resetDatabase(t)
	author, viewer := newAccount(t, 1), newAccount(t, 2)
	post := newPost(t, author.ID, "Hello", time.Now())
	require.NoError(t, database.C.Create(&models.PostLike{PostID: post.ID, AccountID: viewer.ID}).Error)

	// The delete matches nothing, so the insert runs into the existing row.
	var added bool
	err := database.C.Transaction(func(tx *gorm.DB) error {
		var err error
		added, err = toggleEdge(tx, &models.PostLike{PostID: post.ID, AccountID: viewer.ID}, "1 = 0")
		return err
	})
	require.NoError(t, err)
	assert.False(t, added)
	assert.EqualValues(t, 1, countRows(t, &models.PostLike{}, "post_id = ?", post.ID))
}

func TestConcurrentToggleLikeMatchesStoredState(t *testing.T) {
	resetDatabase(t)
	author, viewer := newAccount(t, 1), newAccount(t, 2)
	post := newPost(t, author.ID, "Hello", time.Now())

	var wg sync.WaitGroup
	results := make([]bool, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			liked, _, err := ToggleLike(viewer.ID, post.ID)
			assert.NoError(t, err)
			results[i] = liked
		}(i)
	}
	wg.Wait()

	likes := 0
	for _, liked := range results {
		if liked {
			likes++
		} else {
			likes--
		}
	}
	assert.EqualValues(t, likes, countRows(t, &models.PostLike{}, "post_id = ?", post.ID))
}
