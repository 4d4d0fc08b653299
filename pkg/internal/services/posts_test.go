package services

import (
	"testing"
	"time"

	"git.solsynth.dev/hypernet/quill/pkg/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, []string{"go", "web"}, []string(NormalizeTags([]string{" go ", "go", "", "web", "  "})))
	assert.Empty(t, NormalizeTags(nil))
}

func TestNewPost(t *testing.T) {
	resetDatabase(t)
	author := newAccount(t, 1)

	_, err := NewPost(author, models.Post{Title: "  ", Content: "Something"})
	assert.ErrorIs(t, err, ErrInvalidOperation)
	_, err = NewPost(author, models.Post{Title: "Title", Content: ""})
	assert.ErrorIs(t, err, ErrInvalidOperation)

	item, err := NewPost(author, models.Post{
		Title:     " A day in the park ",
		Content:   "We walked through the park and watched the ducks on the pond all afternoon.",
		Tags:      []string{"life", " life ", "outdoor"},
		AccountID: 404,
	})
	require.NoError(t, err)
	assert.Equal(t, "A day in the park", item.Title)
	assert.Equal(t, author.ID, item.AccountID)
	assert.Equal(t, author.ID, item.Account.ID)
	assert.Equal(t, []string{"life", "outdoor"}, []string(item.Tags))
	assert.NotEmpty(t, item.Language)
	assert.NotNil(t, item.Likes)
	assert.NotNil(t, item.Comments)
}

func TestEditPost(t *testing.T) {
	resetDatabase(t)
	owner, stranger := newAccount(t, 1), newAccount(t, 2)
	post := newPost(t, owner.ID, "Original", time.Now())

	_, err := EditPost(stranger.ID, post.ID, PostPatch{Title: "Hijacked"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = EditPost(owner.ID, 404, PostPatch{Title: "Missing"})
	assert.ErrorIs(t, err, ErrNotFound)

	item, err := EditPost(owner.ID, post.ID, PostPatch{Tags: []string{"edited"}})
	require.NoError(t, err)
	assert.Equal(t, "Original", item.Title)
	assert.Equal(t, post.Content, item.Content)
	assert.Equal(t, []string{"edited"}, []string(item.Tags))
	assert.NotNil(t, item.EditedAt)
}

func TestDeletePostRemovesEngagement(t *testing.T) {
	resetDatabase(t)
	owner, viewer := newAccount(t, 1), newAccount(t, 2)
	post := newPost(t, owner.ID, "Doomed", time.Now())
	kept := newPost(t, owner.ID, "Kept", time.Now())

	_, _, err := ToggleLike(viewer.ID, post.ID)
	require.NoError(t, err)
	_, err = ToggleSave(viewer.ID, post.ID)
	require.NoError(t, err)
	_, err = AddComment(viewer.ID, post.ID, "Nice")
	require.NoError(t, err)
	_, _, err = ToggleLike(viewer.ID, kept.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, DeletePost(viewer.ID, post.ID), ErrForbidden)
	require.NoError(t, DeletePost(owner.ID, post.ID))

	_, err = GetPost(post.ID, nil)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualValues(t, 0, countRows(t, &models.PostLike{}, "post_id = ?", post.ID))
	assert.EqualValues(t, 0, countRows(t, &models.SavedPost{}, "post_id = ?", post.ID))
	assert.EqualValues(t, 0, countRows(t, &models.Comment{}, "post_id = ?", post.ID))
	assert.EqualValues(t, 1, countRows(t, &models.PostLike{}, "post_id = ?", kept.ID))

	assert.ErrorIs(t, DeletePost(owner.ID, post.ID), ErrNotFound)
}

func TestListAccountPosts(t *testing.T) {
	resetDatabase(t)
	a, b := newAccount(t, 1), newAccount(t, 2)
	base := time.Now().Truncate(time.Second)
	newPost(t, a.ID, "Older", base)
	newPost(t, a.ID, "Newer", base.Add(time.Minute))
	newPost(t, b.ID, "Foreign", base)

	items, err := ListAccountPosts(a.ID, &b.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Newer", items[0].Title)
	assert.Equal(t, "Older", items[1].Title)

	_, err = ListAccountPosts(404, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}
