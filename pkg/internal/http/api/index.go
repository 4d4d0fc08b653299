package api

import (
	"github.com/gofiber/fiber/v2"
)

func MapAPIs(app *fiber.App, baseURL string) {
	api := app.Group(baseURL)
	{
		posts := api.Group("/posts")
		{
			posts.Get("/", getFeed)
			posts.Post("/", createPost)
			posts.Get("/:postId", getPost)
			posts.Put("/:postId", editPost)
			posts.Delete("/:postId", deletePost)
			posts.Post("/:postId/like", likePost)
			posts.Post("/:postId/save", savePost)
			posts.Post("/:postId/comments", createComment)
			posts.Delete("/:postId/comments/:commentId", deleteComment)
		}

		users := api.Group("/users")
		{
			me := users.Group("/me")
			{
				me.Get("/", getMyProfile)
				me.Put("/", updateMyProfile)
				me.Delete("/", deleteMyAccount)
				me.Get("/saved", listSavedPost)
				me.Get("/stats", getMyStats)
			}

			users.Get("/:accountId", getProfile)
			users.Get("/:accountId/posts", listAccountPost)
			users.Get("/:accountId/followers", listFollowers)
			users.Get("/:accountId/following", listFollowing)
			users.Get("/:accountId/stats", getAccountStats)
			users.Post("/:accountId/follow", followAccount)
			users.Post("/:accountId/unfollow", unfollowAccount)
		}
	}
}

func getIdParam(c *fiber.Ctx, key string) (uint, error) {
	id, err := c.ParamsInt(key, 0)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+key+", must be a positive number")
	}
	return uint(id), nil
}
