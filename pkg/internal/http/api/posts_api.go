package api

import (
	"git.solsynth.dev/hypernet/quill/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/quill/pkg/internal/models"
	"git.solsynth.dev/hypernet/quill/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

func getFeed(c *fiber.Ctx) error {
	page, err := services.GetFeed(services.FeedQuery{
		Viewer:   exts.GetViewer(c),
		Filter:   c.Query("filter", services.FeedFilterAll),
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("limit", 0),
	})
	if err != nil {
		return err
	}

	return c.JSON(page)
}

func getPost(c *fiber.Ctx) error {
	id, err := getIdParam(c, "postId")
	if err != nil {
		return err
	}

	item, err := services.GetPost(id, exts.GetViewer(c))
	if err != nil {
		return err
	}

	return c.JSON(item)
}

func createPost(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	var data struct {
		Title       string   `json:"title" validate:"required,max=256"`
		Content     string   `json:"content" validate:"required"`
		Tags        []string `json:"tags" validate:"max=16,dive,max=32"`
		AIGenerated bool     `json:"ai_generated"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := services.NewPost(user, models.Post{
		Title:       data.Title,
		Content:     data.Content,
		Tags:        data.Tags,
		AIGenerated: data.AIGenerated,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

func editPost(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, err := getIdParam(c, "postId")
	if err != nil {
		return err
	}

	var data struct {
		Title       string   `json:"title" validate:"max=256"`
		Content     string   `json:"content"`
		Tags        []string `json:"tags" validate:"max=16,dive,max=32"`
		AIGenerated *bool    `json:"ai_generated"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := services.EditPost(user.ID, id, services.PostPatch{
		Title:       data.Title,
		Content:     data.Content,
		Tags:        data.Tags,
		AIGenerated: data.AIGenerated,
	})
	if err != nil {
		return err
	}

	return c.JSON(item)
}

func deletePost(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, err := getIdParam(c, "postId")
	if err != nil {
		return err
	}

	if err := services.DeletePost(user.ID, id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Post removed",
		"id":      id,
	})
}

func likePost(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, err := getIdParam(c, "postId")
	if err != nil {
		return err
	}

	liked, item, err := services.ToggleLike(user.ID, id)
	if err != nil {
		return err
	}

	return c.Status(lo.Ternary(liked, fiber.StatusCreated, fiber.StatusOK)).JSON(item)
}

func savePost(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, err := getIdParam(c, "postId")
	if err != nil {
		return err
	}

	result, err := services.ToggleSave(user.ID, id)
	if err != nil {
		return err
	}

	return c.JSON(result)
}
