package api

import (
	"git.solsynth.dev/hypernet/quill/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/quill/pkg/internal/models"
	"git.solsynth.dev/hypernet/quill/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func createComment(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, err := getIdParam(c, "postId")
	if err != nil {
		return err
	}

	var data struct {
		Text string `json:"text" validate:"required,max=4096"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := services.AddComment(user.ID, id, data.Text)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

func deleteComment(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	postId, err := getIdParam(c, "postId")
	if err != nil {
		return err
	}
	commentId, err := getIdParam(c, "commentId")
	if err != nil {
		return err
	}

	item, err := services.DeleteComment(postId, commentId, user.ID)
	if err != nil {
		return err
	}

	return c.JSON(item)
}
