package api

import (
	"git.solsynth.dev/hypernet/quill/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/quill/pkg/internal/models"
	"git.solsynth.dev/hypernet/quill/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func followAccount(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, err := getIdParam(c, "accountId")
	if err != nil {
		return err
	}

	result, err := services.Follow(user.ID, id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":   "Successfully followed account",
		"following": result.Following,
		"followers": result.Followers,
		"profile":   result.Profile,
	})
}

func unfollowAccount(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, err := getIdParam(c, "accountId")
	if err != nil {
		return err
	}

	result, err := services.Unfollow(user.ID, id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":   "Successfully unfollowed account",
		"following": result.Following,
		"followers": result.Followers,
		"profile":   result.Profile,
	})
}

func listFollowers(c *fiber.Ctx) error {
	id, err := getIdParam(c, "accountId")
	if err != nil {
		return err
	}
	if _, err := services.GetAccount(id); err != nil {
		return err
	}

	items, err := services.ListFollowers(id)
	if err != nil {
		return err
	}

	return c.JSON(items)
}

func listFollowing(c *fiber.Ctx) error {
	id, err := getIdParam(c, "accountId")
	if err != nil {
		return err
	}
	if _, err := services.GetAccount(id); err != nil {
		return err
	}

	items, err := services.ListFollowing(id)
	if err != nil {
		return err
	}

	return c.JSON(items)
}
