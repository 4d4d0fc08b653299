package api

import (
	"git.solsynth.dev/hypernet/quill/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/quill/pkg/internal/models"
	"git.solsynth.dev/hypernet/quill/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func getMyProfile(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	profile, err := services.GetProfile(user.ID, &user.ID)
	if err != nil {
		return err
	}

	return c.JSON(profile)
}

func updateMyProfile(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	var data struct {
		Name   string `json:"name" validate:"max=256"`
		Bio    string `json:"bio" validate:"max=4096"`
		Avatar string `json:"avatar" validate:"omitempty,url"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	account, err := services.UpdateProfile(user.ID, services.ProfilePatch{
		Name:   data.Name,
		Bio:    data.Bio,
		Avatar: data.Avatar,
	})
	if err != nil {
		return err
	}

	return c.JSON(account)
}

func deleteMyAccount(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	if err := services.DeleteAccount(user.ID); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Account deleted successfully"})
}

func listSavedPost(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	items, err := services.ListSavedPosts(user.ID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"count": len(items),
		"data":  items,
	})
}

func getMyStats(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	stats, err := services.GetAccountStats(user.ID)
	if err != nil {
		return err
	}

	return c.JSON(stats)
}

func getProfile(c *fiber.Ctx) error {
	id, err := getIdParam(c, "accountId")
	if err != nil {
		return err
	}

	profile, err := services.GetProfile(id, exts.GetViewer(c))
	if err != nil {
		return err
	}

	return c.JSON(profile)
}

func listAccountPost(c *fiber.Ctx) error {
	id, err := getIdParam(c, "accountId")
	if err != nil {
		return err
	}

	items, err := services.ListAccountPosts(id, exts.GetViewer(c))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"count": len(items),
		"data":  items,
	})
}

func getAccountStats(c *fiber.Ctx) error {
	id, err := getIdParam(c, "accountId")
	if err != nil {
		return err
	}

	stats, err := services.GetAccountStats(id)
	if err != nil {
		return err
	}

	return c.JSON(stats)
}
