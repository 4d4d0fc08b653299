package exts

import (
	"errors"
	"strings"

	"git.solsynth.dev/hypernet/quill/pkg/internal/models"
	"git.solsynth.dev/hypernet/quill/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type TokenClaims struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`

	jwt.RegisteredClaims
}

func ReadToken(token string) (*TokenClaims, error) {
	secret := viper.GetString("security.jwt_secret")
	if len(secret) == 0 {
		return nil, errors.New("jwt secret was not configured")
	}

	claims := new(TokenClaims)
	if _, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})); err != nil {
		return nil, err
	}

	return claims, nil
}

// Authenticate puts the account of a valid bearer token into the context,
// requests without one carry on as anonymous.
func Authenticate(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || len(strings.TrimSpace(token)) == 0 {
		return c.Next()
	}

	claims, err := ReadToken(strings.TrimSpace(token))
	if err != nil {
		log.Debug().Err(err).Msg("Rejected an invalid token, continue as anonymous...")
		return c.Next()
	}

	account, err := services.EnsureAccount(services.AccountClaims{
		ID:    claims.ID,
		Name:  claims.Name,
		Email: claims.Email,
	})
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			return c.Next()
		}
		return err
	}

	c.Locals("user", account)
	return c.Next()
}

func EnsureAuthenticated(c *fiber.Ctx) error {
	if _, ok := c.Locals("user").(models.Account); !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "access denied, no valid token provided")
	}
	return nil
}

// GetViewer returns the id of the requesting account or nil for anonymous requests.
func GetViewer(c *fiber.Ctx) *uint {
	if user, ok := c.Locals("user").(models.Account); ok {
		return &user.ID
	}
	return nil
}
