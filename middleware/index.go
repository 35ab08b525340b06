package middleware

import (
	"errors"
	"os"
	"strings"

	"github.com/ciby9833/xspace-sub002/model"
	"github.com/ciby9833/xspace-sub002/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Protected verifies the bearer token and builds the actor context every
// operation runs under. Token issuance belongs to the external auth
// service; this side only verifies and unpacks.
func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies("access_token")
		if token == "" {
			auth := c.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				token = strings.TrimPrefix(auth, "Bearer ")
			}
		}
		if token == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Missing token", nil)
		}

		jwtToken, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !jwtToken.Valid {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Invalid token", nil)
		}

		actor, err := actorFromClaims(jwtToken.Claims)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Malformed token claims", nil)
		}

		c.Locals("actor", actor)
		return c.Next()
	}
}

func actorFromClaims(claims jwt.Claims) (model.Actor, error) {
	mapClaims, ok := claims.(jwt.MapClaims)
	if !ok {
		return model.Actor{}, errors.New("claims are not a map")
	}

	userID, ok := mapClaims["userId"].(float64)
	if !ok {
		return model.Actor{}, errors.New("missing userId claim")
	}
	level, ok := mapClaims["level"].(string)
	if !ok {
		return model.Actor{}, errors.New("missing level claim")
	}

	actor := model.Actor{
		UserID: uint(userID),
		Level:  model.AccountLevel(level),
	}
	if name, ok := mapClaims["name"].(string); ok {
		actor.Name = name
	}
	if companyID, ok := mapClaims["companyId"].(float64); ok {
		id := uint(companyID)
		actor.CompanyID = &id
	}
	if rawStores, ok := mapClaims["storeIds"].([]interface{}); ok {
		for _, v := range rawStores {
			if id, ok := v.(float64); ok {
				actor.StoreIDs = append(actor.StoreIDs, uint(id))
			}
		}
	}
	if rawPerms, ok := mapClaims["permissions"].([]interface{}); ok {
		for _, v := range rawPerms {
			if p, ok := v.(string); ok {
				actor.Permissions = append(actor.Permissions, p)
			}
		}
	}
	return actor, nil
}

// ActorFromCtx pulls the actor stored by Protected.
func ActorFromCtx(c *fiber.Ctx) model.Actor {
	actor, _ := c.Locals("actor").(model.Actor)
	return actor
}
