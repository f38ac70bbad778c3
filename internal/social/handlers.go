package social

import (
	"github.com/gofiber/fiber/v2"
)

type followRequest struct {
	UserID string `json:"user_id"`
}

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/follow", authMiddleware, func(c *fiber.Ctx) error {
		var req followRequest
		if err := c.BodyParser(&req); err != nil || req.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id is required")
		}

		followerID, _ := c.Locals("user_id").(string)
		if followerID == req.UserID {
			return fiber.NewError(fiber.StatusBadRequest, "cannot follow yourself")
		}

		record, err := svc.Follow(c.Context(), followerID, req.UserID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(record)
	})

	r.Delete("/follow", authMiddleware, func(c *fiber.Ctx) error {
		var req followRequest
		if err := c.BodyParser(&req); err != nil || req.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id is required")
		}

		followerID, _ := c.Locals("user_id").(string)
		if err := svc.Unfollow(c.Context(), followerID, req.UserID); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Get("/following/:id", func(c *fiber.Ctx) error {
		ids, err := svc.Following(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(ids)
	})

	r.Get("/followers/:id", func(c *fiber.Ctx) error {
		ids, err := svc.Followers(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(ids)
	})
}
