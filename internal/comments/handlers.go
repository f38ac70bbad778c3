package comments

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/JoyBrar2001/snapgram/internal/gateway"
)

type postCommentRequest struct {
	Comment string `json:"comment"`
}

// RegisterRoutes mounts the comment surface: listing and posting hang
// off the post resource, deletion off the comment itself.
func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/posts/:id/comments", func(c *fiber.Ctx) error {
		comments, err := svc.ForPost(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(comments)
	})

	r.Post("/posts/:id/comments", authMiddleware, func(c *fiber.Ctx) error {
		var req postCommentRequest
		if err := c.BodyParser(&req); err != nil || req.Comment == "" {
			return fiber.NewError(fiber.StatusBadRequest, "comment is required")
		}

		userID, _ := c.Locals("user_id").(string)
		comment, err := svc.Post(c.Context(), gateway.NewComment{
			PostID: c.Params("id"),
			UserID: userID,
			Text:   req.Comment,
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(comment)
	})

	r.Delete("/comments/:id", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		comment, err := svc.ByID(c.Context(), c.Params("id"))
		if errors.Is(err, gateway.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "comment not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if comment.UserID != userID {
			return fiber.NewError(fiber.StatusForbidden, "cannot delete another user's comment")
		}

		if err := svc.Delete(c.Context(), comment.ID, comment.PostID); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
