package posts

import (
	"errors"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/JoyBrar2001/snapgram/internal/gateway"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/recent", func(c *fiber.Ctx) error {
		posts, err := svc.Recent(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(posts)
	})

	r.Get("/infinite", func(c *fiber.Ctx) error {
		posts, err := svc.Infinite(c.Context(), c.Query("cursor"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		cursor := ""
		if len(posts) > 0 {
			cursor = posts[len(posts)-1].ID
		}
		return c.JSON(fiber.Map{"documents": posts, "cursor": cursor})
	})

	r.Get("/search", func(c *fiber.Ctx) error {
		posts, err := svc.Search(c.Context(), c.Query("q"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(posts)
	})

	r.Get("/filtered", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		posts, err := svc.Filtered(c.Context(), c.Query("filter"), userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(posts)
	})

	r.Get("/saved", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		posts, err := svc.Saved(c.Context(), userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(posts)
	})

	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)

		file, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "image file is required")
		}
		data, err := readUpload(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "unreadable file")
		}

		post, err := svc.Create(c.Context(), gateway.NewPost{
			UserID:   userID,
			Caption:  c.FormValue("caption"),
			Location: c.FormValue("location"),
			Tags:     c.FormValue("tags"),
			File:     data,
			FileName: file.Filename,
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(post)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		post, err := svc.ByID(c.Context(), c.Params("id"))
		if errors.Is(err, gateway.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "post not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(post)
	})

	r.Patch("/:id", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		existing, err := svc.ByID(c.Context(), c.Params("id"))
		if errors.Is(err, gateway.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "post not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if existing.Creator != userID {
			return fiber.NewError(fiber.StatusForbidden, "cannot edit another user's post")
		}

		input := gateway.UpdatePostInput{
			PostID:   existing.ID,
			Caption:  c.FormValue("caption"),
			Location: c.FormValue("location"),
			Tags:     c.FormValue("tags"),
			ImageURL: existing.ImageURL,
			ImageID:  existing.ImageID,
		}
		if file, err := c.FormFile("file"); err == nil {
			data, err := readUpload(file)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "unreadable file")
			}
			input.File = data
			input.FileName = file.Filename
		}

		post, err := svc.Update(c.Context(), input)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(post)
	})

	r.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		existing, err := svc.ByID(c.Context(), c.Params("id"))
		if errors.Is(err, gateway.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "post not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if existing.Creator != userID {
			return fiber.NewError(fiber.StatusForbidden, "cannot delete another user's post")
		}

		if err := svc.Delete(c.Context(), existing.ID, existing.ImageID); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Post("/:id/like", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		post, err := svc.Like(c.Context(), c.Params("id"), userID)
		if errors.Is(err, gateway.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "post not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(post)
	})

	r.Post("/:id/save", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		record, err := svc.Save(c.Context(), userID, c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(record)
	})

	r.Delete("/saved/:recordId", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		err := svc.Unsave(c.Context(), userID, c.Params("recordId"), c.Query("post_id"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

func readUpload(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
