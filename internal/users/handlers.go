package users

import (
	"errors"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/JoyBrar2001/snapgram/internal/gateway"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit"))
		users, err := svc.All(c.Context(), limit)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(users)
	})

	r.Get("/me", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		session, _ := c.Locals("session").(string)
		user, err := svc.Current(c.Context(), session, userID)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return c.JSON(user)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		user, err := svc.ByID(c.Context(), c.Params("id"))
		if errors.Is(err, gateway.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(user)
	})

	r.Patch("/:id", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		if userID != c.Params("id") {
			return fiber.NewError(fiber.StatusForbidden, "cannot edit another user's profile")
		}

		input := gateway.UpdateUserInput{
			UserID:   userID,
			Name:     c.FormValue("name"),
			Bio:      c.FormValue("bio"),
			ImageURL: c.FormValue("image_url"),
			ImageID:  c.FormValue("image_id"),
		}
		if file, err := c.FormFile("file"); err == nil {
			data, err := readUpload(file)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "unreadable file")
			}
			input.File = data
			input.FileName = file.Filename
		}

		user, err := svc.Update(c.Context(), input)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(user)
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
