package controller

import (
	"io"
	"time"

	"ai-notes-be/internal/dto"
	"ai-notes-be/internal/pkg/apperror"
	"ai-notes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISystemController interface {
	RegisterRoutes(r fiber.Router)
	Root(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
	UploadText(ctx *fiber.Ctx) error
}

type systemController struct {
	uploadService service.IUploadService
}

func NewSystemController(uploadService service.IUploadService) ISystemController {
	return &systemController{
		uploadService: uploadService,
	}
}

func (c *systemController) RegisterRoutes(r fiber.Router) {
	r.Get("/", c.Root)
	r.Get("/health", c.Health)
	r.Post("/upload-text", c.UploadText)
}

func (c *systemController) Root(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.MessageResponse{Message: "AI Notes API is running"})
}

func (c *systemController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
	})
}

func (c *systemController) UploadText(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return apperror.Wrap(apperror.KindValidation, "file is required", err)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperror.Wrap(apperror.KindValidation, "Unable to read uploaded file", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return apperror.Wrap(apperror.KindValidation, "Unable to read uploaded file", err)
	}

	res, err := c.uploadService.ParseTextFile(fileHeader.Filename, data)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
