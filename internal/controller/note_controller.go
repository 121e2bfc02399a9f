package controller

import (
	"ai-notes-be/internal/dto"
	"ai-notes-be/internal/pkg/apperror"
	"ai-notes-be/internal/pkg/serverutils"
	"ai-notes-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Summarize(ctx *fiber.Ctx) error
	BulkSummarize(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService service.INoteService
}

func NewNoteController(noteService service.INoteService) INoteController {
	return &noteController{
		noteService: noteService,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/notes")
	h.Post("/", c.Create)
	h.Get("/", c.List)
	h.Post("/bulk-summarize", c.BulkSummarize)
	h.Get("/:id", c.Show)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)
	h.Post("/:id/summarize", c.Summarize)
}

// noteID parses the :id path parameter. An id that is not a UUID cannot
// exist, so it is reported as not found.
func noteID(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, apperror.ErrNoteNotFound
	}
	return id, nil
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Wrap(apperror.KindValidation, "Invalid request body", err)
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.Create(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *noteController) List(ctx *fiber.Ctx) error {
	res, err := c.noteService.List(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *noteController) Show(ctx *fiber.Ctx) error {
	id, err := noteID(ctx)
	if err != nil {
		return err
	}

	res, err := c.noteService.Show(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *noteController) Update(ctx *fiber.Ctx) error {
	id, err := noteID(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Wrap(apperror.KindValidation, "Invalid request body", err)
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.Update(ctx.UserContext(), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	id, err := noteID(ctx)
	if err != nil {
		return err
	}

	if err := c.noteService.Delete(ctx.UserContext(), id); err != nil {
		return err
	}

	return ctx.JSON(dto.MessageResponse{Message: "Note deleted successfully"})
}

func (c *noteController) Summarize(ctx *fiber.Ctx) error {
	id, err := noteID(ctx)
	if err != nil {
		return err
	}

	res, err := c.noteService.Summarize(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *noteController) BulkSummarize(ctx *fiber.Ctx) error {
	res, err := c.noteService.BulkSummarize(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
