package controller

import (
	"workout-generator-be/internal/dto"
	"workout-generator-be/internal/pkg/serverutils"
	"workout-generator-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IExerciseController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	UpdateByName(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	GetRandom(ctx *fiber.Ctx) error
	GetRandomMany(ctx *fiber.Ctx) error
	GetRandomByTag(ctx *fiber.Ctx) error
}

type exerciseController struct {
	service service.IExerciseService
	protect fiber.Handler
}

// NewExerciseController serves the JSON API. protect guards the write
// routes.
func NewExerciseController(service service.IExerciseService, protect fiber.Handler) IExerciseController {
	return &exerciseController{
		service: service,
		protect: protect,
	}
}

func (c *exerciseController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/exercise/v1")
	h.Get("", c.GetAll)
	h.Post("", c.protect, c.Create)
	h.Get("/search", c.Search)
	h.Patch("/search", c.protect, c.UpdateByName)
	h.Get("/random", c.GetRandom)
	h.Get("/random/many", c.GetRandomMany)
	h.Get("/random/tag", c.GetRandomByTag)
	h.Patch("/:id", c.protect, c.Update)
}

func (c *exerciseController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateExerciseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create exercise", res))
}

// GetAll lists every exercise, or only those matching ?field=&value= when a
// field is given.
func (c *exerciseController) GetAll(ctx *fiber.Ctx) error {
	var (
		res []*dto.ExerciseResponse
		err error
	)
	if field := ctx.Query("field"); field != "" {
		res, err = c.service.FindBy(ctx.UserContext(), field, ctx.Query("value"))
	} else {
		res, err = c.service.GetAll(ctx.UserContext())
	}
	if err != nil {
		return toFiberError(err)
	}

	if len(res) == 0 {
		return ctx.JSON(serverutils.SuccessResponse("No content to return", res))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all exercise", res))
}

func (c *exerciseController) Search(ctx *fiber.Ctx) error {
	res, err := c.service.FindByName(ctx.UserContext(), ctx.Query("name"))
	if err != nil {
		return toFiberError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get exercise", res))
}

func (c *exerciseController) UpdateByName(ctx *fiber.Ctx) error {
	var req dto.UpdateExerciseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateByName(ctx.UserContext(), ctx.Query("name"), &req)
	if err != nil {
		return toFiberError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update exercise", res))
}

func (c *exerciseController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid exercise id")
	}

	var req dto.UpdateExerciseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.UserContext(), id, &req)
	if err != nil {
		return toFiberError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update exercise", res))
}

func (c *exerciseController) GetRandom(ctx *fiber.Ctx) error {
	res, err := c.service.GetRandom(ctx.UserContext())
	if err != nil {
		return toFiberError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get random exercise", res))
}

func (c *exerciseController) GetRandomMany(ctx *fiber.Ctx) error {
	quantity, err := ParsePickCount(ctx.Query("quantity"))
	if err != nil {
		return toFiberError(err)
	}

	res, err := c.service.GetRandomMany(ctx.UserContext(), quantity)
	if err != nil {
		return toFiberError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get random exercises", res))
}

func (c *exerciseController) GetRandomByTag(ctx *fiber.Ctx) error {
	quantity, err := ParsePickCount(ctx.Query("quantity"))
	if err != nil {
		return toFiberError(err)
	}

	res, err := c.service.GetRandomByTag(ctx.UserContext(), quantity)
	if err != nil {
		return toFiberError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get random exercises", res))
}
