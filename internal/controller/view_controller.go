package controller

import (
	"errors"
	"strconv"
	"strings"

	"workout-generator-be/internal/dto"
	"workout-generator-be/internal/pkg/logger"
	"workout-generator-be/internal/pkg/serverutils"
	"workout-generator-be/internal/service"
	"workout-generator-be/internal/views"
	"workout-generator-be/pkg/sampler"

	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"
)

type IViewController interface {
	RegisterRoutes(r fiber.Router)
	Home(ctx *fiber.Ctx) error
	Results(ctx *fiber.Ctx) error
	ShowForm(ctx *fiber.Ctx) error
	SubmitForm(ctx *fiber.Ctx) error
	AllExercises(ctx *fiber.Ctx) error
}

type viewController struct {
	service service.IExerciseService
	logger  logger.ILogger
}

func NewViewController(service service.IExerciseService, log logger.ILogger) IViewController {
	return &viewController{
		service: service,
		logger:  log,
	}
}

func (c *viewController) RegisterRoutes(r fiber.Router) {
	r.Get("/", c.Home)
	r.Get("/results", c.Results)
	r.Get("/add-exercise", c.ShowForm)
	r.Post("/add-exercise", c.SubmitForm)
	r.Get("/all-exercises", c.AllExercises)
}

func render(ctx *fiber.Ctx, status int, component templ.Component) error {
	ctx.Status(status).Type("html")
	return component.Render(ctx.UserContext(), ctx.Response().BodyWriter())
}

func (c *viewController) Home(ctx *fiber.Ctx) error {
	return render(ctx, fiber.StatusOK, views.Home())
}

func (c *viewController) Results(ctx *fiber.Ctx) error {
	quantity, err := ParsePickCount(ctx.Query("quantity"))
	if err != nil {
		return render(ctx, fiber.StatusBadRequest, views.NoneFound("Invalid quantity", "Choose zero or more exercises"))
	}

	res, err := c.service.GetRandomMany(ctx.UserContext(), quantity)
	switch {
	case errors.Is(err, service.ErrNoExercises):
		return render(ctx, fiber.StatusOK, views.NoneFound(views.NoneFoundTitle, views.NoneFoundMessage))
	case errors.Is(err, sampler.ErrInvalidPickCount):
		return render(ctx, fiber.StatusBadRequest, views.NoneFound("Invalid quantity", "Choose zero or more exercises"))
	case err != nil:
		return err
	}

	return render(ctx, fiber.StatusOK, views.Result(res.Exercises, ctx.Query("difficulty")))
}

func (c *viewController) ShowForm(ctx *fiber.Ctx) error {
	return render(ctx, fiber.StatusOK, views.Form("", dto.ExerciseForm{}))
}

func (c *viewController) SubmitForm(ctx *fiber.Ctx) error {
	var form dto.ExerciseForm
	if err := ctx.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid form")
	}

	req, message := parseExerciseForm(form)
	if message != "" {
		c.logger.Debug("HTTP", "Invalid form", map[string]interface{}{"reason": message})
		return render(ctx, fiber.StatusOK, views.Form(message, form))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return render(ctx, fiber.StatusOK, views.Form(err.Error(), form))
	}

	if _, err := c.service.Create(ctx.UserContext(), req); err != nil {
		return err
	}

	return render(ctx, fiber.StatusOK, views.Form(views.MessageSubmitted, dto.ExerciseForm{}))
}

func (c *viewController) AllExercises(ctx *fiber.Ctx) error {
	res, err := c.service.GetAll(ctx.UserContext())
	if err != nil {
		c.logger.Error("HTTP", "Failed to list exercises", map[string]interface{}{"error": err.Error()})
		return render(ctx, fiber.StatusInternalServerError, views.NoneFound(views.NoneFoundTitle, views.NoneFoundMessage))
	}

	if len(res) == 0 {
		return render(ctx, fiber.StatusOK, views.NoneFound(views.NoneFoundTitle, views.NoContentMessage))
	}
	return render(ctx, fiber.StatusOK, views.ResultAll(res))
}

// parseExerciseForm converts the text form into a create request. A non-empty
// message means the form must be shown again.
func parseExerciseForm(form dto.ExerciseForm) (*dto.CreateExerciseRequest, string) {
	fields := []string{form.Name, form.Easy, form.Medium, form.Hard}
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return nil, views.MessageEmptySections
		}
	}

	targets := make([]int, 0, 3)
	for _, f := range fields[1:] {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil || n < 0 {
			return nil, views.MessageNotNumeric
		}
		targets = append(targets, n)
	}

	return &dto.CreateExerciseRequest{
		Name:   strings.TrimSpace(form.Name),
		Easy:   targets[0],
		Medium: targets[1],
		Hard:   targets[2],
	}, ""
}
