package controller

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"workout-generator-be/internal/service"
	"workout-generator-be/pkg/sampler"

	"github.com/gofiber/fiber/v2"
)

const defaultPickCount = 1

// ParsePickCount reads an untrusted quantity. Missing or non-numeric input
// falls back to one pick; negative counts are rejected. Counts too large for
// an int are clamped, which still selects every record.
func ParsePickCount(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if errors.Is(err, strconv.ErrRange) {
		if n < 0 {
			return 0, sampler.ErrInvalidPickCount
		}
		return math.MaxInt, nil
	}
	if err != nil {
		return defaultPickCount, nil
	}
	if n < 0 {
		return 0, sampler.ErrInvalidPickCount
	}
	return n, nil
}

// toFiberError maps service sentinels onto HTTP statuses. Anything else is
// left for the error middleware to report as a 500.
func toFiberError(err error) error {
	switch {
	case errors.Is(err, service.ErrExerciseNotFound):
		return fiber.NewError(fiber.StatusNotFound, "No matching exercise found")
	case errors.Is(err, service.ErrNoExercises):
		return fiber.NewError(fiber.StatusNotFound, "No exercises available")
	case errors.Is(err, service.ErrNameRequired):
		return fiber.NewError(fiber.StatusBadRequest, "Query 'name' is required")
	case errors.Is(err, service.ErrInvalidFilter):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, sampler.ErrInvalidPickCount):
		return fiber.NewError(fiber.StatusBadRequest, "Query 'quantity' must not be negative")
	}
	return err
}
