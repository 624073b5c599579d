// Package views renders the server-side HTML pages. The components are
// written in .templ files; the _templ.go files are generated from them.
package views

//go:generate templ generate

import (
	"fmt"
	"strings"

	"workout-generator-be/internal/dto"
	"workout-generator-be/internal/entity"
)

const appName = "Workout Generator"

// FormMessage values shown above the add-exercise form.
const (
	MessageEmptySections = "Fill in empty sections"
	MessageNotNumeric    = "Targets must be whole numbers"
	MessageSubmitted     = "Successfully submitted"
)

// None-found copy.
const (
	NoneFoundTitle   = "No exercises available"
	NoneFoundMessage = "Try adding other exercises"
	NoContentMessage = "No content to return"
)

var difficulties = []string{entity.DifficultyEasy, entity.DifficultyMedium, entity.DifficultyHard}

// ComposePageTitle appends the application name unless it is already there.
func ComposePageTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return appName
	}
	if strings.HasSuffix(title, "| "+appName) {
		return title
	}
	return title + " | " + appName
}

type formField struct {
	Name  string
	Value string
	Kind  string
}

func formFields(params dto.ExerciseForm) []formField {
	return []formField{
		{Name: "Name", Value: params.Name, Kind: "text"},
		{Name: "Easy", Value: params.Easy, Kind: "number"},
		{Name: "Medium", Value: params.Medium, Kind: "number"},
		{Name: "Hard", Value: params.Hard, Kind: "number"},
	}
}

func targetFor(e *dto.ExerciseResponse, level string) (int, bool) {
	ex := entity.Exercise{Easy: e.Easy, Medium: e.Medium, Hard: e.Hard}
	return ex.Target(level)
}

// tierSummary lists the target for every difficulty.
func tierSummary(e *dto.ExerciseResponse) string {
	return fmt.Sprintf("%s %d / %s %d / %s %d",
		entity.DifficultyEasy, e.Easy,
		entity.DifficultyMedium, e.Medium,
		entity.DifficultyHard, e.Hard,
	)
}
