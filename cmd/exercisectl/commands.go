package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"workout-generator-be/internal/dto"
	"workout-generator-be/internal/entity"
	"workout-generator-be/internal/service"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	success = color.New(color.FgGreen)
	info    = color.New(color.FgCyan)
	warning = color.New(color.FgYellow)
	heading = color.New(color.FgWhite, color.Bold)
)

// demoExercises is the starter set inserted by seed.
var demoExercises = []dto.CreateExerciseRequest{
	{Name: "Press up", Easy: 5, Medium: 10, Hard: 20},
	{Name: "Squat", Easy: 20, Medium: 40, Hard: 60},
	{Name: "Sit up", Easy: 10, Medium: 20, Hard: 30},
	{Name: "Crunch", Easy: 10, Medium: 20, Hard: 30},
}

func (c *cli) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the demo exercises that are not stored yet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.open(c.cfg.Sampling.Seed)
			if err != nil {
				return err
			}
			defer ws.Close()

			ctx := cmd.Context()
			for i := range demoExercises {
				req := demoExercises[i]
				_, err := ws.service.FindByName(ctx, req.Name)
				switch {
				case err == nil:
					info.Fprintf(c.out, "skip   %s\n", req.Name)
					continue
				case !errors.Is(err, service.ErrExerciseNotFound):
					return err
				}

				if _, err := ws.service.Create(ctx, &req); err != nil {
					return err
				}
				success.Fprintf(c.out, "insert %s\n", req.Name)
			}
			return nil
		},
	}
}

func (c *cli) sampleCmd() *cobra.Command {
	var (
		quantity   int
		difficulty string
		seed       uint64
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Draw a random workout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := (&entity.Exercise{}).Target(difficulty); !ok {
				return fmt.Errorf("unknown difficulty %q (want easy, medium or hard)", difficulty)
			}
			if !cmd.Flags().Changed("seed") {
				seed = c.cfg.Sampling.Seed
			}

			ws, err := c.open(seed)
			if err != nil {
				return err
			}
			defer ws.Close()

			res, err := ws.service.GetRandomMany(cmd.Context(), quantity)
			if errors.Is(err, service.ErrNoExercises) {
				warning.Fprintln(c.out, "No exercises available. Try adding other exercises")
				return nil
			}
			if err != nil {
				return err
			}
			return c.printWorkout(res, difficulty)
		},
	}

	cmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "number of exercises to draw")
	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", entity.DifficultyMedium, "easy, medium or hard")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for a reproducible draw (0 = clock)")
	return cmd
}

func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every stored exercise",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.open(c.cfg.Sampling.Seed)
			if err != nil {
				return err
			}
			defer ws.Close()

			all, err := ws.service.GetAll(cmd.Context())
			if err != nil {
				return err
			}
			if len(all) == 0 {
				warning.Fprintln(c.out, "No content to return")
				return nil
			}

			tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tEASY\tMEDIUM\tHARD")
			for _, e := range all {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", e.Name, e.Easy, e.Medium, e.Hard)
			}
			return tw.Flush()
		},
	}
}

func (c *cli) printWorkout(res *dto.RandomExercisesResponse, difficulty string) error {
	heading.Fprintf(c.out, "Workout (%s, %d of %d)\n", difficulty, len(res.Exercises), res.Available)

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	for i, e := range res.Exercises {
		ex := entity.Exercise{Easy: e.Easy, Medium: e.Medium, Hard: e.Hard}
		target, _ := ex.Target(difficulty)
		fmt.Fprintf(tw, "%2d.\t%s\t%d\n", i+1, e.Name, target)
	}
	return tw.Flush()
}
