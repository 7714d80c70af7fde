package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"rms_backend/internal/services"
	"rms_backend/internal/state"
	"rms_backend/pkg/utils"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var specialsTimeout time.Duration

// specialsCmd prints chef's specials for the seeded menu without starting the server.
var specialsCmd = &cobra.Command{
	Use:   "specials",
	Short: "Generate chef's specials from the in-stock menu and print them.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), specialsTimeout)
		defer cancel()

		gemini, err := newGeminiClient(ctx, cfg)
		if err != nil {
			return err
		}
		dispatcher := services.NewDispatcherService(state.Seed(time.Now().In(cfg.Location)))
		specials, err := services.NewSpecialsService(dispatcher, gemini).GenerateSpecials(ctx)
		if err != nil {
			if errors.Is(err, services.ErrSpecialsDisabled) {
				color.Yellow("Set GEMINI_API_KEY to enable chef specials.")
			}
			return err
		}

		heading := color.New(color.FgCyan, color.Bold)
		for i, dish := range specials {
			heading.Printf("%d. %s", i+1, dish.Name)
			color.Green("  Rs. %s", utils.FormatAmount(dish.Price))
			fmt.Printf("   %s\n", dish.Description)
			color.New(color.Faint).Printf("   Ingredients: %s\n\n", strings.Join(dish.Ingredients, ", "))
		}
		return nil
	},
}

func init() {
	specialsCmd.Flags().DurationVar(&specialsTimeout, "timeout", 45*time.Second, "how long to wait for the model")
}
