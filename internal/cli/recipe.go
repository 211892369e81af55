package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

func newRecipeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipe",
		Short: "Recipe research commands",
	}

	cmd.AddCommand(newRecipeListCmd())
	cmd.AddCommand(newRecipeResearchCmd())
	cmd.AddCommand(newRecipeHistoryCmd())

	return cmd
}

func newRecipeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recipes",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result RecipesResult

			if err := client.Get("/api/recipes", &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newRecipeResearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "research <recipe-id> [crop-id...]",
		Short: "Research a recipe with a guessed set of ingredients",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"recipeId":        args[0],
				"usedIngredients": append([]string{}, args[1:]...),
			}

			result, err := research(req)
			if err != nil {
				return err
			}

			output(cmd).Print(*result)
			return nil
		},
	}
}

// research posts an attempt; the insufficient-materials outcome comes back
// as a 400 that still carries a result body
func research(req map[string]any) (*ResearchResult, error) {
	var result ResearchResult
	err := client.Post("/api/research-recipe", req, &result)

	var se *StatusError
	if errors.As(err, &se) && se.StatusCode == http.StatusBadRequest {
		if jerr := json.Unmarshal(se.Body, &result); jerr != nil || result.Outcome == "" {
			return nil, err
		}
		return &result, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func newRecipeHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show research attempts per recipe",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ResearchHistoryResult

			if err := client.Get("/api/research-history", &result); err != nil {
				return err
			}

			if len(result.History) == 0 && cfg.Output == "text" {
				fmt.Fprintln(cmd.OutOrStdout(), "No research yet")
				return nil
			}

			output(cmd).Print(result)
			return nil
		},
	}
}
