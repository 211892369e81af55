package engine

import (
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/yx043749/beaver-farm/internal/model"
)

// ResearchOutcome classifies a research attempt
type ResearchOutcome string

const (
	OutcomeUnlocked     ResearchOutcome = "unlocked"
	OutcomeInsufficient ResearchOutcome = "insufficient_materials"
	OutcomeIncorrect    ResearchOutcome = "incorrect"
)

// ResearchResult is the outcome of a research attempt.
// Fields are populated according to Outcome.
type ResearchResult struct {
	Outcome  ResearchOutcome
	Attempts int

	// Unlocked
	Recipe    model.RecipeDefinition
	Storage   map[string]int
	MaxHabits int

	// Insufficient
	Missing []string

	// Incorrect
	Clue     string
	Hint     string
	Progress int
}

// Research tries to unlock a recipe with a proposed ingredient set.
// The attempt counter is recorded for every outcome.
func (e *Engine) Research(u *model.UserRecord, recipeID string, used []string, now time.Time) (*ResearchResult, error) {
	normalize(u)

	recipe, ok := e.catalog.Recipe(recipeID)
	if !ok {
		return nil, model.ErrRecipeNotFound
	}

	if u.HasDiscovered(recipeID) {
		return nil, model.ErrRecipeUnlocked
	}

	state := u.ResearchHistory[recipeID]
	state.Attempts++
	u.ResearchHistory[recipeID] = state

	if !matchesIngredients(&recipe, used) {
		return e.failedAttempt(u, &recipe, used), nil
	}

	if missing := e.missingMaterials(u, &recipe); len(missing) > 0 {
		return &ResearchResult{
			Outcome:  OutcomeInsufficient,
			Attempts: state.Attempts,
			Missing:  missing,
		}, nil
	}

	for _, ing := range recipe.Ingredients {
		u.Storage[ing.CropID] -= ing.Quantity
		if u.Storage[ing.CropID] <= 0 {
			delete(u.Storage, ing.CropID)
		}
	}

	u.DiscoveredRecipes = append(u.DiscoveredRecipes, recipeID)
	u.MaxHabits = model.MaxHabitsFor(len(u.DiscoveredRecipes))

	unlocked := now
	state.Success = true
	state.UnlockedAt = &unlocked
	u.ResearchHistory[recipeID] = state

	return &ResearchResult{
		Outcome:   OutcomeUnlocked,
		Attempts:  state.Attempts,
		Recipe:    recipe,
		Storage:   maps.Clone(u.Storage),
		MaxHabits: u.MaxHabits,
	}, nil
}

// matchesIngredients requires exactly as many entries as the recipe has
// ingredients, with every required crop present
func matchesIngredients(recipe *model.RecipeDefinition, used []string) bool {
	if len(used) != len(recipe.Ingredients) {
		return false
	}

	present := make(map[string]struct{}, len(used))
	for _, id := range used {
		present[id] = struct{}{}
	}

	for _, ing := range recipe.Ingredients {
		if _, ok := present[ing.CropID]; !ok {
			return false
		}
	}
	return true
}

func (e *Engine) missingMaterials(u *model.UserRecord, recipe *model.RecipeDefinition) []string {
	var missing []string
	for _, ing := range recipe.Ingredients {
		owned := u.Storage[ing.CropID]
		if owned < ing.Quantity {
			missing = append(missing, fmt.Sprintf("%s needs %d, you have %d",
				e.catalog.CropName(ing.CropID), ing.Quantity, owned))
		}
	}
	return missing
}

// failedAttempt walks the clue ladder and records the revealed clue count
func (e *Engine) failedAttempt(u *model.UserRecord, recipe *model.RecipeDefinition, used []string) *ResearchResult {
	state := u.ResearchHistory[recipe.ID]
	revealedBefore := state.RevealedClues

	var clue string
	if rule := ruleFor(e.ladder, state.Attempts); rule != nil {
		clue, state.RevealedClues = rule.Reveal(recipe, state.RevealedClues)
	}
	u.ResearchHistory[recipe.ID] = state

	if len(used) > 0 {
		clue += overlapSuffix(recipe, used)
	}

	return &ResearchResult{
		Outcome:  OutcomeIncorrect,
		Attempts: state.Attempts,
		Clue:     clue,
		Hint:     DifficultyHint(recipe.Difficulty),
		Progress: min(100, revealedBefore*100/3),
	}
}

// overlapSuffix reports how many distinct required crops the guess contained
func overlapSuffix(recipe *model.RecipeDefinition, used []string) string {
	present := make(map[string]struct{}, len(used))
	for _, id := range used {
		present[id] = struct{}{}
	}

	correct := 0
	for _, ing := range recipe.Ingredients {
		if _, ok := present[ing.CropID]; ok {
			correct++
		}
	}

	if correct == 0 {
		return " (no correct ingredients)"
	}
	return fmt.Sprintf(" (%d/%d correct ingredients)", correct, len(recipe.Ingredients))
}

// DifficultyHint renders a recipe difficulty as stars
func DifficultyHint(difficulty int) string {
	return "Difficulty: " + strings.Repeat("★", max(difficulty, 0))
}
