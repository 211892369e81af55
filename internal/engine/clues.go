package engine

import (
	"fmt"

	"github.com/yx043749/beaver-farm/internal/model"
)

// Fallback clues for recipes without authored clues
const (
	FallbackFirstClue = "Keep exploring!"
	FallbackLaterClue = "Watch how your storage changes"
)

// ClueRule reveals a clue for a failed research attempt.
// Reveal receives the revealed-clue counter and returns the clue plus the new counter.
type ClueRule struct {
	// FromAttempt is the first attempt number the rule applies to
	FromAttempt int
	Reveal      func(recipe *model.RecipeDefinition, revealed int) (string, int)
}

// DefaultLadder returns the standard clue progression:
// ingredient type count, total quantity, first clue, then each further clue in turn.
func DefaultLadder() []ClueRule {
	return []ClueRule{
		{FromAttempt: 1, Reveal: revealTypeCount},
		{FromAttempt: 2, Reveal: revealTotalQuantity},
		{FromAttempt: 3, Reveal: revealFirstClue},
		{FromAttempt: 4, Reveal: revealNextClue},
	}
}

// ruleFor returns the last rule whose FromAttempt is reached, or nil
func ruleFor(ladder []ClueRule, attempts int) *ClueRule {
	var match *ClueRule
	for i := range ladder {
		if ladder[i].FromAttempt <= attempts {
			match = &ladder[i]
		}
	}
	return match
}

func revealTypeCount(recipe *model.RecipeDefinition, revealed int) (string, int) {
	return fmt.Sprintf("%d ingredient types required", len(recipe.Ingredients)), revealed
}

func revealTotalQuantity(recipe *model.RecipeDefinition, _ int) (string, int) {
	return fmt.Sprintf("%d ingredients in total", recipe.TotalQuantity()), 1
}

func revealFirstClue(recipe *model.RecipeDefinition, _ int) (string, int) {
	if len(recipe.Clues) == 0 {
		return FallbackFirstClue, 2
	}
	return recipe.Clues[0], 2
}

func revealNextClue(recipe *model.RecipeDefinition, revealed int) (string, int) {
	if len(recipe.Clues) == 0 {
		return FallbackLaterClue, revealed + 1
	}
	idx := min(revealed, len(recipe.Clues)-1)
	return recipe.Clues[idx], revealed + 1
}
