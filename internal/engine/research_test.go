package engine

import (
	"fmt"

	"github.com/yx043749/beaver-farm/internal/model"
)

func (s *EngineSuite) research(used ...string) *ResearchResult {
	result, err := s.engine.Research(s.user, "bread", used, day0)
	s.Require().NoError(err)
	return result
}

func (s *EngineSuite) TestResearchUnknownRecipe() {
	_, err := s.engine.Research(s.user, "cake", []string{"wheat"}, day0)

	s.ErrorIs(err, model.ErrRecipeNotFound)
	s.Empty(s.user.ResearchHistory)
}

func (s *EngineSuite) TestResearchLengthMismatchGivesTypeCountClue() {
	result := s.research("wheat")

	s.Equal(OutcomeIncorrect, result.Outcome)
	s.Equal(1, result.Attempts)
	s.Equal("2 ingredient types required (1/2 correct ingredients)", result.Clue)
	s.Equal("Difficulty: ★★", result.Hint)
	s.Zero(result.Progress)
}

func (s *EngineSuite) TestResearchClueLadder() {
	expected := []struct {
		clue     string
		revealed int
		progress int
	}{
		{"2 ingredient types required", 0, 0},
		{"3 ingredients in total", 1, 0},
		{"Golden grain", 2, 33},
		{"Something a hen provides", 3, 66},
		{"Something a hen provides", 4, 100},
		{"Something a hen provides", 5, 100},
	}

	for i, want := range expected {
		result := s.research()

		s.Equal(i+1, result.Attempts)
		s.Equal(want.clue, result.Clue, "attempt %d", i+1)
		s.Equal(want.revealed, s.user.ResearchHistory["bread"].RevealedClues, "attempt %d", i+1)
		s.Equal(want.progress, result.Progress, "attempt %d", i+1)
	}
}

func (s *EngineSuite) TestResearchFallbackCluesWithoutAuthoredClues() {
	clues := make([]string, 0, 4)
	for range 4 {
		result, err := s.engine.Research(s.user, "carrot_juice", []string{"wheat", "egg"}, day0)
		s.Require().NoError(err)
		clues = append(clues, result.Clue)
	}

	s.Equal([]string{
		"1 ingredient types required (no correct ingredients)",
		"3 ingredients in total (no correct ingredients)",
		"Keep exploring! (no correct ingredients)",
		"Watch how your storage changes (no correct ingredients)",
	}, clues)
}

func (s *EngineSuite) TestResearchExtraIngredientFails() {
	s.user.Storage = map[string]int{"wheat": 10, "egg": 10, "carrot": 10}

	result := s.research("wheat", "egg", "carrot")

	s.Equal(OutcomeIncorrect, result.Outcome)
	s.Contains(result.Clue, "(2/2 correct ingredients)")
	s.Empty(s.user.DiscoveredRecipes)
}

func (s *EngineSuite) TestResearchDuplicateIngredientFails() {
	s.user.Storage = map[string]int{"wheat": 10, "egg": 10}

	result := s.research("wheat", "wheat")

	s.Equal(OutcomeIncorrect, result.Outcome)
	s.Contains(result.Clue, "(1/2 correct ingredients)")
}

func (s *EngineSuite) TestResearchWrongSetOnlyTouchesHistory() {
	s.user.Storage = map[string]int{"wheat": 10, "egg": 10}
	before := s.user.Clone()

	s.research("wheat", "carrot")

	s.Equal(before.Storage, s.user.Storage)
	s.Equal(before.DiscoveredRecipes, s.user.DiscoveredRecipes)
	s.Equal(before.MaxHabits, s.user.MaxHabits)
	s.Equal(1, s.user.ResearchHistory["bread"].Attempts)
}

func (s *EngineSuite) TestResearchInsufficientMaterials() {
	s.user.Storage = map[string]int{"wheat": 1}

	result := s.research("egg", "wheat")

	s.Equal(OutcomeInsufficient, result.Outcome)
	s.Equal(1, result.Attempts)
	s.Equal([]string{"Wheat needs 2, you have 1", "Egg needs 1, you have 0"}, result.Missing)
	s.Equal(1, s.user.ResearchHistory["bread"].Attempts)
	s.Equal(map[string]int{"wheat": 1}, s.user.Storage)
	s.Empty(s.user.DiscoveredRecipes)
}

func (s *EngineSuite) TestResearchUnlock() {
	s.user.Storage = map[string]int{"wheat": 2, "egg": 3}

	result := s.research("egg", "wheat")

	s.Equal(OutcomeUnlocked, result.Outcome)
	s.Equal("bread", result.Recipe.ID)
	s.Equal(map[string]int{"egg": 2}, result.Storage)
	s.Equal(map[string]int{"egg": 2}, s.user.Storage)
	s.Equal([]string{"bread"}, s.user.DiscoveredRecipes)
	s.Equal(4, result.MaxHabits)
	s.Equal(4, s.user.MaxHabits)

	state := s.user.ResearchHistory["bread"]
	s.True(state.Success)
	s.Require().NotNil(state.UnlockedAt)
	s.Equal(day0, *state.UnlockedAt)
}

func (s *EngineSuite) TestResearchUnlockIsIrreversible() {
	s.user.Storage = map[string]int{"wheat": 4, "egg": 2}
	s.research("wheat", "egg")

	_, err := s.engine.Research(s.user, "bread", []string{"wheat", "egg"}, day0)

	s.ErrorIs(err, model.ErrRecipeUnlocked)
	s.Equal([]string{"bread"}, s.user.DiscoveredRecipes)
	s.Equal(map[string]int{"wheat": 2, "egg": 1}, s.user.Storage)
	s.Equal(1, s.user.ResearchHistory["bread"].Attempts)
}

func (s *EngineSuite) TestResearchAttemptsCountAcrossOutcomes() {
	s.research("wheat")
	s.research("wheat", "egg")
	s.user.Storage = map[string]int{"wheat": 2, "egg": 1}

	result := s.research("wheat", "egg")

	s.Equal(OutcomeUnlocked, result.Outcome)
	s.Equal(3, result.Attempts)
}

func (s *EngineSuite) TestMaxHabitsCapsAtTen() {
	s.user.DiscoveredRecipes = []string{"r1", "r2", "r3", "r4", "r5", "r6", "r7"}
	s.user.MaxHabits = model.MaxHabitsFor(7)
	s.user.Storage = map[string]int{"wheat": 2, "egg": 1}

	result := s.research("wheat", "egg")

	s.Equal(OutcomeUnlocked, result.Outcome)
	s.Len(s.user.DiscoveredRecipes, 8)
	s.Equal(10, s.user.MaxHabits)
}

func (s *EngineSuite) TestDifficultyHint() {
	for difficulty, want := range map[int]string{
		0: "Difficulty: ",
		1: "Difficulty: ★",
		5: "Difficulty: ★★★★★",
	} {
		s.Equal(want, DifficultyHint(difficulty), fmt.Sprint(difficulty))
	}
}
