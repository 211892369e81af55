package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/yx043749/beaver-farm/internal/catalog"
	"github.com/yx043749/beaver-farm/internal/model"
)

var day0 = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func testCatalog() *catalog.Catalog {
	crops := []model.CropDefinition{
		{ID: "wheat", Name: "Wheat", GrowthTime: 3, HarvestAmount: 5},
		{ID: "egg", Name: "Egg", GrowthTime: 2, HarvestAmount: 2},
		{ID: "carrot", Name: "Carrot", GrowthTime: 2, HarvestAmount: 3},
	}
	recipes := []model.RecipeDefinition{
		{
			ID:          "bread",
			Name:        "Bread",
			Difficulty:  2,
			Ingredients: []model.Ingredient{{CropID: "wheat", Quantity: 2}, {CropID: "egg", Quantity: 1}},
			Hints:       []string{"Fresh from the oven"},
			Clues:       []string{"Golden grain", "Something a hen provides"},
		},
		{
			ID:          "carrot_juice",
			Name:        "Carrot Juice",
			Difficulty:  1,
			Ingredients: []model.Ingredient{{CropID: "carrot", Quantity: 3}},
		},
	}

	cat, err := catalog.New(crops, recipes)
	if err != nil {
		panic(err)
	}
	return cat
}

type EngineSuite struct {
	suite.Suite
	engine *Engine
	user   *model.UserRecord
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	s.engine = New(testCatalog())
	s.user = model.NewUserRecord("beaver", "hash", day0)
}

func (s *EngineSuite) addHabit(id, name string) {
	_, err := s.engine.AddHabit(s.user, id, name, day0)
	s.Require().NoError(err)
}

func (s *EngineSuite) checkInDays(habitID string, days ...int) {
	for _, d := range days {
		_, err := s.engine.CheckIn(s.user, habitID, day0.AddDate(0, 0, d))
		s.Require().NoError(err)
	}
}

func (s *EngineSuite) TestNormalizeFillsMissingCollections() {
	u := &model.UserRecord{Username: "legacy"}

	_, err := s.engine.AddHabit(u, "h1", "Read", day0)

	s.Require().NoError(err)
	s.NotNil(u.Storage)
	s.NotNil(u.ResearchHistory)
	s.NotNil(u.DiscoveredRecipes)
	s.Equal(model.InitialMaxHabits, u.MaxHabits)
}

func (s *EngineSuite) TestNewWithLadder() {
	ladder := []ClueRule{{
		FromAttempt: 1,
		Reveal: func(recipe *model.RecipeDefinition, revealed int) (string, int) {
			return "think about " + recipe.Name, revealed + 5
		},
	}}
	e := NewWithLadder(testCatalog(), ladder)

	result, err := e.Research(s.user, "bread", nil, day0)

	s.Require().NoError(err)
	s.Equal("think about Bread", result.Clue)
	s.Equal(5, s.user.ResearchHistory["bread"].RevealedClues)
	s.NotNil(e.Catalog())
}
