// Package engine implements the farm game rules as pure functions over a
// user record. Callers own loading and persisting the record; on error the
// record is left untouched.
package engine

import (
	"github.com/yx043749/beaver-farm/internal/catalog"
	"github.com/yx043749/beaver-farm/internal/model"
)

// Engine applies game rules using a fixed reference catalog
type Engine struct {
	catalog *catalog.Catalog
	ladder  []ClueRule
}

// New creates an Engine with the default clue ladder
func New(cat *catalog.Catalog) *Engine {
	return NewWithLadder(cat, DefaultLadder())
}

// NewWithLadder creates an Engine with a custom clue ladder
func NewWithLadder(cat *catalog.Catalog, ladder []ClueRule) *Engine {
	return &Engine{
		catalog: cat,
		ladder:  ladder,
	}
}

// Catalog returns the reference catalog used by the engine
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// normalize fills in collections missing from records written by older versions
func normalize(u *model.UserRecord) {
	if u.Habits == nil {
		u.Habits = []model.Habit{}
	}
	if u.Storage == nil {
		u.Storage = make(map[string]int)
	}
	if u.DiscoveredRecipes == nil {
		u.DiscoveredRecipes = []string{}
	}
	if u.ResearchHistory == nil {
		u.ResearchHistory = make(map[string]model.ResearchAttemptState)
	}
	if u.MaxHabits == 0 {
		u.MaxHabits = model.MaxHabitsFor(len(u.DiscoveredRecipes))
	}
}
