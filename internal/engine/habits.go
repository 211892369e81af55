package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/yx043749/beaver-farm/internal/dependencies/clock"
	"github.com/yx043749/beaver-farm/internal/model"
	"github.com/yx043749/beaver-farm/internal/validation"
)

// MaxHabitNameLength is the longest habit name accepted
const MaxHabitNameLength = 50

// CheckInResult is the outcome of a successful check-in
type CheckInResult struct {
	Habit       model.Habit
	HabitStreak int
	Crop        *model.CropInstance // crop slot after growth, nil when empty
	CropMatured bool                // crop reached its growth time on this check-in
}

// HabitPatch renames or keeps an existing habit in an UpdateHabits call
type HabitPatch struct {
	ID   string
	Name string
}

// AddHabit appends a new habit with the given ID
func (e *Engine) AddHabit(u *model.UserRecord, id, name string, now time.Time) (*model.Habit, error) {
	normalize(u)

	name, err := normalizeHabitName("habitName", name)
	if err != nil {
		return nil, err
	}

	if len(u.Habits) >= u.MaxHabits {
		return nil, fmt.Errorf("%w: at most %d habits", model.ErrHabitLimit, u.MaxHabits)
	}

	if u.FindHabit(id) != nil {
		return nil, fmt.Errorf("habit id %q already in use", id)
	}

	u.Habits = append(u.Habits, model.Habit{
		ID:        id,
		Name:      name,
		CreatedAt: now,
	})

	habit := u.Habits[len(u.Habits)-1]
	return &habit, nil
}

// UpdateHabits replaces the habit list with the patched subset, in patch order.
// Habits not listed are removed; only names can change.
func (e *Engine) UpdateHabits(u *model.UserRecord, patches []HabitPatch) ([]model.Habit, error) {
	normalize(u)

	updated := make([]model.Habit, 0, len(patches))
	seen := make(map[string]struct{}, len(patches))

	for i, p := range patches {
		if _, dup := seen[p.ID]; dup {
			return nil, validation.NewError(fmt.Sprintf("habits[%d].id", i), "is duplicated")
		}
		seen[p.ID] = struct{}{}

		habit := u.FindHabit(p.ID)
		if habit == nil {
			return nil, fmt.Errorf("%w: %s", model.ErrHabitNotFound, p.ID)
		}

		name, err := normalizeHabitName(fmt.Sprintf("habits[%d].name", i), p.Name)
		if err != nil {
			return nil, err
		}

		h := *habit
		h.Name = name
		updated = append(updated, h)
	}

	u.Habits = updated
	return updated, nil
}

// CheckIn records today's completion of a habit and grows the active crop
func (e *Engine) CheckIn(u *model.UserRecord, habitID string, now time.Time) (*CheckInResult, error) {
	normalize(u)

	habit := u.FindHabit(habitID)
	if habit == nil {
		return nil, model.ErrHabitNotFound
	}

	if habit.LastCompleted != nil && clock.SameDay(*habit.LastCompleted, now) {
		return nil, model.ErrAlreadyCheckedIn
	}

	if habit.LastCompleted != nil && clock.IsPreviousDay(*habit.LastCompleted, now) {
		habit.Streak++
	} else {
		habit.Streak = 1
	}
	habit.TotalCompletions++
	completed := now
	habit.LastCompleted = &completed

	u.HabitStreak = max(u.HabitStreak, habit.Streak)

	matured := e.growCrop(u, now)

	result := &CheckInResult{
		Habit:       *habit,
		HabitStreak: u.HabitStreak,
		CropMatured: matured,
	}
	if u.Crop != nil {
		crop := *u.Crop
		result.Crop = &crop
	}
	return result, nil
}

// growCrop advances the active crop by one unit, reporting whether it just matured.
// Mature crops stop growing until harvested.
func (e *Engine) growCrop(u *model.UserRecord, now time.Time) bool {
	crop := u.ActiveCrop()
	if crop == nil || crop.Mature {
		return false
	}

	crop.CurrentGrowth++

	def, ok := e.catalog.Crop(crop.ID)
	if !ok || crop.CurrentGrowth < def.GrowthTime {
		return false
	}

	matured := now
	crop.Mature = true
	crop.MaturedAt = &matured
	return true
}

func normalizeHabitName(field, name string) (string, error) {
	name = strings.TrimSpace(name)
	if err := validation.Var(field, name, fmt.Sprintf("required,max=%d", MaxHabitNameLength)); err != nil {
		return "", err
	}
	return name, nil
}
