package model

import (
	"maps"
	"time"
)

// Habit slot limits
const (
	InitialMaxHabits = 3
	MaxHabitsCap     = 10
)

// UserRecord is the full persisted state of one user
type UserRecord struct {
	Username          string                          `json:"username"` // immutable
	PasswordHash      string                          `json:"password"` // bcrypt hash
	Habits            []Habit                         `json:"habits"`
	Crop              *CropInstance                   `json:"crop,omitempty"` // active or last resolved crop
	Storage           map[string]int                  `json:"storage"`
	DiscoveredRecipes []string                        `json:"discoveredRecipes"`
	ResearchHistory   map[string]ResearchAttemptState `json:"researchHistory"`
	HabitStreak       int                             `json:"habitStreak"` // best streak ever reached
	TotalHarvests     int                             `json:"totalHarvests"`
	MaxHabits         int                             `json:"maxHabits"`
	CreatedAt         time.Time                       `json:"createdAt"`
	LastLogin         time.Time                       `json:"lastLogin"`
	LastLogout        *time.Time                      `json:"lastLogout,omitempty"`

	// Revision is bumped by storage on every successful save
	Revision int64 `json:"revision"`
}

// Habit is a daily practice the user checks in on
type Habit struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Streak           int        `json:"streak"`
	TotalCompletions int        `json:"totalCompletions"`
	LastCompleted    *time.Time `json:"lastCompleted"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// CropInstance is a planting in the user's crop slot
type CropInstance struct {
	ID            string     `json:"id"` // CropDefinition ID
	PlantedAt     time.Time  `json:"plantedAt"`
	CurrentGrowth int        `json:"currentGrowth"`
	Mature        bool       `json:"mature,omitempty"` // reached growth time, awaiting harvest
	MaturedAt     *time.Time `json:"maturedAt,omitempty"`
	Harvested     bool       `json:"harvested"`
	HarvestedAt   *time.Time `json:"harvestedAt"`
	Abandoned     bool       `json:"abandoned,omitempty"`
}

// ResearchAttemptState tracks research progress for one recipe
type ResearchAttemptState struct {
	Attempts      int        `json:"attempts"`
	RevealedClues int        `json:"revealedClues"`
	Success       bool       `json:"success,omitempty"`
	UnlockedAt    *time.Time `json:"unlockedAt,omitempty"`
}

// NewUserRecord creates the initial record for a freshly registered user
func NewUserRecord(username, passwordHash string, now time.Time) *UserRecord {
	return &UserRecord{
		Username:          username,
		PasswordHash:      passwordHash,
		Habits:            []Habit{},
		Storage:           make(map[string]int),
		DiscoveredRecipes: []string{},
		ResearchHistory:   make(map[string]ResearchAttemptState),
		MaxHabits:         InitialMaxHabits,
		CreatedAt:         now,
		LastLogin:         now,
	}
}

// FindHabit returns the habit with the given ID, or nil
func (u *UserRecord) FindHabit(id string) *Habit {
	for i := range u.Habits {
		if u.Habits[i].ID == id {
			return &u.Habits[i]
		}
	}
	return nil
}

// ActiveCrop returns the crop in the slot if it is still growing
func (u *UserRecord) ActiveCrop() *CropInstance {
	if u.Crop == nil || u.Crop.Harvested {
		return nil
	}
	return u.Crop
}

// HasDiscovered reports whether the recipe has been unlocked
func (u *UserRecord) HasDiscovered(recipeID string) bool {
	for _, id := range u.DiscoveredRecipes {
		if id == recipeID {
			return true
		}
	}
	return false
}

// MaxHabitsFor returns the habit slot count for a number of discovered recipes
func MaxHabitsFor(discovered int) int {
	return min(MaxHabitsCap, InitialMaxHabits+discovered)
}

// Clone returns a deep copy of the record
func (u *UserRecord) Clone() *UserRecord {
	c := *u

	c.Habits = make([]Habit, len(u.Habits))
	for i, h := range u.Habits {
		h.LastCompleted = cloneTime(h.LastCompleted)
		c.Habits[i] = h
	}

	if u.Crop != nil {
		crop := *u.Crop
		crop.MaturedAt = cloneTime(u.Crop.MaturedAt)
		crop.HarvestedAt = cloneTime(u.Crop.HarvestedAt)
		c.Crop = &crop
	}

	c.Storage = maps.Clone(u.Storage)
	if c.Storage == nil {
		c.Storage = make(map[string]int)
	}

	c.DiscoveredRecipes = append([]string{}, u.DiscoveredRecipes...)

	c.ResearchHistory = make(map[string]ResearchAttemptState, len(u.ResearchHistory))
	for id, state := range u.ResearchHistory {
		state.UnlockedAt = cloneTime(state.UnlockedAt)
		c.ResearchHistory[id] = state
	}

	c.LastLogout = cloneTime(u.LastLogout)
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
