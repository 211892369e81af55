package response

import (
	"time"

	"github.com/yx043749/beaver-farm/internal/engine"
	"github.com/yx043749/beaver-farm/internal/model"
	"github.com/yx043749/beaver-farm/internal/services/auth"
)

// Message is a success response carrying only a message
type Message struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// OK is a bare success response
type OK struct {
	Success bool `json:"success"`
}

// Health is the liveness probe response
type Health struct {
	Status string `json:"status"`
}

// Login is the response for a successful login
type Login struct {
	Success   bool      `json:"success"`
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	MaxHabits int       `json:"maxHabits"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// LoginFromSession creates a Login response from a session
func LoginFromSession(s *auth.Session) Login {
	return Login{
		Success:   true,
		Token:     s.Token,
		Username:  s.Username,
		MaxHabits: s.MaxHabits,
		ExpiresAt: s.ExpiresAt,
	}
}

// AutoLogin is the response for refreshing an existing login
type AutoLogin struct {
	Success   bool   `json:"success"`
	Username  string `json:"username"`
	MaxHabits int    `json:"maxHabits"`
}

// LastLogin reports login timestamps
type LastLogin struct {
	Success   bool      `json:"success"`
	LastLogin time.Time `json:"lastLogin"`
	CreatedAt time.Time `json:"createdAt"`
}

// Crops lists crop definitions
type Crops struct {
	Success bool                   `json:"success"`
	Crops   []model.CropDefinition `json:"crops"`
}

// Recipes lists recipe definitions
type Recipes struct {
	Success bool                     `json:"success"`
	Recipes []model.RecipeDefinition `json:"recipes"`
}

// UserData is a user's record without credentials
type UserData struct {
	Username          string                                `json:"username"`
	Habits            []model.Habit                         `json:"habits"`
	Crop              *model.CropInstance                   `json:"crop"`
	Storage           map[string]int                        `json:"storage"`
	DiscoveredRecipes []string                              `json:"discoveredRecipes"`
	ResearchHistory   map[string]model.ResearchAttemptState `json:"researchHistory"`
	HabitStreak       int                                   `json:"habitStreak"`
	TotalHarvests     int                                   `json:"totalHarvests"`
	MaxHabits         int                                   `json:"maxHabits"`
	CreatedAt         time.Time                             `json:"createdAt"`
	LastLogin         time.Time                             `json:"lastLogin"`
	LastLogout        *time.Time                            `json:"lastLogout,omitempty"`
	Revision          int64                                 `json:"revision"`
}

// UserDataResponse wraps UserData
type UserDataResponse struct {
	Success bool     `json:"success"`
	Data    UserData `json:"data"`
}

// UserDataFromModel converts a record, dropping the password hash
func UserDataFromModel(u *model.UserRecord) UserDataResponse {
	return UserDataResponse{
		Success: true,
		Data: UserData{
			Username:          u.Username,
			Habits:            nonNil(u.Habits),
			Crop:              u.Crop,
			Storage:           nonNilMap(u.Storage),
			DiscoveredRecipes: nonNil(u.DiscoveredRecipes),
			ResearchHistory:   nonNilMap(u.ResearchHistory),
			HabitStreak:       u.HabitStreak,
			TotalHarvests:     u.TotalHarvests,
			MaxHabits:         u.MaxHabits,
			CreatedAt:         u.CreatedAt,
			LastLogin:         u.LastLogin,
			LastLogout:        u.LastLogout,
			Revision:          u.Revision,
		},
	}
}

// Habit wraps a single habit
type Habit struct {
	Success bool        `json:"success"`
	Habit   model.Habit `json:"habit"`
}

// Habits wraps the habit list after a save-data update
type Habits struct {
	Success bool          `json:"success"`
	Habits  []model.Habit `json:"habits"`
}

// CheckIn is the response for a habit check-in
type CheckIn struct {
	Success     bool                `json:"success"`
	Habit       model.Habit         `json:"habit"`
	HabitStreak int                 `json:"habitStreak"`
	Crop        *model.CropInstance `json:"crop"`
	CropMatured bool                `json:"cropMatured"`
}

// CheckInFromResult converts an engine check-in result
func CheckInFromResult(r *engine.CheckInResult) CheckIn {
	return CheckIn{
		Success:     true,
		Habit:       r.Habit,
		HabitStreak: r.HabitStreak,
		Crop:        r.Crop,
		CropMatured: r.CropMatured,
	}
}

// Crop wraps a newly planted crop
type Crop struct {
	Success bool               `json:"success"`
	Crop    model.CropInstance `json:"crop"`
}

// AbandonedCrop is the response for abandoning a crop
type AbandonedCrop struct {
	Success       bool               `json:"success"`
	Message       string             `json:"message"`
	AbandonedCrop model.CropInstance `json:"abandonedCrop"`
}

// Harvest is the response for a harvest
type Harvest struct {
	Success         bool           `json:"success"`
	HarvestedAmount int            `json:"harvestedAmount"`
	Storage         map[string]int `json:"storage"`
}

// HarvestFromResult converts an engine harvest result
func HarvestFromResult(r *engine.HarvestResult) Harvest {
	return Harvest{
		Success:         true,
		HarvestedAmount: r.Amount,
		Storage:         nonNilMap(r.Storage),
	}
}

// UnlockedRecipe summarizes a recipe that was just unlocked
type UnlockedRecipe struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Icon        string             `json:"icon"`
	Description string             `json:"description"`
	Ingredients []model.Ingredient `json:"ingredients"`
}

// ResearchUnlocked is the response for a successful research attempt
type ResearchUnlocked struct {
	Success   bool           `json:"success"`
	Outcome   string         `json:"outcome"`
	Attempts  int            `json:"attempts"`
	Recipe    UnlockedRecipe `json:"recipe"`
	Storage   map[string]int `json:"storage"`
	MaxHabits int            `json:"maxHabits"`
}

// ResearchInsufficient is the response when the guess is right but storage is short
type ResearchInsufficient struct {
	Success  bool     `json:"success"`
	Outcome  string   `json:"outcome"`
	Attempts int      `json:"attempts"`
	Message  string   `json:"message"`
	Missing  []string `json:"missing"`
}

// ResearchIncorrect is the response for a wrong guess
type ResearchIncorrect struct {
	Success  bool   `json:"success"`
	Outcome  string `json:"outcome"`
	Message  string `json:"message"`
	Clue     string `json:"clue"`
	Hint     string `json:"hint"`
	Attempts int    `json:"attempts"`
	Progress int    `json:"progress"`
}

// ResearchFromResult converts an engine research result to the response for its outcome
func ResearchFromResult(r *engine.ResearchResult) any {
	switch r.Outcome {
	case engine.OutcomeUnlocked:
		description := ""
		if len(r.Recipe.Hints) > 0 {
			description = r.Recipe.Hints[0]
		}
		return ResearchUnlocked{
			Success:  true,
			Outcome:  string(r.Outcome),
			Attempts: r.Attempts,
			Recipe: UnlockedRecipe{
				ID:          r.Recipe.ID,
				Name:        r.Recipe.Name,
				Icon:        r.Recipe.Icon,
				Description: description,
				Ingredients: r.Recipe.Ingredients,
			},
			Storage:   nonNilMap(r.Storage),
			MaxHabits: r.MaxHabits,
		}
	case engine.OutcomeInsufficient:
		return ResearchInsufficient{
			Outcome:  string(r.Outcome),
			Attempts: r.Attempts,
			Message:  "Not enough materials",
			Missing:  r.Missing,
		}
	default:
		return ResearchIncorrect{
			Outcome:  string(r.Outcome),
			Message:  "Research failed, keep exploring!",
			Clue:     r.Clue,
			Hint:     r.Hint,
			Attempts: r.Attempts,
			Progress: r.Progress,
		}
	}
}

// ResearchHistory lists research attempts per recipe
type ResearchHistory struct {
	Success bool                                  `json:"success"`
	History map[string]model.ResearchAttemptState `json:"history"`
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func nonNilMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return map[K]V{}
	}
	return m
}
