package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case MessageResult:
		fmt.Fprintln(o.w, v.Message)
	case LoginResult:
		o.printLogin(v)
	case LastLoginResult:
		fmt.Fprintf(o.w, "Last login: %s\n", formatTime(v.LastLogin))
		fmt.Fprintf(o.w, "Member since: %s\n", formatTime(v.CreatedAt))
	case UserData:
		o.printUserData(v)
	case Habit:
		o.printHabit(v)
	case HabitList:
		o.printHabits(v)
	case CheckInResult:
		o.printCheckIn(v)
	case CropsResult:
		o.printCrops(v)
	case CropInstance:
		o.printCrop(v)
	case AbandonResult:
		fmt.Fprintf(o.w, "%s: %s at %d growth\n", v.Message, v.AbandonedCrop.ID, v.AbandonedCrop.CurrentGrowth)
	case HarvestResult:
		fmt.Fprintf(o.w, "Harvested %d\n", v.HarvestedAmount)
		o.printStorage(v.Storage)
	case RecipesResult:
		o.printRecipes(v)
	case ResearchResult:
		o.printResearch(v)
	case ResearchHistoryResult:
		o.printHistory(v)
	case HealthResult:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// MessageResult is a success response carrying only a message
type MessageResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// LoginResult response type
type LoginResult struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	MaxHabits int       `json:"maxHabits"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// LastLoginResult response type
type LastLoginResult struct {
	LastLogin time.Time `json:"lastLogin"`
	CreatedAt time.Time `json:"createdAt"`
}

// Habit response type
type Habit struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Streak           int        `json:"streak"`
	TotalCompletions int        `json:"totalCompletions"`
	LastCompleted    *time.Time `json:"lastCompleted"`
}

// HabitList is a list of habits printed as a table
type HabitList []Habit

// HabitResult wraps a single habit
type HabitResult struct {
	Habit Habit `json:"habit"`
}

// HabitsResult wraps the habit list returned by save-data
type HabitsResult struct {
	Habits []Habit `json:"habits"`
}

// CropInstance response type
type CropInstance struct {
	ID            string     `json:"id"`
	PlantedAt     time.Time  `json:"plantedAt"`
	CurrentGrowth int        `json:"currentGrowth"`
	Mature        bool       `json:"mature"`
	Harvested     bool       `json:"harvested"`
	HarvestedAt   *time.Time `json:"harvestedAt"`
	Abandoned     bool       `json:"abandoned"`
}

// CropResult wraps a planted crop
type CropResult struct {
	Crop CropInstance `json:"crop"`
}

// UserData response type
type UserData struct {
	Username          string                          `json:"username"`
	Habits            []Habit                         `json:"habits"`
	Crop              *CropInstance                   `json:"crop"`
	Storage           map[string]int                  `json:"storage"`
	DiscoveredRecipes []string                        `json:"discoveredRecipes"`
	ResearchHistory   map[string]ResearchAttemptState `json:"researchHistory"`
	HabitStreak       int                             `json:"habitStreak"`
	TotalHarvests     int                             `json:"totalHarvests"`
	MaxHabits         int                             `json:"maxHabits"`
}

// UserDataResult wraps the user record
type UserDataResult struct {
	Data UserData `json:"data"`
}

// CheckInResult response type
type CheckInResult struct {
	Habit       Habit         `json:"habit"`
	HabitStreak int           `json:"habitStreak"`
	Crop        *CropInstance `json:"crop"`
	CropMatured bool          `json:"cropMatured"`
}

// AbandonResult response type
type AbandonResult struct {
	Message       string       `json:"message"`
	AbandonedCrop CropInstance `json:"abandonedCrop"`
}

// HarvestResult response type
type HarvestResult struct {
	HarvestedAmount int            `json:"harvestedAmount"`
	Storage         map[string]int `json:"storage"`
}

// CropDefinition response type
type CropDefinition struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Icon          string `json:"icon"`
	GrowthTime    int    `json:"growthTime"`
	HarvestAmount int    `json:"harvestAmount"`
}

// CropsResult response type
type CropsResult struct {
	Crops []CropDefinition `json:"crops"`
}

// Ingredient response type
type Ingredient struct {
	CropID   string `json:"cropId"`
	Quantity int    `json:"quantity"`
}

// RecipeDefinition response type
type RecipeDefinition struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Icon        string       `json:"icon"`
	Difficulty  int          `json:"difficulty"`
	Ingredients []Ingredient `json:"ingredients"`
}

// RecipesResult response type
type RecipesResult struct {
	Recipes []RecipeDefinition `json:"recipes"`
}

// ResearchResult covers every research outcome
type ResearchResult struct {
	Success   bool             `json:"success"`
	Outcome   string           `json:"outcome"`
	Attempts  int              `json:"attempts"`
	Recipe    RecipeDefinition `json:"recipe"`
	Storage   map[string]int   `json:"storage,omitempty"`
	MaxHabits int              `json:"maxHabits,omitempty"`
	Message   string           `json:"message,omitempty"`
	Missing   []string         `json:"missing,omitempty"`
	Clue      string           `json:"clue,omitempty"`
	Hint      string           `json:"hint,omitempty"`
	Progress  int              `json:"progress,omitempty"`
}

// ResearchAttemptState response type
type ResearchAttemptState struct {
	Attempts      int  `json:"attempts"`
	RevealedClues int  `json:"revealedClues"`
	Success       bool `json:"success"`
}

// ResearchHistoryResult response type
type ResearchHistoryResult struct {
	History map[string]ResearchAttemptState `json:"history"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func (o *Output) printLogin(l LoginResult) {
	fmt.Fprintf(o.w, "Logged in as %s\n", l.Username)
	fmt.Fprintf(o.w, "Habit slots: %d\n", l.MaxHabits)
	if !l.ExpiresAt.IsZero() {
		fmt.Fprintf(o.w, "Token expires: %s\n", formatTime(l.ExpiresAt))
	}
}

func (o *Output) printUserData(u UserData) {
	fmt.Fprintf(o.w, "Farmer: %s\n", u.Username)
	fmt.Fprintf(o.w, "Best streak: %d\n", u.HabitStreak)
	fmt.Fprintf(o.w, "Harvests: %d\n", u.TotalHarvests)
	fmt.Fprintf(o.w, "Habits (%d/%d):\n", len(u.Habits), u.MaxHabits)
	for _, h := range u.Habits {
		fmt.Fprintf(o.w, "  - %s (%s) streak %d\n", h.Name, h.ID, h.Streak)
	}
	if u.Crop != nil && !u.Crop.Harvested && !u.Crop.Abandoned {
		fmt.Fprint(o.w, "Crop: ")
		o.printCrop(*u.Crop)
	} else {
		fmt.Fprintln(o.w, "Crop: none")
	}
	o.printStorage(u.Storage)
	if len(u.DiscoveredRecipes) > 0 {
		fmt.Fprintf(o.w, "Recipes: %s\n", strings.Join(u.DiscoveredRecipes, ", "))
	}
}

func (o *Output) printHabit(h Habit) {
	fmt.Fprintf(o.w, "Habit: %s (%s)\n", h.Name, h.ID)
	fmt.Fprintf(o.w, "Streak: %d\n", h.Streak)
	fmt.Fprintf(o.w, "Completions: %d\n", h.TotalCompletions)
}

func (o *Output) printHabits(habits HabitList) {
	if len(habits) == 0 {
		fmt.Fprintln(o.w, "No habits")
		return
	}
	for _, h := range habits {
		last := "never"
		if h.LastCompleted != nil {
			last = formatTime(*h.LastCompleted)
		}
		fmt.Fprintf(o.w, "%s  %-20s streak %-3d last %s\n", h.ID, h.Name, h.Streak, last)
	}
}

func (o *Output) printCheckIn(c CheckInResult) {
	fmt.Fprintf(o.w, "Checked in: %s (streak %d)\n", c.Habit.Name, c.Habit.Streak)
	if c.Crop != nil && !c.Crop.Harvested && !c.Crop.Abandoned {
		fmt.Fprintf(o.w, "Crop %s growth: %d\n", c.Crop.ID, c.Crop.CurrentGrowth)
	}
	if c.CropMatured {
		fmt.Fprintln(o.w, "Your crop is ready to harvest!")
	}
}

func (o *Output) printCrop(c CropInstance) {
	state := "growing"
	switch {
	case c.Harvested:
		state = "harvested"
	case c.Abandoned:
		state = "abandoned"
	case c.Mature:
		state = "mature"
	}
	fmt.Fprintf(o.w, "%s (%s, growth %d)\n", c.ID, state, c.CurrentGrowth)
}

func (o *Output) printCrops(c CropsResult) {
	for _, crop := range c.Crops {
		fmt.Fprintf(o.w, "%s %-12s %-10s grows in %d, yields %d\n",
			crop.Icon, crop.ID, crop.Name, crop.GrowthTime, crop.HarvestAmount)
	}
}

func (o *Output) printStorage(storage map[string]int) {
	if len(storage) == 0 {
		fmt.Fprintln(o.w, "Storage: empty")
		return
	}
	parts := make([]string, 0, len(storage))
	for _, id := range slices.Sorted(maps.Keys(storage)) {
		parts = append(parts, fmt.Sprintf("%s=%d", id, storage[id]))
	}
	fmt.Fprintf(o.w, "Storage: %s\n", strings.Join(parts, ", "))
}

func (o *Output) printRecipes(r RecipesResult) {
	for _, recipe := range r.Recipes {
		fmt.Fprintf(o.w, "%s %-16s %-18s %s\n",
			recipe.Icon, recipe.ID, recipe.Name, strings.Repeat("*", recipe.Difficulty))
	}
}

func (o *Output) printResearch(r ResearchResult) {
	switch r.Outcome {
	case "unlocked":
		fmt.Fprintf(o.w, "Unlocked %s after %d attempts!\n", r.Recipe.Name, r.Attempts)
		fmt.Fprintf(o.w, "Habit slots: %d\n", r.MaxHabits)
		o.printStorage(r.Storage)
	case "insufficient_materials":
		fmt.Fprintf(o.w, "%s (attempt %d)\n", r.Message, r.Attempts)
		for _, m := range r.Missing {
			fmt.Fprintf(o.w, "  - %s\n", m)
		}
	default:
		fmt.Fprintf(o.w, "%s (attempt %d)\n", r.Message, r.Attempts)
		fmt.Fprintf(o.w, "Clue: %s\n", r.Clue)
		fmt.Fprintf(o.w, "%s, progress %d%%\n", r.Hint, r.Progress)
	}
}

func (o *Output) printHistory(h ResearchHistoryResult) {
	for _, id := range slices.Sorted(maps.Keys(h.History)) {
		state := h.History[id]
		status := "researching"
		if state.Success {
			status = "unlocked"
		}
		fmt.Fprintf(o.w, "%-16s %-12s attempts %d\n", id, status, state.Attempts)
	}
}
