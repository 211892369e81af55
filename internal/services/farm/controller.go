package farm

import (
	"context"
	"errors"
	"log/slog"
	"maps"

	"github.com/yx043749/beaver-farm/internal/dependencies/clock"
	"github.com/yx043749/beaver-farm/internal/dependencies/idgen"
	"github.com/yx043749/beaver-farm/internal/engine"
	"github.com/yx043749/beaver-farm/internal/metrics"
	"github.com/yx043749/beaver-farm/internal/model"
	"github.com/yx043749/beaver-farm/internal/storage"
)

// Controller runs farm operations against stored user records.
// Each operation loads the record, applies one engine rule and saves it.
type Controller struct {
	storage storage.Storage
	engine  *engine.Engine
	clock   clock.Clock
	ids     idgen.Generator
	logger  *slog.Logger
}

// NewController creates a new farm Controller
func NewController(
	storage storage.Storage,
	engine *engine.Engine,
	clock clock.Clock,
	ids idgen.Generator,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		engine:  engine,
		clock:   clock,
		ids:     ids,
		logger:  logger,
	}
}

// Crops returns every crop definition
func (c *Controller) Crops() []model.CropDefinition {
	return c.engine.Catalog().Crops()
}

// Recipes returns every recipe definition
func (c *Controller) Recipes() []model.RecipeDefinition {
	return c.engine.Catalog().Recipes()
}

// GetUser returns the user's full record
func (c *Controller) GetUser(ctx context.Context, username string) (*model.UserRecord, error) {
	return c.storage.GetUser(ctx, username)
}

// ResearchHistory returns the user's research attempts per recipe
func (c *Controller) ResearchHistory(ctx context.Context, username string) (map[string]model.ResearchAttemptState, error) {
	user, err := c.storage.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if user.ResearchHistory == nil {
		return map[string]model.ResearchAttemptState{}, nil
	}
	return maps.Clone(user.ResearchHistory), nil
}

// AddHabit creates a new habit
func (c *Controller) AddHabit(ctx context.Context, username, name string) (*model.Habit, error) {
	var habit *model.Habit
	err := c.mutate(ctx, username, func(u *model.UserRecord) error {
		var err error
		habit, err = c.engine.AddHabit(u, c.ids.NewID(), name, c.clock.Now())
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.HabitsAdded.Inc()
	c.logger.Info("habit added",
		slog.String("username", username),
		slog.String("habit_id", habit.ID),
	)
	return habit, nil
}

// UpdateHabits renames, reorders or removes existing habits
func (c *Controller) UpdateHabits(ctx context.Context, username string, patches []engine.HabitPatch) ([]model.Habit, error) {
	var habits []model.Habit
	err := c.mutate(ctx, username, func(u *model.UserRecord) error {
		var err error
		habits, err = c.engine.UpdateHabits(u, patches)
		return err
	})
	if err != nil {
		return nil, err
	}
	return habits, nil
}

// CheckIn records today's completion of a habit
func (c *Controller) CheckIn(ctx context.Context, username, habitID string) (*engine.CheckInResult, error) {
	var result *engine.CheckInResult
	err := c.mutate(ctx, username, func(u *model.UserRecord) error {
		var err error
		result, err = c.engine.CheckIn(u, habitID, c.clock.Now())
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.CheckIns.Inc()
	if result.CropMatured {
		metrics.CropsMatured.WithLabelValues(result.Crop.ID).Inc()
		c.logger.Info("crop matured",
			slog.String("username", username),
			slog.String("crop_id", result.Crop.ID),
		)
	}
	return result, nil
}

// Plant puts a new crop in the user's slot
func (c *Controller) Plant(ctx context.Context, username, cropID string) (*model.CropInstance, error) {
	var crop *model.CropInstance
	err := c.mutate(ctx, username, func(u *model.UserRecord) error {
		var err error
		crop, err = c.engine.Plant(u, cropID, c.clock.Now())
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.CropsPlanted.WithLabelValues(crop.ID).Inc()
	return crop, nil
}

// Abandon discards the growing crop
func (c *Controller) Abandon(ctx context.Context, username string) (*model.CropInstance, error) {
	var crop *model.CropInstance
	err := c.mutate(ctx, username, func(u *model.UserRecord) error {
		var err error
		crop, err = c.engine.Abandon(u, c.clock.Now())
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.CropsAbandoned.WithLabelValues(crop.ID).Inc()
	return crop, nil
}

// Harvest collects a mature crop into storage
func (c *Controller) Harvest(ctx context.Context, username string) (*engine.HarvestResult, error) {
	var result *engine.HarvestResult
	err := c.mutate(ctx, username, func(u *model.UserRecord) error {
		var err error
		result, err = c.engine.Harvest(u, c.clock.Now())
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.CropsHarvested.WithLabelValues(result.Crop.ID).Inc()
	c.logger.Info("crop harvested",
		slog.String("username", username),
		slog.String("crop_id", result.Crop.ID),
		slog.Int("amount", result.Amount),
	)
	return result, nil
}

// Research attempts to unlock a recipe. The attempt is saved for every outcome.
func (c *Controller) Research(ctx context.Context, username, recipeID string, used []string) (*engine.ResearchResult, error) {
	var result *engine.ResearchResult
	err := c.mutate(ctx, username, func(u *model.UserRecord) error {
		var err error
		result, err = c.engine.Research(u, recipeID, used, c.clock.Now())
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.ResearchAttempts.WithLabelValues(recipeID, string(result.Outcome)).Inc()
	if result.Outcome == engine.OutcomeUnlocked {
		c.logger.Info("recipe unlocked",
			slog.String("username", username),
			slog.String("recipe_id", recipeID),
			slog.Int("attempts", result.Attempts),
			slog.Int("max_habits", result.MaxHabits),
		)
	}
	return result, nil
}

// mutate loads a record, applies fn and saves the result if fn succeeded
func (c *Controller) mutate(ctx context.Context, username string, fn func(*model.UserRecord) error) error {
	user, err := c.storage.GetUser(ctx, username)
	if err != nil {
		return err
	}

	if err := fn(user); err != nil {
		return err
	}

	if err := c.storage.SaveUser(ctx, user); err != nil {
		if errors.Is(err, model.ErrRevisionConflict) {
			metrics.RevisionConflicts.Inc()
			c.logger.Warn("concurrent update rejected",
				slog.String("username", username),
				slog.Int64("revision", user.Revision),
			)
			return err
		}
		c.logger.Error("failed to save user",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return err
	}
	return nil
}
