package handler

import (
	"log/slog"
	"net/http"

	"github.com/yx043749/beaver-farm/internal/api/middleware"
	"github.com/yx043749/beaver-farm/internal/api/request"
	"github.com/yx043749/beaver-farm/internal/api/response"
	"github.com/yx043749/beaver-farm/internal/engine"
	"github.com/yx043749/beaver-farm/internal/services/farm"
)

// FarmHandler handles habit, crop and recipe endpoints
type FarmHandler struct {
	farm   *farm.Controller
	logger *slog.Logger
}

// NewFarmHandler creates a new farm handler
func NewFarmHandler(farmController *farm.Controller, logger *slog.Logger) *FarmHandler {
	return &FarmHandler{
		farm:   farmController,
		logger: logger,
	}
}

// Crops handles GET /api/crops
func (h *FarmHandler) Crops(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Crops{Success: true, Crops: h.farm.Crops()})
}

// Recipes handles GET /api/recipes
func (h *FarmHandler) Recipes(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Recipes{Success: true, Recipes: h.farm.Recipes()})
}

// UserData handles GET /api/user-data
func (h *FarmHandler) UserData(w http.ResponseWriter, r *http.Request) {
	user, err := h.farm.GetUser(r.Context(), middleware.MustGetUsername(r.Context()))
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UserDataFromModel(user))
}

// SaveData handles POST /api/save-data
func (h *FarmHandler) SaveData(w http.ResponseWriter, r *http.Request) {
	var req request.SaveDataRequest
	if err := request.Decode(r, &req); err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	patches := make([]engine.HabitPatch, 0, len(*req.Habits))
	for _, hu := range *req.Habits {
		patches = append(patches, engine.HabitPatch{ID: hu.ID, Name: hu.Name})
	}

	habits, err := h.farm.UpdateHabits(r.Context(), middleware.MustGetUsername(r.Context()), patches)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Habits{Success: true, Habits: habits})
}

// AddHabit handles POST /api/add-habit
func (h *FarmHandler) AddHabit(w http.ResponseWriter, r *http.Request) {
	var req request.AddHabitRequest
	if err := request.Decode(r, &req); err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	habit, err := h.farm.AddHabit(r.Context(), middleware.MustGetUsername(r.Context()), req.HabitName)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.Habit{Success: true, Habit: *habit})
}

// CheckIn handles POST /api/checkin-habit
func (h *FarmHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req request.CheckInRequest
	if err := request.Decode(r, &req); err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	result, err := h.farm.CheckIn(r.Context(), middleware.MustGetUsername(r.Context()), req.HabitID)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CheckInFromResult(result))
}

// Plant handles POST /api/plant-crop
func (h *FarmHandler) Plant(w http.ResponseWriter, r *http.Request) {
	var req request.PlantCropRequest
	if err := request.Decode(r, &req); err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	crop, err := h.farm.Plant(r.Context(), middleware.MustGetUsername(r.Context()), req.CropID)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.Crop{Success: true, Crop: *crop})
}

// Abandon handles POST /api/abandon-crop
func (h *FarmHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	crop, err := h.farm.Abandon(r.Context(), middleware.MustGetUsername(r.Context()))
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AbandonedCrop{
		Success:       true,
		Message:       "Crop abandoned",
		AbandonedCrop: *crop,
	})
}

// Harvest handles POST /api/harvest-crop
func (h *FarmHandler) Harvest(w http.ResponseWriter, r *http.Request) {
	result, err := h.farm.Harvest(r.Context(), middleware.MustGetUsername(r.Context()))
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HarvestFromResult(result))
}

// Research handles POST /api/research-recipe
func (h *FarmHandler) Research(w http.ResponseWriter, r *http.Request) {
	var req request.ResearchRequest
	if err := request.Decode(r, &req); err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	result, err := h.farm.Research(r.Context(), middleware.MustGetUsername(r.Context()), req.RecipeID, req.UsedIngredients)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	status := http.StatusOK
	if result.Outcome == engine.OutcomeInsufficient {
		status = http.StatusBadRequest
	}
	response.JSON(w, status, response.ResearchFromResult(result))
}

// ResearchHistory handles GET /api/research-history
func (h *FarmHandler) ResearchHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.farm.ResearchHistory(r.Context(), middleware.MustGetUsername(r.Context()))
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ResearchHistory{Success: true, History: history})
}
