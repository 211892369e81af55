package engine

import (
	"maps"
	"time"

	"github.com/yx043749/beaver-farm/internal/model"
)

// HarvestResult is the outcome of a successful harvest
type HarvestResult struct {
	Crop    model.CropInstance
	Amount  int
	Storage map[string]int
}

// Plant puts a fresh crop in the slot, discarding any resolved crop
func (e *Engine) Plant(u *model.UserRecord, cropID string, now time.Time) (*model.CropInstance, error) {
	normalize(u)

	if u.ActiveCrop() != nil {
		return nil, model.ErrCropActive
	}

	if _, ok := e.catalog.Crop(cropID); !ok {
		return nil, model.ErrCropNotFound
	}

	u.Crop = &model.CropInstance{
		ID:        cropID,
		PlantedAt: now,
	}

	crop := *u.Crop
	return &crop, nil
}

// Abandon gives up on the growing crop without any payout
func (e *Engine) Abandon(u *model.UserRecord, now time.Time) (*model.CropInstance, error) {
	normalize(u)

	crop := u.ActiveCrop()
	if crop == nil {
		return nil, model.ErrNoActiveCrop
	}

	resolved := now
	crop.Harvested = true
	crop.Abandoned = true
	crop.HarvestedAt = &resolved

	abandoned := *crop
	return &abandoned, nil
}

// Harvest collects a mature crop into storage
func (e *Engine) Harvest(u *model.UserRecord, now time.Time) (*HarvestResult, error) {
	normalize(u)

	crop := u.ActiveCrop()
	if crop == nil {
		return nil, model.ErrNoActiveCrop
	}

	def, ok := e.catalog.Crop(crop.ID)
	if !ok {
		return nil, model.ErrCropNotFound
	}

	if crop.CurrentGrowth < def.GrowthTime {
		return nil, model.ErrCropNotMature
	}

	resolved := now
	crop.Harvested = true
	crop.HarvestedAt = &resolved

	u.Storage[crop.ID] += def.HarvestAmount
	u.TotalHarvests++

	return &HarvestResult{
		Crop:    *crop,
		Amount:  def.HarvestAmount,
		Storage: maps.Clone(u.Storage),
	}, nil
}
