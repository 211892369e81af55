package engine

import (
	"time"

	"github.com/yx043749/beaver-farm/internal/model"
)

func (s *EngineSuite) plant(cropID string) {
	_, err := s.engine.Plant(s.user, cropID, day0)
	s.Require().NoError(err)
}

// Plant

func (s *EngineSuite) TestPlant() {
	crop, err := s.engine.Plant(s.user, "wheat", day0)

	s.Require().NoError(err)
	s.Equal("wheat", crop.ID)
	s.Equal(day0, crop.PlantedAt)
	s.Zero(crop.CurrentGrowth)
	s.False(crop.Harvested)
	s.Same(s.user.Crop, s.user.ActiveCrop())
}

func (s *EngineSuite) TestPlantUnknownCrop() {
	_, err := s.engine.Plant(s.user, "dragonfruit", day0)

	s.ErrorIs(err, model.ErrCropNotFound)
	s.Nil(s.user.Crop)
}

func (s *EngineSuite) TestPlantWhileGrowing() {
	s.plant("wheat")

	_, err := s.engine.Plant(s.user, "egg", day0)

	s.ErrorIs(err, model.ErrCropActive)
	s.Equal("wheat", s.user.Crop.ID)
}

func (s *EngineSuite) TestPlantWhileMature() {
	s.addHabit("h1", "Read")
	s.plant("egg")
	s.checkInDays("h1", 0, 1)
	s.Require().True(s.user.Crop.Mature)

	_, err := s.engine.Plant(s.user, "wheat", day0)

	s.ErrorIs(err, model.ErrCropActive)
}

func (s *EngineSuite) TestPlantReplacesResolvedCrop() {
	s.plant("wheat")
	_, err := s.engine.Abandon(s.user, day0)
	s.Require().NoError(err)

	crop, err := s.engine.Plant(s.user, "egg", day0.Add(time.Hour))

	s.Require().NoError(err)
	s.Equal("egg", crop.ID)
	s.False(s.user.Crop.Abandoned)
	s.Nil(s.user.Crop.HarvestedAt)
}

// Abandon

func (s *EngineSuite) TestAbandon() {
	s.plant("wheat")

	crop, err := s.engine.Abandon(s.user, day0.Add(time.Hour))

	s.Require().NoError(err)
	s.True(crop.Harvested)
	s.True(crop.Abandoned)
	s.Require().NotNil(crop.HarvestedAt)
	s.Equal(day0.Add(time.Hour), *crop.HarvestedAt)
	s.Empty(s.user.Storage)
	s.Zero(s.user.TotalHarvests)
}

func (s *EngineSuite) TestAbandonWithoutCrop() {
	_, err := s.engine.Abandon(s.user, day0)
	s.ErrorIs(err, model.ErrNoActiveCrop)
}

func (s *EngineSuite) TestAbandonTwice() {
	s.plant("wheat")
	_, err := s.engine.Abandon(s.user, day0)
	s.Require().NoError(err)

	_, err = s.engine.Abandon(s.user, day0)
	s.ErrorIs(err, model.ErrNoActiveCrop)
}

// Harvest

func (s *EngineSuite) TestHarvestAfterThreeCheckIns() {
	s.addHabit("h1", "Read")
	s.plant("wheat")
	s.checkInDays("h1", 0, 1, 2)
	s.Require().Equal(3, s.user.Crop.CurrentGrowth)

	result, err := s.engine.Harvest(s.user, day0.AddDate(0, 0, 2))

	s.Require().NoError(err)
	s.Equal(5, result.Amount)
	s.Equal(5, result.Storage["wheat"])
	s.Equal(5, s.user.Storage["wheat"])
	s.Equal(1, s.user.TotalHarvests)
	s.True(s.user.Crop.Harvested)
	s.False(s.user.Crop.Abandoned)
}

func (s *EngineSuite) TestHarvestBeforeMature() {
	s.addHabit("h1", "Read")
	s.plant("wheat")
	s.checkInDays("h1", 0, 1)

	_, err := s.engine.Harvest(s.user, day0.AddDate(0, 0, 1))

	s.ErrorIs(err, model.ErrCropNotMature)
	s.False(s.user.Crop.Harvested)
	s.Empty(s.user.Storage)
}

func (s *EngineSuite) TestHarvestTwiceGrantsOnce() {
	s.addHabit("h1", "Read")
	s.plant("egg")
	s.checkInDays("h1", 0, 1)

	_, err := s.engine.Harvest(s.user, day0.AddDate(0, 0, 1))
	s.Require().NoError(err)

	_, err = s.engine.Harvest(s.user, day0.AddDate(0, 0, 1))

	s.ErrorIs(err, model.ErrNoActiveCrop)
	s.Equal(2, s.user.Storage["egg"])
	s.Equal(1, s.user.TotalHarvests)
}

func (s *EngineSuite) TestHarvestWithoutCrop() {
	_, err := s.engine.Harvest(s.user, day0)
	s.ErrorIs(err, model.ErrNoActiveCrop)
}

func (s *EngineSuite) TestHarvestAbandonedCrop() {
	s.plant("wheat")
	_, err := s.engine.Abandon(s.user, day0)
	s.Require().NoError(err)

	_, err = s.engine.Harvest(s.user, day0)
	s.ErrorIs(err, model.ErrNoActiveCrop)
}

func (s *EngineSuite) TestHarvestCropMissingFromCatalog() {
	s.user.Crop = &model.CropInstance{ID: "retired", PlantedAt: day0, CurrentGrowth: 9}

	_, err := s.engine.Harvest(s.user, day0)

	s.ErrorIs(err, model.ErrCropNotFound)
}

func (s *EngineSuite) TestHarvestResultStorageIsCopy() {
	s.addHabit("h1", "Read")
	s.plant("egg")
	s.checkInDays("h1", 0, 1)

	result, err := s.engine.Harvest(s.user, day0.AddDate(0, 0, 1))
	s.Require().NoError(err)
	result.Storage["egg"] = 100

	s.Equal(2, s.user.Storage["egg"])
}
