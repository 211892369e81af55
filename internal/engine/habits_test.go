package engine

import (
	"strings"
	"time"

	"github.com/yx043749/beaver-farm/internal/model"
)

// AddHabit

func (s *EngineSuite) TestAddHabit() {
	habit, err := s.engine.AddHabit(s.user, "h1", "  Drink water  ", day0)

	s.Require().NoError(err)
	s.Equal("h1", habit.ID)
	s.Equal("Drink water", habit.Name)
	s.Zero(habit.Streak)
	s.Zero(habit.TotalCompletions)
	s.Nil(habit.LastCompleted)
	s.Equal(day0, habit.CreatedAt)
	s.Len(s.user.Habits, 1)
}

func (s *EngineSuite) TestAddHabitRejectsBlankName() {
	_, err := s.engine.AddHabit(s.user, "h1", "   ", day0)

	s.ErrorIs(err, model.ErrValidation)
	s.Empty(s.user.Habits)
}

func (s *EngineSuite) TestAddHabitRejectsLongName() {
	_, err := s.engine.AddHabit(s.user, "h1", strings.Repeat("a", MaxHabitNameLength+1), day0)
	s.ErrorIs(err, model.ErrValidation)

	_, err = s.engine.AddHabit(s.user, "h1", strings.Repeat("a", MaxHabitNameLength), day0)
	s.NoError(err)
}

func (s *EngineSuite) TestAddHabitEnforcesLimit() {
	s.addHabit("h1", "One")
	s.addHabit("h2", "Two")
	s.addHabit("h3", "Three")

	_, err := s.engine.AddHabit(s.user, "h4", "Four", day0)

	s.ErrorIs(err, model.ErrHabitLimit)
	s.ErrorContains(err, "at most 3 habits")
	s.Len(s.user.Habits, 3)
}

func (s *EngineSuite) TestAddHabitRejectsDuplicateID() {
	s.addHabit("h1", "One")

	_, err := s.engine.AddHabit(s.user, "h1", "Again", day0)

	s.Error(err)
	s.Len(s.user.Habits, 1)
}

// UpdateHabits

func (s *EngineSuite) TestUpdateHabitsRenamesReordersAndDeletes() {
	s.addHabit("h1", "One")
	s.addHabit("h2", "Two")
	s.addHabit("h3", "Three")
	s.checkInDays("h3", 0)

	habits, err := s.engine.UpdateHabits(s.user, []HabitPatch{
		{ID: "h3", Name: "Third"},
		{ID: "h1", Name: "One"},
	})

	s.Require().NoError(err)
	s.Len(habits, 2)
	s.Equal("h3", s.user.Habits[0].ID)
	s.Equal("Third", s.user.Habits[0].Name)
	s.Equal(1, s.user.Habits[0].TotalCompletions)
	s.Equal("h1", s.user.Habits[1].ID)
}

func (s *EngineSuite) TestUpdateHabitsUnknownID() {
	s.addHabit("h1", "One")

	_, err := s.engine.UpdateHabits(s.user, []HabitPatch{{ID: "nope", Name: "x"}})

	s.ErrorIs(err, model.ErrHabitNotFound)
	s.Len(s.user.Habits, 1)
}

func (s *EngineSuite) TestUpdateHabitsDuplicateID() {
	s.addHabit("h1", "One")

	_, err := s.engine.UpdateHabits(s.user, []HabitPatch{{ID: "h1", Name: "a"}, {ID: "h1", Name: "b"}})

	s.ErrorIs(err, model.ErrValidation)
	s.Equal("One", s.user.Habits[0].Name)
}

func (s *EngineSuite) TestUpdateHabitsInvalidName() {
	s.addHabit("h1", "One")

	_, err := s.engine.UpdateHabits(s.user, []HabitPatch{{ID: "h1", Name: ""}})

	s.ErrorIs(err, model.ErrValidation)
	s.Equal("One", s.user.Habits[0].Name)
}

// CheckIn

func (s *EngineSuite) TestCheckInFirstTime() {
	s.addHabit("h1", "Read")

	result, err := s.engine.CheckIn(s.user, "h1", day0)

	s.Require().NoError(err)
	s.Equal(1, result.Habit.Streak)
	s.Equal(1, result.Habit.TotalCompletions)
	s.Require().NotNil(result.Habit.LastCompleted)
	s.Equal(day0, *result.Habit.LastCompleted)
	s.Equal(1, result.HabitStreak)
	s.Nil(result.Crop)
	s.False(result.CropMatured)
}

func (s *EngineSuite) TestCheckInUnknownHabit() {
	_, err := s.engine.CheckIn(s.user, "missing", day0)
	s.ErrorIs(err, model.ErrHabitNotFound)
}

func (s *EngineSuite) TestCheckInConsecutiveDaysIncrementsStreak() {
	s.addHabit("h1", "Read")

	s.checkInDays("h1", 0, 1, 2, 3)

	s.Equal(4, s.user.Habits[0].Streak)
	s.Equal(4, s.user.Habits[0].TotalCompletions)
	s.Equal(4, s.user.HabitStreak)
}

func (s *EngineSuite) TestCheckInGapResetsStreak() {
	s.addHabit("h1", "Read")
	s.checkInDays("h1", 0, 1, 2)

	s.checkInDays("h1", 4)

	s.Equal(1, s.user.Habits[0].Streak)
	s.Equal(4, s.user.Habits[0].TotalCompletions)
	s.Equal(3, s.user.HabitStreak, "best streak is kept")
}

func (s *EngineSuite) TestCheckInCalendarDayNotRollingWindow() {
	s.addHabit("h1", "Read")
	late := time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC)
	early := time.Date(2026, 3, 11, 0, 15, 0, 0, time.UTC)

	_, err := s.engine.CheckIn(s.user, "h1", late)
	s.Require().NoError(err)
	_, err = s.engine.CheckIn(s.user, "h1", early)
	s.Require().NoError(err)

	s.Equal(2, s.user.Habits[0].Streak)
}

func (s *EngineSuite) TestCheckInTwiceSameDay() {
	s.addHabit("h1", "Read")
	s.checkInDays("h1", 0)
	before := s.user.Clone()

	_, err := s.engine.CheckIn(s.user, "h1", day0.Add(6*time.Hour))

	s.ErrorIs(err, model.ErrAlreadyCheckedIn)
	s.Equal(before, s.user)
}

func (s *EngineSuite) TestCheckInHabitStreakIsMaxAcrossHabits() {
	s.addHabit("h1", "Read")
	s.addHabit("h2", "Run")
	s.checkInDays("h1", 0, 1, 2)

	result, err := s.engine.CheckIn(s.user, "h2", day0.AddDate(0, 0, 2))

	s.Require().NoError(err)
	s.Equal(1, result.Habit.Streak)
	s.Equal(3, result.HabitStreak)
}

func (s *EngineSuite) TestCheckInGrowsCropOncePerCall() {
	s.addHabit("h1", "Read")
	s.addHabit("h2", "Run")
	_, err := s.engine.Plant(s.user, "wheat", day0)
	s.Require().NoError(err)

	s.checkInDays("h1", 0)
	result, err := s.engine.CheckIn(s.user, "h2", day0)

	s.Require().NoError(err)
	s.Require().NotNil(result.Crop)
	s.Equal(2, result.Crop.CurrentGrowth)
	s.False(result.CropMatured)
}

func (s *EngineSuite) TestCheckInMaturesCropWithoutPayout() {
	s.addHabit("h1", "Read")
	_, err := s.engine.Plant(s.user, "wheat", day0)
	s.Require().NoError(err)
	s.checkInDays("h1", 0, 1)

	result, err := s.engine.CheckIn(s.user, "h1", day0.AddDate(0, 0, 2))

	s.Require().NoError(err)
	s.True(result.CropMatured)
	s.True(result.Crop.Mature)
	s.Require().NotNil(result.Crop.MaturedAt)
	s.Equal(day0.AddDate(0, 0, 2), *result.Crop.MaturedAt)
	s.False(result.Crop.Harvested)
	s.Empty(s.user.Storage)
}

func (s *EngineSuite) TestCheckInMatureCropStopsGrowing() {
	s.addHabit("h1", "Read")
	_, err := s.engine.Plant(s.user, "egg", day0)
	s.Require().NoError(err)

	s.checkInDays("h1", 0, 1, 2, 3)

	s.Equal(2, s.user.Crop.CurrentGrowth)
	s.True(s.user.Crop.Mature)
}
