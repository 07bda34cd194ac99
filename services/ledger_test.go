package services

import (
	"testing"
	"time"

	"github.com/Marino59/dieta/models"

	"github.com/stretchr/testify/assert"
)

func mealAt(at time.Time, cals, protein, carbs, fat int) models.Meal {
	return models.Meal{AteAt: at, Calories: cals, Protein: protein, Carbs: carbs, Fat: fat}
}

func TestAggregateMealsFiltersByLocalDay(t *testing.T) {
	day := time.Date(2024, 3, 9, 0, 0, 0, 0, time.Local)
	meals := []models.Meal{
		mealAt(day.Add(8*time.Hour), 400, 20, 50, 12),
		mealAt(day.Add(13*time.Hour), 650, 35, 80, 18),
		mealAt(day.Add(20*time.Hour), 550, 30, 60, 20),
		mealAt(day.AddDate(0, 0, -1).Add(21*time.Hour), 900, 40, 100, 30), // previous day
		mealAt(day.AddDate(0, 0, 1), 300, 10, 40, 8),                      // next day midnight
	}

	agg := AggregateMeals(meals, day.Add(15*time.Hour))

	assert.Equal(t, "2024-03-09", agg.Date)
	assert.Equal(t, 1600, agg.Calories)
	assert.Equal(t, 85, agg.Protein)
	assert.Equal(t, 190, agg.Carbs)
	assert.Equal(t, 50, agg.Fat)
	assert.Equal(t, 3, agg.Count)
}

func TestAggregateMealsOrderIndependent(t *testing.T) {
	day := time.Date(2024, 3, 9, 0, 0, 0, 0, time.Local)
	meals := []models.Meal{
		mealAt(day.Add(8*time.Hour), 400, 20, 50, 12),
		mealAt(day.Add(13*time.Hour), 650, 35, 80, 18),
		mealAt(day.Add(20*time.Hour), 550, 30, 20, 20),
	}
	reversed := []models.Meal{meals[2], meals[1], meals[0]}

	assert.Equal(t, AggregateMeals(meals, day), AggregateMeals(reversed, day))
}

func TestAggregateMealsEmpty(t *testing.T) {
	day := time.Date(2024, 3, 9, 0, 0, 0, 0, time.Local)
	agg := AggregateMeals(nil, day)

	assert.Equal(t, 0, agg.Calories)
	assert.Equal(t, 0, agg.Count)
	assert.Equal(t, "2024-03-09", agg.Date)
}

func TestMergeRangeForChartUnionOfDates(t *testing.T) {
	nutrition := map[string]DayNutrition{
		"2024-03-08": {Calories: 1800},
		"2024-03-10": {Calories: 2100},
	}
	samples := []models.WeightSample{
		{Kilograms: 80.5, MeasuredAt: time.Date(2024, 3, 9, 7, 0, 0, 0, time.Local)},
		{Kilograms: 80.2, MeasuredAt: time.Date(2024, 3, 10, 7, 0, 0, 0, time.Local)},
	}

	points := MergeRangeForChart(nutrition, samples)

	assert.Len(t, points, 3)

	// 03-08: calories only, weight absent.
	assert.Equal(t, "2024-03-08", points[0].Date)
	assert.Equal(t, 1800, *points[0].Calories)
	assert.Nil(t, points[0].Weight)

	// 03-09: weight only, calories absent.
	assert.Equal(t, "2024-03-09", points[1].Date)
	assert.Nil(t, points[1].Calories)
	assert.Equal(t, 80.5, *points[1].Weight)

	// 03-10: both present.
	assert.Equal(t, "2024-03-10", points[2].Date)
	assert.Equal(t, 2100, *points[2].Calories)
	assert.Equal(t, 80.2, *points[2].Weight)
}

func TestMergeRangeForChartLatestSampleWins(t *testing.T) {
	day := time.Date(2024, 3, 9, 0, 0, 0, 0, time.Local)
	samples := []models.WeightSample{
		{Kilograms: 81.0, MeasuredAt: day.Add(20 * time.Hour)},
		{Kilograms: 80.4, MeasuredAt: day.Add(7 * time.Hour)},
	}

	points := MergeRangeForChart(nil, samples)

	assert.Len(t, points, 1)
	assert.Equal(t, 81.0, *points[0].Weight)
}

func TestMergeRangeForChartSortedAscending(t *testing.T) {
	nutrition := map[string]DayNutrition{
		"2024-03-12": {Calories: 1},
		"2024-02-28": {Calories: 2},
		"2024-03-01": {Calories: 3},
	}

	points := MergeRangeForChart(nutrition, nil)

	assert.Equal(t, []string{"2024-02-28", "2024-03-01", "2024-03-12"},
		[]string{points[0].Date, points[1].Date, points[2].Date})
}

func TestMergeRangeForChartEmpty(t *testing.T) {
	assert.Empty(t, MergeRangeForChart(nil, nil))
}
