package services

import (
	"sort"
	"time"

	"github.com/Marino59/dieta/models"
	"github.com/Marino59/dieta/utils"
)

// DayNutrition is the macro total of one local calendar day.
type DayNutrition struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

// DailyAggregate is DayNutrition plus the number of contributing meals.
// Derived on demand, never persisted.
type DailyAggregate struct {
	Date string `json:"date"`
	DayNutrition
	Count int `json:"count"`
}

// AggregateMeals sums the macros of every meal whose timestamp falls inside
// the local calendar day of date. Integer addition over a filtered set:
// idempotent and independent of input order.
func AggregateMeals(meals []models.Meal, date time.Time) DailyAggregate {
	agg := DailyAggregate{Date: utils.LocalDayKey(date)}
	for _, m := range meals {
		if !utils.SameLocalDay(m.AteAt, date) {
			continue
		}
		agg.Calories += m.Calories
		agg.Protein += m.Protein
		agg.Carbs += m.Carbs
		agg.Fat += m.Fat
		agg.Count++
	}
	return agg
}

// ChartPoint is one entry of the merged weight/calories series. Both value
// fields are optional: a day with only a weight sample has no Calories and
// vice versa. Values are never interpolated or backfilled.
type ChartPoint struct {
	Date     string   `json:"date"`
	Calories *int     `json:"calories,omitempty"`
	Weight   *float64 `json:"weight,omitempty"`
}

// MergeRangeForChart builds the union of the dates present in the nutrition
// totals and the weight samples, ascending by date string. When a day has
// several weight samples the most recent one wins.
func MergeRangeForChart(nutrition map[string]DayNutrition, samples []models.WeightSample) []ChartPoint {
	byDate := make(map[string]*ChartPoint, len(nutrition)+len(samples))

	for key, n := range nutrition {
		cals := n.Calories
		byDate[key] = &ChartPoint{Date: key, Calories: &cals}
	}

	sorted := make([]models.WeightSample, len(samples))
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MeasuredAt.Before(sorted[j].MeasuredAt) })
	for _, s := range sorted {
		key := utils.LocalDayKey(s.MeasuredAt)
		p := byDate[key]
		if p == nil {
			p = &ChartPoint{Date: key}
			byDate[key] = p
		}
		kg := s.Kilograms
		p.Weight = &kg
	}

	out := make([]ChartPoint, 0, len(byDate))
	for _, p := range byDate {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
