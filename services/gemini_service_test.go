package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"upper fence", "```JSON\n{\"a\":1}\n```", `{"a":1}`},
		{"commentary around", "Ecco il risultato:\n{\"a\":1}\nSpero sia utile!", `{"a":1}`},
		{"nested braces kept", `nota {"a":{"b":2}} fine`, `{"a":{"b":2}}`},
		{"no braces", "solo testo", "solo testo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSON(tt.in))
		})
	}
}

func TestDecodeEstimateSanitizes(t *testing.T) {
	text := "```json\n" + `{
		"name": "  Pasta al pomodoro ",
		"quantity": 150,
		"calories": 160,
		"protein": -3,
		"carbs": 30,
		"fat": 2,
		"analysis": "Un classico equilibrato.",
		"date": "2024-03-08",
		"time": "13:00"
	}` + "\n```"

	est, err := decodeEstimate(text)
	require.NoError(t, err)

	assert.Equal(t, "Pasta al pomodoro", est.Name)
	assert.Equal(t, 150, est.QuantityGrams)
	assert.Equal(t, 160.0, est.CaloriesPer100)
	assert.Equal(t, 0.0, est.ProteinPer100) // negative clamped
	assert.Equal(t, "2024-03-08", est.Hint.Date)
	assert.Equal(t, "13:00", est.Hint.Time)
}

func TestDecodeEstimateDefaults(t *testing.T) {
	est, err := decodeEstimate(`{"calories": 90}`)
	require.NoError(t, err)

	assert.Equal(t, "Pasto sconosciuto", est.Name)
	assert.Equal(t, 100, est.QuantityGrams) // missing quantity falls back to 100g
	assert.Empty(t, est.Hint.Date)
	assert.Empty(t, est.Hint.Time)
}

func TestDecodeEstimateGarbage(t *testing.T) {
	_, err := decodeEstimate("mi dispiace, non riesco ad analizzare l'immagine")
	assert.Error(t, err)
}
