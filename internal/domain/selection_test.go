package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateSelection(t *testing.T) {
	t.Run("single service", func(t *testing.T) {
		selection, err := AggregateSelection([]SelectedService{
			{ID: 1, Name: "Стрижка", DurationMinutes: 60, LastBookableStart: "19:00"},
		})
		require.NoError(t, err)
		assert.Equal(t, 60, selection.TotalDurationMinutes)
		assert.Equal(t, "19:00", selection.BindingCutoff.String())
	})

	t.Run("durations sum and strictest cutoff binds", func(t *testing.T) {
		selection, err := AggregateSelection([]SelectedService{
			{ID: 1, DurationMinutes: 60, LastBookableStart: "19:00"},
			{ID: 2, DurationMinutes: 30, LastBookableStart: "17:30"},
			{ID: 3, DurationMinutes: 45, LastBookableStart: "18:00"},
		})
		require.NoError(t, err)
		assert.Equal(t, 135, selection.TotalDurationMinutes)
		assert.Equal(t, "17:30", selection.BindingCutoff.String())
	})

	t.Run("selection order is preserved", func(t *testing.T) {
		services := []SelectedService{
			{ID: 3, DurationMinutes: 45, LastBookableStart: "18:00"},
			{ID: 1, DurationMinutes: 60, LastBookableStart: "19:00"},
		}
		selection, err := AggregateSelection(services)
		require.NoError(t, err)
		assert.Equal(t, int64(3), selection.Services[0].ID)
		assert.Equal(t, int64(1), selection.Services[1].ID)
	})

	t.Run("empty selection", func(t *testing.T) {
		_, err := AggregateSelection(nil)
		assert.ErrorIs(t, err, ErrEmptySelection)
	})
}
