package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotForKey(t *testing.T) {
	tests := []struct {
		name          string
		key           string
		rows, columns int
		slot          int
		ok            bool
	}{
		{name: "first key", key: "1", rows: 1, columns: 3, slot: 0, ok: true},
		{name: "last column of single row", key: "3", rows: 1, columns: 3, slot: 2, ok: true},
		{name: "column outside grid", key: "4", rows: 1, columns: 3},
		{name: "row outside grid", key: "q", rows: 1, columns: 3},
		{name: "second row", key: "w", rows: 2, columns: 3, slot: 4, ok: true},
		{name: "full keypad", key: "v", rows: 4, columns: 4, slot: 15, ok: true},
		{name: "unknown key", key: "p", rows: 4, columns: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot, ok := slotForKey(tt.key, tt.rows, tt.columns)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.slot, slot)
			}
		})
	}
}

func TestKeyForSlot_InvertsSlotForKey(t *testing.T) {
	for _, grid := range [][2]int{{1, 3}, {2, 3}, {3, 4}, {4, 4}, {4, 2}} {
		rows, columns := grid[0], grid[1]
		for slot := 0; slot < rows*columns; slot++ {
			k := keyForSlot(slot, columns)
			got, ok := slotForKey(k, rows, columns)
			assert.True(t, ok, "slot %d in %dx%d", slot, rows, columns)
			assert.Equal(t, slot, got)
		}
	}
}

func TestKeyForSlot_OutsideKeypad(t *testing.T) {
	assert.Empty(t, keyForSlot(4, 5))
	assert.Empty(t, keyForSlot(16, 4))
}
