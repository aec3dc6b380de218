package paging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrigger_Reached(t *testing.T) {
	tests := []struct {
		name      string
		threshold float64
		position  int
		length    int
		want      bool
	}{
		{name: "empty list", threshold: 0.3, position: 0, length: 0, want: false},
		{name: "top of five", threshold: 0.3, position: 0, length: 5, want: false},
		{name: "middle of five", threshold: 0.3, position: 2, length: 5, want: false},
		{name: "second to last of five", threshold: 0.3, position: 3, length: 5, want: true},
		{name: "last of five", threshold: 0.3, position: 4, length: 5, want: true},
		{name: "past end clamps", threshold: 0.3, position: 40, length: 5, want: true},
		{name: "ten items boundary", threshold: 0.3, position: 6, length: 10, want: true},
		{name: "ten items before boundary", threshold: 0.3, position: 5, length: 10, want: false},
		{name: "zero threshold uses default", threshold: 0, position: 3, length: 5, want: true},
		{name: "full threshold", threshold: 1, position: 0, length: 5, want: true},
		{name: "single item", threshold: 0.3, position: 0, length: 1, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := Trigger{Threshold: tt.threshold}
			assert.Equal(t, tt.want, tr.Reached(tt.position, tt.length))
		})
	}
}

func TestDefaultTrigger(t *testing.T) {
	assert.Equal(t, DefaultThreshold, DefaultTrigger().Threshold)
}
