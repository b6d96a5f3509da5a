package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchWindow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		page, size       int
		wantFrom, wantSz int
	}{
		{page: 0, size: 0, wantFrom: 0, wantSz: 10},
		{page: 1, size: 20, wantFrom: 0, wantSz: 20},
		{page: 3, size: 20, wantFrom: 40, wantSz: 20},
		{page: 2, size: 500, wantFrom: 10, wantSz: 10},
	}
	for _, tt := range tests {
		from, size := SearchWindow(tt.page, tt.size)
		assert.Equal(t, tt.wantFrom, from)
		assert.Equal(t, tt.wantSz, size)
	}
}
