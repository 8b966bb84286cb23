package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()

	require.Len(t, c.Locations, 6)
	require.Len(t, c.Packages, 5)

	assert.Equal(t, "Golden Bay", c.Locations[0].Name)
	assert.True(t, c.Packages[0].Price.Equal(decimal.NewFromInt(40)))
	assert.True(t, c.Packages[2].IsVegetarian)
	assert.True(t, c.Packages[4].IncludesAlcohol)
	assert.True(t, c.Packages[4].Price.Equal(decimal.NewFromInt(190)))
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "битый yaml",
			data: "locations: [",
		},
		{
			name: "дубликат id",
			data: "locations:\n  - {id: 1, name: A}\n  - {id: 1, name: B}\n",
		},
		{
			name: "отрицательная цена",
			data: "packages:\n  - {id: 1, name: A, price: \"-1\"}\n",
		},
		{
			name: "пустое имя",
			data: "packages:\n  - {id: 1, name: \"\", price: \"10\"}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}
