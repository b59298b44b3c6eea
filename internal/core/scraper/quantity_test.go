package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIngredientWithUnit(t *testing.T) {
	ing := ParseIngredient("2 cups flour")
	assert.Equal(t, "flour", ing.Item)
	require.NotNil(t, ing.Quantity)
	assert.Equal(t, 2.0, *ing.Quantity)
	require.NotNil(t, ing.Unit)
	assert.Equal(t, "cups", *ing.Unit)
}

func TestParseIngredientFraction(t *testing.T) {
	ing := ParseIngredient("1/2 cup sugar")
	assert.Equal(t, "sugar", ing.Item)
	require.NotNil(t, ing.Quantity)
	assert.Equal(t, 0.5, *ing.Quantity)
	require.NotNil(t, ing.Unit)
	assert.Equal(t, "cup", *ing.Unit)
}

func TestParseIngredientDecimal(t *testing.T) {
	ing := ParseIngredient("2.5 lbs chicken breast")
	assert.Equal(t, "chicken breast", ing.Item)
	require.NotNil(t, ing.Quantity)
	assert.Equal(t, 2.5, *ing.Quantity)
	require.NotNil(t, ing.Unit)
	assert.Equal(t, "lbs", *ing.Unit)
}

func TestParseIngredientWithoutUnit(t *testing.T) {
	// 數字後面直接接品項：單位為空字串而非 nil
	ing := ParseIngredient("3 eggs")
	assert.Equal(t, "eggs", ing.Item)
	require.NotNil(t, ing.Quantity)
	assert.Equal(t, 3.0, *ing.Quantity)
	require.NotNil(t, ing.Unit)
	assert.Equal(t, "", *ing.Unit)
}

func TestParseIngredientNoLeadingNumber(t *testing.T) {
	ing := ParseIngredient("  salt to taste ")
	assert.Equal(t, "salt to taste", ing.Item)
	assert.Nil(t, ing.Quantity)
	assert.Nil(t, ing.Unit)
}

func TestParseIngredientOnlyLeadingNumberCounts(t *testing.T) {
	// 夾在中間的數字留在品項裡
	ing := ParseIngredient("2 cans (14.5 oz) diced tomatoes")
	assert.Equal(t, "(14.5 oz) diced tomatoes", ing.Item)
	require.NotNil(t, ing.Quantity)
	assert.Equal(t, 2.0, *ing.Quantity)
	require.NotNil(t, ing.Unit)
	assert.Equal(t, "cans", *ing.Unit)
}

func TestParseQuantity(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"2", 2, true},
		{"1.5", 1.5, true},
		{"3/4", 0.75, true},
		{"1/0", 0, false},
		{"abc", 0, false},
	}
	for _, tc := range cases {
		got, ok := parseQuantity(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		if tc.ok {
			assert.Equal(t, tc.want, got, tc.in)
		}
	}
}
