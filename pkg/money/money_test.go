package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	assert.Equal(t, "120", Round(119.6).String())
	assert.Equal(t, "120", Round(120.4).String())
	assert.Equal(t, "121", Round(120.5).String())
	assert.Equal(t, "0", Round(0).String())
}

func TestWhole(t *testing.T) {
	assert.Equal(t, 460.0, Whole(459.99))
	assert.Equal(t, 40.0, Whole(40))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "₹540", Format(539.7))
	assert.Equal(t, "₹0", Format(0))
}
