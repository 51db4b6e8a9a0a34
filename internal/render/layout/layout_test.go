package layout

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInset(t *testing.T) {
	assert.Equal(t, image.Rect(5, 5, 95, 45), Inset(image.Rect(0, 0, 100, 50), 5))
	assert.Equal(t, image.Rect(0, 0, 100, 50), Inset(image.Rect(0, 0, 100, 50), 0))
}

func TestSplitHorizontal_Clamps(t *testing.T) {
	top, bottom := SplitHorizontal(image.Rect(0, 0, 10, 100), 30)
	assert.Equal(t, image.Rect(0, 0, 10, 30), top)
	assert.Equal(t, image.Rect(0, 30, 10, 100), bottom)

	top, bottom = SplitHorizontal(image.Rect(0, 0, 10, 100), 500)
	assert.Equal(t, image.Rect(0, 0, 10, 100), top)
	assert.True(t, bottom.Empty())
}

func TestCenteredAndFitSquare(t *testing.T) {
	assert.Equal(t, image.Rect(40, 20, 60, 30), Centered(image.Rect(0, 0, 100, 50), 20, 10))
	assert.Equal(t, image.Rect(25, 0, 75, 50), FitSquare(image.Rect(0, 0, 100, 50)))
}
