package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_GoalCompleted(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	html, text, err := renderer.Render(GoalCompleted, GoalCompletedData{
		UserName:     "Ana <script>",
		GoalName:     "Emergency fund",
		TargetAmount: "5000.00",
		Currency:     "USD",
		GoalURL:      "http://localhost:5173/goals/123",
	})
	require.NoError(t, err)

	assert.Contains(t, html, "Emergency fund")
	assert.Contains(t, html, "5000.00 USD")
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, text, "Congratulations, Ana <script>!")
	assert.Contains(t, text, "View goal: http://localhost:5173/goals/123")
}

func TestRenderer_UnknownTemplate(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	_, _, err = renderer.Render("missing", nil)
	assert.Error(t, err)
}
