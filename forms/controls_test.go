package forms

import (
	"testing"

	"eventconnect/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildControlsMapsEachSupportedField(t *testing.T) {
	fields := []models.FieldSchema{
		{ID: "1", Label: "Name", Type: "text", Required: true, Placeholder: "Your name"},
		{ID: "2", Label: "Email", Type: "email", Required: true},
		{ID: "3", Label: "Age", Type: "number"},
		{ID: "4", Label: "Bio", Type: "textarea"},
		{ID: "5", Label: "Track", Type: "select", Options: []string{"A", "B"}},
		{ID: "6", Label: "Terms", Type: "checkbox", Required: true},
	}

	controls := BuildControls(fields)
	require.Len(t, controls, 6)

	assert.Equal(t, ControlInput, controls[0].Kind)
	assert.Equal(t, "text", controls[0].InputType)
	assert.Equal(t, "Your name", controls[0].Placeholder)
	assert.True(t, controls[0].Required)

	assert.Equal(t, "email", controls[1].InputType)
	assert.Equal(t, "number", controls[2].InputType)
	assert.Equal(t, ControlTextarea, controls[3].Kind)

	assert.Equal(t, ControlSelect, controls[4].Kind)
	assert.Equal(t, []string{"A", "B"}, controls[4].Options)

	assert.Equal(t, ControlCheckbox, controls[5].Kind)
}

func TestBuildControlsSkipsUnsupportedTypes(t *testing.T) {
	fields := []models.FieldSchema{
		{ID: "1", Label: "Name", Type: "text"},
		{ID: "2", Label: "Signature", Type: "canvas"},
		{ID: "3", Label: "Email", Type: "email"},
	}

	controls := BuildControls(fields)
	require.Len(t, controls, 2)
	assert.Equal(t, "Name", controls[0].Label)
	assert.Equal(t, "Email", controls[1].Label)
}
