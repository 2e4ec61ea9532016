package forms

import (
	"testing"

	"eventconnect/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func field(label, typ string, required bool) models.FieldSchema {
	return models.FieldSchema{ID: label, Label: label, Type: typ, Required: required}
}

func TestBuildRuleSetOneRulePerField(t *testing.T) {
	fields := []models.FieldSchema{
		field("Full Name", "text", true),
		field("Email", "email", true),
		field("Age", "number", false),
		field("Comments", "textarea", false),
		field("Agree", "checkbox", true),
	}

	rs := BuildRuleSet(fields)
	require.Equal(t, len(fields), rs.Len())

	for _, f := range fields {
		r, ok := rs.Rule(f.Label)
		require.True(t, ok, "missing rule for %s", f.Label)
		assert.Equal(t, f.Required, r.Required)
	}
}

func TestRequiredFieldsRejectEmpty(t *testing.T) {
	fields := []models.FieldSchema{
		field("Name", "text", true),
		field("Email", "email", true),
		field("Tickets", "number", true),
		field("Terms", "checkbox", true),
	}
	rs := BuildRuleSet(fields)

	errs := rs.Validate(map[string]any{
		"Name":    "",
		"Email":   "",
		"Tickets": "",
		"Terms":   false,
	})
	assert.Len(t, errs, 4)

	// Absent values fail the same way
	errs = rs.Validate(map[string]any{})
	assert.Len(t, errs, 4)
}

func TestOptionalEmailRules(t *testing.T) {
	rs := BuildRuleSet([]models.FieldSchema{field("Email", "email", false)})

	assert.Empty(t, rs.Validate(map[string]any{"Email": ""}))
	assert.Empty(t, rs.Validate(map[string]any{"Email": "a@b.com"}))

	errs := rs.Validate(map[string]any{"Email": "not-an-email"})
	assert.Contains(t, errs, "Email")
}

func TestRequiredNumberRules(t *testing.T) {
	rs := BuildRuleSet([]models.FieldSchema{field("Guests", "number", true)})

	errs := rs.Validate(map[string]any{"Guests": ""})
	assert.Contains(t, errs, "Guests")

	errs = rs.Validate(map[string]any{"Guests": "12a"})
	assert.Contains(t, errs, "Guests")

	assert.Empty(t, rs.Validate(map[string]any{"Guests": "12"}))
	// JSON numbers arrive as float64
	assert.Empty(t, rs.Validate(map[string]any{"Guests": float64(12)}))
}

func TestCheckboxRules(t *testing.T) {
	rs := BuildRuleSet([]models.FieldSchema{field("Terms", "checkbox", true)})

	assert.Contains(t, rs.Validate(map[string]any{"Terms": false}), "Terms")
	assert.Contains(t, rs.Validate(map[string]any{"Terms": "yes"}), "Terms")
	assert.Empty(t, rs.Validate(map[string]any{"Terms": true}))

	optional := BuildRuleSet([]models.FieldSchema{field("Newsletter", "checkbox", false)})
	assert.Empty(t, optional.Validate(map[string]any{"Newsletter": false}))
	assert.Empty(t, optional.Validate(map[string]any{}))
}

func TestSelectMustMatchOptions(t *testing.T) {
	rs := BuildRuleSet([]models.FieldSchema{{
		Label: "Track", Type: "select", Required: true,
		Options: []string{"Backend", "Frontend"},
	}})

	assert.Empty(t, rs.Validate(map[string]any{"Track": "Backend"}))
	assert.Contains(t, rs.Validate(map[string]any{"Track": "Mobile"}), "Track")
}

func TestUnknownTypeFallsBackToText(t *testing.T) {
	rs := BuildRuleSet([]models.FieldSchema{field("Mystery", "daterange", true)})

	r, ok := rs.Rule("Mystery")
	require.True(t, ok)
	assert.Equal(t, FieldText, r.Type)

	// Behaves like required text: empty rejected, anything else accepted
	assert.Contains(t, rs.Validate(map[string]any{"Mystery": ""}), "Mystery")
	assert.Empty(t, rs.Validate(map[string]any{"Mystery": "whatever"}))
}

func TestValidateRejectsWrongValueKinds(t *testing.T) {
	rs := BuildRuleSet([]models.FieldSchema{
		field("Name", "text", true),
		field("Email", "email", false),
	})

	errs := rs.Validate(map[string]any{
		"Name":  42,
		"Email": []string{"a@b.com"},
	})
	assert.Contains(t, errs, "Name")
	assert.Contains(t, errs, "Email")
}
