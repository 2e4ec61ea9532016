package forms

import "eventconnect/models"

// Control kinds map field types onto UI primitives.
const (
	ControlInput    = "input"
	ControlTextarea = "textarea"
	ControlSelect   = "select"
	ControlCheckbox = "checkbox"
)

// Control describes how one field should be rendered.
type Control struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Kind        string   `json:"kind"`
	InputType   string   `json:"inputType,omitempty"` // text, email, number
	Placeholder string   `json:"placeholder,omitempty"`
	Required    bool     `json:"required"`
	Options     []string `json:"options,omitempty"`
}

// BuildControls maps each field schema to exactly one control. Fields
// with unsupported types are skipped silently; an unknown type degrades
// the form, it never breaks it.
func BuildControls(fields []models.FieldSchema) []Control {
	controls := make([]Control, 0, len(fields))
	for _, f := range fields {
		c := Control{
			ID:          f.ID,
			Label:       f.Label,
			Placeholder: f.Placeholder,
			Required:    f.Required,
		}
		switch f.Type {
		case FieldText, FieldEmail, FieldNumber:
			c.Kind = ControlInput
			c.InputType = f.Type
		case FieldTextarea:
			c.Kind = ControlTextarea
		case FieldSelect:
			c.Kind = ControlSelect
			c.Options = f.Options
		case FieldCheckbox:
			c.Kind = ControlCheckbox
		default:
			continue
		}
		controls = append(controls, c)
	}
	return controls
}
