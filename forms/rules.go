package forms

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"eventconnect/models"
)

// Field types a registration form can carry. Anything else is treated
// as plain text when validating and is skipped by the render plan.
const (
	FieldText     = "text"
	FieldEmail    = "email"
	FieldNumber   = "number"
	FieldSelect   = "select"
	FieldTextarea = "textarea"
	FieldCheckbox = "checkbox"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Rule is the validation rule derived from one field schema.
type Rule struct {
	Label    string
	Type     string
	Required bool
	Options  []string
}

// RuleSet maps each field label to its rule, preserving field order
// for stable error reporting.
type RuleSet struct {
	labels []string
	rules  map[string]Rule
}

// BuildRuleSet derives one rule per field, keyed by the field's label.
// Unrecognized field types fall back to plain-text rules rather than
// failing: a misconfigured form must never break the whole submission.
func BuildRuleSet(fields []models.FieldSchema) RuleSet {
	rs := RuleSet{rules: make(map[string]Rule, len(fields))}
	for _, f := range fields {
		if f.Label == "" {
			continue
		}
		if _, exists := rs.rules[f.Label]; !exists {
			rs.labels = append(rs.labels, f.Label)
		}
		rs.rules[f.Label] = Rule{
			Label:    f.Label,
			Type:     normalizeType(f.Type),
			Required: f.Required,
			Options:  f.Options,
		}
	}
	return rs
}

func normalizeType(t string) string {
	switch t {
	case FieldText, FieldEmail, FieldNumber, FieldSelect, FieldTextarea, FieldCheckbox:
		return t
	default:
		return FieldText
	}
}

// Len reports the number of rules in the set.
func (rs RuleSet) Len() int { return len(rs.rules) }

// Rule returns the rule for a label.
func (rs RuleSet) Rule(label string) (Rule, bool) {
	r, ok := rs.rules[label]
	return r, ok
}

// Validate checks the submitted responses against every rule. The
// returned map is keyed by field label; an empty map means the
// submission passed.
func (rs RuleSet) Validate(responses map[string]any) map[string]string {
	errs := make(map[string]string)
	for _, label := range rs.labels {
		rule := rs.rules[label]
		if msg := rule.check(responses[label]); msg != "" {
			errs[label] = msg
		}
	}
	return errs
}

func (r Rule) check(value any) string {
	switch r.Type {
	case FieldEmail:
		return r.checkEmail(value)
	case FieldNumber:
		return r.checkNumber(value)
	case FieldCheckbox:
		return r.checkCheckbox(value)
	default:
		return r.checkText(value)
	}
}

func (r Rule) checkEmail(value any) string {
	s, ok := stringValue(value)
	if !ok {
		return fmt.Sprintf("%s must be a string", r.Label)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		if r.Required {
			return fmt.Sprintf("%s is required", r.Label)
		}
		return ""
	}
	if !emailRegex.MatchString(s) {
		return fmt.Sprintf("%s must be a valid email address", r.Label)
	}
	return ""
}

// Number inputs carry their value as a string; a bare JSON number is
// tolerated as well.
func (r Rule) checkNumber(value any) string {
	switch v := value.(type) {
	case nil:
		if r.Required {
			return fmt.Sprintf("%s is required", r.Label)
		}
		return ""
	case float64, int, int64:
		return ""
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			if r.Required {
				return fmt.Sprintf("%s is required", r.Label)
			}
			return ""
		}
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return fmt.Sprintf("%s must be a number", r.Label)
		}
		return ""
	default:
		return fmt.Sprintf("%s must be a number", r.Label)
	}
}

func (r Rule) checkCheckbox(value any) string {
	if value == nil {
		if r.Required {
			return fmt.Sprintf("%s must be checked", r.Label)
		}
		return ""
	}
	b, ok := value.(bool)
	if !ok {
		return fmt.Sprintf("%s must be a boolean", r.Label)
	}
	if r.Required && !b {
		return fmt.Sprintf("%s must be checked", r.Label)
	}
	return ""
}

func (r Rule) checkText(value any) string {
	s, ok := stringValue(value)
	if !ok {
		return fmt.Sprintf("%s must be a string", r.Label)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		if r.Required {
			return fmt.Sprintf("%s is required", r.Label)
		}
		return ""
	}
	if r.Type == FieldSelect && len(r.Options) > 0 && !contains(r.Options, s) {
		return fmt.Sprintf("%s must be one of the listed options", r.Label)
	}
	return ""
}

func stringValue(value any) (string, bool) {
	if value == nil {
		return "", true
	}
	s, ok := value.(string)
	return s, ok
}

func contains(options []string, value string) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}
