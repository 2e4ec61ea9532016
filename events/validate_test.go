package events

import (
	"testing"
	"time"

	"eventconnect/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEvent() *models.Event {
	return &models.Event{
		Title:     "Go Conference",
		StartDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC),
		Mode:      "in-person",
		RegistrationForms: []models.RegistrationForm{
			{
				FormID:    "form-1",
				Name:      "General Admission",
				IsDefault: true,
				FormFields: []models.FieldSchema{
					{ID: "f1", Label: "Full Name", Type: "text", Required: true},
					{ID: "f2", Label: "Email", Type: "email", Required: true},
				},
			},
		},
	}
}

func TestValidateEventAcceptsWellFormed(t *testing.T) {
	assert.Empty(t, ValidateEvent(validEvent()))
}

func TestValidateEventRejectsShortTitle(t *testing.T) {
	ev := validEvent()
	ev.Title = "Go"
	errs := ValidateEvent(ev)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "min")
}

func TestValidateEventRejectsEndBeforeStart(t *testing.T) {
	ev := validEvent()
	ev.EndDate = ev.StartDate.AddDate(0, 0, -1)
	errs := ValidateEvent(ev)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "endDate")
}

func TestValidateEventSingleDayTimes(t *testing.T) {
	ev := validEvent()
	ev.EndDate = ev.StartDate
	ev.StartTime = "14:00"
	ev.EndTime = "10:00"
	errs := ValidateEvent(ev)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "endTime")

	ev.EndTime = "16:00"
	assert.Empty(t, ValidateEvent(ev))
}

func TestValidateEventRejectsBadMode(t *testing.T) {
	ev := validEvent()
	ev.Mode = "astral"
	errs := ValidateEvent(ev)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "mode")
}

func TestValidateEventRejectsDuplicateFieldLabels(t *testing.T) {
	ev := validEvent()
	form := &ev.RegistrationForms[0]
	form.FormFields = append(form.FormFields, models.FieldSchema{ID: "f3", Label: "Email", Type: "email"})

	errs := ValidateEvent(ev)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], `duplicate field label "Email"`)
}

func TestValidateEventRequiresExactlyOneDefaultForm(t *testing.T) {
	ev := validEvent()
	ev.RegistrationForms[0].IsDefault = false
	errs := ValidateEvent(ev)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "default")

	ev.RegistrationForms[0].IsDefault = true
	ev.RegistrationForms = append(ev.RegistrationForms, models.RegistrationForm{
		FormID: "form-2", Name: "VIP", IsDefault: true,
	})
	errs = ValidateEvent(ev)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "default")
}

func TestAssignIDsFillsBlanksOnly(t *testing.T) {
	ev := validEvent()
	ev.Speakers = []models.Speaker{{Name: "Ada"}}
	ev.RegistrationForms[0].FormFields[0].ID = ""

	assignIDs(ev)

	assert.Equal(t, "form-1", ev.RegistrationForms[0].FormID)
	assert.NotEmpty(t, ev.RegistrationForms[0].FormFields[0].ID)
	assert.Equal(t, "f2", ev.RegistrationForms[0].FormFields[1].ID)
	assert.NotEmpty(t, ev.Speakers[0].ID)
}
