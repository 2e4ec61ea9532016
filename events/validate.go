package events

import (
	"fmt"
	"strings"

	"eventconnect/models"
	"eventconnect/utils"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var allowedModes = map[string]bool{
	"in-person": true,
	"online":    true,
	"hybrid":    true,
}

// ValidateEvent checks the event aggregate before it is written. It
// returns one error per violated rule so the client can show all of
// them at once.
func ValidateEvent(event *models.Event) []string {
	var errs []string

	if err := validate.Struct(event); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				errs = append(errs, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
			}
		} else {
			errs = append(errs, err.Error())
		}
	}

	if event.Mode != "" && !allowedModes[event.Mode] {
		errs = append(errs, "mode must be one of in-person, online, hybrid")
	}

	if !event.StartDate.IsZero() && !event.EndDate.IsZero() {
		if event.EndDate.Before(event.StartDate) {
			errs = append(errs, "endDate must be on or after startDate")
		}
		sameDay := event.StartDate.Year() == event.EndDate.Year() &&
			event.StartDate.YearDay() == event.EndDate.YearDay()
		if sameDay && event.StartTime != "" && event.EndTime != "" && event.EndTime <= event.StartTime {
			errs = append(errs, "endTime must be after startTime on a single-day event")
		}
	}

	errs = append(errs, validateForms(event.RegistrationForms)...)

	return errs
}

func validateForms(forms []models.RegistrationForm) []string {
	var errs []string

	defaults := 0
	for _, f := range forms {
		if f.IsDefault {
			defaults++
		}
		if strings.TrimSpace(f.Name) == "" {
			errs = append(errs, "every registration form needs a name")
		}

		seen := map[string]bool{}
		for _, field := range f.FormFields {
			label := strings.TrimSpace(field.Label)
			if label == "" {
				errs = append(errs, fmt.Sprintf("form %q has a field with an empty label", f.Name))
				continue
			}
			if seen[label] {
				errs = append(errs, fmt.Sprintf("form %q has duplicate field label %q", f.Name, label))
			}
			seen[label] = true
		}
	}

	if len(forms) > 0 && defaults != 1 {
		errs = append(errs, "exactly one registration form must be marked default")
	}

	return errs
}

// assignIDs gives every embedded document a stable id if the client
// did not send one.
func assignIDs(event *models.Event) {
	for i := range event.RegistrationForms {
		if event.RegistrationForms[i].FormID == "" {
			event.RegistrationForms[i].FormID = "form-" + utils.GenerateID(10)
		}
		for j := range event.RegistrationForms[i].FormFields {
			if event.RegistrationForms[i].FormFields[j].ID == "" {
				event.RegistrationForms[i].FormFields[j].ID = "field-" + utils.GenerateID(10)
			}
		}
	}
	for i := range event.Speakers {
		if event.Speakers[i].ID == "" {
			event.Speakers[i].ID = "spk-" + utils.GenerateID(10)
		}
	}
	for i := range event.Sponsors {
		if event.Sponsors[i].ID == "" {
			event.Sponsors[i].ID = "spn-" + utils.GenerateID(10)
		}
	}
	for i := range event.TimelineItems {
		if event.TimelineItems[i].ID == "" {
			event.TimelineItems[i].ID = "tl-" + utils.GenerateID(10)
		}
	}
}
