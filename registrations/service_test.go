package registrations

import (
	"context"
	"testing"
	"time"

	"eventconnect/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	event    *models.Event
	eventErr error

	inserted  []*models.Registration
	insertErr error
}

func (f *fakeStore) Event(_ context.Context, _ string) (*models.Event, error) {
	if f.eventErr != nil {
		return nil, f.eventErr
	}
	return f.event, nil
}

func (f *fakeStore) Insert(_ context.Context, reg *models.Registration) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, reg)
	return nil
}

func eventWithForm() *models.Event {
	return &models.Event{
		EventID:   "e1",
		Title:     "Go Conference",
		Status:    "published",
		StartDate: time.Now().AddDate(0, 1, 0),
		EndDate:   time.Now().AddDate(0, 1, 1),
		RegistrationForms: []models.RegistrationForm{
			{
				FormID:    "form-1",
				Name:      "General",
				IsDefault: true,
				FormFields: []models.FieldSchema{
					{ID: "f1", Label: "Full Name", Type: "text", Required: true},
					{ID: "f2", Label: "Email", Type: "email", Required: true},
					{ID: "f3", Label: "Company", Type: "text"},
				},
			},
			{
				FormID: "form-2",
				Name:   "VIP",
				FormFields: []models.FieldSchema{
					{ID: "f4", Label: "Badge Name", Type: "text", Required: true},
				},
			},
		},
	}
}

func TestRegisterHappyPath(t *testing.T) {
	store := &fakeStore{event: eventWithForm()}

	reg, fieldErrs, err := Register(context.Background(), store, "e1", "u1", "ada", "ada@example.com", Input{
		Responses: map[string]any{"Full Name": "Ada Lovelace", "Email": "ada@example.com"},
	})

	require.NoError(t, err)
	assert.Empty(t, fieldErrs)
	require.NotNil(t, reg)
	assert.Equal(t, "form-1", reg.FormID)
	assert.Equal(t, models.AttendanceRegistered, reg.AttendanceStatus)
	assert.False(t, reg.CheckedIn)
	assert.Len(t, reg.UniqueCode, 8)
	require.Len(t, store.inserted, 1)
}

func TestRegisterPicksNamedForm(t *testing.T) {
	store := &fakeStore{event: eventWithForm()}

	reg, fieldErrs, err := Register(context.Background(), store, "e1", "u1", "ada", "ada@example.com", Input{
		FormID:    "form-2",
		Responses: map[string]any{"Badge Name": "Ada"},
	})

	require.NoError(t, err)
	assert.Empty(t, fieldErrs)
	assert.Equal(t, "form-2", reg.FormID)
}

func TestRegisterUnknownForm(t *testing.T) {
	store := &fakeStore{event: eventWithForm()}

	_, _, err := Register(context.Background(), store, "e1", "u1", "ada", "ada@example.com", Input{
		FormID: "nope",
	})
	assert.ErrorIs(t, err, ErrFormNotFound)
}

func TestRegisterFieldErrorsSkipInsert(t *testing.T) {
	store := &fakeStore{event: eventWithForm()}

	reg, fieldErrs, err := Register(context.Background(), store, "e1", "u1", "ada", "ada@example.com", Input{
		Responses: map[string]any{"Email": "not-an-email"},
	})

	require.NoError(t, err)
	assert.Nil(t, reg)
	assert.Contains(t, fieldErrs, "Full Name")
	assert.Contains(t, fieldErrs, "Email")
	assert.Empty(t, store.inserted, "invalid submissions must never reach the store")
}

func TestRegisterDuplicateSurfacesConflict(t *testing.T) {
	store := &fakeStore{event: eventWithForm(), insertErr: ErrAlreadyRegistered}

	reg, fieldErrs, err := Register(context.Background(), store, "e1", "u1", "ada", "ada@example.com", Input{
		Responses: map[string]any{"Full Name": "Ada", "Email": "ada@example.com"},
	})

	assert.ErrorIs(t, err, ErrAlreadyRegistered)
	assert.Nil(t, reg)
	assert.Empty(t, fieldErrs)
}

func TestRegisterClosedEvent(t *testing.T) {
	ev := eventWithForm()
	ev.Status = "cancelled"
	store := &fakeStore{event: ev}

	_, _, err := Register(context.Background(), store, "e1", "u1", "ada", "ada@example.com", Input{})
	assert.ErrorIs(t, err, ErrEventClosed)
}

func TestRegisterEventNotFound(t *testing.T) {
	store := &fakeStore{eventErr: ErrEventNotFound}

	_, _, err := Register(context.Background(), store, "missing", "u1", "ada", "ada@example.com", Input{})
	assert.ErrorIs(t, err, ErrEventNotFound)
}
