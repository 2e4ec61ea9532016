package registrations

import (
	"context"
	"errors"
	"strings"
	"time"

	"eventconnect/db"
	"eventconnect/forms"
	"eventconnect/models"
	"eventconnect/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrFormNotFound      = errors.New("registration form not found")
	ErrAlreadyRegistered = errors.New("already registered for this event")
	ErrEventClosed       = errors.New("event is not open for registration")
)

// Store is the persistence surface the registration pipeline needs.
type Store interface {
	Event(ctx context.Context, eventID string) (*models.Event, error)
	Insert(ctx context.Context, reg *models.Registration) error
}

type mongoStore struct{}

func (mongoStore) Event(ctx context.Context, eventID string) (*models.Event, error) {
	var event models.Event
	err := db.EventsCollection.FindOne(ctx, bson.M{"eventid": eventID}).Decode(&event)
	if err == mongo.ErrNoDocuments {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// Insert relies on the unique (eventid, userid) index: a duplicate key
// error is the authoritative signal that the user already registered,
// even when two submissions race.
func (mongoStore) Insert(ctx context.Context, reg *models.Registration) error {
	_, err := db.RegistrationsCollection.InsertOne(ctx, reg)
	if mongo.IsDuplicateKeyError(err) {
		return ErrAlreadyRegistered
	}
	return err
}

// DefaultStore is swapped out in tests.
var DefaultStore Store = mongoStore{}

// Input is the submitted registration payload.
type Input struct {
	FormID    string         `json:"formId"`
	Responses map[string]any `json:"responses"`
}

// Register runs the submission pipeline: resolve the form, validate
// the responses against its rules, then insert exactly once. Field
// errors come back in the map; pipeline errors in the error.
func Register(ctx context.Context, store Store, eventID, userID, userName, userEmail string, input Input) (*models.Registration, map[string]string, error) {
	event, err := store.Event(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}
	if event.Status == "cancelled" || event.Status == "closed" {
		return nil, nil, ErrEventClosed
	}

	var form *models.RegistrationForm
	if strings.TrimSpace(input.FormID) == "" {
		form = event.DefaultForm()
	} else {
		form = event.FormByID(input.FormID)
	}
	if form == nil {
		return nil, nil, ErrFormNotFound
	}

	rules := forms.BuildRuleSet(form.FormFields)
	if fieldErrs := rules.Validate(input.Responses); len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}

	reg := &models.Registration{
		RegistrationID:   "r" + utils.GenerateID(14),
		EventID:          eventID,
		FormID:           form.FormID,
		UserID:           userID,
		UserName:         userName,
		UserEmail:        userEmail,
		FormResponses:    input.Responses,
		RegistrationDate: time.Now(),
		Status:           "pending",
		AttendanceStatus: models.AttendanceRegistered,
		UniqueCode:       strings.ToUpper(utils.GenerateID(8)),
	}

	if err := store.Insert(ctx, reg); err != nil {
		return nil, nil, err
	}
	return reg, nil, nil
}
