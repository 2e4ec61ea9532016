package models

import "time"

// FieldSchema describes one configurable field of a registration form.
// Label is the key under which the submitted value is stored, so labels
// must be unique within a form (enforced at configuration time).
type FieldSchema struct {
	ID          string   `json:"id" bson:"id"`
	Label       string   `json:"label" bson:"label"`
	Type        string   `json:"type" bson:"type"`
	Required    bool     `json:"required" bson:"required"`
	Options     []string `json:"options,omitempty" bson:"options,omitempty"`
	Placeholder string   `json:"placeholder,omitempty" bson:"placeholder,omitempty"`
}

type RegistrationForm struct {
	FormID      string        `json:"id" bson:"formid"`
	Name        string        `json:"name" bson:"name"`
	Description string        `json:"description,omitempty" bson:"description,omitempty"`
	FormFields  []FieldSchema `json:"formFields" bson:"formfields"`
	IsDefault   bool          `json:"isDefault" bson:"isdefault"`
}

// Speaker fields are frozen into the event document when a platform
// user is linked; they are not kept in sync with the user profile.
type Speaker struct {
	ID       string `json:"id" bson:"id"`
	UserID   string `json:"userId,omitempty" bson:"userid,omitempty"`
	Name     string `json:"name" bson:"name"`
	Title    string `json:"title,omitempty" bson:"title,omitempty"`
	Bio      string `json:"bio,omitempty" bson:"bio,omitempty"`
	ImageURL string `json:"imageUrl,omitempty" bson:"imageurl,omitempty"`
}

type Sponsor struct {
	ID      string `json:"id" bson:"id"`
	Name    string `json:"name" bson:"name"`
	Tier    string `json:"tier,omitempty" bson:"tier,omitempty"`
	Website string `json:"website,omitempty" bson:"website,omitempty"`
	LogoURL string `json:"logoUrl,omitempty" bson:"logourl,omitempty"`
}

type TimelineItem struct {
	ID          string `json:"id" bson:"id"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	Day         int    `json:"day,omitempty" bson:"day,omitempty"`
	StartTime   string `json:"startTime,omitempty" bson:"starttime,omitempty"`
	EndTime     string `json:"endTime,omitempty" bson:"endtime,omitempty"`
}

type Materials struct {
	GalleryImages []string `json:"galleryImages" bson:"galleryimages"`
	Documents     []string `json:"documents,omitempty" bson:"documents,omitempty"`
}

type Event struct {
	EventID           string             `json:"eventid" bson:"eventid"`
	Title             string             `json:"title" bson:"title" validate:"required,min=3"`
	Description       string             `json:"description" bson:"description"`
	Category          string             `json:"category" bson:"category"`
	Tags              []string           `json:"tags,omitempty" bson:"tags,omitempty"`
	StartDate         time.Time          `json:"startDate" bson:"startdate" validate:"required"`
	EndDate           time.Time          `json:"endDate" bson:"enddate" validate:"required"`
	StartTime         string             `json:"startTime,omitempty" bson:"starttime,omitempty"`
	EndTime           string             `json:"endTime,omitempty" bson:"endtime,omitempty"`
	Location          string             `json:"location" bson:"location"`
	Mode              string             `json:"mode" bson:"mode"` // "in-person", "online", "hybrid"
	BannerURL         string             `json:"bannerUrl,omitempty" bson:"bannerurl,omitempty"`
	ImageURL          string             `json:"imageUrl,omitempty" bson:"imageurl,omitempty"`
	Materials         Materials          `json:"materials" bson:"materials"`
	RegistrationForms []RegistrationForm `json:"registrationForms" bson:"registrationforms"`
	Speakers          []Speaker          `json:"speakers" bson:"speakers"`
	Sponsors          []Sponsor          `json:"sponsors" bson:"sponsors"`
	TimelineItems     []TimelineItem     `json:"timelineItems" bson:"timelineitems"`
	OrganizerName     string             `json:"organizerName,omitempty" bson:"organizername,omitempty"`
	OrganizerContact  string             `json:"organizerContact,omitempty" bson:"organizercontact,omitempty"`
	WebsiteURL        string             `json:"websiteUrl,omitempty" bson:"websiteurl,omitempty"`
	CreatorID         string             `json:"creatorid" bson:"creatorid"`
	Status            string             `json:"status" bson:"status"`
	CreatedAt         time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at" bson:"updated_at"`

	// Computed for list views
	RegisteredCount int `json:"registeredCount,omitempty" bson:"-"`

	// Set only when the requester is authenticated
	IsRegistered *bool `json:"isRegistered,omitempty" bson:"-"`
}

// DefaultForm returns the event's default registration form, or nil.
func (e *Event) DefaultForm() *RegistrationForm {
	for i := range e.RegistrationForms {
		if e.RegistrationForms[i].IsDefault {
			return &e.RegistrationForms[i]
		}
	}
	return nil
}

// FormByID returns the form with the given id, or nil.
func (e *Event) FormByID(formID string) *RegistrationForm {
	for i := range e.RegistrationForms {
		if e.RegistrationForms[i].FormID == formID {
			return &e.RegistrationForms[i]
		}
	}
	return nil
}
