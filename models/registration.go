package models

import "time"

// Attendance lifecycle: "registered" -> "attended". Check-in is one-way.
const (
	AttendanceRegistered = "registered"
	AttendanceAttended   = "attended"
)

type Registration struct {
	RegistrationID   string         `json:"registrationid" bson:"registrationid"`
	EventID          string         `json:"eventid" bson:"eventid"`
	FormID           string         `json:"registrationFormId" bson:"formid"`
	UserID           string         `json:"userid" bson:"userid"`
	UserName         string         `json:"username" bson:"username"`
	UserEmail        string         `json:"useremail" bson:"useremail"`
	FormResponses    map[string]any `json:"formResponses" bson:"formresponses"`
	RegistrationDate time.Time      `json:"registrationDate" bson:"registrationdate"`
	Status           string         `json:"status" bson:"status"`
	AttendanceStatus string         `json:"attendanceStatus" bson:"attendancestatus"`
	CheckedIn        bool           `json:"checkedIn" bson:"checkedin"`
	CheckedInTime    *time.Time     `json:"checkedInTime,omitempty" bson:"checkedintime,omitempty"`
	UniqueCode       string         `json:"uniquecode" bson:"uniquecode"`
}

// CheckInResult is the per-attendee outcome of a bulk check-in. Partial
// failures are itemized instead of collapsed into a bare count.
type CheckInResult struct {
	AttendeeID string `json:"attendeeid"`
	Succeeded  bool   `json:"succeeded"`
	Reason     string `json:"reason,omitempty"`
}
