package checkin

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func TestCheckInFeedRejectsMissingToken(t *testing.T) {
	req := httptest.NewRequest("GET", "/ws/events/e1/checkins", nil)
	rec := httptest.NewRecorder()

	CheckInFeed(rec, req, httprouter.Params{{Key: "eventid", Value: "e1"}})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCheckInFeedRejectsInvalidToken(t *testing.T) {
	req := httptest.NewRequest("GET", "/ws/events/e1/checkins?token=not-a-jwt", nil)
	rec := httptest.NewRecorder()

	CheckInFeed(rec, req, httprouter.Params{{Key: "eventid", Value: "e1"}})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
