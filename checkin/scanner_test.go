package checkin

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRPayloadRoundTrip(t *testing.T) {
	payload := BuildQRPayload("e1", "ABCD1234")

	eventID, code, err := VerifyQRPayload(payload)
	require.NoError(t, err)
	assert.Equal(t, "e1", eventID)
	assert.Equal(t, "ABCD1234", code)
}

func TestQRPayloadRejectsTampering(t *testing.T) {
	payload := BuildQRPayload("e1", "ABCD1234")
	tampered := strings.Replace(payload, "ABCD1234", "ZZZZ9999", 1)

	_, _, err := VerifyQRPayload(tampered)
	assert.ErrorIs(t, err, ErrBadPayload)
}

func TestQRPayloadRejectsGarbage(t *testing.T) {
	_, _, err := VerifyQRPayload("not-a-payload")
	assert.ErrorIs(t, err, ErrBadPayload)

	_, _, err = VerifyQRPayload("")
	assert.ErrorIs(t, err, ErrBadPayload)
}
