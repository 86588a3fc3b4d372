package epdapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCredentialsAbsorbExpiry(t *testing.T) {
	creds := NewCredentials([]*http.Cookie{{Name: "session", Value: "abc"}, {Name: "theme", Value: "dark"}})

	creds.Absorb([]*http.Cookie{{Name: "session", Value: "", MaxAge: -1}})

	cookies := creds.Cookies()
	assert.Len(t, cookies, 1)
	assert.Equal(t, "theme", cookies[0].Name)
	assert.Len(t, creds.Received(), 1)

	creds.Absorb([]*http.Cookie{{Name: "session", Value: "again"}})
	assert.Len(t, creds.Cookies(), 2)
}

func TestCredentialsClear(t *testing.T) {
	creds := NewCredentials([]*http.Cookie{{Name: "session", Value: "abc"}})
	creds.Clear()
	assert.Empty(t, creds.Cookies())
}

func TestNilCredentials(t *testing.T) {
	var creds *Credentials
	assert.Nil(t, creds.Cookies())
	assert.Nil(t, creds.Received())
	creds.Absorb([]*http.Cookie{{Name: "x", Value: "y"}})
	creds.Clear()
}
