package notify

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

// CookieName holds notices across a POST-redirect-GET round trip.
const CookieName = "epd_flash"

// maxCarried bounds what fits in a single cookie.
const maxCarried = 5

// EncodeCookie packs notices into a short-lived cookie. It returns nil when
// there is nothing to carry.
func EncodeCookie(notices []Notice, secure bool) *http.Cookie {
	if len(notices) == 0 {
		return nil
	}
	if len(notices) > maxCarried {
		notices = notices[len(notices)-maxCarried:]
	}
	raw, err := json.Marshal(notices)
	if err != nil {
		return nil
	}
	return &http.Cookie{
		Name:     CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// DecodeCookie unpacks notices written by EncodeCookie. Garbage yields nothing.
func DecodeCookie(value string) []Notice {
	if value == "" {
		return nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil
	}
	var notices []Notice
	if err := json.Unmarshal(raw, &notices); err != nil {
		return nil
	}
	return notices
}

// ExpiredCookie clears the carried notices once they have been shown.
func ExpiredCookie(secure bool) *http.Cookie {
	return &http.Cookie{Name: CookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true, Secure: secure}
}
