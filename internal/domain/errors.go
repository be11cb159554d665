package domain

import (
	"errors"
	"fmt"
)

// ErrNoSymbols is returned when no extraction strategy finds symbols in
// the watchlist page.
var ErrNoSymbols = errors.New("no symbols found")

// ErrMissingCookie is returned before any request when the session cookie
// required by the watchlist page is not configured.
var ErrMissingCookie = errors.New("watchlist session cookie not set")

// FetchError reports a non-success HTTP status from an upstream source.
type FetchError struct {
	URL    string
	Status int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.Status)
}
