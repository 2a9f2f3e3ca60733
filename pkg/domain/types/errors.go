package types

import (
	"fmt"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
)

var (
	// ErrConfiguration is returned when the run cannot be set up, e.g. the credential cannot be
	// encoded into a header value. Always fatal.
	ErrConfiguration = goerr.New("configuration error")

	// ErrDecode is returned when a listing page does not match the expected shape
	ErrDecode = goerr.New("decode error")

	// ErrIO is returned on filesystem failures (directory creation, archive create/write/rename)
	ErrIO = goerr.New("io error")

	ErrInvalidOption = goerr.New("invalid option")

	// ErrAlreadyRunning is returned when a backup is requested while another run is in progress
	ErrAlreadyRunning = goerr.New("backup is already running")
)

// APIError is a non-success HTTP status returned by GitHub. Repo is empty for listing calls.
type APIError struct {
	StatusCode int
	Repo       string
}

func (x *APIError) Error() string {
	if x.Repo == "" {
		return fmt.Sprintf("github api returned %d %s", x.StatusCode, http.StatusText(x.StatusCode))
	}
	return fmt.Sprintf("github api returned %d %s for %s", x.StatusCode, http.StatusText(x.StatusCode), x.Repo)
}
