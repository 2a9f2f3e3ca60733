package types

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
)

type (
	GitHubToken string
	BranchName  string
)

func (x GitHubToken) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubToken) String() string {
	return "***********"
}

// OwnerType selects which listing endpoint enumerates an owner's repositories.
type OwnerType int

const (
	OwnerTypeUser OwnerType = iota
	OwnerTypeOrganization
)

// ParseOwnerType converts the CLI value of --owner-type. Unknown values are an error.
func ParseOwnerType(s string) (OwnerType, error) {
	switch s {
	case "user", "users":
		return OwnerTypeUser, nil
	case "org", "orgs", "organization":
		return OwnerTypeOrganization, nil
	default:
		return OwnerTypeUser, goerr.Wrap(ErrInvalidOption, "owner type must be 'user' or 'org'", goerr.V("value", s))
	}
}

// Scope returns the path segment of the listing endpoint
func (x OwnerType) Scope() string {
	switch x {
	case OwnerTypeOrganization:
		return "orgs"
	default:
		return "users"
	}
}

func (x OwnerType) String() string {
	switch x {
	case OwnerTypeOrganization:
		return "org"
	default:
		return "user"
	}
}

func (x OwnerType) LogValue() slog.Value {
	return slog.StringValue(x.String())
}
