package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octobak/pkg/domain/types"
)

// UnknownDate replaces the date component of an archive name when updated_at has no 'T'
const UnknownDate = "unknown"

// Repository is the minimal descriptor of a GitHub repository for backup. It is decoded directly
// from the listing API response.
type Repository struct {
	Name          string           `json:"name"`
	FullName      string           `json:"full_name"`
	UpdatedAt     string           `json:"updated_at"`
	DefaultBranch types.BranchName `json:"default_branch"`
}

func (x *Repository) Validate() error {
	if x.Name == "" {
		return goerr.Wrap(types.ErrDecode, "repository name is empty", goerr.V("full_name", x.FullName))
	}
	if x.DefaultBranch == "" {
		return goerr.Wrap(types.ErrDecode, "default branch is empty", goerr.V("name", x.Name))
	}
	return nil
}

// ArchiveDate returns the date part of UpdatedAt, e.g. "2024-03-01" for "2024-03-01T12:00:00Z".
func (x *Repository) ArchiveDate() string {
	date, _, found := strings.Cut(x.UpdatedAt, "T")
	if !found || date == "" {
		return UnknownDate
	}
	return date
}

// ArchiveName returns the deterministic file name of the repository archive:
// {owner}_{name}_{date}.zip. Path separators in every component are replaced with '_' so the name
// can never escape or nest under the output directory.
func (x *Repository) ArchiveName(owner string) string {
	return sanitize(owner) + "_" + sanitize(x.Name) + "_" + sanitize(x.ArchiveDate()) + ".zip"
}

var pathSeparatorReplacer = strings.NewReplacer("/", "_", "\\", "_")

func sanitize(s string) string {
	return pathSeparatorReplacer.Replace(s)
}
