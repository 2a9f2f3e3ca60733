package model

type EventType string

const (
	EventRunStarted         EventType = "run_started"
	EventRepositoriesListed EventType = "repositories_listed"
	EventArchiveProgress    EventType = "archive_progress"
	EventArchiveDownloaded  EventType = "archive_downloaded"
	EventArchiveSkipped     EventType = "archive_skipped"
	EventArchiveMirrored    EventType = "archive_mirrored"
	EventArchiveFailed      EventType = "archive_failed"
	EventRunCompleted       EventType = "run_completed"
)

// Event is a status notification of a backup run. Which fields are set depends on Type.
type Event struct {
	Type EventType

	Target *BackupTarget
	Repo   *Repository

	// Total is the number of listed repositories (repositories_listed)
	Total int
	// Bytes is the running byte count of a transfer (archive_progress)
	Bytes int64

	Outcome  *DownloadOutcome
	Location string
	Error    error
	Summary  *BackupSummary
}

// RepoName returns the full name of the event's repository, or its short name when the full name
// is absent.
func (x *Event) RepoName() string {
	if x.Repo == nil {
		return ""
	}
	if x.Repo.FullName != "" {
		return x.Repo.FullName
	}
	return x.Repo.Name
}
