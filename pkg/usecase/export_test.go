package usecase

// Export unexported functions for testing
var (
	FileExistsForTest = fileExists
)
