package services

// FileRemover removes stored files during cascades and replacements.
// Removal is best-effort by contract: implementations log failures and
// never surface them.
type FileRemover interface {
	Delete(path string)
}

// DurationProber reports the duration of a stored audio file in
// seconds; false means the duration could not be determined.
type DurationProber func(path string) (float64, bool)
