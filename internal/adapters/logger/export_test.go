package logger

// FormatError exports the error rendering for testing.
func FormatError(err error) string {
	return formatErrorEntries(collectErrorEntries(err))
}
