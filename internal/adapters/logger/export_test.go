package logger

var CollectErrorEntries = collectErrorEntries

// FormatErrorEntries renders entries without styling.
func FormatErrorEntries(entries []ErrorEntry) string {
	return formatErrorEntries(entries, chainStyles{})
}
