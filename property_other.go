//go:build !android

package jvmgetter

// systemProperty has no backing store off Android, the default library name applies.
func systemProperty() string {
	return ""
}
