package version

import "fmt"

var (
	// These values are injected during build - DO NOT MODIFY
	Version   = "VERSION_PLACEHOLDER"
	CommitSHA = "COMMIT_PLACEHOLDER"
)

func GetVersionInfo() string {
	return "printcards " + Version
}

func GetDetailedVersionInfo() string {
	return "printcards\n" +
		"Version:  " + Version + "\n" +
		"Commit:   " + CommitSHA + "\n"
}

// Template returns the version template used by the cobra root command.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\n", Version, CommitSHA)
}
