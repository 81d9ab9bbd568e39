package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kpauljoseph/printcards/pkg/updater"
	"github.com/kpauljoseph/printcards/pkg/version"
)

func newVersionCmd(a *app) *cobra.Command {
	var (
		check      bool
		releaseURL string
	)

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprint(out, version.GetDetailedVersionInfo())
			if !check {
				return nil
			}

			info, err := updater.NewChecker(a.log, updater.WithReleaseURL(releaseURL)).
				CheckForUpdates(cmd.Context())
			if err != nil {
				return fmt.Errorf("update check failed: %w", err)
			}
			if info.IsAvailable {
				printInfo(out, "printcards %s is available: %s", info.LatestVersion, info.DownloadURL)
			} else {
				printSuccess(out, "printcards is up to date")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "check for a newer release")
	cmd.Flags().StringVar(&releaseURL, "release-url", updater.DefaultReleaseURL, "release endpoint to query")
	_ = cmd.Flags().MarkHidden("release-url")
	return cmd
}
