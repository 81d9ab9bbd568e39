package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kpauljoseph/printcards/internal/anki"
	"github.com/kpauljoseph/printcards/internal/loader"
	"github.com/kpauljoseph/printcards/internal/scanner"
)

type deckFile struct {
	path string
	name string
}

func newAnkiCmd(a *app) *cobra.Command {
	var (
		deck      string
		dir       string
		rootDeck  string
		url       string
		delimiter string
	)

	cmd := &cobra.Command{
		Use:   "anki [deck.csv]",
		Short: "Add a deck to Anki through AnkiConnect",
		Example: `  printcards anki deck.csv --deck Geography
  printcards anki --dir decks/ --root-deck Languages`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("url") {
				cfg.Anki.URL = url
			}
			if cmd.Flags().Changed("delimiter") {
				cfg.Delimiter = delimiter
			}
			if cmd.Flags().Changed("deck") {
				cfg.Anki.Deck = deck
			}
			if len(args) == 1 {
				cfg.Input = args[0]
			}

			var decks []deckFile
			switch {
			case dir != "":
				files, err := scanner.New(a.log).FindCSVs(ctx, dir)
				if err != nil {
					return err
				}
				for _, f := range files {
					rel, err := filepath.Rel(dir, f)
					if err != nil {
						rel = filepath.Base(f)
					}
					decks = append(decks, deckFile{path: f, name: anki.GetDeckNameFromPath(rootDeck, rel)})
				}
			case cfg.Input != "":
				decks = append(decks, deckFile{path: cfg.Input, name: cfg.Anki.Deck})
			default:
				return fmt.Errorf("no deck given: pass a CSV file or use --dir")
			}

			service := anki.NewService(a.log, anki.WithURL(cfg.Anki.URL), anki.WithModel(cfg.Anki.Model))
			a.log.Debug("Checking Anki connection...")
			if err := service.CheckConnection(ctx); err != nil {
				return err
			}
			printInfo(out, "Connected to Anki")

			ld := loader.New(a.log, loader.WithDelimiter(cfg.DelimiterRune()))
			var failed int
			for _, d := range decks {
				records, err := ld.Load(ctx, d.path)
				if err != nil {
					printError(out, "%v", err)
					failed++
					continue
				}
				report, err := service.AddAll(ctx, d.name, records)
				if err != nil {
					printError(out, "%s: %v", d.name, err)
					failed++
					continue
				}
				printSuccess(out, "%s: %d added, %d already present", d.name, report.Added, report.Duplicates)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d decks failed", failed, len(decks))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&deck, "deck", "", "Anki deck name (default from config)")
	cmd.Flags().StringVar(&dir, "dir", "", "add every CSV deck found under this directory")
	cmd.Flags().StringVar(&rootDeck, "root-deck", "", "parent deck for decks found with --dir")
	cmd.Flags().StringVar(&url, "url", "", "AnkiConnect URL")
	cmd.Flags().StringVarP(&delimiter, "delimiter", "d", "", "CSV field separator")
	return cmd
}
