package cmd

import (
	"fmt"
	"io"
	"sync"

	"smartlink/pkg/analytics"
	"smartlink/pkg/errors"
	"smartlink/pkg/filter"
	"smartlink/pkg/format"
	"smartlink/pkg/logger"
	"smartlink/pkg/progress"
	"smartlink/pkg/surface"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	statsFile       string
	statsFilter     string
	statsFilterMode string
	statsWatch      bool
)

// StatsOutput is the structured form of the statistics view
type StatsOutput struct {
	Total     int64           `json:"total" yaml:"total"`
	TotalText string          `json:"total_text" yaml:"total_text"`
	Links     []analytics.Row `json:"links" yaml:"links"`
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show click statistics for short links",
	Long: `Show click counts from a YAML export, busiest link first, with each
link's share of all clicks.

With --watch the file is re-read on the configured refresh interval and a
toast announces each refresh.`,
	Example: `  smartlink stats --file clicks.yaml
  smartlink stats --file clicks.yaml --filter docs --filter-mode fuzzy
  smartlink stats --file clicks.yaml --watch`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if statsFile == "" {
			return errors.NewWithSuggestion(errors.ExitCodeValidation, "no stats file given", "pass --file <path>")
		}

		mode, err := filter.ParseFilterMode(statsFilterMode)
		if err != nil {
			return errors.NewWithError(errors.ExitCodeValidation, errors.ErrMsgInvalidInput, err)
		}
		f, err := filter.NewStringFilter(statsFilter, mode)
		if err != nil {
			return errors.NewWithError(errors.ExitCodeValidation, errors.ErrMsgInvalidInput, err)
		}

		out := cmd.OutOrStdout()
		if err := printStats(out, statsFile, f); err != nil {
			return err
		}
		if !statsWatch {
			return nil
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx, cancel := GetContext()
		defer cancel()

		log := logger.Component("stats")
		kit := newKit(cfg)
		button := surface.NewElement("button")
		button.SetText("Refresh")

		var mu sync.Mutex
		refresher := kit.Refresher(button,
			analytics.WithDelay(cfg.Analytics.RefreshDelay),
			analytics.WithReload(func() {
				mu.Lock()
				defer mu.Unlock()
				if err := printStats(out, statsFile, f); err != nil {
					logger.Error().Err(err).Str("file", statsFile).Msg("reload failed")
				}
			}),
		)

		log.Debug().Dur("interval", cfg.Analytics.RefreshInterval).Msg("watching")
		refresher.Start(ctx, cfg.Analytics.RefreshInterval)
		return nil
	},
}

func printStats(w io.Writer, path string, f *filter.StringFilter) error {
	snap, err := analytics.LoadSnapshot(path)
	if err != nil {
		return err
	}
	view := analytics.Snapshot{Links: f.Links(snap.Links)}
	rows := view.Rows()

	output := NewOutputWriter(outputFormat, w)
	if output.IsStructured() {
		return output.Write(StatsOutput{
			Total:     view.Total(),
			TotalText: format.FormatNumber(view.Total()),
			Links:     rows,
		})
	}

	if len(rows) == 0 {
		fmt.Fprintln(w, "No links match.")
		return nil
	}

	bold := color.New(color.Bold)
	_, _ = bold.Fprintf(w, "%s clicks across %d links\n\n", format.FormatNumber(view.Total()), len(rows))
	for _, r := range rows {
		text := fmt.Sprintf("%s  %s", r.ShareText, r.ClicksText)
		if err := progress.ShareBar(w, r.Name, r.Share, text, progress.DefaultWidth); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	statsCmd.Flags().StringVarP(&statsFile, "file", "f", "", "YAML click export to read")
	statsCmd.Flags().StringVar(&statsFilter, "filter", "", "Only show links whose name or URL matches")
	statsCmd.Flags().StringVar(&statsFilterMode, "filter-mode", "contains", "How --filter matches (contains, regex, fuzzy)")
	statsCmd.Flags().BoolVarP(&statsWatch, "watch", "w", false, "Re-read the file on the refresh interval")
}
