package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/loupe/internal/highlight"
	"github.com/five82/loupe/internal/logtail"
	"github.com/five82/loupe/internal/prefs"
	"github.com/five82/loupe/internal/render"
	"github.com/five82/loupe/internal/ui"
)

func newRenderCmd(g *globalOptions) *cobra.Command {
	var (
		formatJSON bool
		lines      int
		plain      bool
		theme      string
	)

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Print a log file with annotations",
		Long: `Print FILE to stdout, styled the same way as the terminal UI. Output is
plain when stdout is not a terminal.

Examples:
  loupe render DuinEditor/logs/editor.log
  loupe render run.log --json --lines 200`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, done, err := loadCLI(g)
			if err != nil {
				return err
			}
			defer done()

			text, err := readForRender(args[0], lines, cfg.MaxBytes)
			if err != nil {
				return err
			}

			classifier := highlight.NewClassifier(highlight.Rules{CoreTags: cfg.CoreTags, AppTags: cfg.AppTags})
			session := highlight.NewSession(classifier)
			session.Load(text)

			out, spans := session.Raw(), session.Spans()
			if formatJSON {
				out, spans = session.Formatted()
			}

			var palette render.Palette
			if !plain && render.IsTerminal(os.Stdout) {
				if theme == "" {
					p, _ := prefs.Load(g.prefsPath)
					theme = p.Theme
				}
				palette = ui.GetTheme(theme).Palette()
			}

			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSuffix(render.String(out, spans, palette), "\n"))

			severities := session.Severities()
			event := logger.Debug().Str("file", args[0])
			for _, cat := range highlight.Categories() {
				if cat.IsSeverity() {
					event = event.Int(string(cat), severities[cat])
				}
			}
			event.
				Int("json_lines", session.Counts()[highlight.CategoryJSON]).
				Bool("open_json", session.State().Open()).
				Msg("rendered")
			return nil
		},
	}

	cmd.Flags().BoolVar(&formatJSON, "json", false, "pretty-print embedded JSON blocks")
	cmd.Flags().IntVarP(&lines, "lines", "n", 0, "only print the last N lines")
	cmd.Flags().BoolVar(&plain, "plain", false, "never style output")
	cmd.Flags().StringVar(&theme, "theme", "", "color theme (default from prefs)")
	return cmd
}

// readForRender returns the last n lines of path, or the whole file up to
// maxBytes when n is not positive.
func readForRender(path string, n int, maxBytes int64) (string, error) {
	if n > 0 {
		lines, err := logtail.Read(path, n)
		if err != nil {
			return "", err
		}
		if len(lines) == 0 {
			return "", nil
		}
		return strings.Join(lines, "\n") + "\n", nil
	}
	chunk, err := logtail.ReadAll(path, maxBytes)
	if err != nil {
		return "", err
	}
	return chunk.Text, nil
}
