package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"thn-proxy/config"
	"thn-proxy/internal/bootstrap"
	"thn-proxy/internal/domain"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Fetch and extract one page without starting the server",
	}
	cmd.AddCommand(newExtractNewsCmd(), newExtractContentCmd())
	return cmd
}

func newExtractNewsCmd() *cobra.Command {
	var (
		limit   int
		asTable bool
	)

	cmd := &cobra.Command{
		Use:   "news",
		Short: "Print the articles of the listing page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := cliDependencies(cmd)
			if err != nil {
				return err
			}

			items, err := deps.GetNews.Execute(cmd.Context(), limit, true).Result()
			if err != nil {
				return fmt.Errorf("extract news: %w", err)
			}
			if asTable {
				return renderNewsTable(cmd.OutOrStdout(), items)
			}
			return writeJSON(cmd.OutOrStdout(), items)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", domain.DefaultNewsLimit, "maximum number of articles (1-100)")
	cmd.Flags().BoolVar(&asTable, "table", false, "print a table instead of JSON")
	return cmd
}

func newExtractContentCmd() *cobra.Command {
	var (
		format string
		raw    bool
	)

	cmd := &cobra.Command{
		Use:   "content <id>",
		Short: "Print one article as JSON or HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := cliDependencies(cmd)
			if err != nil {
				return err
			}

			result, err := deps.GetContent.Execute(cmd.Context(), domain.ContentQuery{
				ID:      args[0],
				Format:  domain.ParseContentFormat(format),
				Raw:     raw,
				Refresh: true,
			}).Result()
			if err != nil {
				return fmt.Errorf("extract content: %w", err)
			}
			if result.IsHTML {
				_, err := io.WriteString(cmd.OutOrStdout(), result.Body)
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result.Article)
		},
	}
	cmd.Flags().StringVar(&format, "format", string(domain.FormatJSON), "json or html")
	cmd.Flags().BoolVar(&raw, "raw", false, "with --format html, print the whole page")
	return cmd
}

// cliDependencies wires the same components as the server, logging to stderr.
func cliDependencies(cmd *cobra.Command) (*bootstrap.Dependencies, error) {
	cfg, err := config.LoadForCLI()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))
	return bootstrap.BuildDependencies(cfg, log)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func renderNewsTable(w io.Writer, items []domain.ArticleSummary) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{Borders: tw.BorderNone}),
	)

	rows := make([][]string, 0, len(items))
	for i, item := range items {
		rows = append(rows, []string{fmt.Sprint(i + 1), item.Date, truncate(item.Title, 70), item.URL})
	}

	table.Header([]string{"#", "Date", "Title", "URL"})
	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return table.Render()
}

func truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-1]) + "…"
}
