package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/charmbracelet/glamour"
	"github.com/dustin/go-humanize"
	"github.com/menuboard/menuboard/internal/menu"
	"github.com/menuboard/menuboard/internal/window"
	"github.com/spf13/cobra"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Work with menu files",
	Long:  `Generate, validate and inspect menu files in JSON or YAML.`,
}

var menuSampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Write a generated sample menu",
	Example: heredoc.Doc(`
		# A small menu on stdout
		menuboard menu sample --categories 3 --dishes 5

		# A menu with 100,000 dishes
		menuboard menu sample --categories 100 --dishes 1000 -o big.json
	`),
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		categories, _ := cmd.Flags().GetInt("categories")
		dishes, _ := cmd.Flags().GetInt("dishes")
		output, _ := cmd.Flags().GetString("output")
		formatFlag, _ := cmd.Flags().GetString("format")

		m := menu.Sample(categories, dishes)
		if output != "" && !cmd.Flags().Changed("format") {
			return menu.Save(output, m)
		}

		data, err := menu.Marshal(m, menu.Format(strings.ToLower(formatFlag)))
		if err != nil {
			return err
		}
		if output != "" {
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write menu: %w", err)
			}
			return nil
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var menuValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a menu file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := menu.Load(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s categories, %s dishes\n",
			m.Name,
			humanize.Comma(int64(len(m.Categories))),
			humanize.Comma(int64(m.DishCount())))
		return nil
	},
}

var menuShowCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print a menu as formatted text",
	Example: heredoc.Doc(`
		# Print the menu styled for the terminal
		menuboard menu show menu.yaml

		# Print the markdown source
		menuboard menu show menu.yaml --raw
	`),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		width, _ := cmd.Flags().GetInt("width")
		style, _ := cmd.Flags().GetString("style")
		raw, _ := cmd.Flags().GetBool("raw")

		m, err := menu.Load(args[0])
		if err != nil {
			return err
		}
		md := m.Markdown()
		if raw {
			_, err := io.WriteString(cmd.OutOrStdout(), md)
			return err
		}

		styleOpt := glamour.WithAutoStyle()
		if style != "auto" {
			styleOpt = glamour.WithStandardStyle(style)
		}
		r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
		if err != nil {
			return fmt.Errorf("failed to create renderer: %w", err)
		}
		out, err := r.Render(md)
		if err != nil {
			return fmt.Errorf("failed to render menu: %w", err)
		}
		_, err = io.WriteString(cmd.OutOrStdout(), out)
		return err
	},
}

type rowReport struct {
	Index   int     `json:"index" yaml:"index"`
	OffsetY float64 `json:"offset_y" yaml:"offset_y"`
	Kind    string  `json:"kind" yaml:"kind"`
	Title   string  `json:"title" yaml:"title"`
	Price   string  `json:"price,omitempty" yaml:"price,omitempty"`
}

type rowsReport struct {
	Total int          `json:"total" yaml:"total"`
	Range window.Range `json:"range" yaml:"range"`
	Rows  []rowReport  `json:"rows" yaml:"rows"`
}

var menuRowsCmd = &cobra.Command{
	Use:   "rows <file>",
	Short: "Print the rows a viewport renders",
	Long: heredoc.Doc(`
		Flatten a menu into rows and print only the window of rows a list
		of the given geometry renders at the given scroll offset.
	`),
	Example: heredoc.Doc(`
		menuboard menu rows big.json --offset 50000 --viewport 20 --overscan 2
	`),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		itemHeight, _ := cmd.Flags().GetFloat64("item-height")
		viewport, _ := cmd.Flags().GetFloat64("viewport")
		overscan, _ := cmd.Flags().GetInt("overscan")
		offset, _ := cmd.Flags().GetFloat64("offset")
		format, _ := cmd.Flags().GetString("format")

		m, err := menu.Load(args[0])
		if err != nil {
			return err
		}
		l, err := window.FromSlice(m.Rows(), itemHeight, viewport, overscan)
		if err != nil {
			return err
		}
		l.OnScroll(offset)

		report := rowsReport{Total: l.Len(), Range: l.CurrentRange()}
		for e := range l.VisibleEntries() {
			r := rowReport{
				Index:   e.Index,
				OffsetY: e.OffsetY,
				Kind:    "category",
				Title:   e.Item.Title(),
			}
			if e.Item.Kind == menu.RowDish {
				r.Kind = "dish"
				r.Price = menu.FormatPrice(e.Item.Dish.Price, m.Currency)
			}
			report.Rows = append(report.Rows, r)
		}

		return formatOutput(cmd.OutOrStdout(), report, format, func(w io.Writer) error {
			return printRowsReport(w, report)
		})
	},
}

func printRowsReport(w io.Writer, r rowsReport) error {
	for _, row := range r.Rows {
		title := "  " + row.Title
		if row.Kind == "category" {
			title = strings.ToUpper(row.Title)
		}
		if _, err := fmt.Fprintf(w, "%8d %10s  %s  %s\n", row.Index, humanize.Commaf(row.OffsetY), title, row.Price); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%s of %s rows, range %s\n",
		humanize.Comma(int64(len(r.Rows))),
		humanize.Comma(int64(r.Total)),
		r.Range)
	return err
}

func init() {
	rootCmd.AddCommand(menuCmd)
	menuCmd.AddCommand(menuSampleCmd, menuValidateCmd, menuShowCmd, menuRowsCmd)

	menuSampleCmd.Flags().Int("categories", 10, "Number of categories")
	menuSampleCmd.Flags().Int("dishes", 40, "Dishes per category")
	menuSampleCmd.Flags().StringP("output", "o", "", "Write to this file; the format follows its extension")
	menuSampleCmd.Flags().StringP("format", "f", "yaml", "Output format (json, yaml)")

	menuShowCmd.Flags().Int("width", 80, "Wrap text at this width")
	menuShowCmd.Flags().String("style", "auto", "Glamour style (auto, dark, light, notty, ascii)")
	menuShowCmd.Flags().Bool("raw", false, "Print markdown without styling")

	menuRowsCmd.Flags().Float64("item-height", 1, "Height of every row")
	menuRowsCmd.Flags().Float64("viewport", 20, "Height of the viewport")
	menuRowsCmd.Flags().Int("overscan", 0, "Rows rendered past each edge")
	menuRowsCmd.Flags().Float64("offset", 0, "Scroll offset")
	menuRowsCmd.Flags().StringP("format", "f", "text", "Output format (text, json, yaml)")
}
