package cmd

import (
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc"
	"github.com/dustin/go-humanize"
	"github.com/menuboard/menuboard/internal/window"
	"github.com/spf13/cobra"
)

type windowReport struct {
	Config      window.Config `json:"config" yaml:"config"`
	Offset      float64       `json:"offset" yaml:"offset"`
	Range       window.Range  `json:"range" yaml:"range"`
	Visible     window.Range  `json:"visible" yaml:"visible"`
	TotalExtent float64       `json:"total_extent" yaml:"total_extent"`
	MaxOffset   float64       `json:"max_offset" yaml:"max_offset"`
	IsAtTop     bool          `json:"is_at_top" yaml:"is_at_top"`
	IsAtBottom  bool          `json:"is_at_bottom" yaml:"is_at_bottom"`
}

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Compute the render window for a list geometry",
	Long: heredoc.Doc(`
		Print the range of items a list renders for the given geometry and
		scroll position, together with its extent and boundary flags.
	`),
	Example: heredoc.Doc(`
		# 1,000 rows of 50px in a 400px viewport, scrolled to 2,450px
		menuboard window -n 1000 --item-height 50 --viewport 400 --overscan 3 --offset 2450

		# Where does row 999 put the viewport?
		menuboard window -n 1000 --item-height 50 --viewport 400 --index 999 -f json
	`),
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		itemHeight, _ := cmd.Flags().GetFloat64("item-height")
		viewport, _ := cmd.Flags().GetFloat64("viewport")
		overscan, _ := cmd.Flags().GetInt("overscan")
		offset, _ := cmd.Flags().GetFloat64("offset")
		index, _ := cmd.Flags().GetInt("index")
		clamp, _ := cmd.Flags().GetBool("clamp")
		format, _ := cmd.Flags().GetString("format")

		var opts []window.Option
		if clamp {
			opts = append(opts, window.WithClampedScroll())
		}
		c, err := window.NewController(window.Config{
			ItemHeight:     itemHeight,
			ViewportHeight: viewport,
			ItemCount:      count,
			Overscan:       overscan,
		}, opts...)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("index") {
			c.ScrollToIndex(index)
		} else {
			c.OnScroll(offset)
		}

		report := windowReport{
			Config:      c.Config(),
			Offset:      c.Offset(),
			Range:       c.CurrentRange(),
			Visible:     c.VisibleRange(),
			TotalExtent: c.TotalExtent(),
			MaxOffset:   c.MaxOffset(),
			IsAtTop:     c.IsAtTop(),
			IsAtBottom:  c.IsAtBottom(),
		}
		return formatOutput(cmd.OutOrStdout(), report, format, func(w io.Writer) error {
			return printWindowReport(w, report)
		})
	},
}

func printWindowReport(w io.Writer, r windowReport) error {
	_, err := fmt.Fprintf(w, heredoc.Doc(`
		offset:       %s
		range:        %s (%s items)
		visible:      %s
		total extent: %s
		max offset:   %s
		at top:       %t
		at bottom:    %t
	`),
		humanize.Commaf(r.Offset),
		r.Range, humanize.Comma(int64(r.Range.Len())),
		r.Visible,
		humanize.Commaf(r.TotalExtent),
		humanize.Commaf(r.MaxOffset),
		r.IsAtTop,
		r.IsAtBottom,
	)
	return err
}

func init() {
	rootCmd.AddCommand(windowCmd)
	windowCmd.Flags().IntP("count", "n", 0, "Number of items")
	windowCmd.Flags().Float64("item-height", 1, "Height of every item")
	windowCmd.Flags().Float64("viewport", 0, "Height of the viewport")
	windowCmd.Flags().Int("overscan", 0, "Items rendered past each edge")
	windowCmd.Flags().Float64("offset", 0, "Scroll offset")
	windowCmd.Flags().Int("index", 0, "Scroll so this item is at the top instead of using --offset")
	windowCmd.Flags().Bool("clamp", false, "Clamp the offset to the scrollable range")
	windowCmd.Flags().StringP("format", "f", "text", "Output format (text, json, yaml)")
}
