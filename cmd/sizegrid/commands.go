package main

import (
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ukaji3/sizegrid-go/internal/tui"
	"github.com/ukaji3/sizegrid-go/pkg/sizegrid"
	"github.com/ukaji3/sizegrid-go/pkg/sizegrid/export"
	"github.com/ukaji3/sizegrid-go/pkg/sizegrid/grid"
	"github.com/ukaji3/sizegrid-go/pkg/sizegrid/models"
)

func newSortCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sort SIZE...",
		Short: "Print size labels in chart order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmp, err := comparator()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(cmp.Sorted(args), " "))
			return nil
		},
	}
}

func newImportCmd() *cobra.Command {
	var (
		save bool
		id   string
	)
	cmd := &cobra.Command{
		Use:   "import [input.xlsx]",
		Short: "Read a size chart from a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chart, err := sizegrid.Import(args[0], sizegrid.DefaultImportOptions())
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}
			if !save {
				return printChart(cmd, chart)
			}

			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			saved, err := st.Save(cmd.Context(), id, chart)
			if err != nil {
				return fmt.Errorf("save failed: %w", err)
			}
			log.Info().Str("chart", saved).Str("file", args[0]).Msg("chart imported")
			fmt.Fprintln(cmd.OutOrStdout(), saved)
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "Store the chart instead of printing it")
	cmd.Flags().StringVar(&id, "id", "", "Overwrite this stored chart (with --save)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	return cmd
}

func newExportCmd() *cobra.Command {
	var (
		format string
		images []string
	)
	cmd := &cobra.Command{
		Use:   "export [chart-id]",
		Short: "Write a stored chart as a workbook or a document image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			chart, err := st.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			cmp, err := comparator()
			if err != nil {
				return err
			}

			var data []byte
			switch format {
			case "xlsx":
				data, err = export.Spreadsheet(chart, cmp)
			case "png":
				var imgs []image.Image
				imgs, err = readImages(images)
				if err != nil {
					return err
				}
				opts := export.DefaultDocumentOptions()
				opts.PageWidthMM = cfg.Document.PageWidthMM
				opts.MarginMM = cfg.Document.MarginMM
				opts.Comparator = cmp
				data, err = export.Document(chart, imgs, opts)
			default:
				return fmt.Errorf("invalid format: %s (must be xlsx or png)", format)
			}
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			if outputPath == "" {
				outputPath = args[0] + "." + format
			}
			return writeOutput(cmd, data)
		},
	}
	cmd.Flags().StringVar(&format, "format", "xlsx", "Output format: xlsx, png")
	cmd.Flags().StringSliceVar(&images, "image", nil, "Reference image to place on the document (png only)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: <chart-id>.<format>)")
	return cmd
}

func readImages(paths []string) ([]image.Image, error) {
	imgs := make([]image.Image, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return nil, err
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", p, err)
		}
		imgs = append(imgs, img)
	}
	return imgs, nil
}

func newShowCmd() *cobra.Command {
	var display bool
	cmd := &cobra.Command{
		Use:   "show [chart-id]",
		Short: "Print a stored chart as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			chart, err := st.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if display {
				chart, err = displayForm(chart)
				if err != nil {
					return err
				}
			}
			return printChart(cmd, chart)
		},
	}
	cmd.Flags().BoolVar(&display, "display", false, "Print tables in display form with sorted size columns")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	return cmd
}

func displayForm(chart models.ChartData) (models.ChartData, error) {
	cmp, err := comparator()
	if err != nil {
		return chart, err
	}
	out := models.ChartData{ChartMetadata: chart.ChartMetadata}
	for _, shape := range models.Shapes {
		out.SetTable(shape, grid.FromTable(shape, chart.Table(shape), grid.WithComparator(cmp)).Denormalize())
	}
	return out, nil
}

func printChart(cmd *cobra.Command, chart models.ChartData) error {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(chart, "", "  ")
	} else {
		data, err = json.Marshal(chart)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	return writeOutput(cmd, append(data, '\n'))
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored charts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			charts, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tMARKET\tUNIT\tUPDATED")
			for _, c := range charts {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Market, c.Unit, c.UpdatedAt.Format(time.DateTime))
			}
			return w.Flush()
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [chart-id]",
		Short: "Delete a stored chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			log.Info().Str("chart", args[0]).Msg("chart deleted")
			return nil
		},
	}
}

func newEditCmd() *cobra.Command {
	var readOnly bool
	cmd := &cobra.Command{
		Use:   "edit [chart-id]",
		Short: "Open the interactive chart editor",
		Long: `Open the interactive chart editor. Without a chart id a new chart is
started; it is stored on the first save (ctrl+s).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			ranks, err := cfg.Ranks()
			if err != nil {
				return err
			}
			opts := sizegrid.DefaultOptions()
			opts.Ranks = ranks
			opts.ReadOnly = readOnly || cfg.ReadOnly

			var id string
			if len(args) == 1 {
				id = args[0]
			}
			return tui.Run(cmd.Context(), sizegrid.NewSession(st, opts), st, id)
		},
	}
	cmd.Flags().BoolVar(&readOnly, "read-only", false, "Open the chart view only")
	return cmd
}
