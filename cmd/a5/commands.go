package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jengzang/a5grid/internal/export"
	"github.com/jengzang/a5grid/internal/logger"
	"github.com/jengzang/a5grid/internal/service"
	"github.com/jengzang/a5grid/internal/spatial"
	"github.com/jengzang/a5grid/pkg/a5"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "a5",
		Short:        "Encode, inspect and export cells of the pentagonal equal-area grid",
		SilenceUsage: true,
	}
	root.AddCommand(
		newEncodeCmd(),
		newDecodeCmd(),
		newParentCmd(),
		newChildrenCmd(),
		newCompactCmd(),
		newUncompactCmd(),
		newInfoCmd(),
		newWireframeCmd(),
	)
	return root
}

func newEncodeCmd() *cobra.Command {
	var lon, lat float64
	var res int
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Print the cell containing a point",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a5.LonLatToCell(spatial.LonLat{Lon: lon, Lat: lat}, res)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	cmd.Flags().Float64Var(&lon, "lon", 0, "longitude in degrees")
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude in degrees")
	cmd.Flags().IntVarP(&res, "resolution", "r", 10, "cell resolution")
	_ = cmd.MarkFlagRequired("lon")
	_ = cmd.MarkFlagRequired("lat")
	return cmd
}

func newDecodeCmd() *cobra.Command {
	var segments int
	var geoJSON bool
	cmd := &cobra.Command{
		Use:   "decode <cell>",
		Short: "Print the centre and boundary of a cell",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := service.ParseCell(args[0])
			if err != nil {
				return err
			}
			ring, err := a5.CellToBoundary(id, &a5.BoundaryOptions{Closed: true, Segments: segments})
			if err != nil {
				return err
			}
			if geoJSON {
				f, err := export.CellFeature(id, ring)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), f)
			}

			center, err := a5.CellToLonLat(id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "cell\t%s\nresolution\t%d\ncenter\t%.8f,%.8f\n", id, id.Resolution(), center.Lon, center.Lat)
			for _, p := range ring {
				fmt.Fprintf(out, "vertex\t%.8f,%.8f\n", p.Lon, p.Lat)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&segments, "segments", 0, "pieces per edge, 0 picks a default")
	cmd.Flags().BoolVar(&geoJSON, "geojson", false, "print a GeoJSON feature")
	return cmd
}

func newParentCmd() *cobra.Command {
	var res int
	cmd := &cobra.Command{
		Use:   "parent <cell>",
		Short: "Print the parent of a cell",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := service.ParseCell(args[0])
			if err != nil {
				return err
			}
			var parent a5.CellID
			if cmd.Flags().Changed("resolution") {
				parent, err = a5.CellToParentAt(id, res)
			} else {
				parent, err = a5.CellToParent(id)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), parent)
			return nil
		},
	}
	cmd.Flags().IntVarP(&res, "resolution", "r", 0, "ancestor resolution")
	return cmd
}

func newChildrenCmd() *cobra.Command {
	var res int
	cmd := &cobra.Command{
		Use:   "children <cell>",
		Short: "Print the children of a cell, one per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := service.ParseCell(args[0])
			if err != nil {
				return err
			}
			target := id.Resolution() + 1
			if cmd.Flags().Changed("resolution") {
				target = res
			}
			children, err := a5.CellToChildrenAt(id, target)
			if err != nil {
				return err
			}
			return writeCells(cmd.OutOrStdout(), children)
		},
	}
	cmd.Flags().IntVarP(&res, "resolution", "r", 0, "descendant resolution")
	return cmd
}

func newCompactCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compact [cell...]",
		Short: "Merge complete sibling groups; reads stdin when no cells are given",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := cellArgs(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			compacted, err := a5.Compact(ids)
			if err != nil {
				return err
			}
			return writeCells(cmd.OutOrStdout(), compacted)
		},
	}
}

func newUncompactCmd() *cobra.Command {
	var res int
	cmd := &cobra.Command{
		Use:   "uncompact [cell...]",
		Short: "Expand cells to a resolution; reads stdin when no cells are given",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := cellArgs(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			cells, err := a5.Uncompact(ids, res)
			if err != nil {
				return err
			}
			return writeCells(cmd.OutOrStdout(), cells)
		},
	}
	cmd.Flags().IntVarP(&res, "resolution", "r", 0, "target resolution")
	_ = cmd.MarkFlagRequired("resolution")
	return cmd
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print cell counts and areas per resolution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "resolution\tcells\tarea_m2")
			for r := 0; r <= a5.MaxResolution; r++ {
				fmt.Fprintf(out, "%d\t%d\t%.6g\n", r, a5.NumCells(r), a5.CellArea(r))
			}
			return nil
		},
	}
}

func newWireframeCmd() *cobra.Command {
	var res, limit int
	var output string
	cmd := &cobra.Command{
		Use:   "wireframe [cell...]",
		Short: "Write the cells at a resolution as a GeoJSON feature collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			var ids []a5.CellID
			if len(args) > 0 {
				parsed, err := service.ParseCells(args)
				if err != nil {
					return err
				}
				ids = parsed
			}

			log, err := logger.New(logger.Options{Level: "warn", Format: "console"})
			if err != nil {
				return err
			}
			cells, err := service.NewCellService(256<<20, limit, log)
			if err != nil {
				return err
			}
			defer cells.Close()

			fc, err := export.Wireframe(cmd.Context(), cells, cells.Uncompact, ids, res)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return errors.Wrapf(err, "failed to create %s", output)
				}
				defer f.Close()
				out = f
			}
			return writeJSON(out, fc)
		},
	}
	cmd.Flags().IntVarP(&res, "resolution", "r", 0, "cell resolution")
	cmd.Flags().IntVar(&limit, "limit", 1<<20, "maximum number of cells to export")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, stdout when empty")
	_ = cmd.MarkFlagRequired("resolution")
	return cmd
}

// cellArgs parses ids from args, or from whitespace separated stdin when
// args is empty
func cellArgs(in io.Reader, args []string) ([]a5.CellID, error) {
	if len(args) == 0 {
		scanner := bufio.NewScanner(in)
		scanner.Split(bufio.ScanWords)
		for scanner.Scan() {
			if w := strings.TrimSpace(scanner.Text()); w != "" {
				args = append(args, w)
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, errors.Wrap(err, "failed to read cells")
		}
	}
	return service.ParseCells(args)
}

func writeCells(w io.Writer, ids []a5.CellID) error {
	bw := bufio.NewWriter(w)
	for _, id := range ids {
		fmt.Fprintln(bw, id)
	}
	return bw.Flush()
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
