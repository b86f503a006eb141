// Command raildump runs the layout analysis pipeline over a rendered
// page image and a file of raw detection rows, then prints the ordered
// block structure. It exists for inspecting detector output without a
// full reader UI.
package main

import (
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sjvrensburg/railreader2"
	"github.com/sjvrensburg/railreader2/model"
)

var (
	imagePath      string
	detectionsPath string
	pageWidth      float64
	pageHeight     float64
)

var rootCmd = &cobra.Command{
	Use:   "raildump",
	Short: "Dump the analyzed layout structure of one page",
	Long: `raildump feeds a rendered page image and a JSON file of raw
detection rows through the layout pipeline (filtering, overlap
suppression, reading order, line segmentation) and prints the
resulting block structure in reading order.

The detections file holds an array of rows, each row an array of at
least six numbers: [class, confidence, xmin, ymin, xmax, ymax] with an
optional seventh reading-order value. Coordinates are in pixels of the
supplied image. When no detections file is given, the deterministic
strip fallback is printed instead.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVarP(&imagePath, "image", "i", "", "rendered page image (PNG or JPEG)")
	rootCmd.Flags().StringVarP(&detectionsPath, "detections", "d", "", "JSON file of raw detection rows")
	rootCmd.Flags().Float64Var(&pageWidth, "page-width", 612, "page width in points")
	rootCmd.Flags().Float64Var(&pageHeight, "page-height", 792, "page height in points")
}

func run(cmd *cobra.Command, args []string) error {
	var analysis *model.PageAnalysis

	switch {
	case imagePath == "":
		analysis = railreader.Fallback(pageWidth, pageHeight)
	default:
		img, err := loadImage(imagePath)
		if err != nil {
			return err
		}
		rows, cols, err := loadDetections(detectionsPath)
		if err != nil {
			return err
		}
		analysis = railreader.AnalyzeImage(img, rows, cols, pageWidth, pageHeight)
	}

	printAnalysis(cmd, analysis)
	return nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return img, nil
}

// loadDetections flattens the JSON rows into the detector's row-major
// layout. Rows shorter than the first row's width are rejected.
func loadDetections(path string) ([]float32, int, error) {
	if path == "" {
		return nil, 0, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read detections: %w", err)
	}

	var rows [][]float32
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, 0, fmt.Errorf("parse detections %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, 0, nil
	}

	cols := len(rows[0])
	flat := make([]float32, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, 0, fmt.Errorf("detections row %d has %d values, want %d", i, len(row), cols)
		}
		flat = append(flat, row...)
	}
	return flat, cols, nil
}

func printAnalysis(cmd *cobra.Command, analysis *model.PageAnalysis) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "page %.1f x %.1f pt, %d blocks, %d lines\n",
		analysis.PageWidth, analysis.PageHeight,
		analysis.BlockCount(), analysis.TotalLineCount(model.DefaultNavigableClasses()))

	for _, block := range analysis.Blocks {
		fmt.Fprintf(out, "%3d  %-16s  conf %.2f  [%.1f %.1f %.1f %.1f]  %d lines\n",
			block.Order, model.ClassName(block.ClassID), block.Confidence,
			block.BBox.X, block.BBox.Y, block.BBox.Width, block.BBox.Height,
			len(block.Lines))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal("raildump failed", "err", err)
	}
}
