package main

import (
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/teslashibe/go-smile/internal/log"
	"github.com/teslashibe/go-smile/pkg/annotate"
	"github.com/teslashibe/go-smile/pkg/smile"
	"github.com/teslashibe/go-smile/pkg/video"
)

var pickOpts struct {
	Output   string
	Annotate bool
	Labels   bool
}

var pickCmd = &cobra.Command{
	Use:   "pick <video>",
	Short: "Write the frame with the best smile to a JPEG file",
	Args:  cobra.ExactArgs(1),
	RunE:  runPick,
}

func init() {
	pickCmd.Flags().StringVarP(&pickOpts.Output, "output", "o", "best.jpg", "Output JPEG path")
	pickCmd.Flags().BoolVarP(&pickOpts.Annotate, "annotate", "a", false, "Draw face boxes on the output")
	pickCmd.Flags().BoolVar(&pickOpts.Labels, "labels", false, "Label face boxes with their smile score")
}

func runPick(cmd *cobra.Command, args []string) error {
	input := args[0]

	pipeline, release, err := loadPipeline()
	if err != nil {
		return err
	}
	defer release()

	src, err := video.OpenFile(input)
	if err != nil {
		return err
	}

	total := src.FrameCount()
	if total <= 0 {
		total = -1
	}
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Scanning"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
	)

	res, err := pipeline.FindBest(cmd.Context(), src, func(int) { bar.Add(1) })
	bar.Finish()
	fmt.Fprintln(os.Stderr)
	if errors.Is(err, smile.ErrNoFace) {
		return fmt.Errorf("%s: %w", input, err)
	}
	if err != nil {
		return err
	}

	var out image.Image = res.Frame
	if pickOpts.Annotate {
		opts := annotate.DefaultOptions()
		opts.Labels = pickOpts.Labels
		if out, err = annotate.Faces(res.Frame, res.Faces, opts); err != nil {
			return err
		}
	}

	if err := writeJPEG(pickOpts.Output, out, cfg.JPEGQuality); err != nil {
		return err
	}

	log.Info("best frame saved",
		"path", pickOpts.Output,
		"frame", res.Index,
		"frames", res.Frames,
		"smile_score", res.Score,
		"faces", len(res.Faces),
	)
	return nil
}

func writeJPEG(path string, img image.Image, quality int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := video.EncodeJPEG(f, img, quality); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
