package main

import (
	"fmt"
	"image"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teslashibe/go-smile/internal/config"
	"github.com/teslashibe/go-smile/internal/log"
	"github.com/teslashibe/go-smile/pkg/annotate"
	"github.com/teslashibe/go-smile/pkg/camera"
	"github.com/teslashibe/go-smile/pkg/smile"
	"github.com/teslashibe/go-smile/pkg/video"
)

// displayDelayMs is how long each frame waits for a key press.
const displayDelayMs = 1

var cameraOpts struct {
	Preset    string
	SmileMode bool
	Labels    bool
	Output    string
}

var cameraCmd = &cobra.Command{
	Use:   "camera",
	Short: "Annotate faces live from a capture device (ESC to quit)",
	Args:  cobra.NoArgs,
	RunE:  runCamera,
}

func init() {
	cameraCmd.Flags().IntVarP(&cfg.Device, "device", "d", cfg.Device, "Capture device id")
	cameraCmd.Flags().StringVar(&cameraOpts.Preset, "preset", "default", "Capture preset ("+strings.Join(camera.PresetNames(), ", ")+")")
	cameraCmd.Flags().BoolVar(&cameraOpts.SmileMode, "smile-mode", false, "Highlight only smiling faces")
	cameraCmd.Flags().BoolVar(&cameraOpts.Labels, "labels", false, "Label face boxes with their smile score")
	cameraCmd.Flags().StringVarP(&cameraOpts.Output, "output", "o", "", "Write the best frame to this JPEG on exit")
}

func runCamera(cmd *cobra.Command, args []string) error {
	preset := camera.GetPreset(cameraOpts.Preset)
	if preset == nil {
		return fmt.Errorf("unknown preset %q (available: %s)", cameraOpts.Preset, strings.Join(camera.PresetNames(), ", "))
	}

	pipeline, release, err := loadPipeline()
	if err != nil {
		return err
	}
	defer release()

	devices := video.NewDevices(log.L())
	cam, err := devices.Open(cfg.Device, *preset)
	if err != nil {
		return err
	}

	win := video.NewWindow(config.DefaultWindowTitle)
	defer win.Close()

	opts := annotate.DefaultOptions()
	opts.SmileMode = cameraOpts.SmileMode
	opts.Labels = cameraOpts.Labels

	var (
		state smile.State
		index int
	)

	// Run closes cam on every exit path.
	err = video.Run(cmd.Context(), cam, func(frame image.Image) error {
		faces, err := pipeline.Analyze(frame)
		if err != nil {
			return err
		}

		var improved bool
		state, improved = smile.Consider(state, frame, index, faces)
		if improved {
			log.Info("new best smile", "frame", index, "smile_score", state.Score)
		}
		index++

		dest, err := annotate.Faces(frame, faces, opts)
		if err != nil {
			return err
		}
		key, err := win.Show(dest, displayDelayMs)
		if err != nil {
			return err
		}
		if key == video.KeyEsc {
			return video.ErrStop
		}
		return nil
	}, video.OnDropped(func(error) error {
		// Keep ESC responsive while the device delivers nothing.
		if win.Poll(displayDelayMs) == video.KeyEsc {
			return video.ErrStop
		}
		return nil
	}))
	if err != nil {
		return err
	}

	log.Info("camera stopped", "frames", index, "best_smile_score", state.Score)

	if cameraOpts.Output != "" && state.Found() {
		if err := writeJPEG(cameraOpts.Output, state.Frame, cfg.JPEGQuality); err != nil {
			return err
		}
		log.Info("best frame saved", "path", cameraOpts.Output, "frame", state.Index)
	}
	return nil
}
