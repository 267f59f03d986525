package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/teslashibe/go-smile/internal/config"
	"github.com/teslashibe/go-smile/internal/log"
	"github.com/teslashibe/go-smile/pkg/detection"
	"github.com/teslashibe/go-smile/pkg/emotions"
	"github.com/teslashibe/go-smile/pkg/inference"
	"github.com/teslashibe/go-smile/pkg/smile"
	"github.com/teslashibe/go-smile/pkg/video"
)

// Version is the application version.
const Version = "0.1.0"

// cfg starts from the environment; flags override it.
var cfg = config.FromEnv()

var rootCmd = &cobra.Command{
	Use:          "smile",
	Short:        "Find the frame with the best smile",
	Version:      Version,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Init(cfg.LogLevel)
	},
}

// Execute runs the root command with a context cancelled on SIGINT/SIGTERM.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flags.StringVar(&cfg.ModelDir, "models", cfg.ModelDir, "Model directory (Open Model Zoo layout)")
	flags.StringVar(&cfg.DetectorModel, "detector", cfg.DetectorModel, "Face detection model name or file")
	flags.StringVar(&cfg.EmotionsModel, "emotions", cfg.EmotionsModel, "Emotion recognition model name or file")
	flags.Float64Var(&cfg.Confidence, "confidence", cfg.Confidence, "Minimum face detection confidence")
	flags.IntVar(&cfg.JPEGQuality, "quality", cfg.JPEGQuality, "JPEG quality of the written frame")

	rootCmd.AddCommand(serveCmd, pickCmd, cameraCmd)
}

// loadPipeline loads both models once. The returned func releases them.
func loadPipeline() (*smile.Pipeline, func(), error) {
	logger := log.L()
	rt := inference.NewDNN(inference.WithLogger(logger))

	dcfg := detection.DefaultConfig()
	dcfg.ModelPath = cfg.DetectorPath()
	dcfg.ConfidenceThresh = float32(cfg.Confidence)
	dcfg.Logger = logger
	det, err := detection.Load(rt, dcfg)
	if err != nil {
		return nil, nil, err
	}

	ecfg := emotions.DefaultConfig()
	ecfg.ModelPath = cfg.EmotionsPath()
	ecfg.Logger = logger
	cls, err := emotions.Load(rt, ecfg)
	if err != nil {
		det.Close()
		return nil, nil, err
	}

	logger.Info("models loaded", "detector", dcfg.ModelPath, "emotions", ecfg.ModelPath)

	release := func() {
		det.Close()
		cls.Close()
	}
	return smile.New(det, cls, smile.WithLogger(logger)), release, nil
}

// openFile adapts video.OpenFile to web.Opener.
func openFile(path string) (video.Source, error) {
	f, err := video.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}
