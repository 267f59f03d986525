package main

import (
	"github.com/spf13/cobra"

	"github.com/teslashibe/go-smile/internal/log"
	"github.com/teslashibe/go-smile/pkg/web"
)

var serveTempDir string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve POST /upload: video in, best smile JPEG out",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&cfg.Port, "port", "p", cfg.Port, "Listen port")
	serveCmd.Flags().StringVar(&serveTempDir, "temp-dir", "", "Directory for uploads and results (default: system temp dir)")
}

func runServe(cmd *cobra.Command, args []string) error {
	pipeline, release, err := loadPipeline()
	if err != nil {
		return err
	}
	defer release()

	wcfg := web.DefaultConfig()
	wcfg.Port = cfg.Port
	wcfg.JPEGQuality = cfg.JPEGQuality
	wcfg.Logger = log.L()
	if serveTempDir != "" {
		wcfg.TempDir = serveTempDir
	}

	srv := web.NewServer(pipeline, openFile, wcfg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-cmd.Context().Done():
		log.Info("shutting down")
		return srv.Shutdown()
	}
}
