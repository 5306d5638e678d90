package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/server"
)

var (
	serveHost     string
	servePort     int
	serveExporter string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local editor API",
	Long:  `Start an HTTP server that exposes JSON endpoints for browsing, selecting, laying out and exporting the resume.`,
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to listen on (default \"127.0.0.1\")")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080)")
	serveCmd.Flags().StringVar(&serveExporter, "exporter", "", "Exporter used by /api/export: chrome or fpdf")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	exporter, err := sess.exporter(serveExporter)
	if err != nil {
		return err
	}

	cfg := server.Config{
		Host:          sess.cfg.Host,
		Port:          sess.cfg.Port,
		ExportTimeout: sess.cfg.ExportTimeout(),
	}
	if serveHost != "" {
		cfg.Host = serveHost
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	srv := server.New(sess.editor, exporter, cfg, sess.logger)
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
