/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/josephgoksu/monadgen/internal/server"
	"github.com/josephgoksu/monadgen/internal/telemetry"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and web front-end",
	Long: `Start the HTTP API that exposes every generator, the stored outputs and
the static web front-end.

Examples:
  monadgen serve                 # Listen on :8000
  monadgen serve --port 9000     # Use a custom port
  monadgen serve --origin http://localhost:5173`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 8000, "API server port")
	serveCmd.Flags().String("host", "", "interface to bind (default all)")
	serveCmd.Flags().StringSlice("origin", nil, "allowed CORS origins (default any)")

	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := appFromConfig()
	if err != nil {
		return err
	}
	defer a.close()

	origins, _ := cmd.Flags().GetStringSlice("origin")
	srv, err := server.New(server.Options{
		Addr:         a.cfg.Addr(),
		Registry:     a.registry,
		Store:        a.store,
		Orchestrator: a.orch,
		StaticDir:    a.cfg.Server.StaticDir,
		Origins:      origins,
		Provider:     a.cfg.LLM.Provider,
		Version:      GetVersion(),
		Logger:       a.log,
		Now:          nowFunc,
	})
	if err != nil {
		return fmt.Errorf("failed to create API server: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "monadgen API")
	fmt.Fprintln(out, "━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Fprintf(out, "API:       http://%s\n", displayAddr(srv.Addr()))
	fmt.Fprintf(out, "Provider:  %s\n", a.cfg.LLM.Provider)
	fmt.Fprintf(out, "Outputs:   %s\n", a.cfg.Output.Dir)
	fmt.Fprintf(out, "Generators: %d\n", a.registry.Len())
	fmt.Fprintln(out)

	if err := a.cfg.CheckCredentials(); err != nil {
		fmt.Fprintf(out, "Warning: %v. Generation requests will fail until it is set.\n\n", err)
	}

	var wg sync.WaitGroup
	errChan := make(chan error, 1)
	srv.Start(&wg, errChan)
	a.telemetry.Track(telemetry.EventServerStarted, telemetry.Properties{
		"generators": a.registry.Len(),
		"provider":   a.cfg.LLM.Provider,
	})

	fmt.Fprintln(out, "Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	var runErr error
	select {
	case sig := <-sigChan:
		fmt.Fprintf(out, "\nReceived %v, shutting down...\n", sig)
	case runErr = <-errChan:
		fmt.Fprintf(out, "\nError: %v\n", runErr)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(out, "Server shutdown error: %v\n", err)
	}

	wg.Wait()
	fmt.Fprintln(out, "monadgen stopped")
	return runErr
}

// displayAddr makes ":8000" clickable.
func displayAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}
