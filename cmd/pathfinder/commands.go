package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pathfinder-core/server/internal/api"
	logx "github.com/pathfinder-core/server/pkg/logger"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "pathfinder",
	Short: "Student career pathway counselor",
	Long: `Pathfinder interviews a student, builds a profile of their interests
and strengths, and recommends career paths once the profile is complete
enough. Without a GEMINI_API_KEY it runs fully offline on deterministic
keyword extraction and rule-based recommendations.`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := buildApp(ctx)
		if err != nil {
			return err
		}

		reg := api.NewRegistry(a.newSession)
		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", a.cfg.Port),
			Handler:           api.NewHandler(reg),
			ReadHeaderTimeout: 5 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logx.Info().Int("port", a.cfg.Port).Msg("HTTP server listening")
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logx.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the counselor in the terminal",
	Long: `Chat with the counselor in the terminal.

Commands inside the chat:
  /reset   start the conversation over
  /status  show the current profile and state
  /quit    exit`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		a, err := buildApp(ctx)
		if err != nil {
			return err
		}

		sess := a.newSession(uuid.NewString())
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Type a message to begin, or /quit to exit.")

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Fprint(out, "> ")
			if !scanner.Scan() {
				return scanner.Err()
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			switch line {
			case "/quit":
				return nil
			case "/reset":
				if err := sess.Reset(ctx); err != nil {
					fmt.Fprintf(out, "reset failed: %v\n", err)
					continue
				}
				fmt.Fprintln(out, "Conversation reset.")
				continue
			case "/status":
				status, err := sess.Status(ctx)
				if err != nil {
					fmt.Fprintf(out, "status failed: %v\n", err)
					continue
				}
				fmt.Fprintf(out, "state=%s completeness=%.0f%% turns=%d recommendations_given=%v\n",
					status.State, status.Completeness*100, status.HistoryLength, status.RecommendationsGiven)
				continue
			}

			resp := sess.ProcessMessage(ctx, line)
			fmt.Fprintf(out, "\n%s\n\n", resp.Text)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, chatCmd, versionCmd)
}
