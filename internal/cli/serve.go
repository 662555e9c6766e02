package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tnguyen21/netscope/internal/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over SSH",
		Long: `Serve the dashboard of this host over SSH. Each client gets its own
theme session detected from its terminal.

Examples:
  netscope serve
  netscope serve --port 2323 --allow-kill`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port, _ = cmd.Flags().GetInt("port")
			}
			if cmd.Flags().Changed("allow-kill") {
				cfg.Server.AllowKill, _ = cmd.Flags().GetBool("allow-kill")
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			closer, err := setupLogging(cfg)
			if err != nil {
				return err
			}
			defer closer.Close()

			splash, logo := hostArt()
			srv, err := server.New(server.Options{Config: cfg, Version: Version, Splash: splash, Logo: logo})
			if err != nil {
				return err
			}
			return serve(cmd, srv)
		},
	}
	cmd.Flags().Int("port", 2222, "listen port")
	cmd.Flags().Bool("allow-kill", false, "let clients terminate processes")
	return cmd
}

func serve(cmd *cobra.Command, srv *server.Server) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	fmt.Fprintf(cmd.OutOrStdout(), "NetScope listening on %s\n", srv.Addr())
	log.Info().Str("addr", srv.Addr()).Msg("ssh server started")
	if err := g.Wait(); err != nil {
		return err
	}
	log.Info().Msg("ssh server stopped")
	return nil
}
