package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/highrow623/pseudoregalia-archipelago/config"
	"github.com/highrow623/pseudoregalia-archipelago/ipc"
	"github.com/highrow623/pseudoregalia-archipelago/session"
	"github.com/highrow623/pseudoregalia-archipelago/tags"
	"github.com/highrow623/pseudoregalia-archipelago/tricks"
	"github.com/highrow623/pseudoregalia-archipelago/world"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "tricklogic",
	Short:         "Compile Pseudoregalia trick logic into access rules",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve reachability queries on a unix socket",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (TRICKLOGIC_* env vars override it)")

	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// env is everything a command needs once config is loaded.
type env struct {
	cfg     config.Config
	catalog *tricks.Catalog
	resolve tags.Resolver
	layout  *world.Layout
}

func setup() (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	lvl, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))

	cat, err := tricks.Load(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	resolve, err := tags.NewResolver(cfg.ClosureEngine)
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg, catalog: cat, resolve: resolve}
	if cfg.WorldPath != "" {
		l, err := world.LoadLayout(cfg.WorldPath)
		if err != nil {
			return nil, err
		}
		e.layout = &l
	}
	slog.Debug("catalog loaded",
		"path", cfg.CatalogPath,
		"tricks", len(cat.TrickIDs()),
		"engine", cfg.ClosureEngine,
	)
	return e, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	socketPath := e.cfg.SocketPath

	// Unix sockets leave behind a file on unclean shutdown; remove it so we can rebind.
	if err := os.RemoveAll(socketPath); err != nil {
		return fmt.Errorf("clean up socket %s: %w", socketPath, err)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", socketPath, err)
	}
	defer listener.Close()
	defer os.Remove(socketPath)

	slog.Info("listening on domain socket", "path", socketPath)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
					return
				}
				slog.Error("failed to accept connection", "error", err)
				continue
			}
			slog.Info("new connection accepted")
			go handleConn(conn, e)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	return nil
}

func handleConn(conn net.Conn, e *env) {
	c := ipc.NewConnection(conn, nil)
	s := session.New(c, e.catalog, e.resolve, e.layout)
	s.Register()
	c.ReadLoop()
}
