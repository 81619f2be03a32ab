package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/nstehr/vimy/arena-core/agent"
	"github.com/nstehr/vimy/arena-core/config"
	"github.com/nstehr/vimy/arena-core/ipc"
	"github.com/nstehr/vimy/arena-core/observability"
	"github.com/nstehr/vimy/arena-core/rules"
)

const banner = `
 █████╗ ██████╗ ███████╗███╗   ██╗ █████╗
██╔══██╗██╔══██╗██╔════╝████╗  ██║██╔══██╗
███████║██████╔╝█████╗  ██╔██╗ ██║███████║
██╔══██║██╔══██╗██╔══╝  ██║╚██╗██║██╔══██║
██║  ██║██║  ██║███████╗██║ ╚████║██║  ██║
╚═╝  ╚═╝╚═╝  ╚═╝╚══════╝╚═╝  ╚═══╝╚═╝  ╚═╝

Rule-Driven Capture-the-Flag Squad Control`

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	fmt.Println(banner)

	tactics := rules.DefaultTactics()
	if cfg.Tactics.File != "" {
		tactics, err = rules.LoadTactics(cfg.Tactics.File)
		if err != nil {
			logger.Fatal("loading tactics", zap.String("file", cfg.Tactics.File), zap.Error(err))
		}
	}
	// Fail fast on a preset whose rules do not compile.
	if _, err := rules.NewEngine(rules.CompileTactics(tactics), tactics, logger); err != nil {
		logger.Fatal("compiling tactics", zap.String("tactics", tactics.Name), zap.Error(err))
	}

	socketPath := cfg.Server.SocketPath
	logger.Info("starting arena sidecar", zap.String("tactics", tactics.Name), zap.String("socket", socketPath))

	// Unix sockets leave behind a file on unclean shutdown; remove it so we can rebind.
	if err := os.RemoveAll(socketPath); err != nil {
		logger.Fatal("failed to clean up socket", zap.String("path", socketPath), zap.Error(err))
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		logger.Fatal("failed to listen on socket", zap.String("path", socketPath), zap.Error(err))
	}
	defer listener.Close()
	defer os.Remove(socketPath)

	logger.Info("listening on domain socket", zap.String("path", socketPath))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				select {
				case <-ctx.Done():
					return
				default:
					logger.Error("failed to accept connection", zap.Error(err))
					continue
				}
			}
			logger.Info("new connection accepted")
			go handleConn(conn, tactics, logger)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
}

// handleConn serves one arena host. Each connection gets its own engine so
// per-match state never leaks between hosts.
func handleConn(conn net.Conn, tactics rules.Tactics, logger *zap.Logger) {
	engine, err := rules.NewEngine(rules.CompileTactics(tactics), tactics, logger)
	if err != nil {
		logger.Error("creating engine", zap.Error(err))
		conn.Close()
		return
	}

	c := ipc.NewConnection(conn, nil, logger)
	a := agent.New(c, engine, logger)
	c.RegisterHandler(ipc.TypeHello, a.HandleHello)
	c.RegisterHandler(ipc.TypeTick, a.HandleTick)
	c.ReadLoop()

	logger.Info("match ended",
		zap.String("matchId", a.MatchID),
		zap.String("player", a.Player),
		zap.Int("teamed", a.State.Ledger.Len()),
		zap.String("summary", a.Summary()),
	)
}
