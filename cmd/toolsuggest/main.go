/*
Package main implements the tool suggestion engine's server and terminal
interface.

The engine ranks a catalog of tools against live, incrementally typed text
using a prefix trie and a TF-IDF-weighted inverted index. It runs as a
WebSocket + REST gateway for editor/agent integrations, or as a standalone
REPL for interactive manual testing.

# Serve Mode

The gateway loads its catalog from a YAML or TOML file and exposes
/ws, /config, and /metrics as described by the gateway package.

# REPL Mode

The REPL provides an interactive shell for debugging and testing the
suggestion engine's ranking directly, one submitted line at a time.

# Config

Runtime configuration is managed via a `config.toml` file, supporting
engine and gateway settings. A default configuration is created
automatically if one does not exist.
*/
package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/toolsuggest/core/internal/cli"
	"github.com/toolsuggest/core/pkg/catalog"
	"github.com/toolsuggest/core/pkg/config"
	"github.com/toolsuggest/core/pkg/gateway"
	"github.com/toolsuggest/core/pkg/suggest"
)

const (
	version = "0.1.0-beta"
	appName = "toolsuggest"
	gh      = "https://github.com/toolsuggest/core"
)

// sigHandler installs a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func printBanner() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[toolsuggest] real-time tool suggestion engine")
	logger.Print("", "version", version)
	logger.Print("Find out more at", "gh", gh)
	logger.Print("")
}

func loadEngine(configPath string) (*suggest.Engine, *config.Config, error) {
	cfg, err := config.InitConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	tools, err := catalog.Load(cfg.Engine.CatalogPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading catalog: %w", err)
	}
	engine, err := suggest.NewEngine(tools, cfg.ToEngineConfig())
	if err != nil {
		return nil, nil, fmt.Errorf("constructing engine: %w", err)
	}
	return engine, cfg, nil
}

func main() {
	sigHandler()

	var (
		configPath string
		debug      bool
		sessionID  string
	)

	root := &cobra.Command{
		Use:     appName,
		Short:   "Real-time tool suggestion engine",
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug {
				log.SetLevel(log.DebugLevel)
				log.SetReportTimestamp(true)
			} else {
				log.SetLevel(log.WarnLevel)
			}
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config.toml", "Path to config.toml")
	root.PersistentFlags().BoolVarP(&debug, "v", "v", false, "Toggle verbose mode")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the WebSocket + REST gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, cfg, err := loadEngine(configPath)
			if err != nil {
				return err
			}
			gw := gateway.New(engine, cfg)

			watcher, err := config.Watch(configPath, func(newCfg *config.Config) {
				tools, err := catalog.Load(newCfg.Engine.CatalogPath)
				if err != nil {
					log.Errorf("catalog reload rejected: %v", err)
					return
				}
				newEngine, err := suggest.NewEngine(tools, newCfg.ToEngineConfig())
				if err != nil {
					log.Errorf("config reload rejected: %v", err)
					return
				}
				gw.Reinit(newEngine, newCfg)
			})
			if err != nil {
				log.Warnf("config hot-reload disabled: %v", err)
			} else {
				defer watcher.Close()
			}

			log.Infof("listening on %s", cfg.Gateway.ListenAddr)
			return http.ListenAndServe(cfg.Gateway.ListenAddr, gw.Router())
		},
	}

	replCmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive terminal testing of live suggestions",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, _, err := loadEngine(configPath)
			if err != nil {
				return err
			}
			if sessionID == "" {
				sessionID = "repl"
			}
			handler := cli.NewInputHandler(engine, sessionID)
			return handler.Start()
		},
	}
	replCmd.Flags().StringVar(&sessionID, "session", "repl", "Session id to drive in the REPL")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			printBanner()
		},
	}

	root.AddCommand(serveCmd, replCmd, versionCmd)

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}
