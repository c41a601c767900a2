package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wtask/duplex/internal/buildinfo"
	"github.com/wtask/duplex/internal/config"
	"github.com/wtask/duplex/internal/console"
	"github.com/wtask/duplex/internal/duplex"
	"github.com/wtask/duplex/internal/logger"
)

// BinaryName - name of run application binary
var BinaryName = strings.TrimSuffix(filepath.Base(os.Args[0]), filepath.Ext(os.Args[0]))

func execute(ctx context.Context) int {
	return run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// run - executes command line and maps result to process exit code.
func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	cmd := newRootCmd(in, out, errOut)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

// options - command line values, applied over config file when flag is set explicitly.
type options struct {
	configFile string
	address    string
	port       int
	chunkSize  int
	render     string
	prompt     string
	prefix     string
	color      bool
	logFile    string
	debug      bool
}

func (o *options) bindSession(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&o.configFile, "config", "", "YAML config file")
	fs.IntVar(&o.chunkSize, "chunk-size", config.DefaultChunkSize, "Max bytes taken by a single read from peer")
	fs.StringVar(&o.render, "render", config.RenderText, "Print received bytes as \"text\" or \"quoted\"")
	fs.StringVar(&o.prompt, "prompt", console.DefaultPrompt, "Operator input prompt")
	fs.StringVar(&o.prefix, "prefix", console.DefaultPrefix, "Prefix of received payloads")
	fs.BoolVar(&o.color, "color", false, "Colored prompt and prefix")
	fs.StringVar(&o.logFile, "log-file", "", "Write JSON logs to file instead of stderr")
	fs.BoolVar(&o.debug, "debug", false, "Verbose logging")
}

func (o *options) bindListen(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&o.address, "address", "", "Listen IPv4 address, empty means all interfaces")
	fs.IntVar(&o.port, "port", config.DefaultPort, "Listen port")
	o.bindSession(cmd)
}

// config - defaults < config file < explicitly set flags.
func (o *options) config(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if o.configFile != "" {
		var err error
		if cfg, err = config.Load(o.configFile); err != nil {
			return cfg, err
		}
	}
	fs := cmd.Flags()
	changed := func(name string) bool {
		f := fs.Lookup(name)
		return f != nil && f.Changed
	}
	if changed("address") {
		cfg.Listen.Address = o.address
	}
	if changed("port") {
		cfg.Listen.Port = o.port
	}
	if changed("chunk-size") {
		cfg.Session.ChunkSize = o.chunkSize
	}
	if changed("render") {
		cfg.Session.Render = o.render
	}
	if changed("prompt") {
		cfg.Console.Prompt = o.prompt
	}
	if changed("prefix") {
		cfg.Console.Prefix = o.prefix
	}
	if changed("color") {
		cfg.Console.Color = o.color
	}
	if changed("log-file") {
		cfg.Log.File = o.logFile
	}
	if changed("debug") {
		cfg.Log.Debug = o.debug
	}
	return cfg, cfg.Validate()
}

// app - logger, terminal and server built from config.
type app struct {
	server  *duplex.Server
	term    *console.Console
	cleanup func() error
	options []duplex.Option
}

func setup(cmd *cobra.Command, cfg config.Config) (*app, error) {
	cleanup, err := logger.Setup(logger.Config{File: cfg.Log.File, Debug: cfg.Log.Debug})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	log := logger.L().With("version", buildinfo.SemVer().String())

	render, err := console.ParseRender(cfg.Session.Render)
	if err != nil {
		cleanup()
		return nil, err
	}
	termOptions := []console.Option{
		console.WithPrompt(cfg.Console.Prompt),
		console.WithPrefix(cfg.Console.Prefix),
		console.WithRender(render),
	}
	if cfg.Console.Color {
		termOptions = append(termOptions, console.WithTheme(console.DefaultTheme()))
	}
	term, err := console.New(cmd.InOrStdin(), cmd.OutOrStdout(), termOptions...)
	if err != nil {
		cleanup()
		return nil, err
	}

	options := []duplex.Option{
		duplex.WithChunkSize(cfg.Session.ChunkSize),
		duplex.WithLogger(log),
	}
	server, err := duplex.NewServer(term, options...)
	if err != nil {
		cleanup()
		return nil, err
	}
	return &app{server: server, term: term, cleanup: cleanup, options: options}, nil
}

// finish - peer close and operator interrupt are normal session ends.
func (rt *app) finish(err error) error {
	switch {
	case errors.Is(err, duplex.ErrPeerClosed):
		rt.term.Noticef("Connection closed by peer")
		return nil
	case errors.Is(err, context.Canceled):
		return nil
	}
	return err
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:          BinaryName,
		Short:        "Single-peer chat over raw TCP",
		Long:         "Listens for exactly one TCP peer, prints what it sends and sends what you type.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runListen(cmd, o)
		},
	}
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	o.bindListen(cmd)

	cmd.AddCommand(newListenCmd(), newConnectCmd(), newVersionCmd())
	return cmd
}

func newListenCmd() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Wait for a single peer and chat with it (default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runListen(cmd, o)
		},
	}
	o.bindListen(cmd)
	return cmd
}

func runListen(cmd *cobra.Command, o *options) error {
	cfg, err := o.config(cmd)
	if err != nil {
		return err
	}
	rt, err := setup(cmd, cfg)
	if err != nil {
		return err
	}
	defer rt.cleanup()

	acceptor, err := duplex.Listen(cfg.ListenAddress(), rt.options...)
	if err != nil {
		return err
	}
	defer acceptor.Close()

	return rt.finish(rt.server.Serve(cmd.Context(), acceptor))
}

func newConnectCmd() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "connect <host:port>",
		Short: "Dial a listening peer and chat with it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.config(cmd)
			if err != nil {
				return err
			}
			rt, err := setup(cmd, cfg)
			if err != nil {
				return err
			}
			defer rt.cleanup()

			conn, err := duplex.Dial(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			rt.term.Noticef("Connected to %s", conn.RemoteAddr())
			return rt.finish(rt.server.Run(cmd.Context(), conn))
		},
	}
	o.bindSession(cmd)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}
}
