package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/spf13/cobra"

	"github.com/abhisek/studygenie/internal/app"
	"github.com/abhisek/studygenie/internal/config"
	"github.com/abhisek/studygenie/internal/controller"
	"github.com/abhisek/studygenie/internal/demo"
	"github.com/abhisek/studygenie/internal/logging"
	"github.com/abhisek/studygenie/internal/notice"
	"github.com/abhisek/studygenie/internal/render"
	"github.com/abhisek/studygenie/internal/screen"
	"github.com/abhisek/studygenie/internal/store"
	"github.com/abhisek/studygenie/internal/transport"
)

// deps is everything a command needs, built from configuration.
type deps struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *store.Store
	ctrl   *controller.Controller
	board  *notice.Board

	closers []io.Closer
}

func (d *deps) Close() {
	if d.ctrl != nil {
		d.ctrl.Close()
	}
	if d.board != nil {
		d.board.Close()
	}
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i].Close()
	}
}

// loadConfig resolves configuration and applies the persistent flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")

	cfg, err := config.Load(config.Options{Path: path, EnvFile: envFile})
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if v, _ := flags.GetString("base-url"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v, _ := flags.GetString("db"); v != "" {
		cfg.DBPath = v
	}
	if v, _ := flags.GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}
	if flags.Changed("demo") {
		cfg.Demo, _ = flags.GetBool("demo")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// eventRetention bounds the request log kept between runs.
const eventRetention = 5000

// setup opens the event log and builds the controller. The TUI logs to a
// file; one-shot commands log to stderr.
func setup(cmd *cobra.Command, tui bool) (*deps, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	d := &deps{cfg: cfg}
	logger, logCloser, err := logging.Setup(cfg.Log, tui)
	if err != nil {
		return nil, fmt.Errorf("set up logging: %w", err)
	}
	d.logger = logger
	d.closers = append(d.closers, logCloser)

	dsn, err := cfg.DSN()
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dsn)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	d.store = st
	d.closers = append(d.closers, st)
	events := st.EventRepo()
	if removed, err := events.PruneRequests(cmd.Context(), eventRetention); err != nil {
		logger.Warn("prune request log", "error", err)
	} else if removed > 0 {
		logger.Debug("pruned request log", "removed", removed)
	}

	demoGW, err := demo.NewGateway()
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("load demo data: %w", err)
	}
	demoClient := transport.NewClient(transport.WithLogging(demoGW, events, logger))

	var client *transport.Client
	if cfg.Demo {
		client = demoClient
	} else {
		gw, err := transport.NewGateway(cfg.Backend, events, logger)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("create backend gateway: %w", err)
		}
		client = transport.NewClient(gw)
	}

	d.board = notice.NewBoard(cfg.NoticeDuration)
	d.ctrl = controller.New(controller.Options{
		Client:      client,
		DemoClient:  demoClient,
		Notices:     d.board,
		Logger:      logger,
		DemoRefresh: cfg.DemoRefresh,
	})
	return d, nil
}

// startCLISession begins the anonymous session one-shot commands run in.
func (d *deps) startCLISession() {
	d.ctrl.StartLocal("cli", d.cfg.Demo)
}

// echoNotices prints success and info notices to w as they are posted.
// Failures reach the user as the command's error instead.
func (d *deps) echoNotices(w io.Writer) {
	var mu sync.Mutex
	seen := make(map[string]bool)
	d.board.SetOnChange(func(list []notice.Notice) {
		mu.Lock()
		defer mu.Unlock()
		for _, n := range list {
			if seen[n.ID] || n.Level == notice.Error || n.Level == notice.Warning {
				continue
			}
			seen[n.ID] = true
			fmt.Fprintln(w, render.Notices([]notice.Notice{n}, cliWidth))
		}
	})
}

// runApp launches the TUI.
func runApp(cmd *cobra.Command) error {
	d, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer d.Close()

	if d.cfg.Demo {
		d.ctrl.EnterDemo()
	}

	env := screen.Env{
		Ctrl:   d.ctrl,
		Charts: render.NewChartSet(),
		Events: d.store.EventRepo(),
	}
	err = app.Run(cmd.Context(), env, d.cfg.PollInterval)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
