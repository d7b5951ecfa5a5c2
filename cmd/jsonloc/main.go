// Command jsonloc extracts localizable strings from appinfo.json files and
// writes their per-locale translations.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"

	"github.com/dmitrymomot/jsonloc/pkg/config"
	"github.com/dmitrymomot/jsonloc/pkg/logger"
	"github.com/dmitrymomot/jsonloc/pkg/project"
	"github.com/dmitrymomot/jsonloc/pkg/tmstore"
)

const serviceName = "jsonloc"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "extract":
		err = cmdExtract(ctx, os.Args[2:])
	case "localize":
		err = cmdLocalize(ctx, os.Args[2:])
	case "manifest":
		err = cmdManifest(ctx, os.Args[2:])
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %q\n", os.Args[1])
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stdout, "jsonloc <command> [flags]")
	fmt.Fprintln(os.Stdout, "")
	fmt.Fprintln(os.Stdout, "Commands:")
	fmt.Fprintln(os.Stdout, "  extract  [-config FILE] [-env FILE]   extract strings into an XLIFF file")
	fmt.Fprintln(os.Stdout, "  localize [-config FILE] [-env FILE]   write localized files, new strings and manifests")
	fmt.Fprintln(os.Stdout, "  manifest [-config FILE] [-env FILE]   write manifests for existing localized files")
	fmt.Fprintln(os.Stdout, "  help                                 show this help")
}

// env is the setup shared by every command.
type env struct {
	cfg     project.Config
	log     *slog.Logger
	project *project.Project
	close   func()
}

func setup(ctx context.Context, name string, args []string) (*env, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	configFile := fs.String("config", "project.yaml", "project file; empty uses the environment only")
	envFiles := fs.String("env", "", "comma separated .env files loaded before the environment is read")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *envFiles != "" {
		if err := config.LoadEnv(strings.Split(*envFiles, ",")...); err != nil {
			return nil, err
		}
	}

	var cfg project.Config
	path := *configFile
	if path == "project.yaml" {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			path = ""
		}
	}
	if err := config.LoadFile(path, &cfg); err != nil {
		return nil, err
	}

	logOpts := []logger.Option{
		logger.WithEnvironment(cfg.Log.Env, serviceName),
		logger.WithLevelName(cfg.Log.Level),
		logger.WithAttr(logger.RunID(uuid.New()), slog.String("command", name)),
		logger.WithContextExtractors(logger.DocumentExtractor(), logger.LocaleExtractor()),
	}
	if cfg.Log.Env == logger.EnvDevelopment && isTerminal(os.Stderr) {
		logOpts = append(logOpts, logger.WithColor())
	}
	log := logger.New(logOpts...)

	e := &env{cfg: cfg, log: log, close: func() {}}

	opts := []project.Option{project.WithLogger(log)}
	if cfg.Redis.Enabled() {
		client, err := tmstore.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		e.close = func() { _ = client.Close() }
		store := tmstore.New(client,
			tmstore.WithPrefix(cfg.Redis.Prefix),
			tmstore.WithLogger(log.With(logger.Component("tmstore"))),
		)
		opts = append(opts, project.WithSnapshots(store))
	}

	p, err := project.New(ctx, cfg, opts...)
	if err != nil {
		e.close()
		return nil, err
	}
	e.project = p
	e.cfg = p.Config()

	log.DebugContext(ctx, "project loaded",
		logger.Project(e.cfg.ID),
		slog.String("root", e.cfg.Root),
		slog.String("target", e.cfg.Target),
	)
	return e, nil
}

func cmdExtract(ctx context.Context, args []string) error {
	e, err := setup(ctx, "extract", args)
	if err != nil {
		return err
	}
	defer e.close()

	report, err := e.project.Extract(ctx)
	if err != nil {
		return err
	}
	if err := e.project.WriteExtracted(ctx); err != nil {
		return err
	}
	return report.Err()
}

func cmdLocalize(ctx context.Context, args []string) error {
	e, err := setup(ctx, "localize", args)
	if err != nil {
		return err
	}
	defer e.close()

	extractReport, err := e.project.Extract(ctx)
	if err != nil {
		return err
	}

	pool, err := e.project.LoadPool(ctx)
	if err != nil {
		return err
	}

	report, err := e.project.Localize(ctx, pool)
	if err != nil {
		return err
	}
	return errors.Join(extractReport.Err(), report.Err())
}

func cmdManifest(ctx context.Context, args []string) error {
	e, err := setup(ctx, "manifest", args)
	if err != nil {
		return err
	}
	defer e.close()

	if _, err := e.project.Extract(ctx); err != nil {
		return err
	}
	return e.project.Close(ctx)
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
