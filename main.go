package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/b97tsk/almanac/almanac"
	"github.com/b97tsk/almanac/remap"
)

const (
	_defaultMode      = "ranges"
	_defaultLogFormat = "console"
	_exitCanceled     = 130
)

type _App struct {
	v       *viper.Viper
	logger  *zap.Logger
	bindErr error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	if ctx.Err() != nil && code == 0 {
		code = _exitCanceled
	}

	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	app := &_App{v: viper.New()}
	defer app.close()

	cmd := app.command()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fprintln(stderr, "almanac:", err)
		if ctx.Err() != nil {
			return _exitCanceled
		}
		return 1
	}
	return 0
}

func (app *_App) command() *cobra.Command {
	root := &cobra.Command{
		Use:           "almanac",
		Short:         "Resolve seed almanacs through their remapping stages",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	flags.String("log-format", _defaultLogFormat, "log format (console or json)")
	flags.String("format", "", "input format (text or yaml), guessed from the file name when empty")
	app.bind(flags)

	root.AddCommand(app.solveCommand(), app.lookupCommand(), app.exportCommand())
	return root
}

func (app *_App) solveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve FILE",
		Short: "Print the lowest location any seed reaches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.solve(cmd, args[0])
		},
	}

	flags := cmd.Flags()
	flags.IntP("workers", "w", 0, "maximum number of seed ranges resolved in parallel (0 means GOMAXPROCS)")
	flags.StringP("mode", "m", _defaultMode, "how to read the seed line (ranges or values)")
	flags.String("cache", "", "answer cache file, empty disables caching")
	flags.Bool("trace", false, "log the working set after every stage")
	app.bind(flags)

	return cmd
}

func (app *_App) lookupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup FILE VALUE...",
		Short: "Print the location of single values",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.lookup(cmd, args[0], args[1:])
		},
	}
}

func (app *_App) exportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Write an almanac as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, a, err := app.load(cmd, args[0])
			if err != nil {
				return err
			}
			return a.EncodeYAML(cmd.OutOrStdout())
		},
	}
}

func (app *_App) solve(cmd *cobra.Command, name string) error {
	start := time.Now()

	data, a, err := app.load(cmd, name)
	if err != nil {
		return err
	}

	mode := app.v.GetString("mode")
	var seeds []remap.Interval
	switch mode {
	case "ranges":
		seeds, err = a.SeedRanges()
	case "values":
		seeds, err = a.SeedValues()
	default:
		err = errorf("unknown mode %q", mode)
	}
	if err != nil {
		return err
	}

	key := _newCacheKey(data, mode)
	var cache *_AnswerCache
	if cacheName := app.v.GetString("cache"); cacheName != "" {
		cache, err = _openAnswerCache(cacheName)
		if err != nil {
			app.logger.Warn("ignoring answer cache", zap.String("path", cacheName), zap.Error(err))
		} else {
			if err := cache.Discarded(); err != nil {
				app.logger.Warn("discarding answer cache", zap.String("path", cacheName), zap.Error(err))
			}
			defer func() {
				if err := cache.Close(); err != nil {
					app.logger.Warn("saving answer cache", zap.String("path", cacheName), zap.Error(err))
				}
			}()
			if low, ok := cache.Get(key); ok {
				app.logger.Info("cache hit", zap.String("file", name), zap.Uint64("minimum", low))
				fprintln(cmd.OutOrStdout(), low)
				return nil
			}
		}
	}

	p, err := a.Pipeline()
	if err != nil {
		return err
	}

	solver := remap.NewSolver(p,
		remap.WithWorkers(app.v.GetInt("workers")),
		remap.WithLogger(app.logger),
	)

	if app.v.GetBool("trace") {
		if _, err := solver.Trace(seeds); err != nil {
			return err
		}
	}

	low, err := solver.MinimumLocation(cmd.Context(), seeds)
	if err != nil {
		return err
	}

	if cache != nil {
		cache.Put(key, low)
	}

	app.logger.Info("solved",
		zap.String("file", name),
		zap.String("mode", mode),
		zap.Uint64("minimum", low),
		zap.Int("seeds", len(seeds)),
		zap.Int("stages", p.Len()),
		zap.Duration("elapsed", time.Since(start)))

	fprintln(cmd.OutOrStdout(), low)
	return nil
}

func (app *_App) lookup(cmd *cobra.Command, name string, values []string) error {
	_, a, err := app.load(cmd, name)
	if err != nil {
		return err
	}

	p, err := a.Pipeline()
	if err != nil {
		return err
	}

	var mapper remap.Mapper = p
	if app.logger.Core().Enabled(zap.DebugLevel) {
		mapper = remap.MapperFunc(func(v uint64) uint64 {
			for _, m := range p.Stages() {
				v = m.Map(v)
				app.logger.Debug("stage", zap.String("map", m.Name()), zap.Uint64("value", v))
			}
			return v
		})
	}

	for _, s := range values {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return errorf("bad value %q: %w", s, err)
		}

		fprintf(cmd.OutOrStdout(), "%v %v\n", v, mapper.Map(v))
	}
	return nil
}

// load reads name ("-" for stdin) and parses it. The raw bytes are
// returned for cache keys.
func (app *_App) load(cmd *cobra.Command, name string) ([]byte, *almanac.Almanac, error) {
	var (
		data []byte
		err  error
	)
	if name == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, nil, err
	}

	format := app.v.GetString("format")
	if format == "" {
		switch strings.ToLower(filepath.Ext(name)) {
		case ".yaml", ".yml":
			format = "yaml"
		default:
			format = "text"
		}
	}

	var a *almanac.Almanac
	switch format {
	case "text":
		a, err = almanac.Parse(bytes.NewReader(data))
	case "yaml":
		a, err = almanac.DecodeYAML(bytes.NewReader(data))
	default:
		err = errorf("unknown format %q", format)
	}
	if err != nil {
		return nil, nil, err
	}

	app.logger.Debug("loaded almanac",
		zap.String("file", name),
		zap.String("format", format),
		zap.Int("seeds", len(a.Seeds)),
		zap.Int("maps", len(a.Maps)))

	return data, a, nil
}

// bind records the first binding failure; setup reports it.
func (app *_App) bind(flags *pflag.FlagSet) {
	if err := app.v.BindPFlags(flags); err != nil && app.bindErr == nil {
		app.bindErr = err
	}
}

func (app *_App) close() {
	if app.logger != nil {
		_ = app.logger.Sync()
	}
}
