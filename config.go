package main

import (
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// setup merges the config file and ALMANAC_* environment variables into
// the flag values and builds the logger.
func (app *_App) setup(cmd *cobra.Command) error {
	if app.bindErr != nil {
		return errorf("binding flags: %w", app.bindErr)
	}

	v := app.v
	v.SetEnvPrefix("almanac")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if name := v.GetString("config"); name != "" {
		v.SetConfigFile(name)
		if err := v.ReadInConfig(); err != nil {
			return errorf("reading config: %w", err)
		}
	}

	logger, err := _newLogger(cmd.ErrOrStderr(), v.GetString("log-format"), v.GetBool("verbose"))
	if err != nil {
		return err
	}
	app.logger = logger
	return nil
}

func _newLogger(w io.Writer, format string, verbose bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	var enc zapcore.Encoder
	switch format {
	case "json":
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	case "console":
		enc = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	default:
		return nil, errorf("unknown log format %q", format)
	}

	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), level)), nil
}
