package cli

import (
	"fmt"
	"io"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Args are the global flags.
type Args struct {
	ConfigPath string
	Input      string
	Output     string
	Indent     int
	LogLevel   string
	Write      bool
}

// Config holds defaults that can come from a YAML file and the environment.
// Flags given on the command line win over both.
type Config struct {
	LogLevel string `yaml:"log_level" env:"OMAPEDIT_LOG_LEVEL" env-default:"info" env-description:"Log level: debug, info, warn or error"`
	Output   string `yaml:"output" env:"OMAPEDIT_OUTPUT" env-description:"Output format: literal, json or msgpack (default: same as input)"`
	Indent   int    `yaml:"indent" env:"OMAPEDIT_INDENT" env-default:"2" env-description:"Spaces per indentation level, 0 writes one line"`
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// applyFlags overrides config values with the flags that were set explicitly.
func applyFlags(cfg *Config, a *Args, cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = a.LogLevel
	}
	if flags.Changed("output") {
		cfg.Output = a.Output
	}
	if flags.Changed("indent") {
		cfg.Indent = a.Indent
	}
}

// ProcessArgs registers the global flags and documents the environment
// variables in the usage text.
func ProcessArgs(a *Args, cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.ConfigPath, "config", "c", "", "Path to a YAML configuration file")
	flags.StringVar(&a.Input, "input", "", "Input format: literal, json or msgpack (default: by file extension)")
	flags.StringVarP(&a.Output, "output", "o", "", "Output format: literal, json or msgpack")
	flags.IntVar(&a.Indent, "indent", 2, "Spaces per indentation level, 0 writes one line")
	flags.StringVar(&a.LogLevel, "log-level", "info", "Log level: debug, info, warn or error")
	flags.BoolVarP(&a.Write, "write", "w", false, "Write the result back to FILE instead of stdout")

	envHelp, _ := cleanenv.GetDescription(&Config{}, nil)
	cmd.SetUsageTemplate(cmd.UsageTemplate() + "\n" + envHelp + "\n")
}

func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), lvl)
	return zap.New(core), nil
}
