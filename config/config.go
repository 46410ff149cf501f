package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
)

const (
	DefaultAddr        = "0.0.0.0:4221"
	DefaultServiceName = "tinyhttp"
)

var ErrNotDirectory = errors.New("config: --directory is not a directory")

type Config struct {
	Addr        string
	Directory   string
	AdminAddr   string
	OTLP        bool
	ServiceName string
}

// Parse reads the command line (without the program name).
func Parse(args []string) (Config, error) {
	var cfg Config

	flags := flag.NewFlagSet("tinyhttp", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.StringVar(&cfg.Addr, "addr", DefaultAddr, "address to accept HTTP connections on")
	flags.StringVar(&cfg.Directory, "directory", "", "directory served and written by /files")
	flags.StringVar(&cfg.AdminAddr, "admin-addr", "", "address of the admin endpoint, disabled when empty")
	flags.BoolVar(&cfg.OTLP, "otlp", false, "export traces, metrics and logs over OTLP")
	flags.StringVar(&cfg.ServiceName, "service-name", DefaultServiceName, "service name reported to OpenTelemetry")

	if err := flags.Parse(args); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if flags.NArg() > 0 {
		return cfg, fmt.Errorf("config: unexpected arguments %v", flags.Args())
	}

	if cfg.Directory != "" {
		info, err := os.Stat(cfg.Directory)
		if err != nil {
			return cfg, fmt.Errorf("config: %w", err)
		}
		if !info.IsDir() {
			return cfg, fmt.Errorf("%w: %s", ErrNotDirectory, cfg.Directory)
		}
	}

	return cfg, nil
}
