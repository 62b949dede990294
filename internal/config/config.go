package config

import (
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/n0needt0/goodies/check-mrtgtraf/internal/domain"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Aggregation selects which recorded rate pair is evaluated.
type Aggregation int

const (
	AggregationAverage Aggregation = iota
	AggregationMaximum
)

// Label returns the short form used in the status message.
func (a Aggregation) Label() string {
	if a == AggregationMaximum {
		return "Max"
	}
	return "Ave"
}

// Settings holds the raw option values as they arrive from the config
// file, environment and command-line flags, before resolution.
type Settings struct {
	LogFile     string `mapstructure:"logfile"`
	Expires     int    `mapstructure:"expires"`
	Aggregation string `mapstructure:"aggregation"`
	Warning     string `mapstructure:"warning"`
	Critical    string `mapstructure:"critical"`
	Timeout     int    `mapstructure:"timeout"`
	Verbose     bool   `mapstructure:"verbose"`
}

// Config is the resolved, immutable check configuration.
// Thresholds are bytes/sec and compared against the raw rates.
type Config struct {
	LogFile          string
	ExpireMinutes    int
	Aggregation      Aggregation
	IncomingWarning  uint64
	IncomingCritical uint64
	OutgoingWarning  uint64
	OutgoingCritical uint64
	Verbose          bool
}

// expireUnset mirrors the flag default so positional fallback can tell
// "never set" apart from an explicit 0.
const expireUnset = -1

// RegisterFlags declares the check options on the command. The config
// file and version flags stay with the caller.
func RegisterFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringP("logfile", "F", "", "file to read MRTG log from")
	flags.IntP("expires", "e", expireUnset, "minutes after which the log data expires")
	flags.StringP("aggregation", "a", "", "test AVG or MAX traffic rate")
	flags.StringP("warning", "w", "", "warning threshold pair \"<incoming>,<outgoing>\" in bytes/sec")
	flags.StringP("critical", "c", "", "critical threshold pair \"<incoming>,<outgoing>\" in bytes/sec")
	flags.IntP("timeout", "t", 0, "accepted for backwards compatibility, ignored")
	flags.Bool("verbose", false, "log debug detail to stderr")
}

// NormalizeArgs rewrites the historical two-letter option aliases that
// predate the long-form flags.
func NormalizeArgs(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		switch a {
		case "-to":
			out[i] = "-t"
		case "-wt":
			out[i] = "-w"
		case "-ct":
			out[i] = "-c"
		default:
			out[i] = a
		}
	}
	return out
}

// Load layers the optional YAML config file, environment variables and
// command-line flags (highest precedence), then resolves the result
// together with any legacy positional arguments.
func Load(cfgFile, envPrefix string, cmd *cobra.Command, positional []string) (*Config, error) {
	k := koanf.New(".")

	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, domain.UsageError{Err: errors.Wrapf(err, "failed to parse %s", cfgFile)}
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".", -1)
	}), nil); err != nil {
		return nil, domain.UsageError{Err: errors.Wrap(err, "error loading config from env")}
	}

	if err := k.Load(posflag.Provider(cmd.Flags(), ".", k), nil); err != nil {
		return nil, domain.UsageError{Err: errors.Wrap(err, "error loading config from flags")}
	}

	s := Settings{Expires: expireUnset}
	if err := k.UnmarshalWithConf("", &s, koanf.UnmarshalConf{Tag: "mapstructure"}); err != nil {
		return nil, domain.UsageError{Err: errors.Wrap(err, "failed to unmarshal options")}
	}

	return Resolve(s, positional)
}

// Resolve turns raw settings plus the legacy positional form
// <log_file> <expire_minutes> <AVG|MAX> <iwl> <icl> <owl> <ocl>
// into the final configuration. Each positional is consumed only for a
// value the flags left unset, matching the original plugin.
func Resolve(s Settings, positional []string) (*Config, error) {
	cfg := &Config{
		LogFile:       s.LogFile,
		ExpireMinutes: s.Expires,
		Verbose:       s.Verbose,
	}

	if s.Aggregation == "MAX" {
		cfg.Aggregation = AggregationMaximum
	}

	var err error
	if cfg.IncomingWarning, cfg.OutgoingWarning, err = parsePair(s.Warning); err != nil {
		return nil, err
	}
	if cfg.IncomingCritical, cfg.OutgoingCritical, err = parsePair(s.Critical); err != nil {
		return nil, err
	}

	pos := positional

	if cfg.LogFile == "" && len(pos) > 0 {
		cfg.LogFile = pos[0]
		pos = pos[1:]
	}

	if cfg.ExpireMinutes == expireUnset && len(pos) > 0 {
		n, err := parseExpires(pos[0])
		if err != nil {
			return nil, err
		}
		cfg.ExpireMinutes = n
		pos = pos[1:]
	}

	if len(pos) > 0 {
		switch pos[0] {
		case "MAX":
			cfg.Aggregation = AggregationMaximum
			pos = pos[1:]
		case "AVG":
			cfg.Aggregation = AggregationAverage
			pos = pos[1:]
		}
	}

	for _, slot := range []*uint64{
		&cfg.IncomingWarning,
		&cfg.IncomingCritical,
		&cfg.OutgoingWarning,
		&cfg.OutgoingCritical,
	} {
		if *slot != 0 || len(pos) == 0 {
			continue
		}
		n, err := parseRate(pos[0])
		if err != nil {
			return nil, err
		}
		*slot = n
		pos = pos[1:]
	}

	if cfg.LogFile == "" {
		return nil, domain.UsageError{Err: errors.New("no MRTG log file specified")}
	}

	if cfg.ExpireMinutes == expireUnset {
		cfg.ExpireMinutes = 0
	}

	return cfg, nil
}
