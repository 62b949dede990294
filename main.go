package main

import (
	"fmt"
	"os"
	"time"

	"github.com/bytedance/sonic"
	"github.com/n0needt0/go-goodies/log"
	"github.com/n0needt0/goodies/check-mrtgtraf/internal/check"
	"github.com/n0needt0/goodies/check-mrtgtraf/internal/config"
	"github.com/n0needt0/goodies/check-mrtgtraf/internal/domain"
	"github.com/n0needt0/goodies/check-mrtgtraf/internal/mrtg"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	progName = "check_mrtgtraf"
	version  = "1.0.0"
)

var envPrefix = "MRTG_"

// Run executes one check pass and returns the status the supervisor
// expects as the process exit code. Exactly one line goes to stdout on
// every path except help and version.
func Run(args []string) check.Status {
	log.SetMinLogLevel(log.MinLevelError)

	var (
		result      check.Result
		cfgFilePath string
		showVersion bool
	)

	cmd := &cobra.Command{
		Use:   progName + " -F <log_file> -a <AVG|MAX> -w <iwl>,<owl> -c <icl>,<ocl> [-e <expire_minutes>]",
		Short: "checks the incoming/outgoing transfer rates recorded in an MRTG log",
		Long: "This plugin checks the incoming/outgoing transfer rates of a router,\n" +
			"switch, etc recorded in an MRTG log. If the newest log entry is older\n" +
			"than <expire_minutes>, a WARNING status is returned. If either the\n" +
			"incoming or outgoing rate exceeds its critical threshold (in bytes/sec),\n" +
			"a CRITICAL status results; exceeding a warning threshold results in a\n" +
			"WARNING status.\n\n" +
			"The legacy positional form is still accepted:\n" +
			"  " + progName + " <log_file> <expire_minutes> <AVG|MAX> <iwl> <icl> <owl> <ocl>",
		Args:          cobra.MaximumNArgs(7),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, positional []string) error {
			if showVersion {
				fmt.Fprintf(cmd.OutOrStdout(), "%s v%s\n", progName, version)
				return nil
			}

			cfg, err := config.Load(cfgFilePath, envPrefix, cmd, positional)
			if err != nil {
				return err
			}

			if cfg.Verbose {
				log.SetMinLogLevel(log.MinLevelDebug)
			}
			log.Debugf("resolved config: %s", prettyPrint(cfg))

			rec, err := mrtg.ReadLog(cfg.LogFile)
			if err != nil {
				return err
			}
			log.Debugf("log record: %s", prettyPrint(rec))

			result = check.Evaluate(cfg, rec, time.Now())
			log.Debugf("evaluated status %s", result.Status)
			return nil
		},
	}

	config.RegisterFlags(cmd)
	cmd.Flags().BoolVarP(&showVersion, "version", "V", false, "print version information")
	cmd.Flags().StringVar(&cfgFilePath, "config", "", "YAML file with option defaults")

	cmd.SetArgs(config.NormalizeArgs(args))

	if err := cmd.Execute(); err != nil {
		log.Debugf("check failed: %+v", err)
		fmt.Println(failureMessage(err))
		if isUsage(err) {
			fmt.Fprint(os.Stderr, cmd.UsageString())
		}
		return check.StatusUnknown
	}

	if result.Message != "" {
		fmt.Println(result.Message)
	}

	return result.Status
}

// failureMessage maps an error to the single status line the
// supervisor records. The messages are fixed; the wrapped cause only
// shows up in debug logging.
func failureMessage(err error) string {
	var (
		ioErr    domain.IOError
		parseErr domain.ParseError
	)

	switch {
	case errors.As(err, &ioErr):
		return "Unable to open MRTG log file"
	case errors.As(err, &parseErr):
		return "Unable to process MRTG log file"
	}
	return "Invalid command arguments supplied"
}

// isUsage reports whether the failure merits printing the usage text.
// Unrecognized flags from cobra count as usage errors.
func isUsage(err error) bool {
	var (
		ioErr    domain.IOError
		parseErr domain.ParseError
	)
	return !errors.As(err, &ioErr) && !errors.As(err, &parseErr)
}

func prettyPrint(i interface{}) string {
	s, _ := sonic.MarshalString(i)
	return s
}

func main() {
	os.Exit(Run(os.Args[1:]).ExitCode())
}
