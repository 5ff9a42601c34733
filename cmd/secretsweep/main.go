package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/who0xac/secretsweep/pkg/config"
	"github.com/who0xac/secretsweep/pkg/report"
	"github.com/who0xac/secretsweep/pkg/scanner"
)

const (
	version = "1.0.0"
	banner  = `
                      _
 ___  ___  ___ _ __ ___| |_ _____      _____  ___ _ __
/ __|/ _ \/ __| '__/ _ \ __/ __\ \ /\ / / _ \/ _ \ '_ \
\__ \  __/ (__| | |  __/ |_\__ \\ V  V /  __/  __/ |_) |
|___/\___|\___|_|  \___|\__|___/ \_/\_/ \___|\___| .__/
                                                 |_|`
)

func printBanner() {
	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen)

	cyan.Println(banner)
	green.Printf("Hardcoded credentials & sensitive data scanner — v%s\n\n", version)
}

var rootCmd = &cobra.Command{
	Use:   "secretsweep",
	Short: "Scan source trees for hardcoded credentials and sensitive data",
	Long: "secretsweep scans a source tree for hardcoded credentials and sensitive-data\n" +
		"exposure patterns, suppresses reviewed findings via an allowlist, and inspects\n" +
		"git history for secrets that were removed from the working tree.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScan()
	},
}

func init() {
	defaults := config.Default()

	flags := rootCmd.Flags()
	flags.String("mode", defaults.Mode, "scanning mode: loose or strict")
	flags.Bool("verbose", false, "show more detailed output")
	flags.Bool("high-only", false, "only fail on HIGH severity findings (good for CI)")
	flags.String("allow-file", defaults.AllowFile, "path to acceptable findings file")
	flags.String("directory", defaults.Directory, "directory to scan")
	flags.Bool("scan-gitignored", false, "scan files excluded by .gitignore")
	flags.Bool("check-git-history", false, "check whether gitignored files were previously committed")
	flags.Int("threads", defaults.Threads, "concurrent file scans")
	flags.Bool("notify", false, "send a desktop notification when the scan completes")
	flags.String("format", "", "also export the report: json or txt")
	flags.String("output", "", "export file path (defaults to secrets_scan_report.<format>)")

	if err := viper.BindPFlags(flags); err != nil {
		panic(err)
	}
	viper.SetEnvPrefix("SECRETSWEEP")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(".secretsweep")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
}

func loadOptions() config.Options {
	if err := viper.ReadInConfig(); err == nil {
		fmt.Printf("📄 Using config file: %s\n", viper.ConfigFileUsed())
	}

	opts := config.Default()
	opts.Mode = viper.GetString("mode")
	opts.Verbose = viper.GetBool("verbose")
	opts.HighOnly = viper.GetBool("high-only")
	opts.AllowFile = viper.GetString("allow-file")
	opts.Directory = viper.GetString("directory")
	opts.ScanGitignored = viper.GetBool("scan-gitignored")
	opts.CheckGitHistory = viper.GetBool("check-git-history")
	opts.Threads = viper.GetInt("threads")
	opts.Notify = viper.GetBool("notify")
	return opts
}

func runScan() error {
	printBanner()
	opts := loadOptions()

	if opts.Mode != "loose" && opts.Mode != "strict" {
		return fmt.Errorf("invalid mode %q: must be loose or strict", opts.Mode)
	}

	s := scanner.New(opts)
	res, err := s.Run()
	if err != nil {
		return err
	}

	report.Print(res, opts.AllowFile)
	if err := report.WriteFingerprints(res.Findings, report.FingerprintsFile, opts.AllowFile); err != nil {
		color.Yellow("⚠ could not write fingerprints file: %v", err)
	}

	if format := viper.GetString("format"); format != "" {
		path := viper.GetString("output")
		if path == "" {
			path = "secrets_scan_report." + format
		}
		var exportErr error
		switch format {
		case "json":
			exportErr = report.WriteJSON(res, opts.Directory, opts.Mode, path)
		case "txt":
			exportErr = report.WriteTXT(res, opts.Directory, opts.Mode, path)
		default:
			exportErr = fmt.Errorf("unknown format %q", format)
		}
		if exportErr != nil {
			color.Yellow("⚠ could not export report: %v", exportErr)
		} else {
			fmt.Printf("💾 Report exported to %s\n", path)
		}
	}

	// The exit contract for CI: under --high-only only HIGH findings fail
	// the run; otherwise any finding does.
	if opts.HighOnly {
		if res.HasHigh {
			color.Red("❌ CI check failed: high severity findings detected")
			os.Exit(1)
		}
		color.Green("✅ CI check passed: no high severity findings")
		return nil
	}
	if len(res.Findings) > 0 {
		os.Exit(1)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
