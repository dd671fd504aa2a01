package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/quantmind-br/ymaps2gpx/internal/app"
	"github.com/quantmind-br/ymaps2gpx/internal/config"
	"github.com/quantmind-br/ymaps2gpx/internal/utils"
	"github.com/quantmind-br/ymaps2gpx/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	log     *utils.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ymaps2gpx [url] [output_dir]",
	Short: "Convert Yandex Maps bookmark lists to GPX",
	Long: `ymaps2gpx downloads a public Yandex Maps bookmarks share page and
converts its places into a GPX 1.1 waypoint file.

Pinned coordinates are taken straight from the page; places saved as
organizations are resolved through the Yandex geocoder API, which needs
an API key (--api-key or the YANDEX_GEOCODER_API_KEY environment variable).`,
	Version: version.Short(),
	Args:    cobra.MaximumNArgs(2),
	RunE:    run,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.ymaps2gpx/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	// Geocoder flags
	rootCmd.PersistentFlags().String("api-key", "", "Yandex geocoder API key")
	rootCmd.PersistentFlags().String("language", "", "Geocoder response language (default ru_RU)")

	// Fetch flags
	rootCmd.PersistentFlags().Duration("timeout", 30*time.Second, "Request timeout")
	rootCmd.PersistentFlags().String("user-agent", "", "Custom User-Agent")
	rootCmd.PersistentFlags().String("proxy", "", "Proxy URL")

	// Cache flags
	rootCmd.PersistentFlags().Bool("no-cache", false, "Disable caching")
	rootCmd.PersistentFlags().Duration("cache-ttl", 24*time.Hour, "Cache TTL")
	rootCmd.PersistentFlags().Bool("refresh-cache", false, "Force cache refresh")

	// Output flags
	rootCmd.PersistentFlags().String("creator", "", "GPX creator attribute")
	rootCmd.PersistentFlags().Bool("force", false, "Overwrite an existing GPX file")
	rootCmd.PersistentFlags().Bool("dry-run", false, "Resolve everything but write nothing")

	// Bind flags to viper
	_ = viper.BindPFlag("geocoder.api_key", rootCmd.PersistentFlags().Lookup("api-key"))
	_ = viper.BindPFlag("geocoder.language", rootCmd.PersistentFlags().Lookup("language"))
	_ = viper.BindPFlag("fetch.timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	_ = viper.BindPFlag("fetch.user_agent", rootCmd.PersistentFlags().Lookup("user-agent"))
	_ = viper.BindPFlag("fetch.proxy_url", rootCmd.PersistentFlags().Lookup("proxy"))
	_ = viper.BindPFlag("cache.ttl", rootCmd.PersistentFlags().Lookup("cache-ttl"))
	_ = viper.BindPFlag("output.creator", rootCmd.PersistentFlags().Lookup("creator"))
	_ = viper.BindPFlag("output.overwrite", rootCmd.PersistentFlags().Lookup("force"))
	_ = viper.BindPFlag("output.dry_run", rootCmd.PersistentFlags().Lookup("dry-run"))

	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logLevel := "info"
	if verbose {
		logLevel = "debug"
	}
	log = utils.NewLogger(utils.LoggerOptions{
		Level:   logLevel,
		Format:  "pretty",
		Verbose: verbose,
	})

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if len(args) == 0 {
		return cmd.Help()
	}
	url := args[0]
	if len(args) > 1 {
		cfg.Output.Directory = args[1]
	}

	// no-cache is an off switch, not a bindable value
	if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache {
		cfg.Cache.Enabled = false
	}
	refreshCache, _ := cmd.Flags().GetBool("refresh-cache")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Info().Msg("Shutting down gracefully...")
		cancel()
	}()

	converter, err := app.New(app.Options{
		Config:       cfg,
		Logger:       log,
		RefreshCache: refreshCache,
		Progress:     !verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer converter.Close()

	summary, err := converter.Run(ctx, url)
	if err != nil {
		return err
	}

	switch {
	case summary.DryRun:
		fmt.Printf("Dry run: %q resolved %d/%d entries, would write %s\n",
			summary.ListTitle, summary.Resolved, summary.Total, summary.OutputPath)
	case !summary.Wrote:
		fmt.Printf("Skipped %s: file exists (use --force to overwrite)\n", summary.OutputPath)
	default:
		fmt.Printf("Wrote %s (%d/%d entries", summary.OutputPath, summary.Resolved, summary.Total)
		if summary.Skipped > 0 {
			fmt.Printf(", %d skipped", summary.Skipped)
		}
		fmt.Println(")")
	}
	return nil
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system dependencies",
	Long:  "Verifies that the environment is ready for fetching and geocoding.",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Checking environment...")
		allPassed := true

		fmt.Print("  Config file: ")
		cfg, err := config.Load()
		if err != nil {
			fmt.Printf("WARN (%v, checked %s)\n", err, config.ConfigFilePath())
			cfg = config.Default()
		} else {
			fmt.Println("OK")
		}

		fmt.Print("  Internet connection: ")
		if checkInternet() {
			fmt.Println("OK")
		} else {
			fmt.Println("FAILED")
			allPassed = false
		}

		fmt.Print("  Output directory: ")
		outDir := utils.ExpandPath(cfg.Output.Directory)
		if checkWritePermissions(outDir) {
			fmt.Printf("OK (%s)\n", outDir)
		} else {
			fmt.Printf("FAILED (%s is not writable)\n", outDir)
			allPassed = false
		}

		fmt.Print("  Geocoder API key: ")
		if cfg.Geocoder.APIKey != "" {
			fmt.Println("OK")
		} else {
			fmt.Println("NOT SET (org bookmarks will be skipped)")
		}

		fmt.Print("  Cache directory: ")
		if err := config.EnsureCacheDir(); err != nil {
			fmt.Printf("FAILED (%v)\n", err)
			allPassed = false
		} else {
			fmt.Printf("OK (%s)\n", config.CacheDir())
		}

		fmt.Println()
		if allPassed {
			fmt.Println("All critical checks passed!")
		} else {
			fmt.Println("Some checks failed. Please resolve the issues above.")
		}
		return nil
	},
}

// checkInternet checks if there's an internet connection
func checkInternet() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, "https://yandex.ru", nil)
	if err != nil {
		return false
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < 400
}

// checkWritePermissions checks if we can write into the given directory
func checkWritePermissions(dir string) bool {
	tmpFile := filepath.Join(dir, ".ymaps2gpx_test_write")
	f, err := os.Create(tmpFile)
	if err != nil {
		return false
	}
	f.Close()
	os.Remove(tmpFile)
	return true
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Full())
	},
}
