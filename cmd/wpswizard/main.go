package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"wpswizard-cli/internal/app"
	"wpswizard-cli/internal/interactive"
	"wpswizard-cli/pkg/models"
)

// Build-time variables injected via ldflags
var (
	version   = "dev"
	commit    = "unknown"
	date      = "unknown"
	goVersion = runtime.Version()
)

var rootCmd = &cobra.Command{
	Use:   "wpswizard",
	Short: "An interactive configuration builder for WRF namelist.wps files",
	Long: `wpswizard walks you through every section of a WRF Preprocessing System
namelist.wps file: share, geogrid, ungrib, and metgrid. Each prompt shows a
default in [brackets]; press Enter to accept it, or type the quit word to
abort without writing anything.

An existing namelist.wps can seed the defaults, and nested domain placement
is suggested from the parent domain's dimensions and the grid ratio. The
final configuration is reviewed before the file is written.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Check if version flag is set
		if versionFlag, _ := cmd.Flags().GetBool("version"); versionFlag {
			versionCmd.Run(cmd, args)
			return nil
		}

		request, err := buildRequestFromFlags(cmd)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}

		return app.Run(request)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print detailed version information including build version, commit, date, and platform details.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("wpswizard version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built: %s\n", date)
		fmt.Printf("  go version: %s\n", goVersion)
		fmt.Printf("  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	rootCmd.Flags().StringP("config", "c", "", "settings file path (default ~/.config/wpswizard/config.toml)")
	rootCmd.Flags().StringP("output", "o", "", "output file default offered at the end of the session")
	rootCmd.Flags().StringP("existing", "e", "", "existing namelist to offer as the source of defaults")
	rootCmd.Flags().BoolP("clipboard", "b", false, "also copy the written namelist to the clipboard")
	rootCmd.Flags().Bool("stdout", false, "print the namelist instead of writing a file")
	rootCmd.Flags().BoolP("version", "v", false, "print version information")
}

// buildRequestFromFlags constructs a SessionRequest from command flags
func buildRequestFromFlags(cmd *cobra.Command) (*models.SessionRequest, error) {
	request := models.NewSessionRequest()

	var err error

	if request.ConfigPath, err = cmd.Flags().GetString("config"); err != nil {
		return nil, fmt.Errorf("invalid config flag: %w", err)
	}

	if request.OutputPath, err = cmd.Flags().GetString("output"); err != nil {
		return nil, fmt.Errorf("invalid output flag: %w", err)
	}

	if request.ExistingPath, err = cmd.Flags().GetString("existing"); err != nil {
		return nil, fmt.Errorf("invalid existing flag: %w", err)
	}

	if request.ToClipboard, err = cmd.Flags().GetBool("clipboard"); err != nil {
		return nil, fmt.Errorf("invalid clipboard flag: %w", err)
	}

	if request.ToStdout, err = cmd.Flags().GetBool("stdout"); err != nil {
		return nil, fmt.Errorf("invalid stdout flag: %w", err)
	}

	return request, nil
}

func main() {
	// Disable usage on error to show only our custom error messages
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, interactive.ErrQuit) {
			fmt.Println("Configuration canceled by user.")
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
