// internal/cli/root.go

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nlplab/labsite/internal/config"
	"github.com/nlplab/labsite/internal/logger"
	"go.uber.org/zap"
)

// Version information (set by build flags)
var (
	version = "dev"
	commit  = "none"
)

var rootCmd = &cobra.Command{
	Use:   "labsite",
	Short: "NLP lab website server",
	Long: `labsite - research lab website

Server-rendered lab site: public pages plus an admin console for
members, projects, publications, and posts.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("labsite %s (%s)\n", version, commit)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(initdbCmd)
}

// bootstrap loads config and starts the rotating logger; shared by every
// command that touches the stack.
func bootstrap() (*config.Config, *zap.SugaredLogger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.Paths.Root, runningInTTY())
	if err != nil {
		return nil, nil, fmt.Errorf("start logger: %w", err)
	}
	return cfg, log, nil
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
