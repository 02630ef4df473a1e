package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jordanbtucker/video-clerk/internal/config"
	"github.com/jordanbtucker/video-clerk/internal/prompt"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "video-clerk",
	Short: "Rename movie and TV episode files into a Plex style library",
	Long: `video-clerk identifies movie and TV episode files by their names, confirms
each one against The Movie Database and moves it into your library as

  <movies>/<title> (<year>)/<title> (<year>).<ext>
  <shows>/<title> (<year>)/Season <SS>/<title> (<year>) - S<SS>E<EE> - <episode>.<ext>

Every rename is confirmed first and recorded so it can be undone.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runRootCommand,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !quiet(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// quiet reports whether err ends the run without an error message: the
// user declined a required setting or interrupted the program.
func quiet(err error) bool {
	return errors.Is(err, config.ErrCanceled) ||
		errors.Is(err, prompt.ErrInterrupted) ||
		errors.Is(err, context.Canceled)
}

var (
	configPath string
	timeout    time.Duration
	all        bool
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Config file (default ~/.video-clerk/config.json)")
	flags.String("token", "", "The Movie Database API read access token (v4 auth)")
	flags.String("api-key", "", "The Movie Database API key (v3 auth), used when no token is set")
	flags.String("language", "", "Language of titles returned by The Movie Database (default en-US)")
	flags.String("input", "", "The input folder")
	flags.String("movies", "", "The movies folder")
	flags.String("shows", "", "The TV shows folder")
	flags.Bool(config.NoMk3dToMkvFlag, false, "Do not rename *.mk3d files to *.mkv")
	flags.String("log-level", "", "Diagnostic log level: error, warn, info or debug (default info)")
	flags.String("log-file", "", "Also write diagnostics to this file, rotated by size")
	flags.DurationVar(&timeout, "timeout", 0, "Timeout for each catalog request (default none)")
	flags.BoolVar(&all, "all", false, "Process every video file without asking which ones")
}

func runRootCommand(cmd *cobra.Command, args []string) error {
	return runMedia(cmd, newPrompter(), "")
}
