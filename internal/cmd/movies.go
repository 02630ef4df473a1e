package cmd

import (
	"github.com/jordanbtucker/video-clerk/internal/media"
	"github.com/spf13/cobra"
)

var moviesCmd = &cobra.Command{
	Use:   "movies",
	Short: "Rename movie files",
	Long: `Rename movie files from the input folder into the movies library:

  <movies>/<title> (<year>)/<title> (<year>).<ext>

The title and year come from The Movie Database; the year in the filename
is only used to find the file's title.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMedia(cmd, newPrompter(), media.KindMovie)
	},
}

func init() {
	rootCmd.AddCommand(moviesCmd)
}
