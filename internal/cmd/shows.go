package cmd

import (
	"github.com/jordanbtucker/video-clerk/internal/media"
	"github.com/spf13/cobra"
)

var showsCmd = &cobra.Command{
	Use:   "shows",
	Short: "Rename TV episode files",
	Long: `Rename TV episode files from the input folder into the TV shows library:

  <shows>/<title> (<year>)/Season <SS>/<title> (<year>) - S<SS>E<EE> - <episode>.<ext>

Filenames need an SxxEyy token, optionally followed by a second episode
(S01E02-E03 or S01E02E03). Episodes of the same show are matched once.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMedia(cmd, newPrompter(), media.KindShow)
	},
}

func init() {
	rootCmd.AddCommand(showsCmd)
}
