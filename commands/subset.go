package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maastricht-university/edmo-preprocessing/subset"
)

var subsetCmd = &cobra.Command{
	Use:   "subset",
	Short: "Inspect the subset configuration",
}

var subsetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the audio files selected by the subset configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := subset.Load(conf.Paths.SubsetConfig)
		if err != nil {
			return err
		}
		files, err := subset.FindAudio(conf.Paths.AudioSource, sc)
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Fprintln(cmd.OutOrStdout(), f)
		}
		return nil
	},
}

func init() {
	subsetListCmd.Flags().StringVar(&overrides.AudioSource, "source-dir", "", "directory to search for audio")
	subsetCmd.AddCommand(subsetListCmd)
}
