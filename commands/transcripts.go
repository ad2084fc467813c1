package commands

import (
	"github.com/spf13/cobra"

	"github.com/maastricht-university/edmo-preprocessing/orchestrator"
	"github.com/maastricht-university/edmo-preprocessing/subset"
)

var keepExclude bool

var transcriptsCmd = &cobra.Command{
	Use:   "transcripts",
	Short: "Extract turn-level and recording-level transcripts",
	Long: `Segments the speech-activity annotations of both speakers, merges them into
speaker turns and aligns every turn with a transcript line.

Writes turn_transcripts.csv, recording_transcripts.csv and summary.json to the
output directory. Recordings that have a transcript but no speech-activity
annotation are appended to the exclude list of the subset configuration.`,
	RunE: runTranscripts,
}

func init() {
	transcriptsCmd.Flags().StringVar(&overrides.Labels, "labels-dir", "", "directory to load speech activity and transcripts from")
	transcriptsCmd.Flags().StringVar(&overrides.Outputs, "output-dir", "", "directory to save the preprocessed transcripts to")
	transcriptsCmd.Flags().BoolVar(&keepExclude, "keep-exclude", false, "do not write skipped recordings back to the subset configuration")
}

func runTranscripts(cmd *cobra.Command, args []string) error {
	sc, err := subset.Load(conf.Paths.SubsetConfig)
	if err != nil {
		return err
	}

	p := orchestrator.NewPipeline(conf, log)
	res, runErr := p.Run(cmd.Context(), sc)
	if res == nil {
		return runErr
	}

	turnsPath, recPath, sumPath, err := orchestrator.Persist(conf.Paths.Outputs, res)
	if err != nil {
		return err
	}
	log.WithField("turns", turnsPath).WithField("recordings", recPath).WithField("summary", sumPath).Info("saved transcripts")

	if !keepExclude && len(res.Skipped) > 0 {
		updated := sc.WithExclusions(res.Skipped...)
		if err := updated.Save(conf.Paths.SubsetConfig); err != nil {
			return err
		}
		log.WithField("excluded", len(updated.Exclude)).Info("updated subset configuration")
	}
	return runErr
}
