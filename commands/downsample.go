package commands

import (
	"github.com/spf13/cobra"

	"github.com/maastricht-university/edmo-preprocessing/audio"
	"github.com/maastricht-university/edmo-preprocessing/subset"
)

var downsampleCmd = &cobra.Command{
	Use:   "downsample",
	Short: "Downsample the audio files of the configured subset",
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := subset.Load(conf.Paths.SubsetConfig)
		if err != nil {
			return err
		}
		files, err := subset.FindAudio(conf.Paths.AudioSource, sc)
		if err != nil {
			return err
		}
		jobs := make([]audio.Job, 0, len(files))
		for _, f := range files {
			dst, err := audio.OutputPath(f, conf.Paths.AudioSource, conf.Paths.AudioOutput, sc.Split)
			if err != nil {
				return err
			}
			jobs = append(jobs, audio.Job{Src: f, Dst: dst})
		}

		log.WithField("files", len(jobs)).WithField("source", conf.Paths.AudioSource).
			Infof("downsampling to %d Hz", conf.Audio.SampleRate)
		if err := audio.ResampleAll(cmd.Context(), jobs, conf.Audio.SampleRate, conf.Pipeline.Workers, log); err != nil {
			return err
		}
		log.WithField("output", conf.Paths.AudioOutput).Info("saved downsampled files")
		return nil
	},
}

func init() {
	downsampleCmd.Flags().IntVar(&overrides.SampleRate, "target-sr", 0, "target sample rate")
	downsampleCmd.Flags().StringVar(&overrides.AudioSource, "source-dir", "", "directory to load audio from")
	downsampleCmd.Flags().StringVar(&overrides.AudioOutput, "output-dir", "", "directory to save the downsampled audio to")
}
