package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var waitTimeout time.Duration
var waitInterval time.Duration

var waitCmd = &cobra.Command{
	Use:   "wait [job_id]",
	Short: "Poll a refresh job until it reaches a terminal state",
	Long: `Poll a refresh job's status until it finishes or fails. There is no push
notification from the server; completion is only observable by polling.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := NewPoolClient(viper.GetString("url"))
		jobID := args[0]

		deadline := time.Now().Add(waitTimeout)
		for {
			job, err := client.GetJob(jobID)
			if err != nil {
				cmd.Printf("Failed to fetch job: %v\n", err)
				return
			}

			if job.Status == "FINISHED" || job.Status == "FAILED" {
				printStatus(cmd, job)
				return
			}

			if time.Now().After(deadline) {
				cmd.Printf("Timed out after %s; job %s is still %s\n", waitTimeout, jobID, job.Status)
				return
			}
			time.Sleep(waitInterval)
		}
	},
}

func init() {
	waitCmd.Flags().DurationVar(&waitTimeout, "timeout", 60*time.Second, "Maximum time to wait")
	waitCmd.Flags().DurationVar(&waitInterval, "interval", 500*time.Millisecond, "Polling interval")
	rootCmd.AddCommand(waitCmd)
}
