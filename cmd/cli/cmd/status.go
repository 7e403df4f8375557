package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"poolplane/pkg/api"
)

var statusCmd = &cobra.Command{
	Use:   "status [job_id]",
	Short: "Get status of a refresh job",
	Long:  `Retrieve detailed status for a pool refresh job: its current state (QUEUED, RUNNING, FINISHED, FAILED), the owner it targets, timestamps, and the terminal result or error.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := NewPoolClient(viper.GetString("url"))

		job, err := client.GetJob(args[0])
		if err != nil {
			cmd.Printf("Failed to fetch job: %v\n", err)
			return
		}

		printStatus(cmd, job)
	},
}

func printStatus(cmd *cobra.Command, job *api.JobStatusResponse) {
	icon := statusIcon(job.Status)
	cmd.Printf("%s %sRefresh Job%s\n", icon, colorBold, colorReset)
	cmd.Println("──────────────────────────────")

	cmd.Printf("%sID:%s        %s\n", colorDim, colorReset, job.ID)
	cmd.Printf("%sName:%s      %s\n", colorDim, colorReset, job.Name)
	cmd.Printf("%sOwner:%s     %s\n", colorDim, colorReset, job.OwnerKey)
	cmd.Printf("%sStatus:%s    %s\n", colorDim, colorReset, colorizeStatus(job.Status))
	cmd.Printf("%sCreated:%s   %s\n", colorDim, colorReset, formatTime(&job.CreatedAt))
	cmd.Printf("%sStarted:%s   %s\n", colorDim, colorReset, formatTime(job.StartedAt))

	if job.StartedAt != nil && job.FinishedAt != nil {
		duration := job.FinishedAt.Sub(*job.StartedAt)
		cmd.Printf("%sFinished:%s  %s %s(%s)%s\n", colorDim, colorReset,
			formatTime(job.FinishedAt), colorCyan, duration.Round(time.Millisecond), colorReset)
	} else {
		cmd.Printf("%sFinished:%s  %s\n", colorDim, colorReset, formatTime(job.FinishedAt))
	}

	if job.Result != "" {
		cmd.Printf("%sResult:%s    %s\n", colorDim, colorReset, job.Result)
	}
	if job.Error != "" {
		cmd.Printf("%sError:%s     %s%s%s\n", colorDim, colorReset, colorRed, job.Error, colorReset)
	}
}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

func statusIcon(status string) string {
	switch status {
	case "FINISHED":
		return colorGreen + "✓" + colorReset
	case "FAILED":
		return colorRed + "✗" + colorReset
	case "RUNNING":
		return colorYellow + "⏳" + colorReset
	case "QUEUED":
		return colorCyan + "◯" + colorReset
	default:
		return "•"
	}
}

func colorizeStatus(status string) string {
	switch status {
	case "FINISHED":
		return colorGreen + status + colorReset
	case "FAILED":
		return colorRed + status + colorReset
	case "RUNNING":
		return colorYellow + status + colorReset
	case "QUEUED":
		return colorCyan + status + colorReset
	default:
		return status
	}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return fmt.Sprintf("%s (%s ago)", t.Format(time.RFC3339), time.Since(*t).Round(time.Second))
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
