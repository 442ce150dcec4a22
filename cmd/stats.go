package cmd

import (
	"github.com/spf13/cobra"
)

const mib = 1024 * 1024

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show CPU, memory and disk usage",
	Run: func(cmd *cobra.Command, args []string) {
		stats, err := newAPIClient().SystemStats()
		if err != nil {
			cmd.Printf("Error getting stats: %v\n", err)
			return
		}

		cmd.Printf("CPU usage: %.1f%%\n", stats.CPUPercent)
		cmd.Printf("Memory usage: %.1f%%\n", stats.MemoryPercent)
		cmd.Printf("Disk usage: %d MB / %d MB (%.1f%%)\n",
			stats.DiskUsage.Used/mib, stats.DiskUsage.Total/mib, stats.DiskUsage.Percent)
	},
}

var uptimeCmd = &cobra.Command{
	Use:   "uptime",
	Short: "Show host uptime",
	Run: func(cmd *cobra.Command, args []string) {
		uptime, err := newAPIClient().Uptime()
		if err != nil {
			cmd.Printf("Error getting uptime: %v\n", err)
			return
		}
		cmd.Printf("System uptime: %s\n", uptime)
	},
}

var processLimit int

var processesCmd = &cobra.Command{
	Use:   "processes",
	Short: "List host processes",
	Run: func(cmd *cobra.Command, args []string) {
		procs, err := newAPIClient().Processes()
		if err != nil {
			cmd.Printf("Error listing processes: %v\n", err)
			return
		}

		cmd.Printf("%-8s %-24s %8s %10s\n", "PID", "NAME", "CPU%", "MEM(MB)")
		for i, p := range procs {
			if processLimit > 0 && i >= processLimit {
				cmd.Printf("... %d more\n", len(procs)-processLimit)
				break
			}
			cmd.Printf("%-8d %-24s %8.1f %10d\n", p.PID, p.Name, p.CPUPercent, p.MemoryMB)
		}
	},
}

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show the tail of the host system log",
	Run: func(cmd *cobra.Command, args []string) {
		lines, err := newAPIClient().Logs()
		if err != nil {
			cmd.Printf("Error getting logs: %v\n", err)
			return
		}
		for _, line := range lines {
			cmd.Println(line)
		}
	},
}

func init() {
	processesCmd.Flags().IntVar(&processLimit, "limit", 0, "Max processes to show (0 for all)")
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(uptimeCmd)
	rootCmd.AddCommand(processesCmd)
	rootCmd.AddCommand(logsCmd)
}
