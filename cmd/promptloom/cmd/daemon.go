package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"promptloom/src/config"
	"promptloom/src/daemon"
	"promptloom/src/logging"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Manage the session daemon",
	Long: `The daemon keeps interview sessions open and serves them over
JSON-RPC on a Unix socket so that other front ends can drive them.`,
}

var daemonStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the daemon in the foreground",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		if running, pid := daemon.IsRunning(s.Daemon.PIDFile); running {
			return fmt.Errorf("daemon is already running (PID: %d)", pid)
		}
		if err := config.EnsureConfigDirs(); err != nil {
			return err
		}
		log, err := logging.New(s.Log.Mode, s.Log.Level)
		if err != nil {
			return err
		}
		defer log.Sync()

		fmt.Fprintln(cmd.OutOrStdout(), "Starting promptloom daemon...")
		return daemon.Run(s, log)
	},
}

var daemonStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the daemon",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		running, pid := daemon.IsRunning(s.Daemon.PIDFile)
		if !running {
			fmt.Fprintln(cmd.OutOrStdout(), "Daemon is not running")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Stopping daemon (PID: %d)...\n", pid)
		if err := daemon.Stop(pid, s.Daemon.PIDFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Daemon stopped successfully")
		return nil
	},
}

var daemonStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon status",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		running, pid := daemon.IsRunning(s.Daemon.PIDFile)
		if !running {
			fmt.Fprintln(cmd.OutOrStdout(), "Daemon is not running")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Daemon is running (PID: %d)\n", pid)

		var status map[string]interface{}
		if err := daemon.NewClient(s.Daemon.Socket).Call(cmd.Context(), "status.get", nil, &status); err != nil {
			return err
		}
		data, err := json.MarshalIndent(status, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	daemonCmd.AddCommand(daemonStartCmd, daemonStopCmd, daemonStatusCmd)
	rootCmd.AddCommand(daemonCmd)
}
