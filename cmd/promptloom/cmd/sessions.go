package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"promptloom/src/database"
	"promptloom/src/interview"
)

var historyLimit int

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage saved interview sessions",
}

func openStore() (*database.SessionStore, *environment, error) {
	env, err := setup()
	if err != nil {
		return nil, nil, err
	}
	store, err := database.Open(env.settings.Store.Path, database.WithLogger(env.log))
	if err != nil {
		return nil, nil, err
	}
	return store, env, nil
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		sessions, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No saved sessions")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tUPDATED\tPROMPT")
		for _, s := range sessions {
			fmt.Fprintf(w, "%s\t%s\t%s\n", s.Name, s.UpdatedAt.Format("2006-01-02 15:04"), truncate(s.Prompt, 60))
		}
		return w.Flush()
	},
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print the prompt of a saved session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, env, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		state, err := store.Load(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		e := interview.New(env.graph, interview.WithState(state))
		out := cmd.OutOrStdout()
		for _, item := range e.SelectionSummary() {
			fmt.Fprintf(out, "%s -> %s\n", item.Question, item.AnswerLabel)
		}
		res := e.PreviewPrompt()
		fmt.Fprintf(out, "\nprompt:   %s\nnegative: %s\n", res.Prompt, res.NegativePrompt)
		return nil
	},
}

var sessionsHistoryCmd = &cobra.Command{
	Use:   "history <name>",
	Short: "Show prompts saved for a session, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.History(cmd.Context(), args[0], historyLimit)
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", e.CreatedAt.Format("2006-01-02 15:04:05"), e.Prompt)
		}
		return nil
	},
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved session and its history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	},
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	sessionsHistoryCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of entries to show (0 for all)")
	sessionsCmd.AddCommand(sessionsListCmd, sessionsShowCmd, sessionsHistoryCmd, sessionsDeleteCmd)
	rootCmd.AddCommand(sessionsCmd)
}
