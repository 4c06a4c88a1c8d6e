package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/iisyw/OGit/internal"
)

func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ogit [message]",
		Short: "Commit workflow assistant with development logs",
		Long: `ogit records every commit into two markdown development logs, stages all
changes, commits, and optionally pushes to a named remote. Inputs not given
as flags are collected interactively.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          runRoot,
	}

	cmd.Flags().BoolP("push", "p", false, "Push to the remote after committing")
	cmd.Flags().StringP("remote", "r", internal.DefaultRemote, "Remote to push to")
	cmd.Flags().BoolP("ci", "c", false, "Run CI for this commit")
	cmd.Flags().BoolP("no-ci", "n", false, "Skip CI for this commit")
	cmd.Flags().Bool("nc", false, "Skip CI for this commit")
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().BoolP("diff", "d", false, "Show pending changes before confirming")
	cmd.Flags().BoolP("log", "l", false, "Render the development logs and exit")
	cmd.Flags().StringP("chdir", "C", "", "Run as if started in this directory")

	_ = cmd.Flags().MarkHidden("nc")
	cmd.MarkFlagsMutuallyExclusive("ci", "no-ci")
	cmd.MarkFlagsMutuallyExclusive("ci", "nc")

	return cmd
}

func runRoot(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("chdir")
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}
	}

	if showLogs, _ := cmd.Flags().GetBool("log"); showLogs {
		cfg, err := internal.LoadConfig(dir)
		if err != nil {
			return err
		}
		journal := internal.NewJournal(dir, cfg.TodayFile, cfg.HistoryFile)
		return internal.RenderLogs(journal, cmd.OutOrStdout())
	}

	// Opening the repository comes first: outside a repository nothing is
	// touched, the development logs included.
	repo, err := internal.OpenRepository(dir)
	if err != nil {
		return err
	}

	cfg, err := internal.LoadConfig(repo.Root())
	if err != nil {
		return err
	}
	repo.SetAuthor(cfg.AuthorName, cfg.AuthorEmail)

	journal := internal.NewJournal(repo.Root(), cfg.TodayFile, cfg.HistoryFile)
	prompter := internal.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{ReportTimestamp: false})

	opts := internal.Options{}
	if len(args) > 0 {
		opts.Message = args[0]
	}
	opts.Push, _ = cmd.Flags().GetBool("push")
	opts.CI, _ = cmd.Flags().GetBool("ci")
	noCI, _ := cmd.Flags().GetBool("no-ci")
	nc, _ := cmd.Flags().GetBool("nc")
	opts.NoCI = noCI || nc
	opts.AssumeYes, _ = cmd.Flags().GetBool("yes")
	opts.ShowDiff, _ = cmd.Flags().GetBool("diff")

	opts.RemoteSet = cmd.Flags().Changed("remote")
	if opts.RemoteSet {
		opts.Remote, _ = cmd.Flags().GetString("remote")
	} else {
		opts.Remote = cfg.Remote
	}

	workflow := internal.NewWorkflow(repo, journal, prompter, logger, cmd.OutOrStdout(), repo.Root())
	return workflow.Run(cmd.Context(), opts)
}
