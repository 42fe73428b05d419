package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/naka-gawa/ncu/internal/domain"
	"github.com/naka-gawa/ncu/internal/gateway"
	"github.com/naka-gawa/ncu/internal/summary"
	"github.com/naka-gawa/ncu/internal/usecase"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <pr-number>",
	Short: "Summarizes a pull request's commits and committers",
	Long: `Fetches a pull request and its commits from GitHub and prints one line per
commit, one line per distinct committer (by email), and a table with the
title, author, branch, labels and counts.

The token is read from GITHUB_TOKEN, falling back to the "token" config key.
--owner and --repo fall back to the "owner" and "repo" config keys.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		number, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid pull request number %q: %w", args[0], err)
		}

		logger := newLogger(cmd)
		cfg, err := newStore(logger).LoadMerged("", "")
		if err != nil {
			return err
		}

		owner, _ := cmd.Flags().GetString("owner")
		repo, _ := cmd.Flags().GetString("repo")
		if owner == "" {
			owner, _ = cfg.GetString("owner")
		}
		if repo == "" {
			repo, _ = cfg.GetString("repo")
		}
		if owner == "" || repo == "" {
			return errors.New("--owner and --repo are required (or set them with `ncu config set`)")
		}

		token := os.Getenv("GITHUB_TOKEN")
		if token == "" {
			token, _ = cfg.GetString("token")
		}
		if token == "" {
			return errors.New("GITHUB_TOKEN is not set and no token is configured")
		}

		githubGateway, err := gateway.NewGitHubGateway(token, logger)
		if err != nil {
			return fmt.Errorf("failed to create GitHub gateway: %w", err)
		}
		data, err := usecase.NewCollector(githubGateway, logger).Collect(cmd.Context(), owner, repo, number)
		if err != nil {
			return fmt.Errorf("failed to collect pull request data: %w", err)
		}

		report := summary.NewBuilder(*data, &terminalOutput{w: cmd.OutOrStdout()}, logger).Display()
		printNotes(cmd.ErrOrStderr(), report)
		return nil
	},
}

// printNotes reports the subsystems a pull request touches and any commits
// that must be squashed before landing.
func printNotes(w io.Writer, report domain.Report) {
	if len(report.Subsystems) > 0 {
		fmt.Fprintf(w, "Subsystems: %s\n", strings.Join(report.Subsystems, ", "))
	}
	if report.Autosquash {
		fmt.Fprintf(w, "Note: %d of %d commits are fixup or squash commits; squash them before landing.\n",
			report.MarkedCommits(), len(report.Kinds))
	}
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().StringP("owner", "o", "", "Repository owner")
	summaryCmd.Flags().StringP("repo", "r", "", "Repository name")
}
