package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ryo246912/pr-size-helper/internal/config"
	"github.com/ryo246912/pr-size-helper/internal/event"
	"github.com/ryo246912/pr-size-helper/internal/github"
	"github.com/ryo246912/pr-size-helper/internal/logger"
	"github.com/ryo246912/pr-size-helper/internal/service"
	"github.com/spf13/cobra"
)

var (
	eventPathFlag string
	dryRunFlag    bool
)

func runCommand() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if eventPathFlag != "" {
		cfg.GitHub.EventPath = eventPathFlag
	}
	cfg.DryRun = dryRunFlag
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info("Running pr-size-helper...")

	ev, err := event.ReadFile(cfg.GitHub.EventPath)
	if err != nil {
		return err
	}

	client, err := newClient(cfg, cfg.GitHub.Host, cfg.GitHub.Token, log)
	if err != nil {
		return fmt.Errorf("failed to create GitHub client: %w", err)
	}

	var digest *service.Digest
	if cfg.Digest.Enabled() {
		log.Infof("Mirroring reasons to %s/%s/%s", cfg.Digest.Host, cfg.Digest.Owner, cfg.Digest.Repo)
		digestClient, err := newClient(cfg, cfg.Digest.Host, cfg.Digest.AccessToken, log)
		if err != nil {
			return fmt.Errorf("failed to create digest client: %w", err)
		}
		digest = &service.Digest{
			Client:     digestClient,
			Owner:      cfg.Digest.Owner,
			Repo:       cfg.Digest.Repo,
			IssueTitle: cfg.Digest.IssueTitle,
		}
	}

	// Create services with dependency injection
	runner := service.NewRunner(
		service.NewPRService(client, cfg.Labels, cfg.Authors, log),
		service.NewReasonService(client, cfg.Labels.Scheme, digest, log),
		log,
	)
	return runner.Run(ev)
}

func newClient(cfg *config.Config, host, token string, log *logger.Logger) (github.GitHubClient, error) {
	client, err := github.NewClient(host, token)
	if err != nil {
		return nil, err
	}
	if cfg.DryRun {
		return github.NewDryRunClient(client, log), nil
	}
	return client, nil
}

// errorAnnotation formats err as a workflow command, escaped the way the
// Actions toolkit escapes command data.
func errorAnnotation(err error) string {
	msg := strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A").Replace(err.Error())
	return "::error::" + msg
}

func main() {
	cmd := &cobra.Command{
		Use:   "pr-size-helper",
		Short: "Label pull requests by size and record reasons for large ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().StringVar(&eventPathFlag, "event-path", "", "path to the event payload (default: $GITHUB_EVENT_PATH)")
	cmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "log label and comment changes instead of making them")

	if err := cmd.Execute(); err != nil {
		// Surfaces the failure as an annotation on the workflow run.
		fmt.Println(errorAnnotation(err))
		os.Exit(1)
	}
}
