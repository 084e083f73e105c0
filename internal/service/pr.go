package service

import (
	"fmt"

	"github.com/ryo246912/pr-size-helper/internal/apperrors"
	"github.com/ryo246912/pr-size-helper/internal/config"
	"github.com/ryo246912/pr-size-helper/internal/github"
	"github.com/ryo246912/pr-size-helper/internal/logger"
	"github.com/ryo246912/pr-size-helper/internal/models"
	"github.com/ryo246912/pr-size-helper/internal/render"
	"github.com/ryo246912/pr-size-helper/internal/size"
)

// labelColors runs from green (smallest) to red (largest)
var labelColors = []string{"3cbf00", "5d9801", "7f7203", "a14c05", "c32607", "e50009"}

// PRService labels pull requests by size
type PRService struct {
	client  github.GitHubClient
	scheme  size.Scheme
	ignored []string
	authors config.AuthorConfig
	log     *logger.Logger
}

// NewPRService creates a new service instance
func NewPRService(client github.GitHubClient, labels config.LabelConfig, authors config.AuthorConfig, log *logger.Logger) *PRService {
	return &PRService{
		client:  client,
		scheme:  labels.Scheme,
		ignored: labels.Ignored,
		authors: authors,
		log:     log,
	}
}

// Handle labels the pull request and posts size guidance when the label changes
func (s *PRService) Handle(ev models.PullRequestEvent) error {
	log := s.log.With("pr", fmt.Sprintf("%s/%s#%d", ev.Owner, ev.Repo, ev.Number))

	allowed, err := BuildAllowList(s.client, ev.Owner, s.authors.Teams, s.authors.Logins)
	if err != nil {
		return fmt.Errorf("failed to build allow-list: %w", err)
	}
	log.Debugf("PR author: %s, allowed authors: %d", ev.Author, len(allowed))
	if !allowed.IsAllowed(ev.Author) {
		return apperrors.Ignored("Ignoring this PR because the author %s has not opted into this workflow.", ev.Author)
	}

	verdict := s.scheme.Classify(ev.Additions, ev.Deletions)
	log.Infof("%d additions + %d deletions = %d changed lines: %s", ev.Additions, ev.Deletions, verdict.ChangedLines, verdict.Label)

	current, err := s.client.ListLabels(ev.Owner, ev.Repo, ev.Number)
	if err != nil {
		return fmt.Errorf("failed to get labels: %w", err)
	}

	delta := s.scheme.Reconcile(current, verdict, s.ignored)
	if delta.Empty() {
		log.Infof("Already labelled %s", verdict.Label)
		return nil
	}

	for _, name := range delta.ToAdd {
		if err := s.client.EnsureLabel(ev.Owner, ev.Repo, s.labelDefinition(name, verdict)); err != nil {
			return err
		}
	}
	for _, name := range delta.ToRemove {
		log.Infof("Removing label %s", name)
		if err := s.client.RemoveLabel(ev.Owner, ev.Repo, ev.Number, name); err != nil {
			return err
		}
	}
	if len(delta.ToAdd) > 0 {
		log.Infof("Adding label %v", delta.ToAdd)
		if err := s.client.AddLabels(ev.Owner, ev.Repo, ev.Number, delta.ToAdd); err != nil {
			return err
		}
	}

	target := models.Target{Owner: ev.Owner, Repo: ev.Repo, Number: ev.Number}
	if _, err := upsertComment(s.client, target, render.GuidanceMarker, render.GuidanceComment(s.scheme, verdict)); err != nil {
		return fmt.Errorf("failed to post size guidance: %w", err)
	}
	return nil
}

func (s *PRService) labelDefinition(name string, v size.Verdict) models.Label {
	return models.Label{
		Name:        name,
		Color:       colorFor(v.Index, len(s.scheme.Thresholds)),
		Description: fmt.Sprintf("Pull request with %s changed lines", s.scheme.Thresholds.Range(v.Index)),
	}
}

// colorFor spreads n categories across the palette so the largest is always red
func colorFor(index, n int) string {
	if n <= 1 {
		return labelColors[0]
	}
	return labelColors[index*(len(labelColors)-1)/(n-1)]
}
