package github

import (
	"github.com/ryo246912/pr-size-helper/internal/logger"
	"github.com/ryo246912/pr-size-helper/internal/models"
)

// DryRunClient performs reads through the wrapped client and only logs writes
type DryRunClient struct {
	GitHubClient
	log *logger.Logger
}

// NewDryRunClient wraps client so that no mutation reaches the host
func NewDryRunClient(client GitHubClient, log *logger.Logger) *DryRunClient {
	return &DryRunClient{GitHubClient: client, log: log}
}

func (d *DryRunClient) AddLabels(owner, repo string, number int, labels []string) error {
	d.log.Infof("[dry-run] add labels %v to %s/%s#%d", labels, owner, repo, number)
	return nil
}

func (d *DryRunClient) RemoveLabel(owner, repo string, number int, label string) error {
	d.log.Infof("[dry-run] remove label %s from %s/%s#%d", label, owner, repo, number)
	return nil
}

func (d *DryRunClient) EnsureLabel(owner, repo string, label models.Label) error {
	d.log.Infof("[dry-run] ensure label %s exists in %s/%s", label.Name, owner, repo)
	return nil
}

func (d *DryRunClient) CreateComment(owner, repo string, number int, body string) (models.Comment, error) {
	d.log.Infof("[dry-run] comment on %s/%s#%d:\n%s", owner, repo, number, body)
	return models.Comment{}, nil
}

func (d *DryRunClient) UpdateComment(owner, repo string, commentID int64, body string) error {
	d.log.Infof("[dry-run] update comment %d in %s/%s:\n%s", commentID, owner, repo, body)
	return nil
}

func (d *DryRunClient) CreateIssue(owner, repo, title, body string) (int, error) {
	d.log.Infof("[dry-run] open issue %q in %s/%s", title, owner, repo)
	return 0, nil
}
