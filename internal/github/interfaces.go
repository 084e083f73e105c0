package github

import (
	"github.com/ryo246912/pr-size-helper/internal/models"
)

// GitHubClient defines the host operations the bot performs
type GitHubClient interface {
	CurrentUser() (models.User, error)
	ListTeamMembers(org, team string) ([]string, error)
	ListLabels(owner, repo string, number int) ([]string, error)
	AddLabels(owner, repo string, number int, labels []string) error
	RemoveLabel(owner, repo string, number int, label string) error
	EnsureLabel(owner, repo string, label models.Label) error
	ListComments(owner, repo string, number int) ([]models.Comment, error)
	CreateComment(owner, repo string, number int, body string) (models.Comment, error)
	UpdateComment(owner, repo string, commentID int64, body string) error
	FindIssueByTitle(owner, repo, title string) (int, bool, error)
	CreateIssue(owner, repo, title, body string) (int, error)
}

// Ensure implementations satisfy GitHubClient
var (
	_ GitHubClient = (*Client)(nil)
	_ GitHubClient = (*MockClient)(nil)
	_ GitHubClient = (*DryRunClient)(nil)
)
