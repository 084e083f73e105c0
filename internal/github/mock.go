package github

import (
	"fmt"
	"slices"

	"github.com/ryo246912/pr-size-helper/internal/models"
)

// MockClient implements GitHubClient in memory for testing
type MockClient struct {
	// Control test behavior
	TeamMembers      map[string][]string // keyed by "org/team"
	TeamMembersError error
	Labels           map[string][]string // keyed by issueKey
	RepoLabels       map[string][]models.Label
	Comments         map[string][]models.Comment
	Issues           map[string][]models.Issue // keyed by "owner/repo"
	ListLabelsError  error
	AddLabelsError   error
	CommentError     error

	// Self is the token's account; empty mimics an installation token
	Self models.User

	// Track method calls
	Calls []string

	nextCommentID int64
}

// NewMockClient returns an empty MockClient
func NewMockClient() *MockClient {
	return &MockClient{
		TeamMembers: map[string][]string{},
		Labels:      map[string][]string{},
		RepoLabels:  map[string][]models.Label{},
		Comments:    map[string][]models.Comment{},
		Issues:      map[string][]models.Issue{},
	}
}

func issueKey(owner, repo string, number int) string {
	return fmt.Sprintf("%s/%s#%d", owner, repo, number)
}

func (m *MockClient) track(format string, args ...interface{}) {
	m.Calls = append(m.Calls, fmt.Sprintf(format, args...))
}

// CurrentUser mocks the authenticated user lookup
func (m *MockClient) CurrentUser() (models.User, error) {
	m.track("CurrentUser")
	return m.Self, nil
}

// ListTeamMembers mocks the GraphQL team query
func (m *MockClient) ListTeamMembers(org, team string) ([]string, error) {
	m.track("ListTeamMembers %s/%s", org, team)
	if m.TeamMembersError != nil {
		return nil, m.TeamMembersError
	}
	return m.TeamMembers[org+"/"+team], nil
}

// ListLabels mocks the label listing
func (m *MockClient) ListLabels(owner, repo string, number int) ([]string, error) {
	m.track("ListLabels %s", issueKey(owner, repo, number))
	if m.ListLabelsError != nil {
		return nil, m.ListLabelsError
	}
	return slices.Clone(m.Labels[issueKey(owner, repo, number)]), nil
}

// AddLabels mocks adding labels
func (m *MockClient) AddLabels(owner, repo string, number int, labels []string) error {
	key := issueKey(owner, repo, number)
	m.track("AddLabels %s %v", key, labels)
	if m.AddLabelsError != nil {
		return m.AddLabelsError
	}
	for _, l := range labels {
		if !slices.Contains(m.Labels[key], l) {
			m.Labels[key] = append(m.Labels[key], l)
		}
	}
	return nil
}

// RemoveLabel mocks removing a label; a missing label is not an error
func (m *MockClient) RemoveLabel(owner, repo string, number int, label string) error {
	key := issueKey(owner, repo, number)
	m.track("RemoveLabel %s %s", key, label)
	m.Labels[key] = slices.DeleteFunc(m.Labels[key], func(l string) bool { return l == label })
	return nil
}

// EnsureLabel mocks label creation
func (m *MockClient) EnsureLabel(owner, repo string, label models.Label) error {
	key := owner + "/" + repo
	m.track("EnsureLabel %s %s", key, label.Name)
	for _, l := range m.RepoLabels[key] {
		if l.Name == label.Name {
			return nil
		}
	}
	m.RepoLabels[key] = append(m.RepoLabels[key], label)
	return nil
}

// ListComments mocks the comment listing
func (m *MockClient) ListComments(owner, repo string, number int) ([]models.Comment, error) {
	key := issueKey(owner, repo, number)
	m.track("ListComments %s", key)
	if m.CommentError != nil {
		return nil, m.CommentError
	}
	return slices.Clone(m.Comments[key]), nil
}

// CreateComment mocks posting a comment
func (m *MockClient) CreateComment(owner, repo string, number int, body string) (models.Comment, error) {
	key := issueKey(owner, repo, number)
	m.track("CreateComment %s", key)
	if m.CommentError != nil {
		return models.Comment{}, m.CommentError
	}
	m.nextCommentID++
	author := m.Self
	if author.Login == "" {
		author = models.User{Login: "github-actions[bot]", Type: "Bot"}
	}
	c := models.Comment{
		ID:      m.nextCommentID,
		Body:    body,
		HTMLURL: fmt.Sprintf("https://github.com/%s/%s/issues/%d#issuecomment-%d", owner, repo, number, m.nextCommentID),
		User:    author,
	}
	m.Comments[key] = append(m.Comments[key], c)
	return c, nil
}

// UpdateComment mocks editing a comment
func (m *MockClient) UpdateComment(owner, repo string, commentID int64, body string) error {
	m.track("UpdateComment %s/%s %d", owner, repo, commentID)
	if m.CommentError != nil {
		return m.CommentError
	}
	for key, comments := range m.Comments {
		for i := range comments {
			if comments[i].ID == commentID {
				m.Comments[key][i].Body = body
				return nil
			}
		}
	}
	return NewAPIError(fmt.Sprintf("comment %d not found", commentID))
}

// FindIssueByTitle mocks the open issue search
func (m *MockClient) FindIssueByTitle(owner, repo, title string) (int, bool, error) {
	m.track("FindIssueByTitle %s/%s %s", owner, repo, title)
	for _, issue := range m.Issues[owner+"/"+repo] {
		if issue.Title == title {
			return issue.Number, true, nil
		}
	}
	return 0, false, nil
}

// CreateIssue mocks opening an issue
func (m *MockClient) CreateIssue(owner, repo, title, body string) (int, error) {
	key := owner + "/" + repo
	m.track("CreateIssue %s %s", key, title)
	number := len(m.Issues[key]) + 1
	m.Issues[key] = append(m.Issues[key], models.Issue{Number: number, Title: title})
	return number, nil
}

// Called reports whether a call with the given prefix was made
func (m *MockClient) Called(prefix string) bool {
	return slices.ContainsFunc(m.Calls, func(c string) bool {
		return len(c) >= len(prefix) && c[:len(prefix)] == prefix
	})
}

// NewAPIError returns a generic host error for tests
func NewAPIError(message string) error {
	return fmt.Errorf("API error: %s", message)
}
