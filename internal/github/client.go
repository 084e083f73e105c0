package github

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/cli/go-gh/v2/pkg/api"
	graphql "github.com/cli/shurcooL-graphql"
	"github.com/ryo246912/pr-size-helper/internal/models"
)

const perPage = 100

// Client wraps GitHub API clients
type Client struct {
	rest api.RESTClient
	gql  api.GraphQLClient
}

// NewClient creates a client for host authenticated with token
func NewClient(host, token string) (*Client, error) {
	return newClient(api.ClientOptions{
		Host:      host,
		AuthToken: token,
		Headers:   map[string]string{"User-Agent": "pr-size-helper"},
	})
}

func newClient(opts api.ClientOptions) (*Client, error) {
	restClient, err := api.NewRESTClient(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create REST client: %w", err)
	}

	gqlClient, err := api.NewGraphQLClient(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create GraphQL client: %w", err)
	}

	return &Client{
		rest: *restClient,
		gql:  *gqlClient,
	}, nil
}

// ListTeamMembers returns the logins of an organization team. A team or
// organization the host does not know yields no members.
func (c *Client) ListTeamMembers(org, team string) ([]string, error) {
	variables := map[string]interface{}{
		"org":       graphql.String(org),
		"slug":      graphql.String(team),
		"first":     graphql.Int(perPage),
		"endCursor": (*graphql.String)(nil),
	}

	var logins []string
	for {
		var q teamMembersQuery
		if err := c.gql.Query("TeamMembers", &q, variables); err != nil {
			if isGraphQLNotFound(err) {
				return nil, nil
			}
			return nil, fmt.Errorf("failed to fetch members of team %s/%s: %w", org, team, err)
		}
		members := q.Organization.Team.Members
		for _, node := range members.Nodes {
			logins = append(logins, node.Login)
		}
		if !members.PageInfo.HasNextPage {
			return logins, nil
		}
		cursor := graphql.String(members.PageInfo.EndCursor)
		variables["endCursor"] = &cursor
	}
}

type teamMembersQuery struct {
	Organization struct {
		Team struct {
			Members struct {
				Nodes []struct {
					Login string
				}
				PageInfo struct {
					HasNextPage bool
					EndCursor   string
				}
			} `graphql:"members(first: $first, after: $endCursor)"`
		} `graphql:"team(slug: $slug)"`
	} `graphql:"organization(login: $org)"`
}

// CurrentUser returns the account the token acts as. Installation tokens
// cannot read /user; for those the returned user is empty.
func (c *Client) CurrentUser() (models.User, error) {
	var user models.User
	if err := c.rest.Get("user", &user); err != nil {
		if hasStatus(err, http.StatusForbidden) {
			return models.User{}, nil
		}
		return models.User{}, fmt.Errorf("failed to fetch current user: %w", err)
	}
	return user, nil
}

// ListLabels returns the label names on an issue or pull request
func (c *Client) ListLabels(owner, repo string, number int) ([]string, error) {
	var names []string
	for page := 1; ; page++ {
		path := fmt.Sprintf("repos/%s/%s/issues/%d/labels?per_page=%d&page=%d", owner, repo, number, perPage, page)
		var labels []models.Label
		if err := c.rest.Get(path, &labels); err != nil {
			return nil, fmt.Errorf("failed to fetch labels: %w", err)
		}
		for _, l := range labels {
			names = append(names, l.Name)
		}
		if len(labels) < perPage {
			return names, nil
		}
	}
}

// AddLabels adds labels to an issue or pull request
func (c *Client) AddLabels(owner, repo string, number int, labels []string) error {
	path := fmt.Sprintf("repos/%s/%s/issues/%d/labels", owner, repo, number)
	body, err := encode(map[string]interface{}{"labels": labels})
	if err != nil {
		return err
	}

	var response []models.Label
	if err := c.rest.Post(path, body, &response); err != nil {
		return fmt.Errorf("failed to add labels: %w", err)
	}
	return nil
}

// RemoveLabel removes a label. A label that is already gone is not an error.
func (c *Client) RemoveLabel(owner, repo string, number int, label string) error {
	path := fmt.Sprintf("repos/%s/%s/issues/%d/labels/%s", owner, repo, number, url.PathEscape(label))

	var response []models.Label
	if err := c.rest.Delete(path, &response); err != nil && !isNotFound(err) {
		return fmt.Errorf("failed to remove label %s: %w", label, err)
	}
	return nil
}

// EnsureLabel creates the label in the repository unless it already exists
func (c *Client) EnsureLabel(owner, repo string, label models.Label) error {
	var existing models.Label
	err := c.rest.Get(fmt.Sprintf("repos/%s/%s/labels/%s", owner, repo, url.PathEscape(label.Name)), &existing)
	if err == nil {
		return nil
	}
	if !isNotFound(err) {
		return fmt.Errorf("failed to fetch label %s: %w", label.Name, err)
	}

	body, err := encode(label)
	if err != nil {
		return err
	}
	if err := c.rest.Post(fmt.Sprintf("repos/%s/%s/labels", owner, repo), body, &existing); err != nil {
		return fmt.Errorf("failed to create label %s: %w", label.Name, err)
	}
	return nil
}

// ListComments returns every comment on an issue or pull request
func (c *Client) ListComments(owner, repo string, number int) ([]models.Comment, error) {
	var all []models.Comment
	for page := 1; ; page++ {
		path := fmt.Sprintf("repos/%s/%s/issues/%d/comments?per_page=%d&page=%d", owner, repo, number, perPage, page)
		var comments []models.Comment
		if err := c.rest.Get(path, &comments); err != nil {
			return nil, fmt.Errorf("failed to fetch comments: %w", err)
		}
		all = append(all, comments...)
		if len(comments) < perPage {
			return all, nil
		}
	}
}

// CreateComment posts a new comment
func (c *Client) CreateComment(owner, repo string, number int, body string) (models.Comment, error) {
	path := fmt.Sprintf("repos/%s/%s/issues/%d/comments", owner, repo, number)
	reqBody, err := encode(map[string]string{"body": body})
	if err != nil {
		return models.Comment{}, err
	}

	var created models.Comment
	if err := c.rest.Post(path, reqBody, &created); err != nil {
		return models.Comment{}, fmt.Errorf("failed to create comment: %w", err)
	}
	return created, nil
}

// UpdateComment replaces the body of an existing comment
func (c *Client) UpdateComment(owner, repo string, commentID int64, body string) error {
	path := fmt.Sprintf("repos/%s/%s/issues/comments/%d", owner, repo, commentID)
	reqBody, err := encode(map[string]string{"body": body})
	if err != nil {
		return err
	}

	var updated models.Comment
	if err := c.rest.Patch(path, reqBody, &updated); err != nil {
		return fmt.Errorf("failed to update comment %d: %w", commentID, err)
	}
	return nil
}

// FindIssueByTitle looks for an open issue (not a pull request) with the exact title
func (c *Client) FindIssueByTitle(owner, repo, title string) (int, bool, error) {
	for page := 1; ; page++ {
		path := fmt.Sprintf("repos/%s/%s/issues?state=open&per_page=%d&page=%d", owner, repo, perPage, page)
		var issues []models.Issue
		if err := c.rest.Get(path, &issues); err != nil {
			return 0, false, fmt.Errorf("failed to fetch issues: %w", err)
		}
		for _, issue := range issues {
			if issue.PullRequest == nil && issue.Title == title {
				return issue.Number, true, nil
			}
		}
		if len(issues) < perPage {
			return 0, false, nil
		}
	}
}

// CreateIssue opens a new issue and returns its number
func (c *Client) CreateIssue(owner, repo, title, body string) (int, error) {
	path := fmt.Sprintf("repos/%s/%s/issues", owner, repo)
	reqBody, err := encode(map[string]string{"title": title, "body": body})
	if err != nil {
		return 0, err
	}

	var created models.Issue
	if err := c.rest.Post(path, reqBody, &created); err != nil {
		return 0, fmt.Errorf("failed to create issue: %w", err)
	}
	return created.Number, nil
}

func encode(v interface{}) (*bytes.Reader, error) {
	jsonBody, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return bytes.NewReader(jsonBody), nil
}

func isNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

func hasStatus(err error, status int) bool {
	var httpErr *api.HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == status
}

// isGraphQLNotFound reports whether every error in a GraphQL response is a
// NOT_FOUND, as returned for an unknown organization.
func isGraphQLNotFound(err error) bool {
	var gqlErr *api.GraphQLError
	if !errors.As(err, &gqlErr) || len(gqlErr.Errors) == 0 {
		return false
	}
	for _, e := range gqlErr.Errors {
		if e.Type != "NOT_FOUND" {
			return false
		}
	}
	return true
}
