package event

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/google/go-github/v69/github"
	"github.com/ryo246912/pr-size-helper/internal/apperrors"
	"github.com/ryo246912/pr-size-helper/internal/models"
	"github.com/ryo246912/pr-size-helper/internal/render"
)

// ReasonMarker introduces a reason comment
const ReasonMarker = "!reason"

// HandledActions are the only payload actions the bot reacts to
var HandledActions = []string{"opened", "synchronize", "reopened", "edited", "created"}

type payload struct {
	Action      *string              `json:"action"`
	PullRequest *github.PullRequest  `json:"pull_request"`
	Comment     *github.IssueComment `json:"comment"`
	Issue       *github.Issue        `json:"issue"`
	Repository  *github.Repository   `json:"repository"`
}

// ReadFile reads and parses the payload at path
func ReadFile(path string) (models.Event, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.KindMalformedEvent, "failed to read event payload %s", path)
	}
	return Parse(raw)
}

// Parse classifies a raw event payload
func Parse(raw []byte) (models.Event, error) {
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindMalformedEvent, "invalid event payload")
	}
	if p.Action == nil {
		return nil, apperrors.MalformedEvent("event payload has no action")
	}

	action := *p.Action
	if !slices.Contains(HandledActions, action) {
		return models.Ignored{Action: action, Reason: fmt.Sprintf("action %q is not handled", action)}, nil
	}

	switch {
	case p.PullRequest != nil:
		return pullRequestEvent(action, p)
	case p.Comment != nil:
		return commentEvent(action, p)
	}
	return nil, apperrors.MalformedEvent("event payload has neither pull_request nor comment")
}

func pullRequestEvent(action string, p payload) (models.Event, error) {
	pr := p.PullRequest

	owner := pr.GetBase().GetRepo().GetOwner().GetLogin()
	repo := pr.GetBase().GetRepo().GetName()
	if owner == "" || repo == "" {
		owner = p.Repository.GetOwner().GetLogin()
		repo = p.Repository.GetName()
	}
	if owner == "" || repo == "" {
		return nil, apperrors.MalformedEvent("pull_request payload has no base repository")
	}
	if pr.GetNumber() == 0 {
		return nil, apperrors.MalformedEvent("pull_request payload has no number")
	}

	return models.PullRequestEvent{
		Action:    action,
		Number:    pr.GetNumber(),
		Owner:     owner,
		Repo:      repo,
		Author:    pr.GetUser().GetLogin(),
		Labels:    labelNames(pr.Labels),
		Additions: pr.GetAdditions(),
		Deletions: pr.GetDeletions(),
		HTMLURL:   pr.GetHTMLURL(),
	}, nil
}

func commentEvent(action string, p payload) (models.Event, error) {
	if p.Issue == nil {
		return nil, apperrors.MalformedEvent("comment payload has no issue")
	}

	body := p.Comment.GetBody()
	if action != "created" || !strings.Contains(body, ReasonMarker) {
		return models.Ignored{Action: action, Reason: "comment is not a new " + ReasonMarker + " comment"}, nil
	}
	// The bot's own comments quote the marker.
	author := p.Comment.GetUser()
	if author.GetType() == "Bot" || strings.HasSuffix(author.GetLogin(), "[bot]") || render.IsBotBody(body) {
		return models.Ignored{Action: action, Reason: "comment was written by a bot"}, nil
	}

	owner := p.Repository.GetOwner().GetLogin()
	repo := p.Repository.GetName()
	if owner == "" || repo == "" {
		return nil, apperrors.MalformedEvent("comment payload has no repository")
	}

	return models.IssueCommentEvent{
		Action:        action,
		IssueNumber:   p.Issue.GetNumber(),
		IssueLabels:   labelNames(p.Issue.Labels),
		IssueAuthor:   p.Issue.GetUser().GetLogin(),
		IssueURL:      p.Issue.GetHTMLURL(),
		CommentBody:   body,
		CommentAuthor: author.GetLogin(),
		CommentURL:    p.Comment.GetHTMLURL(),
		Owner:         owner,
		Repo:          repo,
	}, nil
}

func labelNames(labels []*github.Label) []string {
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		if name := l.GetName(); name != "" {
			names = append(names, name)
		}
	}
	return names
}
