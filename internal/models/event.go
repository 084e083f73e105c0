package models

// Event is a parsed trigger payload: PullRequestEvent, IssueCommentEvent or Ignored
type Event interface {
	isEvent()
}

// PullRequestEvent represents a pull_request trigger
type PullRequestEvent struct {
	Action    string
	Number    int
	Owner     string
	Repo      string
	Author    string
	Labels    []string
	Additions int
	Deletions int
	HTMLURL   string
}

// IssueCommentEvent represents a "!reason" comment on an issue or pull request
type IssueCommentEvent struct {
	Action        string
	IssueNumber   int
	IssueLabels   []string
	IssueAuthor   string
	IssueURL      string
	CommentBody   string
	CommentAuthor string
	CommentURL    string
	Owner         string
	Repo          string
}

// Ignored is a payload that needs no handling
type Ignored struct {
	Action string
	Reason string
}

func (PullRequestEvent) isEvent()  {}
func (IssueCommentEvent) isEvent() {}
func (Ignored) isEvent()           {}
