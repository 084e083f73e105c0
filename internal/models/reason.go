package models

// ReasonRecord is an explanation given for an item's size
type ReasonRecord struct {
	IssueURL         string
	IssueNumber      int
	Owner            string
	Repo             string
	Reason           string
	ReportedBy       string
	SourceCommentURL string
	SizeLabel        string
}

// Target identifies the issue a tracking comment is written to
type Target struct {
	Owner  string
	Repo   string
	Number int
}
