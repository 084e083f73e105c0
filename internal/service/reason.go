package service

import (
	"fmt"
	"strings"

	"github.com/ryo246912/pr-size-helper/internal/apperrors"
	"github.com/ryo246912/pr-size-helper/internal/event"
	"github.com/ryo246912/pr-size-helper/internal/github"
	"github.com/ryo246912/pr-size-helper/internal/logger"
	"github.com/ryo246912/pr-size-helper/internal/models"
	"github.com/ryo246912/pr-size-helper/internal/render"
	"github.com/ryo246912/pr-size-helper/internal/size"
)

// Digest is the repository reasons are mirrored to
type Digest struct {
	Client     github.GitHubClient
	Owner      string
	Repo       string
	IssueTitle string
}

// ReasonService records "!reason" comments
type ReasonService struct {
	client github.GitHubClient
	scheme size.Scheme
	digest *Digest
	log    *logger.Logger
}

// NewReasonService creates a new service instance. digest may be nil, in
// which case reasons are tracked on the source issue.
func NewReasonService(client github.GitHubClient, scheme size.Scheme, digest *Digest, log *logger.Logger) *ReasonService {
	return &ReasonService{
		client: client,
		scheme: scheme,
		digest: digest,
		log:    log,
	}
}

// ExtractReason strips the marker from a comment body
func ExtractReason(body string) (string, error) {
	reason := strings.TrimSpace(strings.Replace(body, event.ReasonMarker, "", 1))
	if reason == "" {
		return "", apperrors.New(apperrors.KindEmptyReason, "reason comment has no explanation")
	}
	return reason, nil
}

// Handle validates the comment and upserts its tracking comment
func (s *ReasonService) Handle(ev models.IssueCommentEvent) error {
	log := s.log.With("issue", fmt.Sprintf("%s/%s#%d", ev.Owner, ev.Repo, ev.IssueNumber))

	sizeLabel := s.sizeLabel(ev.IssueLabels)
	if sizeLabel == "" {
		return apperrors.Ignored("Ignoring reason comment because %s/%s#%d has no size label", ev.Owner, ev.Repo, ev.IssueNumber)
	}

	reason, err := ExtractReason(ev.CommentBody)
	if apperrors.Is(err, apperrors.KindEmptyReason) {
		log.Infof("Empty reason from %s, asking for details", ev.CommentAuthor)
		if _, err := s.client.CreateComment(ev.Owner, ev.Repo, ev.IssueNumber, render.ClarifyComment(ev.CommentAuthor)); err != nil {
			return fmt.Errorf("failed to ask for a reason: %w", err)
		}
		return nil
	}

	record := models.ReasonRecord{
		IssueURL:         ev.IssueURL,
		IssueNumber:      ev.IssueNumber,
		Owner:            ev.Owner,
		Repo:             ev.Repo,
		Reason:           reason,
		ReportedBy:       ev.CommentAuthor,
		SourceCommentURL: ev.CommentURL,
		SizeLabel:        sizeLabel,
	}
	body := render.TrackingComment(record)

	client, target, fresh, err := s.resolveTarget(ev)
	if err != nil {
		return err
	}

	if fresh {
		if _, err := client.CreateComment(target.Owner, target.Repo, target.Number, body); err != nil {
			return fmt.Errorf("failed to record reason: %w", err)
		}
	} else if _, err := upsertComment(client, target, render.ReasonMarker(ev.IssueURL), body); err != nil {
		return fmt.Errorf("failed to record reason: %w", err)
	}

	log.Infof("Recorded reason %q on %s/%s#%d", render.Excerpt(reason, 60), target.Owner, target.Repo, target.Number)
	return nil
}

func (s *ReasonService) sizeLabel(labels []string) string {
	for _, l := range labels {
		if s.scheme.IsSizeLabel(l) {
			return l
		}
	}
	return ""
}

// resolveTarget picks the issue that holds the tracking comment. fresh is true
// when the digest issue was just opened and so has no comments yet.
func (s *ReasonService) resolveTarget(ev models.IssueCommentEvent) (github.GitHubClient, models.Target, bool, error) {
	if s.digest == nil {
		return s.client, models.Target{Owner: ev.Owner, Repo: ev.Repo, Number: ev.IssueNumber}, false, nil
	}

	d := s.digest
	number, found, err := d.Client.FindIssueByTitle(d.Owner, d.Repo, d.IssueTitle)
	if err != nil {
		return nil, models.Target{}, false, fmt.Errorf("failed to find digest issue in %s/%s: %w", d.Owner, d.Repo, err)
	}
	if found {
		return d.Client, models.Target{Owner: d.Owner, Repo: d.Repo, Number: number}, false, nil
	}

	s.log.Infof("Opening digest issue %q in %s/%s", d.IssueTitle, d.Owner, d.Repo)
	number, err = d.Client.CreateIssue(d.Owner, d.Repo, d.IssueTitle, render.DigestIssueBody())
	if err != nil {
		return nil, models.Target{}, false, fmt.Errorf("failed to open digest issue in %s/%s: %w", d.Owner, d.Repo, err)
	}
	return d.Client, models.Target{Owner: d.Owner, Repo: d.Repo, Number: number}, true, nil
}
