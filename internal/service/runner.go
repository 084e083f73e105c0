package service

import (
	"fmt"

	"github.com/ryo246912/pr-size-helper/internal/apperrors"
	"github.com/ryo246912/pr-size-helper/internal/logger"
	"github.com/ryo246912/pr-size-helper/internal/models"
)

// Runner dispatches a parsed event to its handler
type Runner struct {
	pr     *PRService
	reason *ReasonService
	log    *logger.Logger
}

// NewRunner creates a new runner
func NewRunner(pr *PRService, reason *ReasonService, log *logger.Logger) *Runner {
	return &Runner{pr: pr, reason: reason, log: log}
}

// Run handles one event. Ignored events and early returns are not errors.
func (r *Runner) Run(ev models.Event) error {
	var err error
	switch ev := ev.(type) {
	case models.PullRequestEvent:
		r.log.Info("Handling PR...")
		err = r.pr.Handle(ev)
	case models.IssueCommentEvent:
		r.log.Info("Handling reason comment...")
		err = r.reason.Handle(ev)
	case models.Ignored:
		r.log.Infof("Action will be ignored: %s (%s)", ev.Action, ev.Reason)
		return nil
	default:
		return fmt.Errorf("unsupported event type %T", ev)
	}

	if err != nil && !apperrors.IsFatal(err) {
		r.log.Info(err.Error())
		return nil
	}
	if err != nil {
		return err
	}

	r.log.Info("Success!")
	return nil
}
