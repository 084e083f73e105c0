package service

import (
	"fmt"
	"strings"

	"github.com/ryo246912/pr-size-helper/internal/github"
	"github.com/ryo246912/pr-size-helper/internal/models"
	"github.com/ryo246912/pr-size-helper/internal/render"
)

// upsertComment updates the bot's comment carrying marker on the target issue,
// or creates one. It reports whether a new comment was created. Comments by
// anyone else are never edited, even when they carry the marker.
func upsertComment(client github.GitHubClient, target models.Target, marker, body string) (bool, error) {
	comments, err := client.ListComments(target.Owner, target.Repo, target.Number)
	if err != nil {
		return false, fmt.Errorf("failed to list comments on %s/%s#%d: %w", target.Owner, target.Repo, target.Number, err)
	}

	var self *models.User
	for _, c := range comments {
		if !render.HasMarker(c.Body, marker) {
			continue
		}
		if self == nil {
			user, err := client.CurrentUser()
			if err != nil {
				return false, err
			}
			self = &user
		}
		if !writtenBy(c, *self) {
			continue
		}
		if c.Body == body {
			return false, nil
		}
		if err := client.UpdateComment(target.Owner, target.Repo, c.ID, body); err != nil {
			return false, err
		}
		return false, nil
	}

	if _, err := client.CreateComment(target.Owner, target.Repo, target.Number, body); err != nil {
		return false, err
	}
	return true, nil
}

// writtenBy reports whether c was posted by the token's account. When the
// account is unknown (installation tokens) any bot account qualifies.
func writtenBy(c models.Comment, self models.User) bool {
	if self.Login != "" {
		return c.User.Login == self.Login
	}
	return isBot(c.User)
}

func isBot(u models.User) bool {
	return u.Type == "Bot" || strings.HasSuffix(u.Login, "[bot]")
}
