package service

import (
	"fmt"

	"github.com/ryo246912/pr-size-helper/internal/github"
)

// AllowList is the set of logins whose pull requests are handled. An empty
// list allows everyone.
type AllowList map[string]struct{}

// NewAllowList builds an allow-list, skipping empty logins
func NewAllowList(logins ...string) AllowList {
	a := make(AllowList, len(logins))
	for _, login := range logins {
		if login != "" {
			a[login] = struct{}{}
		}
	}
	return a
}

// IsAllowed reports whether login may trigger size handling. Logins are
// compared exactly as the host reports them.
func (a AllowList) IsAllowed(login string) bool {
	if len(a) == 0 {
		return true
	}
	_, ok := a[login]
	return ok
}

// BuildAllowList resolves team slugs in org to their members and adds the
// individually configured logins
func BuildAllowList(client github.GitHubClient, org string, teams, logins []string) (AllowList, error) {
	all := append([]string(nil), logins...)
	for _, team := range teams {
		members, err := client.ListTeamMembers(org, team)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve team %s: %w", team, err)
		}
		all = append(all, members...)
	}
	return NewAllowList(all...), nil
}
