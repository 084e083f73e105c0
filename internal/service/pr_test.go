package service

import (
	"slices"
	"strings"
	"testing"

	"github.com/ryo246912/pr-size-helper/internal/apperrors"
	"github.com/ryo246912/pr-size-helper/internal/config"
	"github.com/ryo246912/pr-size-helper/internal/github"
	"github.com/ryo246912/pr-size-helper/internal/logger"
	"github.com/ryo246912/pr-size-helper/internal/models"
	"github.com/ryo246912/pr-size-helper/internal/render"
	"github.com/ryo246912/pr-size-helper/internal/size"
)

const prKey = "octo/app#12"

var testScheme = size.Scheme{
	Prefix: "size/",
	Thresholds: size.Thresholds{
		{Name: "XS", Max: 10},
		{Name: "S", Max: 30},
		{Name: "M", Max: 100},
		{Name: "L", Max: size.Unbounded},
	},
}

func testPR(additions, deletions int) models.PullRequestEvent {
	return models.PullRequestEvent{
		Action:    "opened",
		Number:    12,
		Owner:     "octo",
		Repo:      "app",
		Author:    "alice",
		Additions: additions,
		Deletions: deletions,
	}
}

func newTestPRService(client github.GitHubClient, ignored []string, authors config.AuthorConfig) *PRService {
	return NewPRService(client, config.LabelConfig{Scheme: testScheme, Ignored: ignored}, authors, logger.Nop())
}

func TestPRService_Handle(t *testing.T) {
	tests := []struct {
		name         string
		additions    int
		deletions    int
		current      []string
		ignored      []string
		authors      config.AuthorConfig
		wantLabels   []string
		wantComments int
		wantIgnored  bool
	}{
		{
			name:         "new small PR",
			additions:    5,
			deletions:    2,
			current:      []string{"bug"},
			wantLabels:   []string{"bug", "size/XS"},
			wantComments: 1,
		},
		{
			name:         "grown PR is relabelled",
			additions:    60,
			current:      []string{"size/XS"},
			wantLabels:   []string{"size/M"},
			wantComments: 1,
		},
		{
			name:         "ignored size label survives",
			additions:    500,
			current:      []string{"size/S"},
			ignored:      []string{"size/S"},
			wantLabels:   []string{"size/S", "size/L"},
			wantComments: 1,
		},
		{
			name:         "unchanged size makes no changes",
			additions:    3,
			current:      []string{"size/XS"},
			wantLabels:   []string{"size/XS"},
			wantComments: 0,
		},
		{
			name:         "author outside allow-list is ignored",
			additions:    3,
			authors:      config.AuthorConfig{Logins: []string{"bob"}},
			wantLabels:   nil,
			wantComments: 0,
			wantIgnored:  true,
		},
		{
			name:         "author in team is handled",
			additions:    3,
			authors:      config.AuthorConfig{Teams: []string{"core"}},
			wantLabels:   []string{"size/XS"},
			wantComments: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := github.NewMockClient()
			client.TeamMembers["octo/core"] = []string{"alice"}
			if tt.current != nil {
				client.Labels[prKey] = slices.Clone(tt.current)
			}

			err := newTestPRService(client, tt.ignored, tt.authors).Handle(testPR(tt.additions, tt.deletions))

			if tt.wantIgnored {
				if !apperrors.Is(err, apperrors.KindIgnoredEvent) {
					t.Fatalf("Handle() error = %v, want ignored", err)
				}
				if client.Called("ListLabels") || client.Called("AddLabels") {
					t.Errorf("ignored PR should not touch labels: %v", client.Calls)
				}
			} else if err != nil {
				t.Fatalf("Handle() error = %v", err)
			}

			if got := client.Labels[prKey]; !slices.Equal(got, tt.wantLabels) {
				t.Errorf("labels = %v, want %v", got, tt.wantLabels)
			}
			if got := len(client.Comments[prKey]); got != tt.wantComments {
				t.Errorf("comments = %d, want %d", got, tt.wantComments)
			}
		})
	}
}

func TestPRService_Handle_UpdatesGuidanceInPlace(t *testing.T) {
	client := github.NewMockClient()
	service := newTestPRService(client, nil, config.AuthorConfig{})

	if err := service.Handle(testPR(5, 0)); err != nil {
		t.Fatalf("first Handle() error = %v", err)
	}
	if err := service.Handle(testPR(150, 20)); err != nil {
		t.Fatalf("second Handle() error = %v", err)
	}

	comments := client.Comments[prKey]
	if len(comments) != 1 {
		t.Fatalf("comments = %d, want 1", len(comments))
	}
	if !render.HasMarker(comments[0].Body, render.GuidanceMarker) || !strings.Contains(comments[0].Body, "`size/L`") {
		t.Errorf("guidance comment not updated:\n%s", comments[0].Body)
	}
	if !slices.Equal(client.Labels[prKey], []string{"size/L"}) {
		t.Errorf("labels = %v, want [size/L]", client.Labels[prKey])
	}
}

func TestPRService_Handle_CreatesLabelDefinition(t *testing.T) {
	client := github.NewMockClient()
	if err := newTestPRService(client, nil, config.AuthorConfig{}).Handle(testPR(1000, 0)); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	labels := client.RepoLabels["octo/app"]
	if len(labels) != 1 {
		t.Fatalf("repo labels = %v, want one", labels)
	}
	if labels[0].Name != "size/L" || labels[0].Color != labelColors[len(labelColors)-1] {
		t.Errorf("label = %+v, want size/L in the largest colour", labels[0])
	}
	if !strings.Contains(labels[0].Description, "101+") {
		t.Errorf("description %q should name the range", labels[0].Description)
	}
}

func TestPRService_Handle_HostErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*github.MockClient)
	}{
		{name: "team lookup fails", setup: func(m *github.MockClient) { m.TeamMembersError = github.NewAPIError("boom") }},
		{name: "label listing fails", setup: func(m *github.MockClient) { m.ListLabelsError = github.NewAPIError("boom") }},
		{name: "adding label fails", setup: func(m *github.MockClient) { m.AddLabelsError = github.NewAPIError("boom") }},
		{name: "comment fails", setup: func(m *github.MockClient) { m.CommentError = github.NewAPIError("boom") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := github.NewMockClient()
			tt.setup(client)
			err := newTestPRService(client, nil, config.AuthorConfig{Teams: []string{"core"}, Logins: []string{"alice"}}).
				Handle(testPR(5, 0))
			if !apperrors.IsFatal(err) {
				t.Errorf("Handle() error = %v, want fatal error", err)
			}
		})
	}
}

func TestColorFor(t *testing.T) {
	if got := colorFor(0, 1); got != labelColors[0] {
		t.Errorf("colorFor(0, 1) = %s", got)
	}
	for _, n := range []int{2, 4, 6, 9} {
		if got := colorFor(0, n); got != labelColors[0] {
			t.Errorf("colorFor(0, %d) = %s, want first colour", n, got)
		}
		if got := colorFor(n-1, n); got != labelColors[len(labelColors)-1] {
			t.Errorf("colorFor(%d, %d) = %s, want last colour", n-1, n, got)
		}
	}
}
