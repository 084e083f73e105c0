package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/ryo246912/pr-size-helper/internal/apperrors"
	"github.com/ryo246912/pr-size-helper/internal/size"
)

// DefaultDigestIssueTitle names the digest issue reasons are mirrored to
const DefaultDigestIssueTitle = "PR size reasons"

// Config holds the run configuration
type Config struct {
	GitHub  GitHubConfig
	Authors AuthorConfig
	Labels  LabelConfig
	Digest  DigestConfig
	Log     LogConfig
	DryRun  bool
}

// GitHubConfig holds host access settings
type GitHubConfig struct {
	Token     string
	Host      string
	EventPath string
}

// AuthorConfig holds the PR author allow-list sources
type AuthorConfig struct {
	Teams  []string
	Logins []string
}

// LabelConfig holds the size label scheme
type LabelConfig struct {
	Scheme  size.Scheme
	Ignored []string
}

// DigestConfig holds the optional digest repository
type DigestConfig struct {
	RepoURL     string
	AccessToken string
	Host        string
	Owner       string
	Repo        string
	IssueTitle  string
}

// Enabled reports whether reasons are mirrored to the digest repository
func (d DigestConfig) Enabled() bool {
	return d.RepoURL != "" && d.AccessToken != ""
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string // "json" or "text"
}

// Load loads configuration from the process environment
func Load() (*Config, error) {
	// Optional; real environment variables take precedence.
	_ = godotenv.Load(".env")
	return LoadFrom(os.LookupEnv)
}

// LoadFrom loads configuration using lookupEnv as the environment
func LoadFrom(lookupEnv func(string) (string, bool)) (*Config, error) {
	getenv := func(key string) string {
		v, _ := lookupEnv(key)
		return v
	}
	env := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	thresholds := size.DefaultThresholds
	if raw := env("SIZE_THRESHOLDS", ""); raw != "" {
		parsed, err := ParseThresholds(raw)
		if err != nil {
			return nil, err
		}
		thresholds = parsed
	}

	prefix := size.DefaultLabelPrefix
	// An explicitly empty prefix means bare category names are the labels.
	if v, ok := lookupEnv("SIZE_LABEL_PREFIX"); ok {
		prefix = v
	}

	host, err := hostFromServerURL(env("GITHUB_SERVER_URL", "https://github.com"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		GitHub: GitHubConfig{
			Token:     env("GITHUB_TOKEN", ""),
			Host:      host,
			EventPath: env("GITHUB_EVENT_PATH", ""),
		},
		Authors: AuthorConfig{
			Teams:  strings.Fields(getenv("TEAMS")),
			Logins: strings.Fields(getenv("AUTHOR_LOGINS")),
		},
		Labels: LabelConfig{
			Scheme:  size.Scheme{Prefix: prefix, Thresholds: thresholds},
			Ignored: strings.Fields(getenv("IGNORED")),
		},
		Digest: DigestConfig{
			RepoURL:     env("DIGEST_ISSUE_REPO", ""),
			AccessToken: env("ACCESS_TOKEN", ""),
			IssueTitle:  env("DIGEST_ISSUE_TITLE", DefaultDigestIssueTitle),
		},
		Log: LogConfig{
			Level:  env("LOG_LEVEL", "info"),
			Format: env("LOG_FORMAT", "text"),
		},
	}

	if cfg.Digest.Enabled() {
		host, owner, repo, err := ParseDigestRepo(cfg.Digest.RepoURL)
		if err != nil {
			return nil, err
		}
		cfg.Digest.Host = host
		cfg.Digest.Owner = owner
		cfg.Digest.Repo = repo
	}

	return cfg, nil
}

// Validate checks the settings every run needs. It is separate from loading
// so flags can fill in values first.
func (c *Config) Validate() error {
	if c.GitHub.Token == "" {
		return apperrors.Configuration("Environment variable GITHUB_TOKEN not set!")
	}
	if c.GitHub.EventPath == "" {
		return apperrors.Configuration("Environment variable GITHUB_EVENT_PATH not set!")
	}
	if err := c.Labels.Scheme.Thresholds.Validate(); err != nil {
		return apperrors.Wrap(err, apperrors.KindConfiguration, "invalid SIZE_THRESHOLDS")
	}
	return nil
}

// ParseDigestRepo extracts host, owner and repository from a URL of the form
// https://host/owner/repo.
func ParseDigestRepo(raw string) (string, string, string, error) {
	invalid := apperrors.Newf(apperrors.KindDigestConfig,
		"Invalid DIGEST_ISSUE_REPO url: %s Format should be as follows: https://github.com/owner/repo", raw)

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", "", "", invalid
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", "", invalid
	}
	return u.Host, parts[0], strings.TrimSuffix(parts[1], ".git"), nil
}

// ParseThresholds parses a table such as "XS:10 S:30 M:100 L". Every entry but
// the last needs a limit; the last is unbounded.
func ParseThresholds(raw string) (size.Thresholds, error) {
	var t size.Thresholds
	entries := strings.Fields(raw)
	for i, entry := range entries {
		name, limit, hasLimit := strings.Cut(entry, ":")
		last := i == len(entries)-1

		switch {
		case last && hasLimit:
			return nil, apperrors.Configuration("invalid SIZE_THRESHOLDS: last category %q must not have a limit", name)
		case last:
			t = append(t, size.Threshold{Name: name, Max: size.Unbounded})
		case !hasLimit:
			return nil, apperrors.Configuration("invalid SIZE_THRESHOLDS: category %q needs a limit", name)
		default:
			n, err := strconv.Atoi(limit)
			if err != nil {
				return nil, apperrors.Wrapf(err, apperrors.KindConfiguration, "invalid SIZE_THRESHOLDS: limit for %q", name)
			}
			t = append(t, size.Threshold{Name: name, Max: n})
		}
	}
	if err := t.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindConfiguration, "invalid SIZE_THRESHOLDS")
	}
	return t, nil
}

func hostFromServerURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", apperrors.Configuration("invalid GITHUB_SERVER_URL: %s", raw)
	}
	return u.Host, nil
}
