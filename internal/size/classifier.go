package size

import (
	"fmt"
	"math"
)

// Unbounded marks the open-ended last threshold.
const Unbounded = math.MaxInt

// Threshold is a size category and the largest changed-line count it accepts
type Threshold struct {
	Name string
	Max  int
}

// Thresholds is an ascending category table whose last entry is unbounded
type Thresholds []Threshold

// DefaultThresholds is used when no table is configured
var DefaultThresholds = Thresholds{
	{Name: "XS", Max: 10},
	{Name: "S", Max: 30},
	{Name: "M", Max: 100},
	{Name: "L", Max: 500},
	{Name: "XL", Max: 1000},
	{Name: "XXL", Max: Unbounded},
}

// Verdict is the classification of a single change
type Verdict struct {
	Category     string
	Label        string
	ChangedLines int
	Message      string
	Index        int
	Largest      bool
}

// Validate checks the table is non-empty, uniquely named and strictly increasing,
// with only the last entry unbounded.
func (t Thresholds) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("at least one size category is required")
	}

	seen := make(map[string]struct{}, len(t))
	prev := -1
	for i, th := range t {
		if th.Name == "" {
			return fmt.Errorf("size category %d has no name", i+1)
		}
		if _, dup := seen[th.Name]; dup {
			return fmt.Errorf("duplicate size category %q", th.Name)
		}
		seen[th.Name] = struct{}{}

		last := i == len(t)-1
		if th.Max == Unbounded {
			if !last {
				return fmt.Errorf("size category %q is unbounded but not last", th.Name)
			}
			continue
		}
		if last {
			return fmt.Errorf("last size category %q must be unbounded", th.Name)
		}
		if th.Max < 0 {
			return fmt.Errorf("size category %q has negative limit %d", th.Name, th.Max)
		}
		if th.Max <= prev {
			return fmt.Errorf("size category %q limit %d must exceed %d", th.Name, th.Max, prev)
		}
		prev = th.Max
	}
	return nil
}

// Classify maps additions+deletions to exactly one category. Any non-negative
// count matches; counts past every bounded limit fall into the last entry.
func (t Thresholds) Classify(additions, deletions int) Verdict {
	changed := max(additions, 0) + max(deletions, 0)

	idx := len(t) - 1
	for i, th := range t {
		if th.Max >= changed {
			idx = i
			break
		}
	}

	v := Verdict{
		Category:     t[idx].Name,
		ChangedLines: changed,
		Index:        idx,
		Largest:      idx == len(t)-1,
	}
	v.Message = message(v)
	return v
}

// Range describes the changed-line range of category i, e.g. "31-100" or "1001+".
func (t Thresholds) Range(i int) string {
	lo := 0
	if i > 0 {
		lo = t[i-1].Max + 1
	}
	if t[i].Max == Unbounded {
		return fmt.Sprintf("%d+", lo)
	}
	return fmt.Sprintf("%d-%d", lo, t[i].Max)
}

func message(v Verdict) string {
	msg := fmt.Sprintf("This pull request is **%s** (%d changed lines).", v.Category, v.ChangedLines)
	if v.Largest {
		msg += " This is the largest size category. Please consider splitting it into smaller pull requests," +
			" or explain why it needs to be this size by commenting `!reason <why>`."
	}
	return msg
}
