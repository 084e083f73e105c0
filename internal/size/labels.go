package size

import "slices"

// DefaultLabelPrefix is prepended to category names to form labels
const DefaultLabelPrefix = "size/"

// Scheme ties a threshold table to its label naming convention
type Scheme struct {
	Prefix     string
	Thresholds Thresholds
}

// LabelDelta is the set of label changes needed to reach a verdict
type LabelDelta struct {
	ToAdd    []string
	ToRemove []string
}

// Empty reports whether the delta changes nothing
func (d LabelDelta) Empty() bool {
	return len(d.ToAdd) == 0 && len(d.ToRemove) == 0
}

// LabelFor returns the label for a category name
func (s Scheme) LabelFor(category string) string {
	return s.Prefix + category
}

// Classify classifies a change and fills in the verdict's label
func (s Scheme) Classify(additions, deletions int) Verdict {
	v := s.Thresholds.Classify(additions, deletions)
	v.Label = s.LabelFor(v.Category)
	return v
}

// IsSizeLabel reports whether label follows the size naming convention
func (s Scheme) IsSizeLabel(label string) bool {
	for _, th := range s.Thresholds {
		if label == s.LabelFor(th.Name) {
			return true
		}
	}
	return false
}

// HasSizeLabel reports whether any of labels is a size label
func (s Scheme) HasSizeLabel(labels []string) bool {
	return slices.ContainsFunc(labels, s.IsSizeLabel)
}

// Reconcile computes the label changes that leave exactly the verdict's size
// label on the item. Non-size labels and ignored labels are never removed.
func (s Scheme) Reconcile(current []string, v Verdict, ignored []string) LabelDelta {
	var delta LabelDelta
	for _, label := range current {
		if label == v.Label || !s.IsSizeLabel(label) || slices.Contains(ignored, label) {
			continue
		}
		if !slices.Contains(delta.ToRemove, label) {
			delta.ToRemove = append(delta.ToRemove, label)
		}
	}
	if !slices.Contains(current, v.Label) {
		delta.ToAdd = append(delta.ToAdd, v.Label)
	}
	return delta
}

// Apply returns current with delta applied
func Apply(current []string, delta LabelDelta) []string {
	out := make([]string, 0, len(current)+len(delta.ToAdd))
	for _, label := range current {
		if !slices.Contains(delta.ToRemove, label) {
			out = append(out, label)
		}
	}
	for _, label := range delta.ToAdd {
		if !slices.Contains(out, label) {
			out = append(out, label)
		}
	}
	return out
}
