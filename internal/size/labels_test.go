package size

import (
	"slices"
	"testing"
)

func TestScheme_Reconcile(t *testing.T) {
	scheme := Scheme{Prefix: DefaultLabelPrefix, Thresholds: fourSizes}

	tests := []struct {
		name       string
		current    []string
		additions  int
		ignored    []string
		wantAdd    []string
		wantRemove []string
	}{
		{
			name:      "unlabelled PR gets its size",
			current:   []string{"bug"},
			additions: 7,
			wantAdd:   []string{"size/XS"},
		},
		{
			name:      "already correct",
			current:   []string{"size/XS", "bug"},
			additions: 7,
		},
		{
			name:       "stale size label replaced",
			current:    []string{"size/XS", "enhancement"},
			additions:  50,
			wantAdd:    []string{"size/M"},
			wantRemove: []string{"size/XS"},
		},
		{
			name:       "several stale labels removed",
			current:    []string{"size/XS", "size/S", "size/L"},
			additions:  200,
			wantRemove: []string{"size/XS", "size/S"},
		},
		{
			name:      "ignored label is kept",
			current:   []string{"size/L"},
			additions: 3,
			ignored:   []string{"size/L"},
			wantAdd:   []string{"size/XS"},
		},
		{
			name:      "lookalike labels outside the table are untouched",
			current:   []string{"size/huge", "XS"},
			additions: 3,
			wantAdd:   []string{"size/XS"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := scheme.Classify(tt.additions, 0)
			got := scheme.Reconcile(tt.current, v, tt.ignored)

			if !slices.Equal(got.ToAdd, tt.wantAdd) {
				t.Errorf("ToAdd = %v, want %v", got.ToAdd, tt.wantAdd)
			}
			if !slices.Equal(got.ToRemove, tt.wantRemove) {
				t.Errorf("ToRemove = %v, want %v", got.ToRemove, tt.wantRemove)
			}
			for _, l := range got.ToAdd {
				if slices.Contains(got.ToRemove, l) {
					t.Errorf("label %q both added and removed", l)
				}
			}
		})
	}
}

func TestScheme_ReconcileIsIdempotent(t *testing.T) {
	scheme := Scheme{Prefix: DefaultLabelPrefix, Thresholds: DefaultThresholds}
	starts := [][]string{
		nil,
		{"bug"},
		{"size/XS", "size/XXL", "docs"},
		{"size/M"},
		{"size/S", "wip"},
	}

	for _, changed := range []int{0, 9, 30, 31, 499, 1200} {
		v := scheme.Classify(changed, 0)
		for _, current := range starts {
			first := scheme.Reconcile(current, v, []string{"wip"})
			after := Apply(current, first)

			if second := scheme.Reconcile(after, v, []string{"wip"}); !second.Empty() {
				t.Errorf("changed=%d current=%v: second reconcile = %+v, want empty", changed, current, second)
			}

			var sizeLabels int
			for _, l := range after {
				if scheme.IsSizeLabel(l) {
					sizeLabels++
				}
			}
			if sizeLabels != 1 {
				t.Errorf("changed=%d current=%v: after = %v has %d size labels, want 1", changed, current, after, sizeLabels)
			}
		}
	}
}

func TestScheme_EmptyPrefix(t *testing.T) {
	scheme := Scheme{Prefix: "", Thresholds: fourSizes}

	if !scheme.HasSizeLabel([]string{"bug", "L"}) {
		t.Errorf("HasSizeLabel should recognise bare category label")
	}
	if scheme.HasSizeLabel([]string{"bug", "size/L"}) {
		t.Errorf("HasSizeLabel should not recognise prefixed label when prefix is empty")
	}
	if got := scheme.Classify(1, 1).Label; got != "XS" {
		t.Errorf("Label = %q, want XS", got)
	}
}
