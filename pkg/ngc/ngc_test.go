package ngc

import (
	"math"
	"reflect"
	"testing"

	"github.com/cognicore/ngc/pkg/ngc/filter"
	"github.com/cognicore/ngc/pkg/ngc/query"
	"github.com/cognicore/ngc/pkg/ngc/rank"
)

func f64(v float64) *float64 { return &v }

func mustParse(t *testing.T, args ...string) query.Spec {
	t.Helper()
	spec, err := query.Parse(args)
	if err != nil {
		t.Fatalf("Parse(%v): %v", args, err)
	}
	return spec
}

func entryMap(res Result) map[string]int {
	out := make(map[string]int, len(res.Entries))
	for _, e := range res.Entries {
		out[e.Text] = e.Count
	}
	return out
}

func TestAnalyzeBigramScenario(t *testing.T) {
	report := Analyze("the cat sat\nthe cat ran\n", mustParse(t, "2"))

	if len(report.Sizes) != 1 {
		t.Fatalf("result sets = %d, want 1", len(report.Sizes))
	}
	got := entryMap(report.Sizes[0])
	want := map[string]int{"the cat": 2, "cat sat": 1, "cat ran": 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("entries = %v, want %v", got, want)
	}

	if report.Raw[0].Total != 4 {
		t.Errorf("size-2 positions = %d, want 4", report.Raw[0].Total)
	}

	for _, e := range report.Sizes[0].Entries {
		if e.Text == "the cat" && math.Abs(e.PPM-500000) > 1e-9 {
			t.Errorf("\"the cat\" ppm = %f, want 500000", e.PPM)
		}
	}

	if report.Text.Words != 6 || report.Text.Lines != 3 {
		t.Errorf("text stats = %+v, want 6 words over 3 line segments", report.Text)
	}
}

func TestAnalyzeCaseInsensitive(t *testing.T) {
	report := Analyze("The Cat\nthe cat\nTHE CAT\n", mustParse(t, "2"))

	entries := report.Sizes[0].Entries
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1 unified entry", len(entries))
	}
	if entries[0].Count != 3 {
		t.Errorf("count = %d, want 3", entries[0].Count)
	}
	if entries[0].Text != "The Cat" {
		t.Errorf("display text = %q, want first-seen casing", entries[0].Text)
	}
}

func TestAnalyzeTopBoundaryInclusion(t *testing.T) {
	// Counts: aa=3, bb=3, cc=3, dd=2, ee=1, ff=1. top:2 must keep all
	// three entries tied at 3.
	input := "aa aa aa bb bb bb cc cc cc dd dd ee ff\n"
	report := Analyze(input, mustParse(t, "1", "top:2"))

	entries := report.Sizes[0].Entries
	if len(entries) != 3 {
		t.Fatalf("result size = %d, want 3", len(entries))
	}
	for _, e := range entries {
		if e.Count != 3 {
			t.Errorf("entry %q count = %d, want 3", e.Text, e.Count)
		}
	}
}

func TestAnalyzeFrequencyFilter(t *testing.T) {
	report := Analyze("aa aa aa bb bb cc\n", mustParse(t, "1", "freq:2.."))

	got := entryMap(report.Sizes[0])
	want := map[string]int{"aa": 3, "bb": 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("entries = %v, want %v", got, want)
	}
}

func TestAnalyzePermissiveFilterIsNeutral(t *testing.T) {
	input := "alpha beta beta gamma gamma gamma\n"

	plain := Analyze(input, mustParse(t, "1"))

	spec := mustParse(t, "1")
	spec.Filters.Frequency = append(spec.Filters.Frequency, filter.Range{})
	filtered := Analyze(input, spec)

	if !reflect.DeepEqual(entryMap(plain.Sizes[0]), entryMap(filtered.Sizes[0])) {
		t.Error("unbounded filter changed the result set")
	}
}

func TestAnalyzeOutsideFilterPartitions(t *testing.T) {
	input := "a a a b b c d d d d\n"

	inside := mustParse(t, "1")
	inside.Filters.Frequency = []filter.Range{{Min: f64(2), Max: f64(3)}}
	outside := mustParse(t, "1")
	outside.Filters.Frequency = []filter.Range{{Min: f64(2), Max: f64(3), Outside: true}}

	in := entryMap(Analyze(input, inside).Sizes[0])
	out := entryMap(Analyze(input, outside).Sizes[0])

	all := entryMap(Analyze(input, mustParse(t, "1")).Sizes[0])
	if len(in)+len(out) != len(all) {
		t.Errorf("partition sizes %d+%d != population %d", len(in), len(out), len(all))
	}
	for text := range in {
		if _, dup := out[text]; dup {
			t.Errorf("%q appears in both partitions", text)
		}
	}
}

func TestAnalyzeTextFilter(t *testing.T) {
	report := Analyze("foobar foo baz\n", mustParse(t, "1", "has:foo"))

	got := entryMap(report.Sizes[0])
	if len(got) != 2 {
		t.Errorf("entries = %v, want foobar and foo", got)
	}
}

func TestAnalyzePercentileFilter(t *testing.T) {
	// Unigrams form three tie-groups: z=1, y=3, x=6.
	in := "x x x x x x y y y z\n"
	report := Analyze(in, mustParse(t, "1", "pct:90.."))

	// Percentiles: z=0, y=50, x=100. min=90 snaps to boundary 100.
	got := entryMap(report.Sizes[0])
	want := map[string]int{"x": 6}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("entries = %v, want %v", got, want)
	}
}

func TestAnalyzeMerge(t *testing.T) {
	// "foo" occurs 3 times as a unigram; "foo bar" twice as a bigram.
	input := "foo bar foo bar foo\n"
	report := Analyze(input, mustParse(t, "1", "2", "merge"))

	if report.Merged == nil {
		t.Fatal("merged result missing")
	}
	if report.Sizes != nil {
		t.Error("per-size results should be absent in merge-only mode")
	}

	got := entryMap(*report.Merged)
	if got["foo"] != 3 {
		t.Errorf("merged foo count = %d, want 3", got["foo"])
	}
	if got["foo bar"] != 2 {
		t.Errorf("merged \"foo bar\" count = %d, want separate entry with 2", got["foo bar"])
	}
	if got["bar"] != 2 {
		t.Errorf("merged bar count = %d, want 2", got["bar"])
	}
}

func TestAnalyzeMergeKeepsFirstSeenStats(t *testing.T) {
	// The same text in two sizes keeps the smaller size's ppm/z values
	// untouched even though counts sum. This pins the legacy behavior.
	input := "solo\nsolo\n"
	report := Analyze(input, mustParse(t, "1", "merge"))

	if report.Merged == nil || len(report.Merged.Entries) != 1 {
		t.Fatal("expected a single merged entry")
	}
	e := report.Merged.Entries[0]
	if e.Count != 2 {
		t.Errorf("merged count = %d, want 2", e.Count)
	}
	// Size-1 population: one entry, total 2 positions -> ppm 1e6.
	if math.Abs(e.PPM-1e6) > 1e-9 {
		t.Errorf("merged ppm = %f, want first-seen 1000000 (not recomputed)", e.PPM)
	}

	// The merged raw distribution, by contrast, uses the grand total.
	if report.MergedRaw == nil || len(report.MergedRaw.PPMs) != 1 {
		t.Fatal("merged raw stats missing")
	}
	if math.Abs(report.MergedRaw.PPMs[0]-1e6) > 1e-9 {
		t.Errorf("merged raw ppm = %f, want 1000000", report.MergedRaw.PPMs[0])
	}
}

func TestAnalyzeBothMode(t *testing.T) {
	report := Analyze("a b a\n", mustParse(t, "1", "2", "both"))

	if len(report.Sizes) != 2 {
		t.Errorf("per-size sets = %d, want 2", len(report.Sizes))
	}
	if report.Merged == nil {
		t.Error("merged set missing in both mode")
	}
}

func TestAnalyzeSortDirections(t *testing.T) {
	input := "a a a b b c\n"

	desc := Analyze(input, mustParse(t, "1", "desc"))
	if got := desc.Sizes[0].Entries[0].Text; got != "a" {
		t.Errorf("desc first = %q, want a", got)
	}

	asc := Analyze(input, mustParse(t, "1", "asc"))
	if got := asc.Sizes[0].Entries[0].Text; got != "c" {
		t.Errorf("asc first = %q, want c", got)
	}
}

func TestAnalyzeImplicitPPMKey(t *testing.T) {
	// Merged populations keep each size's own ppm, so ppm order can differ
	// from count order: "x y" is the only bigram (ppm 1e6) while x has the
	// highest count but ppm 2/6*1e6.
	input := "x y\nx\nz\nw\nv\n"

	// Rich view, no explicit sort, ppm > 0: the implicit ppm key wins.
	implicit := Analyze(input, mustParse(t, "1", "2", "merge", "view:full"))
	if got := implicit.Merged.Entries[0].Text; got != "x y" {
		t.Errorf("implicit ppm key: first entry = %q, want \"x y\"", got)
	}

	// An explicit count sort suppresses the implicit ppm key.
	explicit := Analyze(input, mustParse(t, "1", "2", "merge", "view:full", "sort:count"))
	if got := explicit.Merged.Entries[0].Text; got != "x" {
		t.Errorf("explicit count key: first entry = %q, want x", got)
	}

	// A non-rich view never picks ppm implicitly.
	compact := Analyze(input, mustParse(t, "1", "2", "merge"))
	if got := compact.Merged.Entries[0].Text; got != "x" {
		t.Errorf("compact view: first entry = %q, want x", got)
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	report := Analyze("", mustParse(t, "1", "2", "both"))

	for _, res := range report.Sizes {
		if len(res.Entries) != 0 {
			t.Errorf("size %d: entries = %d, want 0", res.Size, len(res.Entries))
		}
	}
	if report.Merged != nil && len(report.Merged.Entries) != 0 {
		t.Error("merged entries should be empty")
	}
	for _, raw := range report.Raw {
		if raw.Unique != 0 || raw.Total != 0 {
			t.Errorf("raw stats = %+v, want zeroes", raw)
		}
	}
}

func TestAnalyzeSizeLargerThanInput(t *testing.T) {
	report := Analyze("one two\n", mustParse(t, "5"))

	if len(report.Sizes[0].Entries) != 0 {
		t.Error("n larger than any line should yield no entries")
	}
	if report.Raw[0].Total != 0 {
		t.Errorf("total = %d, want 0", report.Raw[0].Total)
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	input := "the quick brown fox\njumps over the lazy dog\nthe quick fox\n"
	spec := mustParse(t, "1", "2", "both", "top:4", "view:full")

	a := Analyze(input, spec)
	b := Analyze(input, spec)

	if !reflect.DeepEqual(a, b) {
		t.Error("identical input and query must produce identical reports")
	}
}

func TestAnalyzeDuplicateSizes(t *testing.T) {
	report := Analyze("a b c\n", mustParse(t, "2", "2", "1"))

	if len(report.Sizes) != 2 {
		t.Errorf("result sets = %d, want 2 (duplicates collapse)", len(report.Sizes))
	}
	if report.Sizes[0].Size != 1 || report.Sizes[1].Size != 2 {
		t.Errorf("sizes ordered %d,%d, want 1,2", report.Sizes[0].Size, report.Sizes[1].Size)
	}
}

func TestAnalyzeRawArraysSorted(t *testing.T) {
	report := Analyze("a a a b c c\n", mustParse(t, "1"))

	raw := report.Raw[0]
	if raw.Unique != 3 {
		t.Errorf("unique = %d, want 3", raw.Unique)
	}
	for i := 1; i < len(raw.Counts); i++ {
		if raw.Counts[i-1] > raw.Counts[i] {
			t.Errorf("counts not ascending: %v", raw.Counts)
		}
	}
	for i := 1; i < len(raw.PPMs); i++ {
		if raw.PPMs[i-1] > raw.PPMs[i] {
			t.Errorf("ppms not ascending: %v", raw.PPMs)
		}
	}
}

func TestAnalyzeZeroZForUniformCounts(t *testing.T) {
	report := Analyze("a b c\n", mustParse(t, "1"))

	for _, e := range report.Sizes[0].Entries {
		if e.Z != 0 {
			t.Errorf("%q: z = %f, want 0 for uniform counts", e.Text, e.Z)
		}
	}
}

func TestAnalyzeExplicitSortKeyWins(t *testing.T) {
	spec := mustParse(t, "1", "sort:ppm")
	if spec.SortKey != rank.ByPPM {
		t.Fatal("parse should set ppm key")
	}
	report := Analyze("a a b\n", spec)
	if report.Sizes[0].Entries[0].Text != "a" {
		t.Errorf("first entry = %q, want a", report.Sizes[0].Entries[0].Text)
	}
}
