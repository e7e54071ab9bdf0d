package gt_test

import (
	"testing"

	"github.com/bjaus/gt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColsMergeRange(t *testing.T) {
	t.Parallel()
	d := mustData(t, []string{"low", "high"},
		[]any{1, 3},
		[]any{2, nil},
		[]any{nil, 5},
	)
	tests := map[string]struct {
		opts []gt.MergeOption
		want string
	}{
		"default": {want: "low\n1–3\n2\nNA\n"},
		"custom":  {opts: []gt.MergeOption{gt.MergeSep(" to ")}, want: "low\n1 to 3\n2\nNA\n"},
		"visible": {opts: []gt.MergeOption{gt.HideColumns(false)}, want: "low,high\n1–3,3\n2,NA\nNA,5\n"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			tbl := mustTable(t, d)
			require.NoError(t, tbl.ColsMergeRange("low", "high", tt.opts...))
			assert.Equal(t, tt.want, render(t, tbl, gt.CSV))
		})
	}
}

func TestColsMergeUncert(t *testing.T) {
	t.Parallel()
	d := mustData(t, []string{"value", "sd"},
		[]any{5.1, 0.2},
		[]any{4.9, nil},
	)
	tbl := mustTable(t, d)
	require.NoError(t, tbl.ColsMergeUncert("value", "sd"))
	assert.Equal(t, "value\n5.1 ± 0.2\n4.9\n", render(t, tbl, gt.CSV))

	tbl = mustTable(t, d)
	require.NoError(t, tbl.ColsMergeUncert("value", "sd", gt.MergeSep(" (+/-) ")))
	assert.Equal(t, "value\n5.1 (±) 0.2\n4.9\n", render(t, tbl, gt.CSV))
}

func TestColsMergeNPct(t *testing.T) {
	t.Parallel()
	d := mustData(t, []string{"n", "pct"},
		[]any{10, 0.5},
		[]any{0, 0.0},
		[]any{3, nil},
	)
	tbl := mustTable(t, d)
	require.NoError(t, tbl.FmtPercent(gt.Cols("pct"), 1))
	require.NoError(t, tbl.ColsMergeNPct("n", "pct"))
	assert.Equal(t, "n\n10 (50.0%)\n0\n3\n", render(t, tbl, gt.CSV))
}

func TestColsMergePattern(t *testing.T) {
	t.Parallel()
	d := mustData(t, []string{"name", "city", "zip"},
		[]any{"Ada", "London", "N1"},
		[]any{"Bob", "Paris", nil},
		[]any{"Cy", nil, nil},
	)
	tbl := mustTable(t, d)
	require.NoError(t, tbl.ColsMerge(gt.Cols("name", "city", "zip"), "{1} ({2}<<, {3}>>)"))
	assert.Equal(t, "name\n\"Ada (London, N1)\"\nBob (Paris)\nCy (NA)\n", render(t, tbl, gt.CSV))

	tbl = mustTable(t, d)
	require.NoError(t, tbl.ColsMerge(gt.Cols("city", "name"), "{2}<< of {1}>>", gt.HideColumns(false)))
	assert.Equal(t, "name,city,zip\nAda,Ada of London,N1\nBob,Bob of Paris,NA\nCy,Cy,NA\n", render(t, tbl, gt.CSV))
}

func TestColsMergeOrder(t *testing.T) {
	t.Parallel()
	d := mustData(t, []string{"a", "b", "c"}, []any{1, 2, 3})
	tbl := mustTable(t, d)
	require.NoError(t, tbl.ColsMergeRange("b", "c"))
	require.NoError(t, tbl.ColsMerge(gt.Cols("a", "b"), "{1}: {2}"))
	assert.Equal(t, "a\n1: 2–3\n", render(t, tbl, gt.CSV))
}

func TestColsMergeErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		merge func(*gt.Table) error
		err   error
	}{
		"range unknown":     {merge: func(t *gt.Table) error { return t.ColsMergeRange("a", "zzz") }, err: gt.ErrUnknownColumn},
		"range with itself": {merge: func(t *gt.Table) error { return t.ColsMergeRange("a", "a") }, err: gt.ErrInvalidArgument},
		"uncert unknown":    {merge: func(t *gt.Table) error { return t.ColsMergeUncert("zzz", "a") }, err: gt.ErrUnknownColumn},
		"npct unknown":      {merge: func(t *gt.Table) error { return t.ColsMergeNPct("a", "zzz") }, err: gt.ErrUnknownColumn},
		"no placeholders":   {merge: func(t *gt.Table) error { return t.ColsMerge(gt.Cols("a", "b"), "plain") }, err: gt.ErrInvalidPattern},
		"placeholder range": {merge: func(t *gt.Table) error { return t.ColsMerge(gt.Cols("a", "b"), "{1} {3}") }, err: gt.ErrInvalidPattern},
		"placeholder zero":  {merge: func(t *gt.Table) error { return t.ColsMerge(gt.Cols("a", "b"), "{0}") }, err: gt.ErrInvalidPattern},
		"unmatched open":    {merge: func(t *gt.Table) error { return t.ColsMerge(gt.Cols("a", "b"), "{1}<<{2}") }, err: gt.ErrInvalidPattern},
		"unmatched close":   {merge: func(t *gt.Table) error { return t.ColsMerge(gt.Cols("a", "b"), "{1}>>{2}") }, err: gt.ErrInvalidPattern},
		"nested sections":   {merge: func(t *gt.Table) error { return t.ColsMerge(gt.Cols("a", "b"), "<<{1}<<{2}>>>>") }, err: gt.ErrInvalidPattern},
		"empty selection":   {merge: func(t *gt.Table) error { return t.ColsMerge(gt.StartsWith("zzz"), "{1}") }, err: gt.ErrInvalidArgument},
		"selector unknown":  {merge: func(t *gt.Table) error { return t.ColsMerge(gt.Cols("zzz"), "{1}") }, err: gt.ErrUnknownColumn},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			tbl := mustTable(t, mustData(t, []string{"a", "b"}, []any{1, 2}))
			require.ErrorIs(t, tt.merge(tbl), tt.err)
			assert.False(t, tbl.Columns()[1].Hidden)
		})
	}
}
