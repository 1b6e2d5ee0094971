package report_test

import (
	"testing"

	"github.com/crowdwisdom/marketbrief/internal/report"
	"github.com/stretchr/testify/require"
)

func TestCleanMarkdown(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"**Bold** point *sub*", "Bold point sub"},
		{"* leading bullet", "leading bullet"},
		{"** double  bullet", "double bullet"},
		{"plain text", "plain text"},
		{"  spaced   out\ttext  ", "spaced out text"},
		{"**Apple Inc.**: record sales", "Apple Inc.: record sales"},
		{"", ""},
		{"***", ""},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, report.CleanMarkdown(tc.in), "input: %q", tc.in)
	}
}

func TestCleanMarkdownIdempotent(t *testing.T) {
	inputs := []string{
		"**Bold** point *sub*",
		"* bullet with **emphasis**",
		"already clean",
	}
	for _, in := range inputs {
		once := report.CleanMarkdown(in)
		require.Equal(t, once, report.CleanMarkdown(once))
	}
}

func TestBulletPoints(t *testing.T) {
	body := "**Executive Summary**\n\n* Markets rose today.\n* **Fed**: held rates.\n\n"
	points := report.BulletPoints(body)

	require.Equal(t, []string{
		"Executive Summary",
		"Markets rose today.",
		"Fed: held rates.",
	}, points)
}
