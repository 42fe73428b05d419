package summary

import (
	"io"
	"log"
	"testing"

	"github.com/naka-gawa/ncu/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingOutput keeps every call in order.
type recordingOutput struct {
	calls []string
	logs  []string
	rows  [][]domain.ReportRow
}

func (r *recordingOutput) Log(line string) {
	r.calls = append(r.calls, "log")
	r.logs = append(r.logs, line)
}

func (r *recordingOutput) Table(rows []domain.ReportRow) {
	r.calls = append(r.calls, "table")
	r.rows = append(r.rows, rows)
}

var (
	prAuthor = domain.Committer{Name: "Their Github Account email", Email: "pr_author@example.com"}
	webFlow  = domain.Committer{Name: "GitHub", Email: "noreply@github.com"}
	baz      = domain.Committer{Name: "Baz User", Email: "baz@example.com"}
)

func commit(message string, committers ...domain.Committer) domain.Commit {
	c := domain.Commit{Message: message, Committers: committers}
	if len(committers) > 0 {
		c.Author = committers[0]
	}
	return c
}

func testPR(title string, labels ...string) domain.PullRequest {
	return domain.PullRequest{
		Number: 16348,
		Title:  title,
		Author: domain.Author{
			Login: "pr_author",
			Name:  "Their Github Account email",
			Email: "pr_author@example.com",
		},
		HeadOwner:  "pr_author",
		HeadBranch: "awesome-changes",
		BaseOwner:  "nodejs",
		BaseBranch: "master",
		Labels:     labels,
	}
}

var oddCommits = []domain.Commit{
	commit("doc: some changes", prAuthor),
	commit("doc: some changes 2\n\nlonger body", prAuthor),
	commit("test: some changes", prAuthor, webFlow),
	commit("test: some changes 2", prAuthor, webFlow),
	commit("[squash] fix typo", baz),
	commit("fixup! fix something", baz, prAuthor),
}

func newTestBuilder(data Data, out Output) *Builder {
	return NewBuilder(data, out, log.New(io.Discard, "", 0))
}

func TestBuilder_Display(t *testing.T) {
	testCases := []struct {
		name         string
		data         Data
		expectedLogs []string
		expectedRows []domain.ReportRow
	}{
		{
			name: "first timer with odd commits",
			data: Data{
				PR:          testPR("test: awesome changes", "test", "doc"),
				Commits:     oddCommits,
				AuthorIsNew: func() bool { return true },
			},
			expectedLogs: []string{
				" - doc: some changes",
				" - doc: some changes 2",
				" - test: some changes",
				" - test: some changes 2",
				" - [squash] fix typo",
				" - fixup! fix something",
				" - Their Github Account email <pr_author@example.com>",
				" - GitHub <noreply@github.com>",
				" - Baz User <baz@example.com>",
			},
			expectedRows: []domain.ReportRow{
				{Label: "Title", Value: "test: awesome changes (#16348)"},
				{Label: "Author", Value: "Their Github Account email <pr_author@example.com> (@pr_author, first-time contributor)"},
				{Label: "Branch", Value: "pr_author:awesome-changes -> nodejs:master"},
				{Label: "Labels", Value: "test, doc"},
				{Label: "Commits", Value: "6"},
				{Label: "Committers", Value: "3"},
			},
		},
		{
			name: "old timer with simple commits",
			data: Data{
				PR:          testPR("lib: awesome changes", "semver-major"),
				Commits:     []domain.Commit{commit("doc: some changes", prAuthor)},
				AuthorIsNew: func() bool { return false },
			},
			expectedLogs: []string{
				" - doc: some changes",
				" - Their Github Account email <pr_author@example.com>",
			},
			expectedRows: []domain.ReportRow{
				{Label: "Title", Value: "lib: awesome changes (#16348)"},
				{Label: "Author", Value: "Their Github Account email <pr_author@example.com> (@pr_author)"},
				{Label: "Branch", Value: "pr_author:awesome-changes -> nodejs:master"},
				{Label: "Labels", Value: "semver-major"},
				{Label: "Commits", Value: "1"},
				{Label: "Committers", Value: "1"},
			},
		},
		{
			name: "no commits and no labels",
			data: Data{
				PR:          testPR("empty"),
				AuthorIsNew: func() bool { return false },
			},
			expectedLogs: nil,
			expectedRows: []domain.ReportRow{
				{Label: "Title", Value: "empty (#16348)"},
				{Label: "Author", Value: "Their Github Account email <pr_author@example.com> (@pr_author)"},
				{Label: "Branch", Value: "pr_author:awesome-changes -> nodejs:master"},
				{Label: "Labels", Value: ""},
				{Label: "Commits", Value: "0"},
				{Label: "Committers", Value: "0"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := &recordingOutput{}
			newTestBuilder(tc.data, out).Display()

			assert.Equal(t, tc.expectedLogs, out.logs)
			require.Len(t, out.rows, 1)
			assert.Equal(t, tc.expectedRows, out.rows[0])
			assert.Equal(t, "table", out.calls[len(out.calls)-1])
		})
	}
}

func TestBuilder_DeduplicatesByExactEmail(t *testing.T) {
	commits := []domain.Commit{
		commit("a", domain.Committer{Name: "Jane Doe", Email: "jane@example.com"}),
		commit("b", domain.Committer{Name: "jane doe ", Email: "jane@example.com"}),
		commit("c", domain.Committer{Name: "Jane Doe", Email: "Jane@example.com"}),
	}
	out := &recordingOutput{}
	report := newTestBuilder(Data{PR: testPR("t"), Commits: commits}, out).Display()

	assert.Equal(t, []string{
		" - a",
		" - b",
		" - c",
		" - Jane Doe <jane@example.com>",
		" - Jane Doe <Jane@example.com>",
	}, out.logs)
	assert.Equal(t, domain.ReportRow{Label: "Committers", Value: "2"}, report.Rows[5])
}

func TestBuilder_CommitWithoutCommitters(t *testing.T) {
	out := &recordingOutput{}
	report := newTestBuilder(Data{
		PR:      testPR("t"),
		Commits: []domain.Commit{{Message: "orphan"}},
	}, out).Display()

	assert.Equal(t, []string{" - orphan"}, out.logs)
	assert.Equal(t, "1", report.Rows[4].Value)
	assert.Equal(t, "0", report.Rows[5].Value)
}

func TestBuilder_NilAuthorPredicate(t *testing.T) {
	report := newTestBuilder(Data{PR: testPR("t")}, &recordingOutput{}).Build()
	assert.Equal(t, "Their Github Account email <pr_author@example.com> (@pr_author)", report.Rows[1].Value)
}

func TestBuilder_Classification(t *testing.T) {
	report := newTestBuilder(Data{PR: testPR("t"), Commits: oddCommits}, &recordingOutput{}).Build()

	assert.Equal(t, []domain.CommitKind{
		domain.KindRegular,
		domain.KindRegular,
		domain.KindRegular,
		domain.KindRegular,
		domain.KindSquash,
		domain.KindFixup,
	}, report.Kinds)
	assert.Equal(t, []string{"doc", "test"}, report.Subsystems)
	assert.True(t, report.Autosquash)
	assert.Equal(t, 2, report.MarkedCommits())

	plain := newTestBuilder(Data{PR: testPR("t"), Commits: oddCommits[:2]}, &recordingOutput{}).Build()
	assert.False(t, plain.Autosquash)
}

func TestClassify(t *testing.T) {
	testCases := []struct {
		message   string
		kind      domain.CommitKind
		subsystem string
	}{
		{message: "doc: some changes", kind: domain.KindRegular, subsystem: "doc"},
		{message: "src,lib: fix crash\n\nbody: text", kind: domain.KindRegular, subsystem: "src,lib"},
		{message: "squash! doc: some changes", kind: domain.KindSquash},
		{message: "[squash] fix typo", kind: domain.KindSquash},
		{message: "fixup! fix something", kind: domain.KindFixup},
		{message: "Fixup! shouting", kind: domain.KindFixup},
		{message: "fix the thing: properly", kind: domain.KindRegular},
		{message: "no prefix at all", kind: domain.KindRegular},
		{message: ": empty prefix", kind: domain.KindRegular},
	}

	for _, tc := range testCases {
		t.Run(tc.message, func(t *testing.T) {
			kind, subsystem := Classify(tc.message)
			assert.Equal(t, tc.kind, kind)
			assert.Equal(t, tc.subsystem, subsystem)
		})
	}
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "subject", FirstLine("subject\r\n\r\nbody"))
	assert.Equal(t, "subject", FirstLine("subject"))
	assert.Equal(t, "", FirstLine(""))
}
