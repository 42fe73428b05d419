// Package summary renders a pull request and its commits as a short report:
// one line per commit, one line per distinct committer, then a table.
package summary

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/naka-gawa/ncu/internal/domain"
)

// Output receives the rendered report.
type Output interface {
	Log(line string)
	Table(rows []domain.ReportRow)
}

// Data is everything a summary is built from.
type Data struct {
	PR          domain.PullRequest
	Commits     []domain.Commit
	AuthorIsNew func() bool
}

// Builder turns Data into a Report.
type Builder struct {
	data   Data
	out    Output
	logger *log.Logger
}

// NewBuilder creates a Builder rendering to out.
func NewBuilder(data Data, out Output, logger *log.Logger) *Builder {
	return &Builder{
		data:   data,
		out:    out,
		logger: logger,
	}
}

// Build computes the report without rendering it.
func (b *Builder) Build() domain.Report {
	pr := b.data.PR
	commits := b.data.Commits

	report := domain.Report{
		Lines: make([]string, 0, len(commits)),
		Kinds: make([]domain.CommitKind, 0, len(commits)),
	}

	seenSubsystem := make(map[string]bool)
	for _, c := range commits {
		report.Lines = append(report.Lines, " - "+FirstLine(c.Message))

		kind, subsystem := Classify(c.Message)
		report.Kinds = append(report.Kinds, kind)
		if kind != domain.KindRegular {
			report.Autosquash = true
		}
		if subsystem != "" && !seenSubsystem[subsystem] {
			seenSubsystem[subsystem] = true
			report.Subsystems = append(report.Subsystems, subsystem)
		}
	}

	committers := UniqueCommitters(commits)
	for _, c := range committers {
		report.Lines = append(report.Lines, fmt.Sprintf(" - %s <%s>", c.Name, c.Email))
	}

	report.Rows = []domain.ReportRow{
		{Label: "Title", Value: fmt.Sprintf("%s (#%d)", pr.Title, pr.Number)},
		{Label: "Author", Value: b.authorValue()},
		{Label: "Branch", Value: fmt.Sprintf("%s:%s -> %s:%s", pr.HeadOwner, pr.HeadBranch, pr.BaseOwner, pr.BaseBranch)},
		{Label: "Labels", Value: strings.Join(pr.Labels, ", ")},
		{Label: "Commits", Value: strconv.Itoa(len(commits))},
		{Label: "Committers", Value: strconv.Itoa(len(committers))},
	}
	return report
}

// Display builds the report and renders it, log lines first.
func (b *Builder) Display() domain.Report {
	report := b.Build()
	b.logger.Printf("Summary: rendering PR #%d with %d lines", b.data.PR.Number, len(report.Lines))
	for _, line := range report.Lines {
		b.out.Log(line)
	}
	b.out.Table(report.Rows)
	return report
}

func (b *Builder) authorValue() string {
	author := b.data.PR.Author
	name := author.Name
	if name == "" {
		name = author.Login
	}
	handle := "@" + author.Login
	if b.data.AuthorIsNew != nil && b.data.AuthorIsNew() {
		handle += ", first-time contributor"
	}
	return fmt.Sprintf("%s <%s> (%s)", name, author.Email, handle)
}

// UniqueCommitters collects the committers of every commit, keeping the first
// entry seen for each email.
func UniqueCommitters(commits []domain.Commit) []domain.Committer {
	seen := make(map[string]bool)
	var out []domain.Committer
	for _, c := range commits {
		for _, committer := range c.Committers {
			if seen[committer.Email] {
				continue
			}
			seen[committer.Email] = true
			out = append(out, committer)
		}
	}
	return out
}
