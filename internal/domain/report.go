package domain

// CommitKind is the classification of a commit by its subject line.
type CommitKind int

const (
	KindRegular CommitKind = iota
	KindSquash
	KindFixup
)

func (k CommitKind) String() string {
	switch k {
	case KindSquash:
		return "squash"
	case KindFixup:
		return "fixup"
	default:
		return "regular"
	}
}

// ReportRow is one label/value line of the summary table.
type ReportRow struct {
	Label string
	Value string
}

// Report is the rendered summary of a pull request.
type Report struct {
	// Lines holds one entry per commit followed by one per unique committer.
	Lines []string
	Rows  []ReportRow

	// Kinds is parallel to the input commit list.
	Kinds      []CommitKind
	Subsystems []string
	Autosquash bool
}

// MarkedCommits counts the squash and fixup commits.
func (r Report) MarkedCommits() int {
	n := 0
	for _, k := range r.Kinds {
		if k != KindRegular {
			n++
		}
	}
	return n
}
