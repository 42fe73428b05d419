package domain

// Committer is an identity attached to a commit. Two committers are the same
// person when their emails are exactly equal.
type Committer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Author is the pull request author. FirstTimer is supplied by the hosting
// API and is not derived from the commit history.
type Author struct {
	Login      string `json:"login"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	FirstTimer bool   `json:"first_timer"`
}

// PullRequest holds the metadata the summary is rendered from.
type PullRequest struct {
	Number     int      `json:"number"`
	Title      string   `json:"title"`
	Author     Author   `json:"author"`
	HeadOwner  string   `json:"head_owner"`
	HeadBranch string   `json:"head_branch"`
	BaseOwner  string   `json:"base_owner"`
	BaseBranch string   `json:"base_branch"`
	Labels     []string `json:"labels"`
}

// Commit is one commit of a pull request, in the order the PR lists them.
// Committers holds every identity attached to it, the git author included.
type Commit struct {
	SHA        string      `json:"sha"`
	Message    string      `json:"message"`
	Author     Committer   `json:"author"`
	Committers []Committer `json:"committers"`
}
