//nolint:revive // types is a standard Go package name pattern
package types

// QCConstraints are the checks requested for a quality-control pass.
type QCConstraints struct {
	CharLimit        *int     `json:"char_limit,omitempty"`
	RequiredKeywords []string `json:"required_keywords,omitempty"`
}

// QCResult is the outcome of a post-synthesis quality-control pass.
// Pass is true iff Issues is empty.
type QCResult struct {
	Pass               bool           `json:"pass"`
	Issues             []string       `json:"issues"`
	Suggestions        []string       `json:"suggestions"`
	CharCountBySection map[string]int `json:"char_count_by_section"`
}
