package ai

// MaxTags is the maximum number of tags a summarizer may return.
// Extra entries are discarded silently.
const MaxTags = 5

// SummaryInput is the assembled context handed to a Summarizer. Any
// subset of the fields may be set; empty fields are omitted from the
// generated prompt.
type SummaryInput struct {
	Title       string
	Description string
	URL         string
	Content     string
}

// Empty reports whether no context at all was assembled.
func (in SummaryInput) Empty() bool {
	return in.Title == "" && in.Description == "" && in.URL == "" && in.Content == ""
}

// Annotation is the AI-derived metadata for a note: a short summary and
// up to MaxTags tags.
type Annotation struct {
	Summary string
	Tags    []string
}
