package core

// Submission is a typed payload for note creation. Each kind carries its
// own payload shape; the dispatcher type-switches over the closed set of
// variants, so adding a kind is a compile-time-checked change.
type Submission interface {
	// SubmissionKind identifies the variant.
	SubmissionKind() Kind
	// SuppliedTitle is the user-provided title, empty when none was given.
	SuppliedTitle() string
}

// LinkSubmission is a URL capture.
type LinkSubmission struct {
	URL   string
	Title string
}

// TextSubmission is a free-form text capture.
type TextSubmission struct {
	Content string
	Title   string
}

// VoiceSubmission is a raw audio capture. The audio itself is not
// retained; its transcript becomes the note's content.
type VoiceSubmission struct {
	Audio []byte
	Title string
}

// ImageSubmission is a raw image capture. The image itself is not
// retained; its extracted text becomes the note's content.
type ImageSubmission struct {
	Image []byte
	Title string
}

func (s LinkSubmission) SubmissionKind() Kind  { return KindLink }
func (s TextSubmission) SubmissionKind() Kind  { return KindText }
func (s VoiceSubmission) SubmissionKind() Kind { return KindVoice }
func (s ImageSubmission) SubmissionKind() Kind { return KindImage }

func (s LinkSubmission) SuppliedTitle() string  { return s.Title }
func (s TextSubmission) SuppliedTitle() string  { return s.Title }
func (s VoiceSubmission) SuppliedTitle() string { return s.Title }
func (s ImageSubmission) SuppliedTitle() string { return s.Title }
