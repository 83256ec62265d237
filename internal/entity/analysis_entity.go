package entity

import "fmt"

const (
	ReplyStageProductName = "product_name"
	ReplyStageFeedback    = "feedback"
	ReplyStageMedia       = "media"
	ReplyStageComplete    = "complete"
)

// AnalysisResult is the structured decision produced by the conversation
// analyzer for one inbound turn. It is a value object and is never persisted
// directly.
type AnalysisResult struct {
	Reply                     string
	ReplyStage                string
	IsFeedbackSessionComplete bool
	ShouldPersistReply        bool

	// Moderation / safety flags
	IsXRatedConversation     bool
	IsCrimeRatedConversation bool
	IsImmoralConversation    bool
	IsIrrelevant             bool
	IsTooShort               bool

	// Extracted fields, meaningful only when the session is complete
	ProductName  string
	FeedbackText string
	MediaURLs    []string
}

// Moderated reports whether any safety flag is raised.
func (r *AnalysisResult) Moderated() bool {
	return r.IsXRatedConversation || r.IsCrimeRatedConversation || r.IsImmoralConversation || r.IsIrrelevant
}

// Validate checks structural completeness and flag consistency. A moderated
// result must never ask for its reply to be persisted.
func (r *AnalysisResult) Validate() error {
	if r.Reply == "" {
		return fmt.Errorf("analysis result missing reply")
	}
	if r.Moderated() && r.ShouldPersistReply {
		return fmt.Errorf("moderated result must not persist its reply")
	}
	if r.IsFeedbackSessionComplete && r.Moderated() {
		return fmt.Errorf("moderated result cannot complete a feedback session")
	}
	return nil
}
