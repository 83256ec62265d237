package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"wa-feedback-be/internal/constant"
	"wa-feedback-be/internal/entity"
	"wa-feedback-be/internal/pkg/apperror"
	"wa-feedback-be/pkg/llm"
)

// ConversationAnalyzer turns an ordered conversation history plus the new
// inbound turn into exactly one AnalysisResult, or fails. Retry policy belongs
// to the caller; none is applied here.
type ConversationAnalyzer interface {
	Analyze(ctx context.Context, history []*entity.ChatMessage, inbound *entity.ChatMessage) (*entity.AnalysisResult, error)
}

type LLMAnalyzer struct {
	provider llm.LLMProvider
}

func NewLLMAnalyzer(provider llm.LLMProvider) *LLMAnalyzer {
	return &LLMAnalyzer{provider: provider}
}

// looseBool accepts true/false, 0/1 and their string forms; model output is
// coerced to a strict boolean rather than trusted.
type looseBool bool

func (b *looseBool) UnmarshalJSON(data []byte) error {
	switch strings.ToLower(strings.Trim(string(data), `"`)) {
	case "true", "1":
		*b = true
	case "false", "0", "null", "":
		*b = false
	default:
		return fmt.Errorf("not a boolean: %s", string(data))
	}
	return nil
}

// rawAnalysis mirrors the JSON contract of the model. Unknown extra fields are
// ignored and never propagated.
type rawAnalysis struct {
	Reply                     string     `json:"reply"`
	ReplyStage                string     `json:"reply_stage"`
	IsFeedbackSessionComplete looseBool  `json:"is_feedback_session_complete"`
	ShouldPersistReply        *looseBool `json:"should_persist_reply"`
	IsXRatedConversation      looseBool  `json:"is_x_rated_conversation"`
	IsCrimeRatedConversation  looseBool  `json:"is_crime_rated_conversation"`
	IsImmoralConversation     looseBool  `json:"is_immoral_conversation"`
	IsIrrelevant              looseBool  `json:"is_irrelevant"`
	IsTooShort                looseBool  `json:"is_too_short"`
	ProductName               string     `json:"product_name"`
	FeedbackText              string     `json:"feedback"`
	MediaURLs                 []string   `json:"media_urls"`
}

func (a *LLMAnalyzer) Analyze(ctx context.Context, history []*entity.ChatMessage, inbound *entity.ChatMessage) (*entity.AnalysisResult, error) {
	// Oversized turns never reach the model
	for _, msg := range append(append([]*entity.ChatMessage{}, history...), inbound) {
		if len(msg.Text) > constant.MaxInboundMessageLength {
			return &entity.AnalysisResult{
				Reply:              constant.ReplyTooLong,
				ReplyStage:         entity.ReplyStageProductName,
				ShouldPersistReply: true,
			}, nil
		}
	}

	conversation := renderConversation(history, inbound)

	raw, err := a.provider.Chat(ctx,
		[]llm.Message{
			{Role: "system", Content: constant.AnalyzerSystemPromptV1},
			{Role: "user", Content: conversation},
		},
		llm.WithJSONResponse(),
	)
	if err != nil {
		return nil, fmt.Errorf("analyze conversation: %w", err)
	}

	return parseAnalysis(raw)
}

func parseAnalysis(raw string) (*entity.AnalysisResult, error) {
	var parsed rawAnalysis
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &parsed); err != nil {
		return nil, apperror.NewValidation("analyzer output is not valid JSON", err)
	}

	// Persist by default; only an explicit false suppresses it
	shouldPersist := true
	if parsed.ShouldPersistReply != nil {
		shouldPersist = bool(*parsed.ShouldPersistReply)
	}

	result := &entity.AnalysisResult{
		Reply:                     parsed.Reply,
		ReplyStage:                parsed.ReplyStage,
		IsFeedbackSessionComplete: bool(parsed.IsFeedbackSessionComplete),
		ShouldPersistReply:        shouldPersist,
		IsXRatedConversation:      bool(parsed.IsXRatedConversation),
		IsCrimeRatedConversation:  bool(parsed.IsCrimeRatedConversation),
		IsImmoralConversation:     bool(parsed.IsImmoralConversation),
		IsIrrelevant:              bool(parsed.IsIrrelevant),
		IsTooShort:                bool(parsed.IsTooShort),
		ProductName:               parsed.ProductName,
		FeedbackText:              parsed.FeedbackText,
		MediaURLs:                 parsed.MediaURLs,
	}

	// Flag consistency is enforced, not trusted
	if result.Moderated() {
		result.ShouldPersistReply = false
		result.IsFeedbackSessionComplete = false
	}

	if err := result.Validate(); err != nil {
		return nil, apperror.NewValidation("analyzer output incomplete", err)
	}
	return result, nil
}

// renderConversation flattens chat turns into the dialogue format the prompt
// describes: one line per text or media item, prefixed with its direction.
func renderConversation(history []*entity.ChatMessage, inbound *entity.ChatMessage) string {
	var sb strings.Builder
	for _, msg := range append(append([]*entity.ChatMessage{}, history...), inbound) {
		direction := "Inbound"
		if msg.Direction == entity.ChatDirectionOutbound {
			direction = "Outbound"
		}
		if msg.Text != "" {
			fmt.Fprintf(&sb, "%s: %s\n", direction, msg.Text)
		}
		for _, media := range msg.MediaItems {
			fmt.Fprintf(&sb, "%s: [Media] %s\n", direction, media.URL)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
