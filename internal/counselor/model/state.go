package model

// State is the conversation-state tag driving the counseling policy.
// Exactly one state is active per session.
type State string

const (
	StateGreeting      State = "greeting"
	StateGatheringInfo State = "gathering_info"
	StateClarifying    State = "clarifying"
	StateRecommending  State = "recommending"
	StateDiscussing    State = "discussing"
)

// String returns the string representation of the state.
func (s State) String() string {
	return string(s)
}

// ResponseKind tags the structured response returned for every processed
// message.
type ResponseKind string

const (
	KindGreeting        ResponseKind = "greeting"
	KindQuestions       ResponseKind = "questions"
	KindRecommendations ResponseKind = "recommendations"
	KindDiscussion      ResponseKind = "discussion"
	KindFallback        ResponseKind = "fallback"
)

// Response is the structured result of processing one student message.
type Response struct {
	Kind     ResponseKind   `json:"kind"`
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata"`
}

// SessionStatus describes the observable state of a session.
type SessionStatus struct {
	State                State          `json:"state"`
	Completeness         float64        `json:"completeness"`
	HistoryLength        int            `json:"history_length"`
	RecommendationsGiven bool           `json:"recommendations_given"`
	Profile              map[string]any `json:"profile"`
}
