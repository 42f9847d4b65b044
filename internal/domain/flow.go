package domain

// FlowState is the state of one form session
type FlowState string

const (
	FlowIdle      FlowState = "idle"
	FlowReviewing FlowState = "reviewing"
	FlowCommitted FlowState = "committed"
)

// NoticeKind classifies a message shown to the visitor
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeWarning NoticeKind = "warning"
	NoticeError   NoticeKind = "error"
)

// Notice is a dismissible banner message
type Notice struct {
	Kind    NoticeKind
	Message string
}
