package session

type State string

const (
	StateIdle               State = "idle"
	StateAwaitingCredential State = "awaiting_credential"
	StateAwaitingInput      State = "awaiting_input"
	StateTranscribing       State = "transcribing"
	StateCompleting         State = "completing"
	StateSynthesizing       State = "synthesizing"
)
