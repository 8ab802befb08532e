package model

// Control commands are line-delimited JSON objects written to the subject's
// stdin. Each constructor fills the discriminating type field so callers
// cannot produce an untagged command.

// InputCommand feeds raw text to the terminal as if typed.
type InputCommand struct {
	Type    string `json:"type"`
	Payload string `json:"payload"`
}

// NewInputCommand builds an input command for the given text.
func NewInputCommand(text string) InputCommand {
	return InputCommand{Type: "input", Payload: text}
}

// SendKeysCommand injects named keys (e.g. "Enter", "C-c").
type SendKeysCommand struct {
	Type string   `json:"type"`
	Keys []string `json:"keys"`
}

// NewSendKeysCommand builds a sendKeys command.
func NewSendKeysCommand(keys ...string) SendKeysCommand {
	return SendKeysCommand{Type: "sendKeys", Keys: keys}
}

// ResizeCommand changes the terminal geometry of a running subject.
type ResizeCommand struct {
	Type string `json:"type"`
	Cols int    `json:"cols"`
	Rows int    `json:"rows"`
}

// NewResizeCommand builds a resize command.
func NewResizeCommand(size Size) ResizeCommand {
	return ResizeCommand{Type: "resize", Cols: size.Cols, Rows: size.Rows}
}
