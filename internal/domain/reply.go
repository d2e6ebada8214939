package domain

// Reply is the assistant's answer for one user turn. Data is present only
// when a tool was invoked during the turn; Done marks a confirmed booking.
type Reply struct {
	Reply string `json:"reply"`
	Data  any    `json:"data,omitempty"`
	Done  bool   `json:"done"`
}

// ToolInvocation records one dispatched tool call and its result.
type ToolInvocation struct {
	Tool   string         `json:"tool"`
	Args   map[string]any `json:"args,omitempty"`
	Result any            `json:"result"`
}
