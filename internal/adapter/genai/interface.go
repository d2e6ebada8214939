// Package genai provides the generative model adapter used by the assistant.
package genai

import "context"

// Schema type constants for function declarations.
const (
	TypeObject  = "OBJECT"
	TypeString  = "STRING"
	TypeNumber  = "NUMBER"
	TypeBoolean = "BOOLEAN"
	TypeArray   = "ARRAY"
)

// Schema describes a function parameter schema.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// FunctionDeclaration declares one callable tool to the model.
type FunctionDeclaration struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Parameters  *Schema `json:"parameters,omitempty"`
}

// Tool groups function declarations.
type Tool struct {
	FunctionDeclarations []FunctionDeclaration `json:"functionDeclarations"`
}

// FunctionCall is a model request to invoke a tool.
type FunctionCall struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args,omitempty"`
}

// FunctionResponse carries a tool result back to the model.
type FunctionResponse struct {
	Name     string         `json:"name"`
	Response map[string]any `json:"response"`
}

// Part is one piece of a content turn. Exactly one field is set.
type Part struct {
	Text             string            `json:"text,omitempty"`
	FunctionCall     *FunctionCall     `json:"functionCall,omitempty"`
	FunctionResponse *FunctionResponse `json:"functionResponse,omitempty"`
}

// Content is a single conversation turn.
type Content struct {
	Role  string `json:"role"` // "user" or "model"
	Parts []Part `json:"parts"`
}

// GenerateRequest is the request body for a generateContent call.
type GenerateRequest struct {
	Contents          []Content `json:"contents"`
	SystemInstruction *Content  `json:"systemInstruction,omitempty"`
	Tools             []Tool    `json:"tools,omitempty"`
}

// Candidate is one model completion.
type Candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
}

// GenerateResponse is the response body of a generateContent call.
type GenerateResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// Content returns the first candidate's content, or nil when the model
// produced no candidates.
func (r *GenerateResponse) Content() *Content {
	if len(r.Candidates) == 0 {
		return nil
	}
	return &r.Candidates[0].Content
}

// Text returns the concatenated text parts of the first candidate.
func (r *GenerateResponse) Text() string {
	content := r.Content()
	if content == nil {
		return ""
	}
	var out string
	for _, p := range content.Parts {
		out += p.Text
	}
	return out
}

// FunctionCalls returns every function call in the first candidate, in order.
func (r *GenerateResponse) FunctionCalls() []FunctionCall {
	content := r.Content()
	if content == nil {
		return nil
	}
	var calls []FunctionCall
	for _, p := range content.Parts {
		if p.FunctionCall != nil {
			calls = append(calls, *p.FunctionCall)
		}
	}
	return calls
}

// Client is the generative model interface.
type Client interface {
	// GenerateContent runs one model turn.
	GenerateContent(ctx context.Context, model string, req *GenerateRequest) (*GenerateResponse, error)
}
