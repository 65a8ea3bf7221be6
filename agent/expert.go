package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Expert is a chat with one specialist model. An expert can itself
// carry a library of functions the model may call while answering.
type Expert struct {
	Name        string
	Description string
	Model       string
	Config      *genai.GenerateContentConfig
	Library     Library
	chat        *genai.Chat
}

// Start opens the chat session for this expert.
func (e *Expert) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, e.Model, e.Config, nil)
	if err != nil {
		return err
	}
	e.chat = chat
	return nil
}

// Ask sends parts to the expert and resolves any function calls it
// makes before returning the final answer.
func (e *Expert) Ask(ctx context.Context, parts ...*genai.Part) (*genai.Content, error) {
	resp, err := e.chat.Send(ctx, parts...)
	if err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from expert %s", e.Name)
	}
	part0 := resp.Candidates[0].Content.Parts[0]
	if part0.FunctionCall != nil {
		if e.Library == nil {
			return nil, fmt.Errorf("expert %s doesn't know how to make function calls", e.Name)
		}

		// Feed the function response back until the expert answers
		// with text.
		fresp := e.Library(ctx, part0.FunctionCall)
		return e.Ask(ctx, &genai.Part{FunctionResponse: fresp})
	}
	return resp.Candidates[0].Content, nil
}

// Declaration returns the function declaration to consult this expert.
func (e *Expert) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        e.Name,
		Description: e.Description,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"question": {
					Type:        genai.TypeString,
					Description: "The question to ask the expert.",
				},
			},
			Required: []string{"question"},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "Expert's response.",
		},
	}
}

// Call performs the call of asking this expert a question.
func (e *Expert) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	fresp := &genai.FunctionResponse{
		ID:       id,
		Name:     e.Name,
		Response: map[string]any{},
	}

	question, ok := args["question"].(string)
	if !ok {
		fresp.Response["error"] = fmt.Sprintf("invalid type %T for 'question', expected string", args["question"])
		return fresp
	}

	content, err := e.Ask(ctx, &genai.Part{Text: question})
	if err != nil {
		fresp.Response["error"] = fmt.Sprintf("expert %s failed: %v", e.Name, err)
		return fresp
	}
	fresp.Response["output"] = content.Parts[0].Text
	return fresp
}
