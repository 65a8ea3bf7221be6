package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Library resolves one function call into its response.
type Library func(context.Context, *genai.FunctionCall) *genai.FunctionResponse

// Function is a callable tool exposed to a model.
type Function interface {
	Declaration() *genai.FunctionDeclaration
	Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

// NewLibrary dispatches function calls by name over the given functions.
func NewLibrary[T Function](functions []T) Library {
	return func(ctx context.Context, call *genai.FunctionCall) *genai.FunctionResponse {
		for _, fn := range functions {
			if fn.Declaration().Name == call.Name {
				return fn.Call(ctx, call.ID, call.Args)
			}
		}
		return &genai.FunctionResponse{
			ID:   call.ID,
			Name: call.Name,
			Response: map[string]any{
				"error": fmt.Sprintf("unknown function %s", call.Name),
			},
		}
	}
}

// NewDeclarations collects the declarations of the given functions.
func NewDeclarations[T Function](functions []T) []*genai.FunctionDeclaration {
	result := make([]*genai.FunctionDeclaration, 0, len(functions))
	for _, fn := range functions {
		result = append(result, fn.Declaration())
	}
	return result
}
