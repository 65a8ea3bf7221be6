// Package agent implements the interactive AI assistant of the pfd CLI.
//
// The assistant is a small team of experts behind one facilitator: the
// user talks to the facilitator, which consults the experts through
// function calls when it needs market news or portfolio figures.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Agent runs the chat session between the user and the facilitator.
type Agent struct {
	w           io.Writer
	r           *bufio.Reader
	facilitator *Expert
	experts     []*Expert
}

// New creates an Agent over the given experts. It takes an io.Writer
// for the agent's output (e.g. os.Stdout) and an io.Reader for user
// input (e.g. os.Stdin).
func New(w io.Writer, r io.Reader, experts ...*Expert) *Agent {
	return &Agent{
		w:           w,
		r:           bufio.NewReader(r),
		experts:     experts,
		facilitator: newFacilitator(experts...),
	}
}

// Start opens a chat for every expert and the facilitator.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	for _, e := range a.experts {
		if err := e.Start(ctx, client); err != nil {
			return err
		}
	}
	return a.facilitator.Start(ctx, client)
}

const prompt = "assist> "

// Run starts the interactive REPL session. Initial prompts are played
// before reading from the user; "bye" or Ctrl+D ends the session.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.facilitator.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.w, "Welcome to pfd assist. Type 'bye' to exit.")

	for {
		fmt.Fprint(a.w, prompt)

		var input string
		if len(prompts) > 0 {
			input, prompts = prompts[0], prompts[1:]
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			fmt.Fprintln(a.w, input)
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil
				}
				return err
			}
		}

		if strings.TrimSpace(input) == "bye" {
			return nil
		}

		content, err := a.facilitator.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		fmt.Fprintln(a.w, content.Parts[0].Text)
	}
}
