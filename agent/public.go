package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"folio"
	"folio/date"
	"folio/renderer"
)

const model = "gemini-2.5-pro"

// newFacilitator creates the expert in charge of the conversation. It
// answers the user directly and consults the other experts as tools.
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:  "Facilitator",
		Model: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclarations(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the experts' skills from the Tools and ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here primarily to get news or figures about the assets in his portfolio.
			Check the portfolio first to understand what his tickers are, then devise a plan of
			questions for each expert and come up with the best response to the user's request.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAnalyst creates the market analyst expert. It grounds its answers
// with Google Search.
func NewAnalyst() *Expert {
	return &Expert{
		Name: "Analyst",
		Description: `This is an expert market analyst,
		very well aware of financial products and institutions, and of
		the latest news about funds and companies.
		Ask the Analyst whenever you need recent or grounding information.`,
		Model: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert market analyst. You can search and find anything related to
			financial institutions, companies, markets and funds. You leverage Google Search
			to ground your assertions, and you know how to relate the latest news to the
			user's request.
				`}}},
		},
	}
}

// NewAccountant creates the expert in charge of the user's ledger. Its
// tools read the ledger through the given journal loader.
func NewAccountant(load func() (*folio.Journal, error)) *Expert {
	lib := []Function{holdingsTool(load), gainsTool(load), summaryTool(load)}

	return &Expert{
		Name: "Accountant",
		Description: `This is the Accountant. He is in charge of reading the user's portfolio ledger
		and computing the relevant figures about the user's wealth.`,
		Model: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclarations(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an accountant in charge of the user's portfolio ledger.
				Use the available tools to extract information about the portfolio:
				  - open positions and cash balances (Holdings)
				  - realized and unrealized gains over a period (Gains)
				  - total value and performance (Summary)
				You are part of a team of experts. Pardon their approximate language and
				figure out what they meant.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements Function from a declaration and a closure.
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

var dateParam = &genai.Schema{
	Type:        genai.TypeString,
	Description: "The date to report on, in YYYY-MM-DD form. Today is the default.",
}

func holdingsTool(load func() (*folio.Journal, error)) Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Holdings",
			Description: `Holdings lists every open position with its market value and every
			non-zero cash balance on the given day, converted to the reporting currency.`,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: map[string]*genai.Schema{"date": dateParam},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted holdings report.",
			},
		},
		Func: func(_ context.Context, id string, args map[string]any) *genai.FunctionResponse {
			return report(id, "Holdings", args, load, func(j *folio.Journal, on folio.Date) string {
				return renderer.HoldingMarkdown(folio.NewHoldingReport(j, on, ""))
			})
		},
	}
}

func gainsTool(load func() (*folio.Journal, error)) Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Gains",
			Description: `Gains reports the realized and unrealized capital gains of each
			security over the month ending on the given day.`,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: map[string]*genai.Schema{"date": dateParam},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted capital gains report.",
			},
		},
		Func: func(_ context.Context, id string, args map[string]any) *genai.FunctionResponse {
			return report(id, "Gains", args, load, func(j *folio.Journal, on folio.Date) string {
				period := date.NewRange(on, date.Monthly)
				return renderer.GainsMarkdown(folio.NewGainsReport(j, period, folio.FIFO, ""))
			})
		},
	}
}

func summaryTool(load func() (*folio.Journal, error)) Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Summary",
			Description: `Summary reports the total portfolio value on the given day and its
			performance over the day, week, month, quarter, year and since inception.`,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: map[string]*genai.Schema{"date": dateParam},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted performance summary.",
			},
		},
		Func: func(_ context.Context, id string, args map[string]any) *genai.FunctionResponse {
			return report(id, "Summary", args, load, func(j *folio.Journal, on folio.Date) string {
				return renderer.SummaryMarkdown(folio.NewSummaryReport(j, on, ""))
			})
		},
	}
}

// report runs one ledger tool: parse the date argument, load the
// journal, render.
func report(id, name string, args map[string]any, load func() (*folio.Journal, error), render func(*folio.Journal, folio.Date) string) *genai.FunctionResponse {
	fresp := &genai.FunctionResponse{ID: id, Name: name, Response: map[string]any{}}

	on, err := parseDate(args)
	if err != nil {
		fresp.Response["error"] = err.Error()
		return fresp
	}
	j, err := load()
	if err != nil {
		fresp.Response["error"] = fmt.Sprintf("could not load ledger: %v", err)
		return fresp
	}
	fresp.Response["output"] = render(j, on)
	return fresp
}

func parseDate(args map[string]any) (folio.Date, error) {
	idate, hasDate := args["date"]
	if !hasDate {
		return folio.Today(), nil
	}
	sdate, ok := idate.(string)
	if !ok {
		return folio.Today(), fmt.Errorf("argument 'date' is not a string as expected but %T", idate)
	}
	on, err := date.Parse(sdate)
	if err != nil {
		return folio.Today(), fmt.Errorf("argument 'date' must be a YYYY-MM-DD date, got %q", sdate)
	}
	return on, nil
}
