package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/tourbook/tourbook"
	"github.com/tourbook/tourbook/renderer"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is a tour leader keeping a book of tours, each with income and expense
			entries and a preparation checklist, all normalized into TWD.
			Devise a plan of questions to ask each expert and come up with the best response
			to the user's request. Check the book first to understand which tours exist.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewGuide creates the travel expert. It grounds its answers with search.
func NewGuide() *Expert {
	return &Expert{
		Name: "Guide",
		Description: `This is an experienced travel guide,
		well aware of destinations, transport options, seasonal prices and
		local customs. Ask the Guide whenever you need recent or grounding
		information about a place or a trip.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert travel guide. You can search and find anything related to
			destinations, transport, accommodation and typical costs. You leverage Google
			Search to ground your assertions in solid truth, and you know how to relate
			the latest news to the user's trips.
				`}}},
		},
	}
}

// NewBookkeeper creates the expert in charge of reading the user's tour book.
// It reloads the book from its file on every call so concurrent edits from
// other commands are always visible.
func NewBookkeeper(bookFile string, provider *tourbook.Provider) *Expert {
	lib := []Function{
		listToursFunc(bookFile, provider),
		tourSummaryFunc(bookFile, provider),
		ratesFunc(provider),
	}

	return &Expert{
		Name: "Bookkeeper",
		Description: `This is the Bookkeeper. He is in charge of reading the user's tour book.
		He can list the tours, compute the income, expense and profit of any tour,
		and report the exchange rates used for the conversions.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a bookkeeper in charge of the user's tour book.
				You know how to use the Tools to extract relevant figures about the tours.
				You are part of a team of experts, yours is everything recorded in the book.
				Pardon their approximative language and figure out what they meant.

				Use the available tools to get information about the book
				  - list of tours
				  - summary of one tour
				  - current exchange rates
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func errResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

func okResponse(id, name, output string) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"output": output,
		},
	}
}

func listToursFunc(bookFile string, provider *tourbook.Provider) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "ListTours",
			Description: `ListTours lists every tour in the book with its id, name,
			start date, entry count, preparation progress and profit in TWD.`,
			Parameters: &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table of all tours in the book.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			b := tourbook.LoadBook(bookFile)
			return okResponse(id, "ListTours", renderer.ToursMarkdown(b, provider.Table()))
		},
	}
}

func tourSummaryFunc(bookFile string, provider *tourbook.Provider) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "TourSummary",
			Description: `TourSummary computes the income, expense and profit of one tour,
			all normalized into TWD. Expense includes the cost of every preparation item,
			pending ones too.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"tour": {
						Type:        genai.TypeInteger,
						Description: "The id of the tour, as listed by ListTours.",
					},
				},
				Required: []string{"tour"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted summary of the tour.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			tourID, err := parseTourID(args)
			if err != nil {
				return errResponse(id, "TourSummary", err)
			}
			b := tourbook.LoadBook(bookFile)
			t := b.Tour(tourID)
			if t == nil {
				return errResponse(id, "TourSummary", fmt.Errorf("no tour with id %d", tourID))
			}
			s := tourbook.NewTourStats(t, provider.Table())
			return okResponse(id, "TourSummary", renderer.SummaryMarkdown(s))
		},
	}
}

func ratesFunc(provider *tourbook.Provider) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Rates",
			Description: `Rates reports the exchange rates currently used to normalize
			amounts into TWD, and when each rate was last fetched.`,
			Parameters: &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table of the current exchange rates.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			return okResponse(id, "Rates", renderer.RatesMarkdown(provider.Table()))
		},
	}
}

func parseTourID(args map[string]any) (int, error) {
	iid, ok := args["tour"]
	if !ok {
		return 0, fmt.Errorf("argument 'tour' is required")
	}
	// The model sends JSON numbers as float64.
	switch v := iid.(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	default:
		return 0, fmt.Errorf("argument 'tour' is not a number as expected but %T", iid)
	}
}
