package dashboard

import (
	"stock-ledger/internal/client"

	"github.com/AlecAivazis/survey/v2"
)

// PromptForm asks for the four fields on the terminal. Answers are passed
// on as typed.
type PromptForm struct {
	input client.TransactionInput
	opts  []survey.AskOpt
}

func NewPromptForm(opts ...survey.AskOpt) *PromptForm {
	return &PromptForm{opts: opts}
}

// Ask prompts for every field, offering the previous answers as defaults.
func (f *PromptForm) Ask() error {
	questions := []*survey.Question{
		{
			Name:   "symbol",
			Prompt: &survey.Input{Message: "Symbol:", Default: f.input.StockSymbol},
		},
		{
			Name: "type",
			Prompt: &survey.Select{
				Message: "Type:",
				Options: []string{"buy", "sell"},
			},
		},
		{
			Name:   "quantity",
			Prompt: &survey.Input{Message: "Quantity:", Default: f.input.Quantity},
		},
		{
			Name:   "price",
			Prompt: &survey.Input{Message: "Price:", Default: f.input.Price},
		},
	}

	answers := struct {
		Symbol   string `survey:"symbol"`
		Type     string `survey:"type"`
		Quantity string `survey:"quantity"`
		Price    string `survey:"price"`
	}{}
	if err := survey.Ask(questions, &answers, f.opts...); err != nil {
		return err
	}

	f.input = client.TransactionInput{
		StockSymbol:     answers.Symbol,
		TransactionType: answers.Type,
		Quantity:        answers.Quantity,
		Price:           answers.Price,
	}
	return nil
}

func (f *PromptForm) Values() client.TransactionInput {
	return f.input
}

func (f *PromptForm) Reset() {
	f.input = client.TransactionInput{}
}

// Confirm asks a yes/no question.
func Confirm(message string, def bool, opts ...survey.AskOpt) (bool, error) {
	ok := def
	err := survey.AskOne(&survey.Confirm{Message: message, Default: def}, &ok, opts...)
	return ok, err
}
