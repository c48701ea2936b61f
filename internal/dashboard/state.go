package dashboard

import "stock-ledger/internal/client"

// StaticForm is a Form filled in up front, e.g. from command line flags.
type StaticForm struct {
	Input client.TransactionInput
}

func (f *StaticForm) Values() client.TransactionInput {
	return f.Input
}

func (f *StaticForm) Reset() {
	f.Input = client.TransactionInput{}
}

// State holds what the page currently shows. It is a View on its own and
// the backing store of TerminalView.
type State struct {
	Error        string
	Transactions []string
	TotalBuy     string
	TotalSell    string
	Holdings     []string
}

func (s *State) SetError(msg string) {
	s.Error = msg
}

func (s *State) SetTransactions(items []string) {
	s.Transactions = items
}

func (s *State) SetTotals(buy, sell string) {
	s.TotalBuy = buy
	s.TotalSell = sell
}

func (s *State) SetHoldings(items []string) {
	s.Holdings = items
}
