package dashboard

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7C3AED")).
		Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#3B82F6")).
		Padding(0, 1)

	headingStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#3B82F6"))

	errorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#EF4444")).
		Bold(true)

	mutedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280"))
)

// TerminalView renders the page state as bordered panels.
type TerminalView struct {
	State
	out io.Writer
}

func NewTerminalView(out io.Writer) *TerminalView {
	return &TerminalView{out: out}
}

// Render writes the whole page.
func (v *TerminalView) Render() {
	sections := []string{titleStyle.Render("Stock Ledger")}
	if v.Error != "" {
		sections = append(sections, errorStyle.Render(v.Error))
	}
	sections = append(sections,
		v.summaryPanel(),
		listPanel("Holdings", v.Holdings),
		listPanel("Transactions", v.Transactions),
	)

	fmt.Fprintln(v.out, lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// RenderError writes only the error line, if any.
func (v *TerminalView) RenderError() {
	if v.Error != "" {
		fmt.Fprintln(v.out, errorStyle.Render(v.Error))
	}
}

// RenderTransactions writes only the transaction list.
func (v *TerminalView) RenderTransactions() {
	fmt.Fprintln(v.out, listPanel("Transactions", v.Transactions))
}

// RenderHoldings writes only the holdings list.
func (v *TerminalView) RenderHoldings() {
	fmt.Fprintln(v.out, listPanel("Holdings", v.Holdings))
}

// RenderSummary writes only the totals.
func (v *TerminalView) RenderSummary() {
	fmt.Fprintln(v.out, v.summaryPanel())
}

func (v *TerminalView) summaryPanel() string {
	body := fmt.Sprintf("Total buy:  %s\nTotal sell: %s", v.TotalBuy, v.TotalSell)
	return panelStyle.Render(headingStyle.Render("Summary") + "\n" + body)
}

func listPanel(title string, items []string) string {
	body := mutedStyle.Render("(none)")
	if len(items) > 0 {
		lines := make([]string, len(items))
		for i, item := range items {
			lines[i] = "• " + item
		}
		body = strings.Join(lines, "\n")
	}
	return panelStyle.Render(headingStyle.Render(title) + "\n" + body)
}
