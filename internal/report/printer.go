// FILENAME: internal/report/printer.go
package report

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/xkilldash9x/round-table/internal/config"
	"github.com/xkilldash9x/round-table/internal/models"
)

var (
	roundStyle = lipgloss.NewStyle().Foreground(config.ColorFocus).Bold(true)
	nameStyle  = lipgloss.NewStyle().Foreground(config.ColorAccent)
	countStyle = lipgloss.NewStyle().Foreground(config.ColorOk)
)

// Printer writes one line per meal and one per completed round.
type Printer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) OnMeal(e models.MealEvent) {
	p.println(fmt.Sprintf("%s ate %s time(s)",
		nameStyle.Render(e.Name), countStyle.Render(fmt.Sprint(e.Meals))))
}

func (p *Printer) OnRound(e models.RoundEvent) {
	p.println(roundStyle.Render(fmt.Sprintf("Round %d", e.Completed)))
}

// Plan prints which seats eat in each round of a full cycle.
func (p *Printer) Plan(cfg config.Table, plan [][]int) {
	for round, seats := range plan {
		names := make([]string, len(seats))
		for i, s := range seats {
			names[i] = nameStyle.Render(cfg.Seats[s].Name)
		}
		p.println(fmt.Sprintf("%s %v", roundStyle.Render(fmt.Sprintf("Round %d:", round)), names))
	}
}

func (p *Printer) println(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.w, line)
}
