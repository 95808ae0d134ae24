// FILENAME: internal/ui/bridge.go
package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xkilldash9x/round-table/internal/config"
	"github.com/xkilldash9x/round-table/internal/models"
)

// Bridge turns table events into tea messages. It is a models.Observer;
// the program side drains Events.
type Bridge struct {
	events    chan tea.Msg
	done      chan struct{}
	closeOnce sync.Once
}

func NewBridge() *Bridge {
	return &Bridge{
		events: make(chan tea.Msg, config.EventBuffer),
		done:   make(chan struct{}),
	}
}

// Events is drained by the ingestion loop that feeds the program.
func (b *Bridge) Events() <-chan tea.Msg {
	return b.events
}

func (b *Bridge) OnMeal(e models.MealEvent) {
	b.send(MealMsg(e))
}

func (b *Bridge) OnRound(e models.RoundEvent) {
	b.send(RoundMsg(e))
}

// Close stops delivery; pending and future events are discarded so the
// table never blocks on a dashboard that has gone away.
func (b *Bridge) Close() {
	b.closeOnce.Do(func() { close(b.done) })
}

func (b *Bridge) send(msg tea.Msg) {
	select {
	case b.events <- msg:
	case <-b.done:
	}
}
