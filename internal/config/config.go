// FILENAME: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Global Configuration
const (
	// Table
	DefaultPhilosophers = 5
	MinPhilosophers     = 2
	DefaultEatUnit      = time.Second // Seat i eats for (i+1) units

	// Runtime
	DefaultRounds  = 0 // 0 = run until interrupted
	DefaultLogFile = "round-table.log"
	DefaultOutDir  = ""

	// UI
	EventBuffer = 256
)

// DefaultNames seeds the table when no config file is given.
var DefaultNames = []string{
	"Aristotle", "Pythagoras", "Plato", "Socrates", "Cicero", "Kafka", "Kant",
}

// UI Colors (Palette)
var (
	ColorFocus  = lipgloss.Color("39")  // Vivid Blue
	ColorAccent = lipgloss.Color("212") // Pink
	ColorErr    = lipgloss.Color("196") // Red
	ColorWarn   = lipgloss.Color("214") // Orange
	ColorOk     = lipgloss.Color("42")  // Green
	ColorSub    = lipgloss.Color("240") // Dark Grey
)

// Seat describes a single philosopher.
type Seat struct {
	Name    string        `toml:"name"`
	EatTime time.Duration `toml:"eat-time"`
}

// Validate implements validation.Validatable.
func (s Seat) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required),
		validation.Field(&s.EatTime, validation.Min(time.Duration(0))),
	)
}

// Table binds the philosopher count and the seating together so they
// cannot drift apart.
type Table struct {
	Philosophers int    `toml:"philosophers"`
	Seats        []Seat `toml:"seats"`
}

// Default builds the classic seating for n philosophers.
func Default(n int) (Table, error) {
	if n > len(DefaultNames) {
		return Table{}, fmt.Errorf("only %d default names available, %d philosophers requested", len(DefaultNames), n)
	}
	if n < 0 {
		n = 0
	}
	cfg := Table{Philosophers: n, Seats: make([]Seat, n)}
	for i := 0; i < n; i++ {
		cfg.Seats[i] = Seat{
			Name:    DefaultNames[i],
			EatTime: time.Duration(i+1) * DefaultEatUnit,
		}
	}
	return cfg, cfg.Validate()
}

// Load reads a table definition from a TOML file and validates it.
// A missing philosophers key is inferred from the seat list.
func Load(path string) (Table, error) {
	var cfg Table
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Table{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if !meta.IsDefined("philosophers") {
		cfg.Philosophers = len(cfg.Seats)
	}
	if err := cfg.Validate(); err != nil {
		return Table{}, fmt.Errorf("invalid table %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the table is runnable.
func (t Table) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Philosophers, validation.Required, validation.Min(MinPhilosophers)),
		validation.Field(&t.Seats,
			validation.Required,
			validation.Length(t.Philosophers, t.Philosophers).Error("must have one seat per philosopher"),
			validation.By(uniqueNames),
		),
	)
}

// WithEatTime returns a copy of the table with every seat eating for d.
func (t Table) WithEatTime(d time.Duration) Table {
	seats := make([]Seat, len(t.Seats))
	for i, s := range t.Seats {
		s.EatTime = d
		seats[i] = s
	}
	t.Seats = seats
	return t
}

func uniqueNames(value interface{}) error {
	seats, _ := value.([]Seat)
	seen := make(map[string]struct{}, len(seats))
	for _, s := range seats {
		if s.Name == "" {
			continue
		}
		if _, dup := seen[s.Name]; dup {
			return errors.New("duplicate seat name " + s.Name)
		}
		seen[s.Name] = struct{}{}
	}
	return nil
}
