// FILENAME: internal/models/models.go
package models

import (
	"fmt"
	"time"
)

// MealEvent is emitted every time a philosopher starts eating.
type MealEvent struct {
	Seat  int
	Name  string
	Meals int64 // Cumulative, including this meal
	Round int
	At    time.Time
}

func (e MealEvent) String() string {
	return fmt.Sprintf("%s ate %d time(s)", e.Name, e.Meals)
}

// RoundEvent is emitted once per barrier trip.
type RoundEvent struct {
	Completed int
	Next      int
	At        time.Time
}

func (e RoundEvent) String() string {
	return fmt.Sprintf("Round %d", e.Completed)
}

// SeatStats is a point-in-time view of one philosopher.
type SeatStats struct {
	Seat    int           `json:"seat"`
	Name    string        `json:"name"`
	Meals   int64         `json:"meals"`
	EatTime time.Duration `json:"eat_time"`
}

// Observer receives table events. Implementations must be safe for
// concurrent use; OnRound is called while the barrier lock is held.
type Observer interface {
	OnMeal(MealEvent)
	OnRound(RoundEvent)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	Meal  func(MealEvent)
	Round func(RoundEvent)
}

func (o ObserverFuncs) OnMeal(e MealEvent) {
	if o.Meal != nil {
		o.Meal(e)
	}
}

func (o ObserverFuncs) OnRound(e RoundEvent) {
	if o.Round != nil {
		o.Round(e)
	}
}

// Fanout delivers every event to each observer in order.
type Fanout []Observer

func (f Fanout) OnMeal(e MealEvent) {
	for _, o := range f {
		o.OnMeal(e)
	}
}

func (f Fanout) OnRound(e RoundEvent) {
	for _, o := range f {
		o.OnRound(e)
	}
}
