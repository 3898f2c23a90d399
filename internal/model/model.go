// Package model defines the domain models for hydrate.
package model

// Action identifies what an intake event records.
type Action string

// Actions that can appear in the intake log.
const (
	// ActionDrankWater is recorded when the user confirms a reminder.
	ActionDrankWater Action = "Drank water"
)

// Label returns the literal text written to the store for this action.
func (a Action) Label() string {
	return string(a)
}

// Valid reports whether the action is a known action.
func (a Action) Valid() bool {
	return a == ActionDrankWater
}
