package application

import (
	"context"
	"fmt"
)

// Checker is a dependency health check.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

type checkFunc struct {
	name string
	fn   func(ctx context.Context) error
}

func (c checkFunc) Name() string                    { return c.name }
func (c checkFunc) Check(ctx context.Context) error { return c.fn(ctx) }

// NewChecker adapts a ping function into a Checker.
func NewChecker(name string, fn func(ctx context.Context) error) Checker {
	return checkFunc{name: name, fn: fn}
}

// Readiness aggregates dependency checkers.
type Readiness struct {
	checkers []Checker
}

func NewReadiness(checkers ...Checker) *Readiness {
	return &Readiness{checkers: checkers}
}

// Ready returns the first failing dependency.
func (r *Readiness) Ready(ctx context.Context) error {
	for _, ch := range r.checkers {
		if err := ch.Check(ctx); err != nil {
			return fmt.Errorf("%s: %w", ch.Name(), err)
		}
	}
	return nil
}
