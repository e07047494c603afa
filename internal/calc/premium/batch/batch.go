// Package batch runs many calculations in one request. A failing item does
// not stop the others.
package batch

import (
	"fmt"

	"ShaftGear/internal/calc/gear"
	"ShaftGear/internal/calc/shaft"
	"ShaftGear/internal/calcerr"
	"ShaftGear/internal/material"
	"ShaftGear/internal/validate"
)

const MaxItems = 500

type Item[R any] struct {
	Index      int                 `json:"index"`
	OK         bool                `json:"ok"`
	Result     *R                  `json:"result,omitempty"`
	Error      string              `json:"error,omitempty"`
	Violations []calcerr.Violation `json:"violations,omitempty"`
}

type Result[R any] struct {
	Count     int       `json:"count"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
	Items     []Item[R] `json:"items"`
}

// Add records the outcome of the item at index.
func (r *Result[R]) Add(index int, res R, err error) {
	r.Count++
	if err != nil {
		r.Failed++
		r.Items = append(r.Items, Item[R]{Index: index, Error: err.Error(), Violations: calcerr.Violations(err)})
		return
	}
	r.Succeeded++
	r.Items = append(r.Items, Item[R]{Index: index, OK: true, Result: &res})
}

// Run applies calc to every item in order.
func Run[I, R any](items []I, calc func(I) (R, error)) (Result[R], error) {
	if len(items) == 0 {
		return Result[R]{}, fmt.Errorf("%w: no items", calcerr.ErrInvalidInput)
	}
	if len(items) > MaxItems {
		return Result[R]{}, fmt.Errorf("%w: %d items, at most %d allowed", calcerr.ErrInvalidInput, len(items), MaxItems)
	}
	out := Result[R]{Items: make([]Item[R], 0, len(items))}
	for i, it := range items {
		res, err := calc(it)
		out.Add(i, res, err)
	}
	return out, nil
}

type ShaftInput struct {
	Items []shaft.Input `json:"items"`
}

type GearInput struct {
	Items []gear.Input `json:"items"`
}

func Shaft(v *validate.Validator, src material.Source, in ShaftInput) (Result[shaft.Result], error) {
	return Run(in.Items, func(it shaft.Input) (shaft.Result, error) {
		return shaft.Run(v, src, it)
	})
}

func Gear(v *validate.Validator, src material.Source, in GearInput) (Result[gear.Result], error) {
	return Run(in.Items, func(it gear.Input) (gear.Result, error) {
		return gear.Run(v, src, it)
	})
}
