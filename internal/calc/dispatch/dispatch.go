// Package dispatch runs a calculation named by kind on a raw JSON payload.
// It backs the saved history and the websocket channel.
package dispatch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"ShaftGear/internal/calc/fatigue"
	"ShaftGear/internal/calc/gear"
	"ShaftGear/internal/calc/shaft"
	"ShaftGear/internal/calcerr"
	"ShaftGear/internal/material"
	"ShaftGear/internal/validate"
)

const (
	KindShaft       = "shaft"
	KindShaftDesign = "shaft_design"
	KindGear        = "gear"
	KindFatigue     = "fatigue"
	KindMaterial    = "material"
)

// Kinds lists the calculation kinds in a stable order.
var Kinds = []string{KindShaft, KindShaftDesign, KindGear, KindFatigue, KindMaterial}

type Calculator struct {
	Materials material.Source
	Validator *validate.Validator
}

// MaterialQuery is the payload of a material lookup.
type MaterialQuery struct {
	Name string `json:"name"`
}

// Run decodes payload into the input type for kind and calculates it.
func (c *Calculator) Run(kind string, payload json.RawMessage) (any, error) {
	switch kind {
	case KindShaft:
		var in shaft.Input
		if err := decode(payload, &in); err != nil {
			return nil, err
		}
		return shaft.Run(c.Validator, c.Materials, in)
	case KindShaftDesign:
		var in shaft.DesignInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}
		return shaft.RunDesign(c.Validator, c.Materials, in)
	case KindGear:
		var in gear.Input
		if err := decode(payload, &in); err != nil {
			return nil, err
		}
		return gear.Run(c.Validator, c.Materials, in)
	case KindFatigue:
		var in fatigue.Input
		if err := decode(payload, &in); err != nil {
			return nil, err
		}
		return fatigue.Run(c.Validator, c.Materials, in)
	case KindMaterial:
		var q MaterialQuery
		if err := decode(payload, &q); err != nil {
			return nil, err
		}
		return c.Materials.Lookup(q.Name)
	default:
		ve := &calcerr.ValidationError{}
		ve.Add("type", "oneof", fmt.Sprintf("type must be one of [%s]", strings.Join(Kinds, " ")))
		return nil, ve
	}
}

func decode(payload json.RawMessage, v any) error {
	if len(bytes.TrimSpace(payload)) == 0 {
		payload = json.RawMessage("{}")
	}
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		ve := &calcerr.ValidationError{}
		ve.Add("payload", "json", fmt.Sprintf("payload is not valid: %v", err))
		return ve
	}
	return nil
}
