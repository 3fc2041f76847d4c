package domain

import "encoding/json"

// RuleOp is a comparison operator in a completion-rule leaf.
type RuleOp string

const (
	OpEq  RuleOp = "eq"
	OpNeq RuleOp = "neq"
	OpGt  RuleOp = "gt"
	OpGte RuleOp = "gte"
	OpLt  RuleOp = "lt"
	OpLte RuleOp = "lte"
)

// Rule is a completion rule: a small boolean-expression tree evaluated
// against an activity log. Exactly one of the five shapes is populated:
//
//	leaf     {"field": "steps", "op": "gte", "value": 7000}
//	all      {"all": [r1, r2]}
//	any      {"any": [r1, r2]}
//	not      {"not": r}
//	at-least {"atLeast": {"count": 2, "of": [r1, r2, r3]}}
//
// The JSON shape matches the rule documents stored on quest templates.
// A nil or malformed rule evaluates false — never an error.
type Rule struct {
	Field   string   `json:"field,omitempty"`
	Op      RuleOp   `json:"op,omitempty"`
	Value   any      `json:"value,omitempty"`
	All     []Rule   `json:"all,omitempty"`
	Any     []Rule   `json:"any,omitempty"`
	Not     *Rule    `json:"not,omitempty"`
	AtLeast *AtLeast `json:"atLeast,omitempty"`
}

// AtLeast is true iff at least Count of the Of rules hold.
type AtLeast struct {
	Count int    `json:"count"`
	Of    []Rule `json:"of"`
}

// Eval evaluates the rule against a log. Pure recursive descent; no
// observable short-circuit order is promised.
func (r *Rule) Eval(log ActivityLog) bool {
	if r == nil {
		return false
	}

	// Leaf condition
	if r.Field != "" && r.Op != "" {
		got, ok := log.ruleField(r.Field)
		if !ok {
			return false
		}
		want, ok := ruleValue(r.Value)
		if !ok {
			return false
		}
		return compare(got, r.Op, want)
	}

	if r.All != nil {
		for i := range r.All {
			if !r.All[i].Eval(log) {
				return false
			}
		}
		return true
	}

	if r.Any != nil {
		for i := range r.Any {
			if r.Any[i].Eval(log) {
				return true
			}
		}
		return false
	}

	if r.Not != nil {
		return !r.Not.Eval(log)
	}

	if r.AtLeast != nil && r.AtLeast.Count > 0 {
		passes := 0
		for i := range r.AtLeast.Of {
			if r.AtLeast.Of[i].Eval(log) {
				passes++
			}
		}
		return passes >= r.AtLeast.Count
	}

	return false
}

// ParseRule decodes a stored rule document. Empty, null, or invalid
// JSON yields nil (which evaluates false), matching the contract that
// rule handling never raises.
func ParseRule(data []byte) *Rule {
	if len(data) == 0 {
		return nil
	}
	var r Rule
	if err := json.Unmarshal(data, &r); err != nil {
		return nil
	}
	if r.Field == "" && r.All == nil && r.Any == nil && r.Not == nil && r.AtLeast == nil {
		return nil // decoded to an empty shape, e.g. "null" or "{}"
	}
	return &r
}

// MarshalRule encodes a rule for storage. Nil encodes to nil (stored
// as SQL NULL).
func MarshalRule(r *Rule) []byte {
	if r == nil {
		return nil
	}
	data, err := json.Marshal(r)
	if err != nil {
		return nil
	}
	return data
}

func compare(a float64, op RuleOp, b float64) bool {
	switch op {
	case OpEq:
		return a == b
	case OpNeq:
		return a != b
	case OpGt:
		return a > b
	case OpGte:
		return a >= b
	case OpLt:
		return a < b
	case OpLte:
		return a <= b
	}
	return false
}

// ruleValue coerces a leaf comparison value. JSON decoding produces
// float64 or bool; int covers rules built in Go code.
func ruleValue(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case bool:
		return boolToFloat(x), true
	}
	return 0, false
}
