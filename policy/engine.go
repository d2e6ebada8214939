// Package policy gates tool dispatch with Rego rules.
package policy

import (
	"context"

	"github.com/open-policy-agent/opa/rego"
	"github.com/pkg/errors"
)

// Engine is the OPA policy engine that decides whether a tool call may run.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a policy engine from the given Rego policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.travel_policy.result"),
		rego.Module("travel_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to prepare rego")
	}

	return &Engine{query: query}, nil
}

// Allow evaluates the policy for a tool call. It returns whether the call
// is allowed, and the reason when it is not.
func (e *Engine) Allow(ctx context.Context, tool string, args map[string]any) (bool, string, error) {
	input := map[string]any{
		"tool": tool,
		"args": args,
	}

	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return false, "", errors.Wrap(err, "failed to evaluate policy")
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		// The policy defines a default, so an empty result means the
		// module is broken rather than permissive.
		return false, "no policy result", nil
	}

	obj, ok := results[0].Expressions[0].Value.(map[string]any)
	if !ok {
		return false, "unexpected policy result type", nil
	}

	allowed, _ := obj["allow"].(bool)
	reason, _ := obj["reason"].(string)
	return allowed, reason, nil
}

// DefaultPolicy allows the assistant's three tools and rejects flight
// searches for parties too large to book in one reservation.
const DefaultPolicy = `
package travel_policy

import rego.v1

known_tools := {"searchFlights", "searchHotels", "confirmBooking"}

default result := {"allow": true, "reason": ""}

result := {"allow": false, "reason": "unknown tool"} if {
	not input.tool in known_tools
}

party_size := object.get(input.args, "adults", 0) +
	object.get(input.args, "children", 0) +
	object.get(input.args, "infants", 0)

result := {"allow": false, "reason": "party too large for a single booking"} if {
	input.tool == "searchFlights"
	party_size > 9
}
`
