// Package planner implements the scheduling core: the interval-driven
// review factory, the daily capacity model, the greedy rebalancer, and
// the retention adjustment heuristics.
//
// Everything in this package is pure calculation over domain values.
// Loading state and persisting the results is the service layer's job,
// which keeps the algorithms deterministic and directly testable.
package planner
