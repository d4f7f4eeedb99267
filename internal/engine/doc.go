// Package engine is the resolution layer: it owns the per-instance parser
// state and dispatches field handlers in dependency order.
//
// Single-field resolution is fail-fast and surfaces the full error taxonomy
// to its caller. A full-registry run is the opposite: per-field failures are
// logged and recorded as sentinels, a continuation predicate decides whether
// to keep going, and anything escaping the loop itself is swallowed so the
// caller always gets the instance back with whatever partial state was
// reached. Tests assert on the recorded failure list, not on a returned
// error.
package engine
