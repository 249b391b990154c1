// Package testing provides fakes for deterministic clock tests.
//
// [FakeClock] stands in for both the wall clock and the timer primitives.
// Advancing it fires every due timer in deadline order, with Now set to each
// timer's deadline while it runs, so phase alignment and periodic sampling can
// be checked without sleeping:
//
//	clk := clocktest.NewFakeClock()
//	clk.Set(time.Date(2024, 1, 1, 10, 0, 0, 750*int(time.Millisecond), time.Local))
//	sub := timesource.NewStepSource(clk, clk).Subscribe(record)
//	clk.Advance(250 * time.Millisecond) // fires the alignment timer
//
// [RecordingSink] records tick requests in place of a real audio engine.
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import clocktest "github.com/go-drift/clockface/pkg/testing"
package testing
