// Package journal implements the run journal: the ordered, gap-free record of
// every observable event in a simulation run, and the tools to read one back.
//
// A [Journal] hands out line numbers under a single mutex and writes each line
// before releasing it, so the number returned by [Journal.Record] is always the
// line's position in the output. Lines look like:
//
//	1: Z 1: started
//	2: U 1: started
//	3: U 1: taking break
//	4: Z 1: entering office for a service 2
//	...
//	17: closing
//
// [Parse] reads a journal back, [Verify] checks it against the run's ordering
// guarantees, [Filter] selects lines by glob and [Summarize] counts outcomes.
package journal
