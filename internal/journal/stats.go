package journal

// Stats summarizes a journal.
type Stats struct {
	Lines           int
	Clients         int
	Workers         int
	Served          int // clients that were called by a worker
	Rejected        int // clients that found the office closed
	ServedByService [MaxService]int
	Breaks          int
	ClosingLine     uint64
}

// Summarize counts what happened in a journal. It does not verify it.
func Summarize(entries []Entry) Stats {
	var s Stats
	s.Lines = len(entries)

	entered := make(map[int]bool)
	for _, e := range entries {
		switch e.Action {
		case ClientStarted:
			s.Clients++
		case ClientEntering:
			entered[e.ActorID] = true
		case ClientCalled:
			s.Served++
		case ClientGoingHome:
			if !entered[e.ActorID] {
				s.Rejected++
			}
		case WorkerStarted:
			s.Workers++
		case WorkerServing:
			if e.Service >= 1 && e.Service <= MaxService {
				s.ServedByService[e.Service-1]++
			}
		case WorkerBreak:
			s.Breaks++
		case OfficeClosing:
			if s.ClosingLine == 0 {
				s.ClosingLine = e.Line
			}
		}
	}
	return s
}
