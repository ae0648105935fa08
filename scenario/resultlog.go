package scenario

import (
	"sync"

	"github.com/sarchlab/motionsim/response"
)

// ResultLog keeps every result message in the order it was sent.
type ResultLog struct {
	lock    sync.Mutex
	results []*response.MotionResult
}

// Receive appends the result.
func (l *ResultLog) Receive(rsp *response.MotionResult) {
	l.lock.Lock()
	l.results = append(l.results, rsp)
	l.lock.Unlock()
}

// Results returns a copy of the results received so far.
func (l *ResultLog) Results() []*response.MotionResult {
	l.lock.Lock()
	defer l.lock.Unlock()

	out := make([]*response.MotionResult, len(l.results))
	copy(out, l.results)

	return out
}

// Final returns the last result of every request, keyed by request GUID.
func (l *ResultLog) Final() map[string]*response.MotionResult {
	l.lock.Lock()
	defer l.lock.Unlock()

	final := make(map[string]*response.MotionResult)
	for _, r := range l.results {
		final[r.RequestGUID] = r
	}

	return final
}
