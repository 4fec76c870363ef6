package device

import (
	"container/heap"

	"github.com/schedsim/schedsim/sim"
)

// requestQueue implements heap.Interface and orders pending requests by
// sim.IORequest.Less: (arrival, duration, id) ascending.
type requestQueue []*sim.IORequest

func (q requestQueue) Len() int           { return len(q) }
func (q requestQueue) Less(i, j int) bool { return q[i].Less(q[j]) }
func (q requestQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }

func (q *requestQueue) Push(x any) {
	*q = append(*q, x.(*sim.IORequest))
}

func (q *requestQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[0 : n-1]
	return item
}

// push adds a request while preserving heap order.
func (q *requestQueue) push(r *sim.IORequest) {
	heap.Push(q, r)
}

// popHead removes and returns the first request, or nil if empty.
func (q *requestQueue) popHead() *sim.IORequest {
	if q.Len() == 0 {
		return nil
	}
	return heap.Pop(q).(*sim.IORequest)
}

// peek returns the first request without removing it, or nil if empty.
func (q requestQueue) peek() *sim.IORequest {
	if len(q) == 0 {
		return nil
	}
	return q[0]
}
