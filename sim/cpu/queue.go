// Queues used by the CPU schedulers. All queues hold indices into the
// scheduler's owning task slice, never task copies.

package cpu

import (
	"container/heap"
	"strings"

	"github.com/schedsim/schedsim/sim"
)

// arrivalQueue implements heap.Interface and orders not-yet-admitted tasks by
// arrival time, then by input position.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type arrivalQueue struct {
	idx   []int
	tasks []*sim.Task
}

func newArrivalQueue(tasks []*sim.Task) *arrivalQueue {
	aq := &arrivalQueue{idx: make([]int, 0, len(tasks)), tasks: tasks}
	for i := range tasks {
		aq.idx = append(aq.idx, i)
	}
	heap.Init(aq)
	return aq
}

func (aq *arrivalQueue) Len() int { return len(aq.idx) }
func (aq *arrivalQueue) Less(i, j int) bool {
	ti, tj := aq.tasks[aq.idx[i]], aq.tasks[aq.idx[j]]
	if ti.ArrivalTime != tj.ArrivalTime {
		return ti.ArrivalTime < tj.ArrivalTime
	}
	return aq.idx[i] < aq.idx[j]
}
func (aq *arrivalQueue) Swap(i, j int) { aq.idx[i], aq.idx[j] = aq.idx[j], aq.idx[i] }

func (aq *arrivalQueue) Push(x any) {
	aq.idx = append(aq.idx, x.(int))
}

func (aq *arrivalQueue) Pop() any {
	old := aq.idx
	n := len(old)
	item := old[n-1]
	aq.idx = old[0 : n-1]
	return item
}

// popArrived removes and returns the next task index whose arrival time is <= now.
func (aq *arrivalQueue) popArrived(now int64) (int, bool) {
	if aq.Len() == 0 || aq.tasks[aq.idx[0]].ArrivalTime > now {
		return 0, false
	}
	return heap.Pop(aq).(int), true
}

// readyQueue is the FIFO queue of admitted, unfinished tasks.
type readyQueue struct {
	queue []int
	tasks []*sim.Task
}

// Enqueue adds a task index to the back of the queue.
func (rq *readyQueue) Enqueue(i int) {
	rq.queue = append(rq.queue, i)
}

// Dequeue removes the task index at the front of the queue.
// Panics on an empty queue.
func (rq *readyQueue) Dequeue() int {
	if len(rq.queue) == 0 {
		panic("readyQueue: dequeue from empty queue")
	}
	head := rq.queue[0]
	rq.queue = rq.queue[1:]
	return head
}

// Len returns the number of tasks in the queue.
func (rq *readyQueue) Len() int {
	return len(rq.queue)
}

// Items returns the queue contents for iteration. Callers MUST NOT append to or reslice it.
func (rq *readyQueue) Items() []int {
	return rq.queue
}

// MeanRemaining returns floor(mean remaining time) over the queue, or 0 if empty.
func (rq *readyQueue) MeanRemaining() int64 {
	if len(rq.queue) == 0 {
		return 0
	}
	var sum int64
	for _, i := range rq.queue {
		sum += rq.tasks[i].RemainingTime
	}
	return sum / int64(len(rq.queue))
}

func (rq *readyQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, idx := range rq.queue {
		sb.WriteString(rq.tasks[idx].ID)
		if i < len(rq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// burstQueue implements heap.Interface for SJF: shortest burst first, then
// lowest priority value, then earliest arrival, then ID.
type burstQueue struct {
	idx   []int
	tasks []*sim.Task
}

func (bq *burstQueue) Len() int { return len(bq.idx) }
func (bq *burstQueue) Less(i, j int) bool {
	ti, tj := bq.tasks[bq.idx[i]], bq.tasks[bq.idx[j]]
	if ti.BurstTime != tj.BurstTime {
		return ti.BurstTime < tj.BurstTime
	}
	if ti.Priority != tj.Priority {
		return ti.Priority < tj.Priority
	}
	if ti.ArrivalTime != tj.ArrivalTime {
		return ti.ArrivalTime < tj.ArrivalTime
	}
	return ti.ID < tj.ID
}
func (bq *burstQueue) Swap(i, j int) { bq.idx[i], bq.idx[j] = bq.idx[j], bq.idx[i] }

func (bq *burstQueue) Push(x any) {
	bq.idx = append(bq.idx, x.(int))
}

func (bq *burstQueue) Pop() any {
	old := bq.idx
	n := len(old)
	item := old[n-1]
	bq.idx = old[0 : n-1]
	return item
}

// Reheap restores heap order after in-place priority mutation.
// O(n) per call; invoked once per completion.
func (bq *burstQueue) Reheap() {
	heap.Init(bq)
}
