package navgrid

import (
	"gopkg.in/eapache/queue.v1"
)

// ObstacleQueue is the FIFO of cells waiting for cost diffusion. A cell is
// accepted at most once per run.
type ObstacleQueue struct {
	q      *queue.Queue
	queued map[GridIndex]struct{}
}

func NewObstacleQueue() *ObstacleQueue {
	return &ObstacleQueue{
		q:      queue.New(),
		queued: make(map[GridIndex]struct{}),
	}
}

// Push enqueues idx and reports false if idx was already queued this run.
func (o *ObstacleQueue) Push(idx GridIndex) bool {
	if _, ok := o.queued[idx]; ok {
		return false
	}
	o.queued[idx] = struct{}{}
	o.q.Add(idx)
	return true
}

func (o *ObstacleQueue) Pop() (GridIndex, bool) {
	if o.q.Length() == 0 {
		return GridIndex{}, false
	}
	return o.q.Remove().(GridIndex), true
}

func (o *ObstacleQueue) Peek() (GridIndex, bool) {
	if o.q.Length() == 0 {
		return GridIndex{}, false
	}
	return o.q.Peek().(GridIndex), true
}

func (o *ObstacleQueue) Len() int {
	return o.q.Length()
}

func (o *ObstacleQueue) Empty() bool {
	return o.q.Length() == 0
}
