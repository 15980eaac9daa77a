package core

import (
	"container/heap"
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// delayedTask holds a task scheduled for a future push.
type delayedTask struct {
	runAt time.Time
	task  *Task
	index int // for heap interface
}

type delayedTaskHeap []*delayedTask

func (h delayedTaskHeap) Len() int           { return len(h) }
func (h delayedTaskHeap) Less(i, j int) bool { return h[i].runAt.Before(h[j].runAt) }
func (h delayedTaskHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *delayedTaskHeap) Push(x any) {
	n := len(*h)
	item := x.(*delayedTask)
	item.index = n
	*h = append(*h, item)
}

func (h *delayedTaskHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil // avoid memory leak
	item.index = -1
	*h = old[0 : n-1]
	return item
}

func (h *delayedTaskHeap) peek() *delayedTask {
	if len(*h) == 0 {
		return nil
	}
	return (*h)[0]
}

// delayManager feeds due tasks back into the owning pool. One goroutine
// sleeps until the earliest deadline; adds wake it early when the new task is
// sooner.
type delayManager struct {
	pool   *ThreadPool
	mu     sync.Mutex
	pq     delayedTaskHeap
	wakeup chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
	count  atomic.Int32
}

func newDelayManager(p *ThreadPool) *delayManager {
	ctx, cancel := context.WithCancel(context.Background())
	dm := &delayManager{
		pool:   p,
		pq:     make(delayedTaskHeap, 0),
		wakeup: make(chan struct{}, 1),
		ctx:    ctx,
		cancel: cancel,
	}
	heap.Init(&dm.pq)
	go dm.loop()
	return dm
}

func (dm *delayManager) add(t *Task, delay time.Duration) {
	dm.mu.Lock()
	heap.Push(&dm.pq, &delayedTask{runAt: time.Now().Add(delay), task: t})
	dm.mu.Unlock()
	dm.count.Add(1)

	select {
	case dm.wakeup <- struct{}{}:
	default:
	}
}

func (dm *delayManager) taskCount() int {
	return int(dm.count.Load())
}

// stop cancels the manager goroutine. Tasks still waiting on their delay are
// dropped, matching the pool's shutdown contract for work that never entered
// the queue.
func (dm *delayManager) stop() {
	dm.cancel()
}

func (dm *delayManager) loop() {
	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	for {
		dm.mu.Lock()
		var wait time.Duration
		if next := dm.pq.peek(); next != nil {
			wait = time.Until(next.runAt)
		} else {
			wait = time.Hour
		}
		dm.mu.Unlock()

		if wait <= 0 {
			dm.dispatchDue()
			continue
		}

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(wait)

		select {
		case <-dm.ctx.Done():
			return
		case <-dm.wakeup:
		case <-timer.C:
		}
	}
}

// dispatchDue pushes every task whose deadline has passed.
func (dm *delayManager) dispatchDue() {
	now := time.Now()
	var due []*Task

	dm.mu.Lock()
	for {
		next := dm.pq.peek()
		if next == nil || next.runAt.After(now) {
			break
		}
		item := heap.Pop(&dm.pq).(*delayedTask)
		due = append(due, item.task)
	}
	dm.mu.Unlock()

	for _, t := range due {
		dm.count.Add(-1)
		// The pool may have begun shutting down between the deadline and
		// the push; the rejection is already reported by Push.
		_ = dm.pool.Push(t)
	}
}
