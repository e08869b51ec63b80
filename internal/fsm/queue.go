package fsm

// FrameRequester runs fn once on the next frame boundary.
type FrameRequester interface {
	RequestFrame(fn func())
}

// Queue is the event queue of a single machine. It runs at most one callback
// per frame and only asks for a frame while it has work.
type Queue struct {
	frames  FrameRequester
	pending []func()
	armed   bool
}

func NewQueue(frames FrameRequester) *Queue {
	return &Queue{frames: frames}
}

// Enqueue appends fn to the tail. A callback enqueued from inside a running
// callback is picked up on a later frame, never the current one.
func (q *Queue) Enqueue(fn func()) {
	q.pending = append(q.pending, fn)
	if !q.armed {
		q.arm()
	}
}

func (q *Queue) Len() int {
	return len(q.pending)
}

func (q *Queue) arm() {
	q.armed = true
	q.frames.RequestFrame(q.pump)
}

func (q *Queue) pump() {
	if len(q.pending) == 0 {
		q.armed = false
		return
	}

	fn := q.pending[0]
	q.pending[0] = nil
	q.pending = q.pending[1:]
	fn()

	q.armed = false
	if len(q.pending) > 0 {
		q.arm()
	}
}
