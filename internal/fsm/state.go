package fsm

type State int
type Event int

// Args is passed to every handler. Init is only set on the enter that
// follows construction.
type Args struct {
	Init     bool
	Previous State
	Next     State
	Payload  []any
}

type HandlerFn[T any] func(data *T, args Args)

// Handlers is the handler set of one state. Events is indexed by Event; a nil
// or missing entry means the state ignores that event.
type Handlers[T any] struct {
	Name    string
	OnEnter HandlerFn[T]
	OnExit  HandlerFn[T]
	Events  []HandlerFn[T]
}

// Table maps every State (by index) to its handler set.
type Table[T any] []Handlers[T]

type Entity[T any] struct {
	Data *T

	initialState State
	currentState State
	machine      Table[T]
	queue        *Queue
}

// NewEntity builds a machine in its initial state and queues the initial
// enter hook. Handlers run against data, one per frame, in trigger order.
func NewEntity[T any](data *T, machine Table[T], initialState State, frames FrameRequester) *Entity[T] {
	entity := &Entity[T]{
		Data:         data,
		initialState: initialState,
		currentState: initialState,
		machine:      machine,
		queue:        NewQueue(frames),
	}
	if entity.known(initialState) {
		entity.enqueue(machine[initialState].OnEnter, Args{Init: true, Previous: initialState, Next: initialState})
	}
	return entity
}

func (entity *Entity[T]) GetCurrentState() State {
	return entity.currentState
}

func (entity *Entity[T]) GetInitialState() State {
	return entity.initialState
}

// StateName returns the configured name of the current state.
func (entity *Entity[T]) StateName() string {
	if !entity.known(entity.currentState) {
		return ""
	}
	return entity.machine[entity.currentState].Name
}

// Pending reports how many handler invocations are waiting to run.
func (entity *Entity[T]) Pending() int {
	return entity.queue.Len()
}

// Trigger queues the current state's handler for e. Events the current state
// does not handle are dropped.
func (entity *Entity[T]) Trigger(e Event, payload ...any) {
	entity.enqueue(entity.handler(e), Args{
		Previous: entity.currentState,
		Next:     entity.currentState,
		Payload:  payload,
	})
}

// Transition moves to next and queues the exit hook of the old state followed
// by the enter hook of the new one. The state changes immediately, the hooks
// run on later frames. Unknown states and the current state are ignored.
func (entity *Entity[T]) Transition(next State) {
	if !entity.known(next) || next == entity.currentState {
		return
	}

	previous := entity.currentState
	entity.enqueue(entity.machine[previous].OnExit, Args{Previous: previous, Next: next})
	entity.currentState = next
	entity.enqueue(entity.machine[next].OnEnter, Args{Previous: previous, Next: next})
}

func (entity *Entity[T]) known(s State) bool {
	return s >= 0 && int(s) < len(entity.machine)
}

func (entity *Entity[T]) handler(e Event) HandlerFn[T] {
	if !entity.known(entity.currentState) {
		return nil
	}
	events := entity.machine[entity.currentState].Events
	if e < 0 || int(e) >= len(events) {
		return nil
	}
	return events[e]
}

func (entity *Entity[T]) enqueue(fn HandlerFn[T], args Args) {
	if fn == nil {
		return
	}
	data := entity.Data
	entity.queue.Enqueue(func() {
		fn(data, args)
	})
}
