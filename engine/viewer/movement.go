package viewer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// StepSize is the distance one movement command translates the model, in model space.
const StepSize float32 = 0.1

// Command is a discrete model movement requested by an arrow key.
type Command int

const (
	CommandLeft Command = iota
	CommandRight
	CommandUp
	CommandDown
)

// Translation returns the fixed offset the command applies to the model transform.
//
// Returns:
//   - mgl32.Vec3: the translation vector, zero for an unknown command
func (c Command) Translation() mgl32.Vec3 {
	switch c {
	case CommandLeft:
		return mgl32.Vec3{-StepSize, 0, 0}
	case CommandRight:
		return mgl32.Vec3{StepSize, 0, 0}
	case CommandUp:
		return mgl32.Vec3{0, StepSize, 0}
	case CommandDown:
		return mgl32.Vec3{0, -StepSize, 0}
	default:
		return mgl32.Vec3{}
	}
}

func (c Command) String() string {
	switch c {
	case CommandLeft:
		return "left"
	case CommandRight:
		return "right"
	case CommandUp:
		return "up"
	case CommandDown:
		return "down"
	default:
		return fmt.Sprintf("Command(%d)", int(c))
	}
}

// Queue is an unbounded FIFO of movement commands. It is not safe for concurrent use.
type Queue struct {
	items []Command
}

// Push appends cmd to the back of the queue.
func (q *Queue) Push(cmd Command) {
	q.items = append(q.items, cmd)
}

// Drain pops commands from the front and passes each to consume until the queue is empty.
// Commands pushed by consume are drained in the same call.
//
// Parameters:
//   - consume: receives each command exactly once, in insertion order
func (q *Queue) Drain(consume func(Command)) {
	for len(q.items) > 0 {
		cmd := q.items[0]
		q.items = q.items[1:]
		consume(cmd)
	}
	q.items = nil
}

// Len returns the number of pending commands.
func (q *Queue) Len() int {
	return len(q.items)
}
