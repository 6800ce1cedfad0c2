// Package canvas turns a module grid into an ordered list of vector drawing
// commands. Later commands paint over earlier ones.
package canvas

import (
	"fmt"
	"image/color"
)

// Op is the kind of a drawing command.
type Op uint8

const (
	OpSetColor Op = iota
	OpRectangle
	OpRoundedRectangle
)

func (o Op) String() string {
	switch o {
	case OpSetColor:
		return "setColor"
	case OpRectangle:
		return "rectangle"
	case OpRoundedRectangle:
		return "roundedRectangle"
	}
	return fmt.Sprintf("Op(%d)", uint8(o))
}

// Command is one drawing instruction. Color is meaningful for OpSetColor,
// the coordinates for the shape ops and RX, RY for OpRoundedRectangle only.
// Rectangles span (X0, Y0) to (X1, Y1) in pixels.
type Command struct {
	Op     Op
	Color  color.RGBA
	X0, Y0 float64
	X1, Y1 float64
	RX, RY float64
}

func (c Command) String() string {
	switch c.Op {
	case OpSetColor:
		return fmt.Sprintf("setColor(%v)", c.Color)
	case OpRectangle:
		return fmt.Sprintf("rectangle(%g,%g,%g,%g)", c.X0, c.Y0, c.X1, c.Y1)
	case OpRoundedRectangle:
		return fmt.Sprintf("roundedRectangle(%g,%g,%g,%g,%g,%g)", c.X0, c.Y0, c.X1, c.Y1, c.RX, c.RY)
	}
	return c.Op.String()
}

// Canvas receives drawing commands. Shapes are filled with the color most
// recently passed to SetColor.
type Canvas interface {
	SetColor(c color.RGBA)
	Rectangle(x0, y0, x1, y1 float64)
	RoundedRectangle(x0, y0, x1, y1, rx, ry float64)
}

// Recorder is a Canvas that keeps every command it receives.
type Recorder struct {
	Commands []Command
}

func (r *Recorder) SetColor(c color.RGBA) {
	r.Commands = append(r.Commands, Command{Op: OpSetColor, Color: c})
}

func (r *Recorder) Rectangle(x0, y0, x1, y1 float64) {
	r.Commands = append(r.Commands, Command{Op: OpRectangle, X0: x0, Y0: y0, X1: x1, Y1: y1})
}

func (r *Recorder) RoundedRectangle(x0, y0, x1, y1, rx, ry float64) {
	r.Commands = append(r.Commands, Command{Op: OpRoundedRectangle, X0: x0, Y0: y0, X1: x1, Y1: y1, RX: rx, RY: ry})
}

// Replay sends cmds to c in order.
func Replay(cmds []Command, c Canvas) {
	for _, cmd := range cmds {
		switch cmd.Op {
		case OpSetColor:
			c.SetColor(cmd.Color)
		case OpRectangle:
			c.Rectangle(cmd.X0, cmd.Y0, cmd.X1, cmd.Y1)
		case OpRoundedRectangle:
			c.RoundedRectangle(cmd.X0, cmd.Y0, cmd.X1, cmd.Y1, cmd.RX, cmd.RY)
		}
	}
}
