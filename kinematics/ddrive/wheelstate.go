package ddrive

import (
	"fmt"

	"go.viam.com/diffdrive/utils"
)

// WheelState is a pair of per-wheel values for a two wheeled base. It carries no unit; the same
// type holds wheel angles (radians), wheel speeds (radians per second) and RPM.
type WheelState[T utils.Float] struct {
	Left  T `json:"left"`
	Right T `json:"right"`
}

// NewWheelState constructs a WheelState.
func NewWheelState[T utils.Float](left, right T) WheelState[T] {
	return WheelState[T]{Left: left, Right: right}
}

// ToRPM converts wheel speeds in radians per second to revolutions per minute.
func (ws WheelState[T]) ToRPM() WheelState[T] {
	return WheelState[T]{Left: utils.RadPerSecToRPM(ws.Left), Right: utils.RadPerSecToRPM(ws.Right)}
}

// ToRadPerSec converts wheel speeds in revolutions per minute to radians per second.
func (ws WheelState[T]) ToRadPerSec() WheelState[T] {
	return WheelState[T]{Left: utils.RPMToRadPerSec(ws.Left), Right: utils.RPMToRadPerSec(ws.Right)}
}

// Sub returns the per-wheel difference ws - other.
func (ws WheelState[T]) Sub(other WheelState[T]) WheelState[T] {
	return WheelState[T]{Left: ws.Left - other.Left, Right: ws.Right - other.Right}
}

// Scale multiplies both wheels by s.
func (ws WheelState[T]) Scale(s T) WheelState[T] {
	return WheelState[T]{Left: ws.Left * s, Right: ws.Right * s}
}

func (ws WheelState[T]) String() string {
	return fmt.Sprintf("left:%v right:%v", ws.Left, ws.Right)
}
