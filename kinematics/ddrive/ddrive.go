// Package ddrive implements forward and inverse kinematics for a two wheeled differential drive base.
package ddrive

import (
	"math"
	"sync"

	"github.com/pkg/errors"

	"go.viam.com/diffdrive/logging"
	"go.viam.com/diffdrive/spatialmath"
	"go.viam.com/diffdrive/utils"
)

// lateralTolerance is the largest sideways twist component treated as zero.
const lateralTolerance = 1e-4

// DiffDrive is the kinematic model of a single differential drive robot. It integrates successive
// wheel angle readings into a world frame pose. Methods are safe to call concurrently, but forward
// kinematics is order dependent: each call consumes the wheel angles stored by the previous one.
type DiffDrive[T utils.Float] struct {
	logger logging.Logger

	wheelRadius     T
	wheelSeparation T

	mu        sync.Mutex
	pose      spatialmath.Pose2D[T]
	phi       WheelState[T]
	phidot    WheelState[T]
	commanded WheelState[T]
}

// New returns a DiffDrive at the origin with zeroed wheel angles. wheelRadius and wheelSeparation
// (distance between the wheel contact points) must share a length unit, which is then the unit of
// every pose and linear velocity.
func New[T utils.Float](wheelRadius, wheelSeparation T, logger logging.Logger) (*DiffDrive[T], error) {
	if !validDimension(wheelRadius) {
		return nil, newInvalidDimensionError("wheel radius", float64(wheelRadius))
	}
	if !validDimension(wheelSeparation) {
		return nil, newInvalidDimensionError("wheel separation", float64(wheelSeparation))
	}
	if logger == nil {
		logger = logging.NewBlankLogger("ddrive")
	}
	logger.Infof("created differential drive with wheel radius %v and wheel separation %v", wheelRadius, wheelSeparation)

	return &DiffDrive[T]{
		logger:          logger,
		wheelRadius:     wheelRadius,
		wheelSeparation: wheelSeparation,
	}, nil
}

func validDimension[T utils.Float](v T) bool {
	f := float64(v)
	return f > 0 && !math.IsInf(f, 0)
}

// WheelRadius returns the radius of the wheels.
func (dd *DiffDrive[T]) WheelRadius() T {
	return dd.wheelRadius
}

// WheelSeparation returns the distance between the wheels.
func (dd *DiffDrive[T]) WheelSeparation() T {
	return dd.wheelSeparation
}

// Pose returns the current world frame pose.
func (dd *DiffDrive[T]) Pose() spatialmath.Pose2D[T] {
	dd.mu.Lock()
	defer dd.mu.Unlock()
	return dd.pose
}

// WheelAngles returns the wheel angles given to the last forward kinematics call.
func (dd *DiffDrive[T]) WheelAngles() WheelState[T] {
	dd.mu.Lock()
	defer dd.mu.Unlock()
	return dd.phi
}

// WheelSpeeds returns the wheel speeds measured by the last forward kinematics call.
func (dd *DiffDrive[T]) WheelSpeeds() WheelState[T] {
	dd.mu.Lock()
	defer dd.mu.Unlock()
	return dd.phidot
}

// CommandedSpeeds returns the wheel speeds last stored with SetCommandedSpeeds.
func (dd *DiffDrive[T]) CommandedSpeeds() WheelState[T] {
	dd.mu.Lock()
	defer dd.mu.Unlock()
	return dd.commanded
}

// SetCommandedSpeeds records the wheel speeds most recently sent to the motors.
func (dd *DiffDrive[T]) SetCommandedSpeeds(speeds WheelState[T]) {
	dd.mu.Lock()
	defer dd.mu.Unlock()
	dd.commanded = speeds
}

// SpeedsFromTwist computes the wheel speeds that produce the body twist tw (inverse kinematics).
// A differential drive cannot move sideways, so a twist with a nonzero YDot returns a
// LateralTwistError. The model is not modified.
func (dd *DiffDrive[T]) SpeedsFromTwist(tw spatialmath.Twist2D[T]) (WheelState[T], error) {
	if !utils.AlmostEqual(tw.YDot, 0, T(lateralTolerance)) {
		return WheelState[T]{}, NewLateralTwistError(float64(tw.YDot))
	}

	d := dd.wheelSeparation / 2
	r := dd.wheelRadius
	return WheelState[T]{
		Left:  (1 / r) * (-d*tw.ThetaDot + tw.XDot),
		Right: (1 / r) * (d*tw.ThetaDot + tw.XDot),
	}, nil
}

// TwistFromSpeeds computes the body twist produced by the given wheel speeds.
func (dd *DiffDrive[T]) TwistFromSpeeds(speeds WheelState[T]) spatialmath.Twist2D[T] {
	return spatialmath.Twist2D[T]{
		ThetaDot: (dd.wheelRadius / dd.wheelSeparation) * (speeds.Right - speeds.Left),
		XDot:     (dd.wheelRadius / 2) * (speeds.Left + speeds.Right),
	}
}

// ForwardKinematics updates the pose from newly measured wheel angles, assuming one unit of time
// has passed since the previous call, and returns the new pose.
func (dd *DiffDrive[T]) ForwardKinematics(phiNew WheelState[T]) spatialmath.Pose2D[T] {
	dd.mu.Lock()
	defer dd.mu.Unlock()
	return dd.integrate(phiNew, 1)
}

// ForwardKinematicsDt is ForwardKinematics for an explicit elapsed time dt since the previous
// call. The pose depends only on the wheel displacement; the stored wheel speeds are per unit of
// dt. dt must be positive and small enough neither way to overflow the speeds.
func (dd *DiffDrive[T]) ForwardKinematicsDt(phiNew WheelState[T], dt T) (spatialmath.Pose2D[T], error) {
	if !validDimension(dt) || !validDimension(1/dt) {
		return spatialmath.Pose2D[T]{}, errors.Errorf("elapsed time must be positive and finite, got %v", dt)
	}
	dd.mu.Lock()
	defer dd.mu.Unlock()
	return dd.integrate(phiNew, dt), nil
}

// integrate must be called with mu held.
func (dd *DiffDrive[T]) integrate(phiNew WheelState[T], dt T) spatialmath.Pose2D[T] {
	dphi := phiNew.Sub(dd.phi)
	dd.phidot = dphi.Scale(1 / dt)
	dd.phi = phiNew

	// B is the body frame at the previous pose, B' the body frame once phiNew is reached. The
	// twist of the whole displacement is integrated over one step.
	displacement := dd.TwistFromSpeeds(dphi)
	tWB := spatialmath.Transform2DFromPose(dd.pose)
	tBBPrime := spatialmath.IntegrateTwist(displacement)
	tWBPrime := tWB.Compose(tBBPrime)

	dd.pose = tWBPrime.ToPose()
	dd.logger.Debugw("forward kinematics",
		"wheel_angles", phiNew,
		"wheel_speeds", dd.phidot,
		"displacement", displacement,
		"pose", dd.pose,
	)
	return dd.pose
}
