package tracklite

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// DefaultFrameInterval is the frame interval in seconds used when the caller
// does not supply one, equal to a single frame of 30 FPS video
const DefaultFrameInterval = float32(1.0 / 30.0)

// minNoiseScale is the floor applied to the box height used for scaling
// filter noise, degenerate boxes carry no usable scale
const minNoiseScale = float32(1e-3)

// MotionState represents the constant velocity motion state of a single
// track, being the box center position and its velocity
type MotionState struct {
	X  float32
	Y  float32
	VX float32
	VY float32
}

// StateCov represents the 4x4 state covariance matrix
type StateCov struct {
	*mat.Dense
}

// NewStateCov returns a zeroed 4x4 state covariance matrix
func NewStateCov() StateCov {
	return StateCov{mat.NewDense(4, 4, nil)}
}

// KalmanFilter implements a constant velocity Kalman filter over the
// MotionState.  The measurement is the box center position, velocity is
// estimated through the filter gain from successive corrections.  A single
// KalmanFilter instance is shared by all tracks, the per track state and
// covariance are passed in to each call
type KalmanFilter struct {
	stdWeightPosition float32
	stdWeightVelocity float32
	// updateMat is the 2x4 measurement matrix projecting state to the
	// observed center position
	updateMat *mat.Dense
}

// NewKalmanFilter initializes and returns a new KalmanFilter
func NewKalmanFilter(stdWeightPosition, stdWeightVelocity float32) *KalmanFilter {

	// create updateMat as a 2x4 matrix with the two diagonal elements set
	// to 1 so only the position components are observed
	updateMat := mat.NewDense(2, 4, nil)

	for i := 0; i < 2; i++ {
		updateMat.Set(i, i, 1.0)
	}

	return &KalmanFilter{
		stdWeightPosition: stdWeightPosition,
		stdWeightVelocity: stdWeightVelocity,
		updateMat:         updateMat,
	}
}

// noiseScale returns the scale used for filter noise, derived from the box
// height as larger boxes move more pixels per frame
func (kf *KalmanFilter) noiseScale(height float32) float32 {
	if height < minNoiseScale {
		return minNoiseScale
	}
	return height
}

// Initiate initializes the motion state and covariance from the first
// observed box center.  Velocity starts at zero with high uncertainty so
// the first corrections establish it
func (kf *KalmanFilter) Initiate(state *MotionState, covariance *StateCov,
	cx, cy, height float32) {

	state.X = cx
	state.Y = cy
	state.VX = 0
	state.VY = 0

	h := kf.noiseScale(height)

	// initialize the standard deviation array for the state variables
	std := [4]float32{
		2 * kf.stdWeightPosition * h,  // x position
		2 * kf.stdWeightPosition * h,  // y position
		10 * kf.stdWeightVelocity * h, // x velocity
		10 * kf.stdWeightVelocity * h, // y velocity
	}

	// set the diagonal elements of the covariance matrix to the variances
	for i, v := range std {
		covariance.Set(i, i, float64(v*v))
	}
}

// Predict advances the motion state by dt seconds using the constant
// velocity motion model and grows the covariance by the process noise
func (kf *KalmanFilter) Predict(state *MotionState, covariance *StateCov,
	dt, height float32) {

	// build the motion model matrix for the given time step
	motionMat := mat.NewDense(4, 4, nil)

	for i := 0; i < 4; i++ {
		motionMat.Set(i, i, 1.0)
	}

	motionMat.Set(0, 2, float64(dt))
	motionMat.Set(1, 3, float64(dt))

	h := kf.noiseScale(height)

	// initialize the standard deviation array for the process noise
	std := [4]float32{
		kf.stdWeightPosition * h, // x position
		kf.stdWeightPosition * h, // y position
		kf.stdWeightVelocity * h, // x velocity
		kf.stdWeightVelocity * h, // y velocity
	}

	// create the motion covariance matrix with variances on the diagonal
	motionCov := mat.NewDense(4, 4, nil)

	for i, v := range std {
		motionCov.Set(i, i, float64(v*v))
	}

	// predict the next state mean using the motion model
	meanVec := mat.NewVecDense(4, []float64{
		float64(state.X), float64(state.Y),
		float64(state.VX), float64(state.VY),
	})

	next := mat.NewVecDense(4, nil)
	next.MulVec(motionMat, meanVec)

	state.X = float32(next.AtVec(0))
	state.Y = float32(next.AtVec(1))
	state.VX = float32(next.AtVec(2))
	state.VY = float32(next.AtVec(3))

	// predict the next state covariance using the motion model
	cov := covariance.Dense
	cov.Mul(motionMat, cov)
	cov.Mul(cov, motionMat.T())
	cov.Add(cov, motionCov)
}

// Correct updates the motion state and covariance with an observed box
// center.  The Kalman gain couples the position innovation into the velocity
// components so velocity is estimated from consecutive observations
func (kf *KalmanFilter) Correct(state *MotionState, covariance *StateCov,
	cx, cy, height float32) error {

	// project the state mean and covariance to measurement space
	projectedMean, projectedCov := kf.project(state, covariance, height)

	// perform Cholesky factorization of the projected covariance matrix
	chol := mat.Cholesky{}

	if ok := chol.Factorize(projectedCov); !ok {
		return errors.New("failed to factorize projected covariance")
	}

	// compute the matrix B for Kalman gain calculation
	B := mat.NewDense(4, 2, nil)
	B.Mul(covariance.Dense, kf.updateMat.T())

	// compute the Kalman gain using the Cholesky factorization, gainT
	// holds the transposed 2x4 gain
	var gainT mat.Dense
	err := chol.SolveTo(&gainT, B.T())

	if err != nil {
		return fmt.Errorf("failed to compute kalman gain: %w", err)
	}

	// compute the innovation (measurement residual)
	innovation := mat.NewVecDense(2, []float64{
		float64(cx - projectedMean[0]),
		float64(cy - projectedMean[1]),
	})

	// update the state mean with the innovation
	tmp := mat.NewVecDense(4, nil)
	tmp.MulVec(gainT.T(), innovation)

	state.X += float32(tmp.AtVec(0))
	state.Y += float32(tmp.AtVec(1))
	state.VX += float32(tmp.AtVec(2))
	state.VY += float32(tmp.AtVec(3))

	// update the state covariance
	temp := mat.NewDense(4, 2, nil)
	temp.Mul(gainT.T(), projectedCov)

	temp2 := mat.NewDense(4, 4, nil)
	temp2.Mul(temp, &gainT)

	newCov := mat.NewDense(4, 4, nil)
	newCov.Sub(covariance.Dense, temp2)

	covariance.Dense = newCov

	return nil
}

// project projects the state mean and covariance to measurement space
func (kf *KalmanFilter) project(state *MotionState, covariance *StateCov,
	height float32) ([2]float32, *mat.SymDense) {

	h := kf.noiseScale(height)

	// compute standard deviations for the measurement noise
	std := [2]float32{
		kf.stdWeightPosition * h,
		kf.stdWeightPosition * h,
	}

	// create the innovation covariance matrix (measurement noise covariance)
	innovationCov := mat.NewSymDense(2, nil)

	for i, v := range std {
		innovationCov.SetSym(i, i, float64(v*v))
	}

	// the measurement matrix only observes position so the projected mean
	// is the position components
	projectedMean := [2]float32{state.X, state.Y}

	// project the state covariance to measurement space
	temp := mat.NewDense(2, 4, nil)
	temp.Mul(kf.updateMat, covariance.Dense)

	temp2 := mat.NewDense(2, 2, nil)
	temp2.Mul(temp, kf.updateMat.T())

	projectedCov := mat.NewSymDense(2, nil)

	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			projectedCov.SetSym(i, j, temp2.At(i, j))
		}
	}

	// add the innovation covariance to the projected covariance
	projectedCov.AddSym(projectedCov, innovationCov)

	return projectedMean, projectedCov
}
