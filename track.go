package tracklite

// TrackState represents the lifecycle state of a tracked object
type TrackState int

const (
	// Tentative is a newly spawned track that has not yet accumulated
	// enough matching evidence
	Tentative TrackState = 0
	// Confirmed is a track matched on enough consecutive frames to be
	// considered reliable
	Confirmed TrackState = 1
	// Lost is a terminal state, the track went unmatched for too many
	// frames and is removed from the live set
	Lost TrackState = 2
)

// String returns the human readable name of the track state
func (s TrackState) String() string {
	switch s {
	case Tentative:
		return "Tentative"
	case Confirmed:
		return "Confirmed"
	case Lost:
		return "Lost"
	default:
		return "Unknown"
	}
}

// confirmAge is the number of matched frames needed before a Tentative
// track transitions to Confirmed
const confirmAge = 3

// Track is a read-only snapshot of a live track published to consumers.
// Snapshots are copies, mutating them has no effect on the Tracker
type Track struct {
	// ID is the unique identity of the track, never reused for the
	// lifetime of the Tracker
	ID int
	// Rect is the current bounding box, the corrected measurement box on
	// matched frames and the predicted box on unmatched frames
	Rect Rect
	// State is the lifecycle state of the track
	State TrackState
	// Label is the class label from the most recently matched detection
	Label string
	// Prob is the confidence of the most recently matched detection
	Prob float32
	// Age is the number of frames this track has been matched since
	// creation
	Age int
	// Missed is the number of consecutive frames the track has gone
	// unmatched
	Missed int
}

// track is the mutable lifecycle record owned exclusively by the Tracker
type track struct {
	id     int
	rect   Rect
	state  TrackState
	label  string
	prob   float32
	age    int
	missed int
	// motion filter state
	motion MotionState
	cov    StateCov
	kf     *KalmanFilter
}

// newTrack creates a Tentative track from an unmatched detection
func newTrack(id int, det DetectedObject, kf *KalmanFilter) *track {

	t := &track{
		id:    id,
		rect:  det.Rect,
		state: Tentative,
		label: det.Label,
		prob:  det.Prob,
		age:   1,
		cov:   NewStateCov(),
		kf:    kf,
	}

	cx, cy := det.Rect.Center()
	kf.Initiate(&t.motion, &t.cov, cx, cy, det.Rect.Height)

	return t
}

// predict advances the motion state by dt seconds and sets the track box to
// the projected rectangle, keeping the last known size
func (t *track) predict(dt float32) {

	t.kf.Predict(&t.motion, &t.cov, dt, t.rect.Height)

	t.rect = NewRect(
		t.motion.X-t.rect.Width/2,
		t.motion.Y-t.rect.Height/2,
		t.rect.Width,
		t.rect.Height,
	)
}

// correct updates the track with a matched detection, resetting the missed
// counter and applying the Confirmed transition rule
func (t *track) correct(det DetectedObject) {

	cx, cy := det.Rect.Center()

	if err := t.kf.Correct(&t.motion, &t.cov, cx, cy, det.Rect.Height); err != nil {
		// degenerate covariance, fall back to resetting the center
		// directly from the measurement
		t.motion.X = cx
		t.motion.Y = cy
	}

	// size is not part of the filter state and resets from the measurement
	t.rect = NewRect(
		t.motion.X-det.Rect.Width/2,
		t.motion.Y-det.Rect.Height/2,
		det.Rect.Width,
		det.Rect.Height,
	)

	t.label = det.Label
	t.prob = det.Prob
	t.missed = 0
	t.age++

	if t.state == Tentative && t.age >= confirmAge {
		t.state = Confirmed
	}
}

// markMissed records an unmatched frame and applies the Lost transition
// rule once the missed counter reaches the given limit
func (t *track) markMissed(maxMissedFrames int) {

	t.missed++

	if t.missed >= maxMissedFrames {
		t.state = Lost
	}
}

// snapshot returns a read-only copy of the track for publishing
func (t *track) snapshot() Track {
	return Track{
		ID:     t.id,
		Rect:   t.rect,
		State:  t.state,
		Label:  t.label,
		Prob:   t.prob,
		Age:    t.age,
		Missed: t.missed,
	}
}
