package tracklite

// Kalman filter noise weights shared by all tracks, these follow the
// standard ByteTrack tuning scaled by box height
const (
	stdWeightPosition = float32(1.0 / 20)
	stdWeightVelocity = float32(1.0 / 160)
)

// Config holds the tracker configuration.  All fields have working defaults
// available from DefaultConfig
type Config struct {
	// HighConfThreshold is the minimum detection confidence required to
	// spawn a new track from an unmatched detection
	HighConfThreshold float32
	// LowConfThreshold is the lower confidence band bound, consumed only
	// by the CascadeMatcher strategy to extend tracks from weak
	// detections.  The default strategy ignores it
	LowConfThreshold float32
	// MatchThreshold is the geometric acceptance threshold, consumed only
	// by the CascadeMatcher strategy as its first stage IoU gate.  The
	// default strategy ignores it
	MatchThreshold float32
	// MaxMissedFrames is the number of consecutive unmatched frames
	// tolerated before a track is evicted
	MaxMissedFrames int
}

// DefaultConfig returns the default tracker configuration
func DefaultConfig() Config {
	return Config{
		HighConfThreshold: 0.5,
		LowConfThreshold:  0.1,
		MatchThreshold:    0.8,
		MaxMissedFrames:   30,
	}
}

// Tracker assigns stable identities to detections across frames.  It owns
// all per track state exclusively, consumers only ever receive snapshot
// copies.  Update is the sole mutating entry point and is not internally
// synchronized, it must be called from a single producer at most once
// concurrently
type Tracker struct {
	cfg     Config
	matcher Matcher
	kf      *KalmanFilter
	// live tracks in insertion order so published snapshots iterate
	// deterministically
	tracks []*track
	// nextID is the monotonically increasing identity counter, ids are
	// never reused
	nextID  int
	frameID int
}

// NewTracker initializes and returns a new Tracker using the default
// Hungarian matching strategy
func NewTracker(cfg Config) *Tracker {
	return NewTrackerWithMatcher(cfg, HungarianMatcher{})
}

// NewTrackerWithMatcher initializes and returns a new Tracker using the
// given matching strategy
func NewTrackerWithMatcher(cfg Config, matcher Matcher) *Tracker {
	return &Tracker{
		cfg:     cfg,
		matcher: matcher,
		kf:      NewKalmanFilter(stdWeightPosition, stdWeightVelocity),
	}
}

// Reset clears the tracked data and resets everything including the
// identity counter
func (t *Tracker) Reset() {
	t.tracks = nil
	t.nextID = 0
	t.frameID = 0
}

// Update runs one frame of the tracking cycle with the default frame
// interval of 1/30 seconds and returns snapshots of all live tracks
func (t *Tracker) Update(dets []DetectedObject) []Track {
	return t.UpdateDelta(dets, DefaultFrameInterval)
}

// UpdateDelta runs one frame of the tracking cycle using the given frame
// interval in seconds.  It advances every live track's motion prediction,
// associates predictions to detections, corrects matched tracks, ages and
// evicts unmatched tracks, spawns new tracks for strong unmatched
// detections, and returns snapshots of all live tracks in creation order
func (t *Tracker) UpdateDelta(dets []DetectedObject, dt float32) []Track {

	t.frameID++

	// Step 1: predict, advance every live track to its projected box
	trackBoxes := make([]Rect, len(t.tracks))

	for i, tr := range t.tracks {
		tr.predict(dt)
		trackBoxes[i] = tr.rect
	}

	// Step 2: match predictions against the frame's detections
	pairs := t.matcher.Match(trackBoxes, dets)

	matchedTrack := make([]bool, len(t.tracks))
	matchedDet := make([]bool, len(dets))

	// Step 3: reconcile matched tracks with their detections
	for _, pair := range pairs {
		t.tracks[pair.TrackIdx].correct(dets[pair.DetIdx])
		matchedTrack[pair.TrackIdx] = true
		matchedDet[pair.DetIdx] = true
	}

	// Step 4: age unmatched tracks and evict those transitioning to Lost
	live := t.tracks[:0]

	for i, tr := range t.tracks {
		if !matchedTrack[i] {
			tr.markMissed(t.cfg.MaxMissedFrames)
		}
		if tr.state != Lost {
			live = append(live, tr)
		}
	}

	// release trailing slots so evicted tracks can be collected
	for i := len(live); i < len(t.tracks); i++ {
		t.tracks[i] = nil
	}

	t.tracks = live

	// Step 5: spawn new tracks from strong unmatched detections
	for i, det := range dets {
		if matchedDet[i] || det.Prob < t.cfg.HighConfThreshold {
			continue
		}

		t.tracks = append(t.tracks, newTrack(t.nextID, det, t.kf))
		t.nextID++
	}

	// Step 6: publish snapshots of the live set
	snapshots := make([]Track, len(t.tracks))

	for i, tr := range t.tracks {
		snapshots[i] = tr.snapshot()
	}

	return snapshots
}

// FrameID returns the number of frames processed since creation or the
// last Reset
func (t *Tracker) FrameID() int {
	return t.frameID
}
