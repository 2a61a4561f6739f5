package tracklite

import "sync"

// Point represents the normalized x,y coordinates of the center of a
// track's bounding box
type Point struct {
	X, Y float32
}

// Trail keeps a bounded history of track center points used for drawing
// motion trails.  It is safe for concurrent use as render paths typically
// read it from another goroutine than the one feeding the Tracker
type Trail struct {
	// size is the maximum number of most recent points to keep per track
	size int
	// history of tracked points keyed by track id
	history map[int][]Point
	sync.Mutex
}

// NewTrail returns a new trail history instance.  Size specifies the
// maximum number of most recent points to maintain per track
func NewTrail(size int) *Trail {
	return &Trail{
		size:    size,
		history: make(map[int][]Point),
	}
}

// Reset clears all history
func (t *Trail) Reset() {
	t.Lock()
	defer t.Unlock()

	t.history = make(map[int][]Point)
}

// Add appends the track's current box center to its history
func (t *Trail) Add(track Track) {
	t.Lock()
	defer t.Unlock()

	cx, cy := track.Rect.Center()

	points := append(t.history[track.ID], Point{X: cx, Y: cy})

	// check if history is exceeded and drop oldest point
	if len(points) > t.size {
		points = points[1:]
	}

	t.history[track.ID] = points
}

// GetPoints gets the point history for a specific track id
func (t *Trail) GetPoints(id int) []Point {
	t.Lock()
	defer t.Unlock()

	return t.history[id]
}

// Remove drops the history of a track id, typically once the track has
// been evicted from the live set
func (t *Trail) Remove(id int) {
	t.Lock()
	defer t.Unlock()

	delete(t.history, id)
}
