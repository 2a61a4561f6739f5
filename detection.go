package tracklite

// DetectedObject represents a single object detection from one video frame.
// Detections are ephemeral, they only exist for the duration of one call to
// the Tracker's Update
type DetectedObject struct {
	// Rect is the bounding box of the detected object in normalized
	// image coordinates
	Rect Rect
	// Label is the class label of the object detected
	Label string
	// Prob is the confidence/probability of the object detected in the
	// range [0,1]
	Prob float32
}

// NewDetectedObject is a constructor function for the DetectedObject struct
func NewDetectedObject(rect Rect, label string, prob float32) DetectedObject {
	return DetectedObject{
		Rect:  rect,
		Label: label,
		Prob:  prob,
	}
}
