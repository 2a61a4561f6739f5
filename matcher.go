package tracklite

// MatchPair associates the track at TrackIdx with the detection at DetIdx
// for one frame
type MatchPair struct {
	TrackIdx int
	DetIdx   int
}

// Matcher is the pluggable association policy turning predicted track boxes
// and current frame detections into assignment pairs.  Each track index and
// each detection index appears in at most one pair.  Implementations must
// handle empty inputs by returning no pairs
type Matcher interface {
	Match(tracks []Rect, dets []DetectedObject) []MatchPair
}

// IoUCostMatrix builds the association cost matrix with one row per track
// and one column per detection, where each cell is 1-IoU of the pair.  Cost
// is in [0,1] and lower is better
func IoUCostMatrix(tracks []Rect, dets []Rect) [][]float32 {

	if len(tracks)*len(dets) == 0 {
		return nil
	}

	costMatrix := make([][]float32, len(tracks))

	for i := range tracks {
		costMatrix[i] = make([]float32, len(dets))
		for j := range dets {
			costMatrix[i][j] = 1 - tracks[i].IoU(dets[j])
		}
	}

	return costMatrix
}

// HungarianMatcher is the default matching strategy.  It builds the IoU cost
// matrix and delegates to the Munkres solver unconditionally with no
// geometric gating applied to the result
type HungarianMatcher struct{}

// Match solves the minimum cost assignment between tracks and detections
func (hm HungarianMatcher) Match(tracks []Rect,
	dets []DetectedObject) []MatchPair {

	detRects := make([]Rect, len(dets))
	for i, det := range dets {
		detRects[i] = det.Rect
	}

	rowAssign := MunkresAssign(IoUCostMatrix(tracks, detRects))

	var pairs []MatchPair

	for trackIdx, detIdx := range rowAssign {
		if detIdx >= 0 {
			pairs = append(pairs, MatchPair{TrackIdx: trackIdx, DetIdx: detIdx})
		}
	}

	return pairs
}

// lowGateThreshold is the fixed IoU acceptance used in the second cascade
// stage against low confidence detections
const lowGateThreshold = float32(0.5)

// CascadeMatcher is an alternative two stage matching strategy following
// the ByteTrack association design.  High confidence detections are matched
// first with a geometric gate, then low confidence detections are used to
// extend tracks left unmatched by the first stage.  Low confidence
// detections never spawn tracks because the Tracker's spawn threshold is
// above the low band by construction
type CascadeMatcher struct {
	// HighThresh splits detections into the high and low confidence bands
	HighThresh float32
	// LowThresh discards detections below it entirely
	LowThresh float32
	// MatchThresh is the minimum IoU accepted in the first stage
	MatchThresh float32
}

// NewCascadeMatcher returns a CascadeMatcher using the thresholds of the
// given configuration
func NewCascadeMatcher(cfg Config) CascadeMatcher {
	return CascadeMatcher{
		HighThresh:  cfg.HighConfThreshold,
		LowThresh:   cfg.LowConfThreshold,
		MatchThresh: cfg.MatchThreshold,
	}
}

// Match performs the two stage high/low confidence association
func (cm CascadeMatcher) Match(tracks []Rect,
	dets []DetectedObject) []MatchPair {

	// split detection indexes into confidence bands
	var highIdx, lowIdx []int

	for i, det := range dets {
		switch {
		case det.Prob >= cm.HighThresh:
			highIdx = append(highIdx, i)
		case det.Prob >= cm.LowThresh:
			lowIdx = append(lowIdx, i)
		}
	}

	trackIdx := make([]int, len(tracks))
	for i := range tracks {
		trackIdx[i] = i
	}

	// first association on high confidence detections
	pairs, remainTracks := cm.matchStage(tracks, dets, trackIdx, highIdx,
		1-cm.MatchThresh)

	// second association extends leftover tracks with low confidence
	// detections under a looser gate
	stage2, _ := cm.matchStage(tracks, dets, remainTracks, lowIdx,
		1-lowGateThreshold)

	return append(pairs, stage2...)
}

// matchStage solves one assignment stage over the given track and detection
// index subsets, rejecting pairs whose cost exceeds maxCost.  It returns
// the accepted pairs in original index space and the track indexes left
// unmatched
func (cm CascadeMatcher) matchStage(tracks []Rect, dets []DetectedObject,
	trackIdx, detIdx []int, maxCost float32) ([]MatchPair, []int) {

	if len(trackIdx) == 0 || len(detIdx) == 0 {
		return nil, trackIdx
	}

	trackRects := make([]Rect, len(trackIdx))
	for i, ti := range trackIdx {
		trackRects[i] = tracks[ti]
	}

	detRects := make([]Rect, len(detIdx))
	for j, di := range detIdx {
		detRects[j] = dets[di].Rect
	}

	costMatrix := IoUCostMatrix(trackRects, detRects)
	rowAssign := MunkresAssign(costMatrix)

	var pairs []MatchPair
	var remain []int

	for i, j := range rowAssign {
		if j >= 0 && costMatrix[i][j] <= maxCost {
			pairs = append(pairs, MatchPair{
				TrackIdx: trackIdx[i],
				DetIdx:   detIdx[j],
			})
		} else {
			remain = append(remain, trackIdx[i])
		}
	}

	return pairs, remain
}
