package tracklite

import (
	"testing"
)

// pairsToMap converts match pairs to a track->detection index map
func pairsToMap(pairs []MatchPair) map[int]int {
	m := make(map[int]int)
	for _, p := range pairs {
		m[p.TrackIdx] = p.DetIdx
	}
	return m
}

func TestIoUCostMatrix(t *testing.T) {

	tracks := []Rect{
		NewRect(0, 0, 0.2, 0.2),
		NewRect(0.5, 0.5, 0.2, 0.2),
	}

	dets := []Rect{
		NewRect(0, 0, 0.2, 0.2),
		NewRect(0.8, 0.8, 0.1, 0.1),
	}

	costMatrix := IoUCostMatrix(tracks, dets)

	if len(costMatrix) != 2 || len(costMatrix[0]) != 2 {
		t.Fatalf("expected 2x2 cost matrix, got %dx%d",
			len(costMatrix), len(costMatrix[0]))
	}

	// identical boxes cost 0, disjoint boxes cost 1
	if !almostEqual(costMatrix[0][0], 0, 1e-6) {
		t.Errorf("expected cost 0 for identical boxes, got %f",
			costMatrix[0][0])
	}

	if !almostEqual(costMatrix[0][1], 1, 1e-6) {
		t.Errorf("expected cost 1 for disjoint boxes, got %f",
			costMatrix[0][1])
	}
}

func TestIoUCostMatrixEmpty(t *testing.T) {

	if res := IoUCostMatrix(nil, []Rect{NewRect(0, 0, 1, 1)}); res != nil {
		t.Errorf("expected nil cost matrix for no tracks, got %v", res)
	}

	if res := IoUCostMatrix([]Rect{NewRect(0, 0, 1, 1)}, nil); res != nil {
		t.Errorf("expected nil cost matrix for no detections, got %v", res)
	}
}

func TestHungarianMatcher(t *testing.T) {

	tracks := []Rect{
		NewRect(0.1, 0.1, 0.2, 0.2),
		NewRect(0.6, 0.6, 0.2, 0.2),
	}

	// detections listed in reverse order of the tracks they overlap
	dets := []DetectedObject{
		NewDetectedObject(NewRect(0.62, 0.61, 0.2, 0.2), "person", 0.9),
		NewDetectedObject(NewRect(0.11, 0.12, 0.2, 0.2), "person", 0.8),
	}

	pairs := HungarianMatcher{}.Match(tracks, dets)

	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(pairs))
	}

	m := pairsToMap(pairs)

	if m[0] != 1 || m[1] != 0 {
		t.Errorf("expected pairs 0->1 and 1->0, got %v", pairs)
	}
}

func TestHungarianMatcherEmptyInputs(t *testing.T) {

	hm := HungarianMatcher{}

	if pairs := hm.Match(nil, nil); len(pairs) != 0 {
		t.Errorf("expected no pairs for empty inputs, got %v", pairs)
	}

	if pairs := hm.Match([]Rect{NewRect(0, 0, 1, 1)}, nil); len(pairs) != 0 {
		t.Errorf("expected no pairs with no detections, got %v", pairs)
	}

	dets := []DetectedObject{
		NewDetectedObject(NewRect(0, 0, 1, 1), "person", 0.9),
	}

	if pairs := hm.Match(nil, dets); len(pairs) != 0 {
		t.Errorf("expected no pairs with no tracks, got %v", pairs)
	}
}

// TestHungarianMatcherNoGating verifies the default strategy accepts even
// zero overlap assignments, gating is left to alternative strategies
func TestHungarianMatcherNoGating(t *testing.T) {

	tracks := []Rect{NewRect(0.1, 0.1, 0.1, 0.1)}

	dets := []DetectedObject{
		NewDetectedObject(NewRect(0.8, 0.8, 0.1, 0.1), "person", 0.9),
	}

	pairs := HungarianMatcher{}.Match(tracks, dets)

	if len(pairs) != 1 {
		t.Fatalf("expected 1 ungated pair, got %d", len(pairs))
	}
}

func TestCascadeMatcherFirstStageGate(t *testing.T) {

	cm := NewCascadeMatcher(DefaultConfig())

	tracks := []Rect{NewRect(0.1, 0.1, 0.2, 0.2)}

	// a high confidence detection with poor overlap must be rejected by
	// the first stage IoU gate
	dets := []DetectedObject{
		NewDetectedObject(NewRect(0.7, 0.7, 0.2, 0.2), "person", 0.9),
	}

	if pairs := cm.Match(tracks, dets); len(pairs) != 0 {
		t.Errorf("expected gated rejection, got %v", pairs)
	}
}

func TestCascadeMatcherLowConfidenceExtends(t *testing.T) {

	cm := NewCascadeMatcher(DefaultConfig())

	tracks := []Rect{NewRect(0.1, 0.1, 0.2, 0.2)}

	// detection 0 is high confidence but disjoint, detection 1 is low
	// confidence but sits exactly on the track, the second cascade stage
	// must claim it
	dets := []DetectedObject{
		NewDetectedObject(NewRect(0.7, 0.7, 0.2, 0.2), "person", 0.9),
		NewDetectedObject(NewRect(0.1, 0.1, 0.2, 0.2), "person", 0.3),
	}

	pairs := cm.Match(tracks, dets)

	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair from second stage, got %d", len(pairs))
	}

	if pairs[0].TrackIdx != 0 || pairs[0].DetIdx != 1 {
		t.Errorf("expected pair 0->1, got %v", pairs[0])
	}
}

func TestCascadeMatcherDiscardsBelowLowBand(t *testing.T) {

	cm := NewCascadeMatcher(DefaultConfig())

	tracks := []Rect{NewRect(0.1, 0.1, 0.2, 0.2)}

	// confidence below the low band is discarded entirely even with
	// perfect overlap
	dets := []DetectedObject{
		NewDetectedObject(NewRect(0.1, 0.1, 0.2, 0.2), "person", 0.05),
	}

	if pairs := cm.Match(tracks, dets); len(pairs) != 0 {
		t.Errorf("expected discarded detection, got %v", pairs)
	}
}
