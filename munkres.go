package tracklite

// MunkresAssign solves the minimum cost one-to-one assignment problem over
// an arbitrary n×m cost matrix using the Munkres (Hungarian) method.  It
// returns rowAssign where rowAssign[i] is the column index assigned to row
// i, or -1 when row i is unassigned.  An empty matrix yields no assignments.
//
// The matrix is padded internally to a square of size max(n,m) using a fill
// cost strictly greater than any real entry so padding cells are never
// selected over real pairs.  Runs in O(k³) for a k×k matrix
func MunkresAssign(cost [][]float32) []int {

	n := len(cost)

	if n == 0 {
		return nil
	}

	m := len(cost[0])

	rowAssign := make([]int, n)
	for i := range rowAssign {
		rowAssign[i] = -1
	}

	if m == 0 {
		return rowAssign
	}

	k := n
	if m > k {
		k = m
	}

	// find the maximum real entry for the padding fill cost
	maxCost := float64(cost[0][0])

	for i := range cost {
		for j := range cost[i] {
			if v := float64(cost[i][j]); v > maxCost {
				maxCost = v
			}
		}
	}

	// build the padded square working matrix
	c := make([][]float64, k)

	for i := 0; i < k; i++ {
		c[i] = make([]float64, k)
		for j := 0; j < k; j++ {
			if i < n && j < m {
				c[i][j] = float64(cost[i][j])
			} else {
				c[i][j] = maxCost + 1
			}
		}
	}

	s := &munkresState{
		k:        k,
		cost:     c,
		starred:  makeBoolMatrix(k),
		primed:   makeBoolMatrix(k),
		rowCover: make([]bool, k),
		colCover: make([]bool, k),
	}

	s.reduce()
	s.starZeros()

	// repeat the prime/augment cycle until every column holds a star
	for s.coverStarredColumns() < k {
		s.augmentOnce()
	}

	// the starred cells within the original n×m region are the assignment
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			if s.starred[i][j] {
				rowAssign[i] = j
				break
			}
		}
	}

	return rowAssign
}

// munkresState holds the working matrix and star/prime/cover bookkeeping of
// a single solver run
type munkresState struct {
	k        int
	cost     [][]float64
	starred  [][]bool
	primed   [][]bool
	rowCover []bool
	colCover []bool
}

func makeBoolMatrix(k int) [][]bool {
	m := make([][]bool, k)
	for i := range m {
		m[i] = make([]bool, k)
	}
	return m
}

// reduce subtracts each row's minimum from the row, then each column's
// minimum from the column, exposing at least one zero per row and column
func (s *munkresState) reduce() {

	for i := 0; i < s.k; i++ {
		min := s.cost[i][0]
		for j := 1; j < s.k; j++ {
			if s.cost[i][j] < min {
				min = s.cost[i][j]
			}
		}
		for j := 0; j < s.k; j++ {
			s.cost[i][j] -= min
		}
	}

	for j := 0; j < s.k; j++ {
		min := s.cost[0][j]
		for i := 1; i < s.k; i++ {
			if s.cost[i][j] < min {
				min = s.cost[i][j]
			}
		}
		for i := 0; i < s.k; i++ {
			s.cost[i][j] -= min
		}
	}
}

// starZeros greedily stars zero cost cells that have no starred peer in
// their row or column
func (s *munkresState) starZeros() {

	rowUsed := make([]bool, s.k)
	colUsed := make([]bool, s.k)

	for i := 0; i < s.k; i++ {
		for j := 0; j < s.k; j++ {
			if s.cost[i][j] == 0 && !rowUsed[i] && !colUsed[j] {
				s.starred[i][j] = true
				rowUsed[i] = true
				colUsed[j] = true
			}
		}
	}
}

// coverStarredColumns covers every column containing a starred zero and
// returns the number of covered columns.  When this equals the matrix size
// the assignment is complete
func (s *munkresState) coverStarredColumns() int {

	count := 0

	for j := 0; j < s.k; j++ {
		for i := 0; i < s.k; i++ {
			if s.starred[i][j] {
				s.colCover[j] = true
				break
			}
		}
		if s.colCover[j] {
			count++
		}
	}

	return count
}

// augmentOnce primes uncovered zeros until one is found in a row without a
// star, then flips the augmenting path to add one more star.  When no
// uncovered zero exists the matrix is adjusted by the minimum uncovered
// value to create one
func (s *munkresState) augmentOnce() {

	for {
		row, col, ok := s.findUncoveredZero()

		if !ok {
			s.adjust()
			continue
		}

		s.primed[row][col] = true

		starCol := s.starInRow(row)

		if starCol < 0 {
			// no star in this row, augment the alternating path and
			// reset covers for the next cycle
			s.flipPath(row, col)
			s.clearCoversAndPrimes()
			return
		}

		// cover this row and uncover the starred column so the search
		// continues elsewhere
		s.rowCover[row] = true
		s.colCover[starCol] = false
	}
}

// findUncoveredZero returns the position of the first uncovered zero cost
// cell, or ok=false when every zero lies under a cover
func (s *munkresState) findUncoveredZero() (int, int, bool) {

	for i := 0; i < s.k; i++ {
		if s.rowCover[i] {
			continue
		}
		for j := 0; j < s.k; j++ {
			if !s.colCover[j] && s.cost[i][j] == 0 {
				return i, j, true
			}
		}
	}

	return 0, 0, false
}

// starInRow returns the column of the starred zero in the given row, or -1
func (s *munkresState) starInRow(row int) int {
	for j := 0; j < s.k; j++ {
		if s.starred[row][j] {
			return j
		}
	}
	return -1
}

// starInCol returns the row of the starred zero in the given column, or -1
func (s *munkresState) starInCol(col int) int {
	for i := 0; i < s.k; i++ {
		if s.starred[i][col] {
			return i
		}
	}
	return -1
}

// primeInRow returns the column of the primed zero in the given row, or -1
func (s *munkresState) primeInRow(row int) int {
	for j := 0; j < s.k; j++ {
		if s.primed[row][j] {
			return j
		}
	}
	return -1
}

// flipPath follows the alternating path of primed and starred zeros
// starting at the given primed zero, starring the primed cells and
// unstarring the starred ones.  This grows the number of stars by one
func (s *munkresState) flipPath(row, col int) {

	path := [][2]int{{row, col}}

	for {
		starRow := s.starInCol(col)

		if starRow < 0 {
			break
		}

		path = append(path, [2]int{starRow, col})

		// a primed zero always exists in the row of a path star
		col = s.primeInRow(starRow)
		path = append(path, [2]int{starRow, col})
	}

	for _, p := range path {
		s.starred[p[0]][p[1]] = !s.starred[p[0]][p[1]]
	}
}

// clearCoversAndPrimes resets all covers and primed cells
func (s *munkresState) clearCoversAndPrimes() {

	for i := 0; i < s.k; i++ {
		s.rowCover[i] = false
		s.colCover[i] = false
		for j := 0; j < s.k; j++ {
			s.primed[i][j] = false
		}
	}
}

// adjust modifies the matrix by the minimum uncovered value, adding it to
// covered rows and subtracting it from uncovered columns.  This creates a
// new uncovered zero without disturbing starred zeros
func (s *munkresState) adjust() {

	min := 0.0
	found := false

	for i := 0; i < s.k; i++ {
		if s.rowCover[i] {
			continue
		}
		for j := 0; j < s.k; j++ {
			if s.colCover[j] {
				continue
			}
			if !found || s.cost[i][j] < min {
				min = s.cost[i][j]
				found = true
			}
		}
	}

	if !found {
		return
	}

	for i := 0; i < s.k; i++ {
		for j := 0; j < s.k; j++ {
			if s.rowCover[i] {
				s.cost[i][j] += min
			}
			if !s.colCover[j] {
				s.cost[i][j] -= min
			}
		}
	}
}
