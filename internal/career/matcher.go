package career

import "math"

// Neighbor is the result of a nearest-archetype search.
type Neighbor struct {
	Index    int
	Distance float64
}

// Match returns the index of the matrix row closest to query by Euclidean
// distance. Ties go to the lowest index.
func Match(query FeatureVector, matrix FeatureMatrix) (int, error) {
	n, err := Nearest(query, matrix)
	if err != nil {
		return -1, err
	}
	return n.Index, nil
}

// Nearest is Match that also reports the distance to the selected row.
func Nearest(query FeatureVector, matrix FeatureMatrix) (Neighbor, error) {
	if len(matrix) == 0 {
		return Neighbor{Index: -1}, ErrEmptyCatalog
	}

	best, bestDist := -1, 0
	for i, row := range matrix {
		if len(row) != len(query) {
			return Neighbor{Index: -1}, &InconsistentCatalogError{
				Archetypes: len(matrix),
				Rows:       len(matrix),
				Row:        i,
				Width:      len(row),
				Want:       len(query),
			}
		}

		d := squaredL2(query, row)
		// strict comparison keeps the first row on ties
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}

	return Neighbor{Index: best, Distance: math.Sqrt(float64(bestDist))}, nil
}

// squaredL2 is exact on binary vectors, so ties are never decided by rounding.
func squaredL2(a, b FeatureVector) int {
	sum := 0
	for i := range a {
		d := int(a[i]) - int(b[i])
		sum += d * d
	}
	return sum
}
