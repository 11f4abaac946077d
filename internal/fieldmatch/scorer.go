package fieldmatch

// Costs weights each edit operation independently, so a deployment can
// make e.g. transpositions cheaper than substitutions when swapped
// characters dominate its header typos.
type Costs struct {
	Insert     float64
	Delete     float64
	Substitute float64
	Transpose  float64
}

func DefaultCosts() Costs {
	return Costs{Insert: 1, Delete: 1, Substitute: 1, Transpose: 1}
}

// Scorer estimates similarity between a spreadsheet header and a
// canonical field name on a 0..1 scale. Pluggable so the matching
// strategy can change without touching classification thresholds.
type Scorer interface {
	Similarity(a, b string) float64
}

type editDistanceScorer struct {
	costs Costs
}

func NewEditDistanceScorer(costs Costs) Scorer {
	if costs.Insert <= 0 {
		costs.Insert = 1
	}
	if costs.Delete <= 0 {
		costs.Delete = 1
	}
	if costs.Substitute <= 0 {
		costs.Substitute = 1
	}
	if costs.Transpose <= 0 {
		costs.Transpose = 1
	}
	return &editDistanceScorer{costs: costs}
}

// Similarity is 1 - weightedDistance/worstCase, where worstCase assumes
// every position of the longer string costs the most expensive single
// operation. Not a calibrated metric, but monotonic in the distance.
func (s *editDistanceScorer) Similarity(a, b string) float64 {
	ar := []rune(a)
	br := []rune(b)

	if len(ar) == 0 && len(br) == 0 {
		return 1
	}
	if len(ar) == 0 || len(br) == 0 {
		return 0
	}

	dist := s.distance(ar, br)

	maxLen := len(ar)
	if len(br) > maxLen {
		maxLen = len(br)
	}
	worst := float64(maxLen) * s.maxCost()
	if worst == 0 {
		return 1
	}

	sim := 1 - dist/worst
	if sim < 0 {
		return 0
	}
	return sim
}

// distance is the optimal-string-alignment variant of
// Damerau-Levenshtein with per-operation costs.
func (s *editDistanceScorer) distance(ar, br []rune) float64 {
	rows := len(ar) + 1
	cols := len(br) + 1

	d := make([][]float64, rows)
	for i := range d {
		d[i] = make([]float64, cols)
	}
	for i := 1; i < rows; i++ {
		d[i][0] = d[i-1][0] + s.costs.Delete
	}
	for j := 1; j < cols; j++ {
		d[0][j] = d[0][j-1] + s.costs.Insert
	}

	for i := 1; i < rows; i++ {
		for j := 1; j < cols; j++ {
			sub := d[i-1][j-1]
			if ar[i-1] != br[j-1] {
				sub += s.costs.Substitute
			}

			best := min3(
				d[i-1][j]+s.costs.Delete,
				d[i][j-1]+s.costs.Insert,
				sub,
			)

			if i > 1 && j > 1 && ar[i-1] == br[j-2] && ar[i-2] == br[j-1] && ar[i-1] != br[j-1] {
				if t := d[i-2][j-2] + s.costs.Transpose; t < best {
					best = t
				}
			}

			d[i][j] = best
		}
	}

	return d[rows-1][cols-1]
}

func (s *editDistanceScorer) maxCost() float64 {
	m := s.costs.Insert
	if s.costs.Delete > m {
		m = s.costs.Delete
	}
	if s.costs.Substitute > m {
		m = s.costs.Substitute
	}
	if s.costs.Transpose > m {
		m = s.costs.Transpose
	}
	return m
}

func min3(a, b, c float64) float64 {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
