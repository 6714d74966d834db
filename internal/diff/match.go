package diff

import (
	"github.com/faneaatiku/cosmos-json/internal/models"
)

// maxLCSCells caps the size of the LCS table. Larger middles are aligned
// greedily instead, which stays linear in memory.
const maxLCSCells = 1 << 22

type pair struct {
	from, to int
}

// matchKey is what two array elements must share to be considered the same
// element. Scalars match on value instead.
type matchKey struct {
	identity string
	kind     models.Kind
	position int
	byID     bool
}

func (d *differ) keyOf(v models.Value, index int) matchKey {
	if obj, ok := v.(*models.Object); ok {
		for _, k := range d.cfg.IdentityKeys {
			id, ok := obj.Get(k)
			if !ok {
				continue
			}
			switch t := id.(type) {
			case models.String:
				return matchKey{byID: true, kind: models.KindString, identity: k + "\x00" + string(t)}
			case models.Number:
				return matchKey{byID: true, kind: models.KindNumber, identity: k + "\x00" + string(t)}
			}
		}
	}
	return matchKey{kind: v.Kind(), position: index}
}

// matches reports whether left[i] and right[j] are the same element, possibly
// modified.
func (d *differ) matches(a models.Value, i int, b models.Value, j int) bool {
	aContainer, bContainer := models.IsContainer(a), models.IsContainer(b)
	if !aContainer && !bContainer {
		return models.Equal(a, b)
	}
	if aContainer != bContainer {
		return false
	}
	return d.keyOf(a, i) == d.keyOf(b, j)
}

// pairElements decides which left elements correspond to which right
// elements. Common head and tail runs pair positionally, the middle is aligned
// with a longest common subsequence, and when move detection is on leftover
// elements that still match are paired as moves.
func (d *differ) pairElements(left, right models.Array) []pair {
	var pairs []pair

	start := 0
	for start < len(left) && start < len(right) && d.matches(left[start], start, right[start], start) {
		pairs = append(pairs, pair{start, start})
		start++
	}

	endL, endR := len(left), len(right)
	for endL > start && endR > start && d.matches(left[endL-1], endL-1, right[endR-1], endR-1) {
		endL--
		endR--
		pairs = append(pairs, pair{endL, endR})
	}

	middle := d.alignMiddle(left, right, start, endL, start, endR)
	pairs = append(pairs, middle...)

	if d.cfg.DetectMove {
		pairs = append(pairs, d.pairMoves(left, right, start, endL, start, endR, middle)...)
	}
	return pairs
}

// alignMiddle returns an order-preserving alignment of left[l0:l1] and
// right[r0:r1].
func (d *differ) alignMiddle(left, right models.Array, l0, l1, r0, r1 int) []pair {
	n, m := l1-l0, r1-r0
	if n == 0 || m == 0 {
		return nil
	}
	if (n+1)*(m+1) > maxLCSCells {
		return d.alignGreedy(left, right, l0, l1, r0, r1)
	}

	// table[i*(m+1)+j] is the LCS length of left[l0+i:l1] and right[r0+j:r1].
	width := m + 1
	table := make([]int32, (n+1)*width)
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if d.matches(left[l0+i], l0+i, right[r0+j], r0+j) {
				table[i*width+j] = table[(i+1)*width+j+1] + 1
			} else if down, across := table[(i+1)*width+j], table[i*width+j+1]; down >= across {
				table[i*width+j] = down
			} else {
				table[i*width+j] = across
			}
		}
	}

	var pairs []pair
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case d.matches(left[l0+i], l0+i, right[r0+j], r0+j):
			pairs = append(pairs, pair{l0 + i, r0 + j})
			i++
			j++
		case table[(i+1)*width+j] >= table[i*width+j+1]:
			// Ties drop the left element first.
			i++
		default:
			j++
		}
	}
	return pairs
}

func (d *differ) alignGreedy(left, right models.Array, l0, l1, r0, r1 int) []pair {
	var pairs []pair
	next := r0
	for i := l0; i < l1 && next < r1; i++ {
		for j := next; j < r1; j++ {
			if d.matches(left[i], i, right[j], j) {
				pairs = append(pairs, pair{i, j})
				next = j + 1
				break
			}
		}
	}
	return pairs
}

// pairMoves pairs middle elements that the alignment left over but that match
// an equally unpaired element on the other side. Candidates are taken in index
// order on both sides.
func (d *differ) pairMoves(left, right models.Array, l0, l1, r0, r1 int, aligned []pair) []pair {
	usedLeft := make(map[int]bool, len(aligned))
	usedRight := make(map[int]bool, len(aligned))
	for _, p := range aligned {
		usedLeft[p.from] = true
		usedRight[p.to] = true
	}

	var moves []pair
	for i := l0; i < l1; i++ {
		if usedLeft[i] {
			continue
		}
		for j := r0; j < r1; j++ {
			if usedRight[j] || !d.matches(left[i], i, right[j], j) {
				continue
			}
			usedRight[j] = true
			moves = append(moves, pair{i, j})
			break
		}
	}
	return moves
}
