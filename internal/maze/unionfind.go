package maze

// UnionFind is a disjoint-set forest over node ids 0..n-1.
//
// Merging always folds the set with the numerically larger root into the set
// with the smaller root. There is no rank or size balancing and no path
// compression, so adversarial merge orders can build O(n) chains. Grid sizes
// handled here keep that acceptable.
type UnionFind struct {
	parent []int
	sets   int
}

// NewUnionFind creates n singleton sets, each its own root.
func NewUnionFind(n int) *UnionFind {
	uf := &UnionFind{parent: make([]int, n), sets: n}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

// Find returns the root of the set containing id.
func (uf *UnionFind) Find(id int) int {
	for uf.parent[id] != id {
		id = uf.parent[id]
	}
	return id
}

// Union merges the sets containing a and b. It reports whether they were separate.
func (uf *UnionFind) Union(a, b int) bool {
	ra, rb := uf.Find(a), uf.Find(b)
	if ra == rb {
		return false
	}
	if ra < rb {
		uf.parent[rb] = ra
	} else {
		uf.parent[ra] = rb
	}
	uf.sets--
	return true
}

// Sets returns the number of disjoint sets.
func (uf *UnionFind) Sets() int { return uf.sets }
