package engine

import "fmt"

// Group models a set of equally-capable peers identified by rank 0..size-1.
// Peers never exchange work descriptors: each rank derives its own
// assignment from (rank, size), and the only communication is the final
// blocking gather of counts into rank 0.
type Group struct {
	size   int
	gather chan rankCount
	done   chan struct{}
}

type rankCount struct {
	rank  int
	count int
}

// NewGroup initializes a peer group. A size that cannot form a group is an
// ErrUnavailable, which the orchestrator treats as "degrade", not "fail".
func NewGroup(size int) (*Group, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: collective group needs at least one rank, got %d", ErrUnavailable, size)
	}
	return &Group{
		size:   size,
		gather: make(chan rankCount),
		done:   make(chan struct{}),
	}, nil
}

// Size returns the number of ranks in the group.
func (g *Group) Size() int {
	return g.size
}

// GatherIntoRoot contributes this rank's count and blocks until every rank
// has contributed. Rank 0 returns the counts indexed by rank; all other
// ranks return nil. Every rank must call it exactly once per run; the
// exchange doubles as a barrier, so no rank leaves before all have entered.
func (g *Group) GatherIntoRoot(rank, count int) []int {
	if rank != 0 {
		g.gather <- rankCount{rank: rank, count: count}
		<-g.done
		return nil
	}

	counts := make([]int, g.size)
	counts[0] = count
	for i := 1; i < g.size; i++ {
		rc := <-g.gather
		counts[rc.rank] = rc.count
	}
	close(g.done)
	return counts
}
