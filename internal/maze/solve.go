package maze

// ShortestPath returns the cells on the path from one coordinate to another,
// both ends included, following open passages only. It returns nil when either
// coordinate is out of bounds or no path exists.
func (m *Maze) ShortestPath(from, to Coord) []Coord {
	if !m.InBounds(from) || !m.InBounds(to) {
		return nil
	}

	prev := map[Coord]Coord{from: from}
	queue := []Coord{from}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == to {
			break
		}
		for _, side := range Sides {
			if !m.CanMove(current, side) {
				continue
			}
			next := current.Step(side)
			if _, seen := prev[next]; seen {
				continue
			}
			prev[next] = current
			queue = append(queue, next)
		}
	}

	if _, reached := prev[to]; !reached {
		return nil
	}

	var path []Coord
	for c := to; ; c = prev[c] {
		path = append(path, c)
		if c == from {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// reachable counts the cells connected to from by open passages.
func (m *Maze) reachable(from Coord) int {
	seen := map[Coord]bool{from: true}
	queue := []Coord{from}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, side := range Sides {
			next := current.Step(side)
			if m.CanMove(current, side) && !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return len(seen)
}
