package domain

import "github.com/google/uuid"

// Connected reports whether fromCity and toCity are linked by routes owned by
// the given player. Plain BFS over the player-owned subgraph; parallel routes
// between the same pair are distinct edges, and the visited set deduplicates
// on city id. Identical endpoints are trivially connected.
func Connected(fromCity, toCity, playerID uuid.UUID, routes []Route) bool {
	if fromCity == toCity {
		return true
	}

	visited := map[uuid.UUID]bool{fromCity: true}
	queue := []uuid.UUID{fromCity}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current == toCity {
			return true
		}

		for i := range routes {
			r := &routes[i]
			if !r.OwnedBy(playerID) {
				continue
			}
			next, ok := r.OtherEnd(current)
			if !ok || visited[next] {
				continue
			}
			visited[next] = true
			queue = append(queue, next)
		}
	}
	return false
}
