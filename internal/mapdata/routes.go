package mapdata

import (
	"fmt"

	"github.com/google/uuid"

	"traindepot/internal/domain"
)

type routeRow struct {
	from   string
	to     string
	length int
}

// All connections allow any single color; none carries a color restriction.
var routeTable = []routeRow{
	// Europe
	{"London", "Paris", 2},
	{"London", "Amsterdam", 2},
	{"Paris", "Brussels", 1},
	{"Paris", "Madrid", 3},
	{"Berlin", "Amsterdam", 2},
	{"Berlin", "Warsaw", 2},
	{"Berlin", "Prague", 1},
	{"Berlin", "Vienna", 2},
	{"Rome", "Vienna", 3},
	{"Rome", "Athens", 3},
	{"Madrid", "Lisbon", 2},
	{"Stockholm", "Oslo", 2},
	{"Stockholm", "Copenhagen", 2},
	{"Stockholm", "Helsinki", 2},
	{"Copenhagen", "Berlin", 2},
	{"Oslo", "Copenhagen", 2},
	{"Vienna", "Budapest", 1},
	{"Vienna", "Prague", 1},
	{"Warsaw", "Prague", 2},
	{"Warsaw", "Budapest", 2},
	{"Budapest", "Athens", 3},
	{"Athens", "Istanbul", 2},
	{"Moscow", "Warsaw", 3},
	{"Moscow", "Helsinki", 3},
	{"Brussels", "Amsterdam", 1},
	{"Prague", "Budapest", 2},
	{"Paris", "Rome", 3},
	{"Dublin", "London", 2},
	{"Lisbon", "Madrid", 2},
	{"Rome", "Madrid", 3},

	// West Asia
	{"Istanbul", "Ankara", 2},
	{"Ankara", "Tbilisi", 3},
	{"Ankara", "Damascus", 3},
	{"Tehran", "Baku", 3},
	{"Tehran", "Baghdad", 2},
	{"Baghdad", "Damascus", 2},
	{"Damascus", "Beirut", 1},
	{"Damascus", "Jerusalem", 1},
	{"Damascus", "Amman", 1},
	{"Beirut", "Jerusalem", 1},
	{"Jerusalem", "Amman", 1},
	{"Amman", "Riyadh", 4},
	{"Baghdad", "Kuwait City", 2},
	{"Kuwait City", "Riyadh", 2},
	{"Riyadh", "Doha", 2},
	{"Doha", "Abu Dhabi", 2},
	{"Abu Dhabi", "Muscat", 2},
	{"Riyadh", "Sana'a", 3},
	{"Baku", "Tbilisi", 2},
	{"Tbilisi", "Yerevan", 1},
	{"Yerevan", "Tehran", 3},

	// Cross-regional
	{"Moscow", "Ankara", 4},
	{"Athens", "Ankara", 3},
	{"Istanbul", "Athens", 2},
}

// BuildRoutes materializes the route table against the given city list. It
// errors when a table entry names a city missing from the list; that is a
// data defect, not a game condition.
func BuildRoutes(cities []domain.City) ([]domain.Route, error) {
	ids := make(map[string]uuid.UUID, len(cities))
	for _, c := range cities {
		ids[c.Name] = c.ID
	}

	routes := make([]domain.Route, 0, len(routeTable))
	for _, row := range routeTable {
		fromID, ok := ids[row.from]
		if !ok {
			return nil, fmt.Errorf("route table references unknown city %q", row.from)
		}
		toID, ok := ids[row.to]
		if !ok {
			return nil, fmt.Errorf("route table references unknown city %q", row.to)
		}
		routes = append(routes, domain.Route{
			ID:       uuid.New(),
			FromCity: fromID,
			ToCity:   toID,
			Length:   row.length,
		})
	}
	return routes, nil
}
