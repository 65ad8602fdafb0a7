package mapdata

import (
	"math/rand"

	"github.com/google/uuid"

	"traindepot/internal/domain"
)

// GenerateMissions produces count randomized point-to-point missions from the
// given city list. Each mission samples two distinct cities uniformly
// (re-sampling same-city draws); duplicate pairs across the batch are fine.
// Points derive from the great-circle distance between the endpoints. The
// batch is returned pre-shuffled. Deterministic for a fixed rng.
func GenerateMissions(cities []domain.City, count int, rng *rand.Rand) []domain.Mission {
	if len(cities) < 2 {
		return nil
	}

	missions := make([]domain.Mission, 0, count)
	for len(missions) < count {
		from := cities[rng.Intn(len(cities))]
		to := cities[rng.Intn(len(cities))]
		if from.ID == to.ID {
			continue
		}

		dist := domain.Distance(from.Coordinates, to.Coordinates)
		missions = append(missions, domain.Mission{
			ID:       uuid.New(),
			FromCity: from.ID,
			ToCity:   to.ID,
			Points:   domain.PointsForDistance(dist),
		})
	}

	rng.Shuffle(len(missions), func(i, j int) {
		missions[i], missions[j] = missions[j], missions[i]
	})
	return missions
}
