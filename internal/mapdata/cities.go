// Package mapdata holds the static geography tables for the Europe / West
// Asia map and builds the per-match city and route lists from them.
package mapdata

import (
	"github.com/google/uuid"

	"traindepot/internal/domain"
)

type cityRow struct {
	name    string
	country string
	lat     float64
	lon     float64
	region  domain.Region
}

// 20 Europe cities followed by 16 West Asia cities.
var cityTable = []cityRow{
	{"London", "United Kingdom", 51.5074, -0.1278, domain.RegionEurope},
	{"Paris", "France", 48.8566, 2.3522, domain.RegionEurope},
	{"Berlin", "Germany", 52.5200, 13.4050, domain.RegionEurope},
	{"Madrid", "Spain", 40.4168, -3.7038, domain.RegionEurope},
	{"Rome", "Italy", 41.9028, 12.4964, domain.RegionEurope},
	{"Amsterdam", "Netherlands", 52.3676, 4.9041, domain.RegionEurope},
	{"Vienna", "Austria", 48.2082, 16.3738, domain.RegionEurope},
	{"Warsaw", "Poland", 52.2297, 21.0122, domain.RegionEurope},
	{"Stockholm", "Sweden", 59.3293, 18.0686, domain.RegionEurope},
	{"Oslo", "Norway", 59.9139, 10.7522, domain.RegionEurope},
	{"Copenhagen", "Denmark", 55.6761, 12.5683, domain.RegionEurope},
	{"Helsinki", "Finland", 60.1699, 24.9384, domain.RegionEurope},
	{"Brussels", "Belgium", 50.8503, 4.3517, domain.RegionEurope},
	{"Prague", "Czech Republic", 50.0755, 14.4378, domain.RegionEurope},
	{"Budapest", "Hungary", 47.4979, 19.0402, domain.RegionEurope},
	{"Athens", "Greece", 37.9838, 23.7275, domain.RegionEurope},
	{"Lisbon", "Portugal", 38.7223, -9.1393, domain.RegionEurope},
	{"Dublin", "Ireland", 53.3498, -6.2603, domain.RegionEurope},
	{"Moscow", "Russia", 55.7558, 37.6173, domain.RegionEurope},
	{"Istanbul", "Turkey", 41.0082, 28.9784, domain.RegionEurope},

	{"Ankara", "Turkey", 39.9334, 32.8597, domain.RegionWestAsia},
	{"Tehran", "Iran", 35.6892, 51.3890, domain.RegionWestAsia},
	{"Baghdad", "Iraq", 33.3152, 44.3661, domain.RegionWestAsia},
	{"Damascus", "Syria", 33.5138, 36.2765, domain.RegionWestAsia},
	{"Beirut", "Lebanon", 33.8938, 35.5018, domain.RegionWestAsia},
	{"Jerusalem", "Israel", 31.7683, 35.2137, domain.RegionWestAsia},
	{"Amman", "Jordan", 31.9539, 35.9106, domain.RegionWestAsia},
	{"Riyadh", "Saudi Arabia", 24.7136, 46.6753, domain.RegionWestAsia},
	{"Kuwait City", "Kuwait", 29.3759, 47.9774, domain.RegionWestAsia},
	{"Doha", "Qatar", 25.2854, 51.5310, domain.RegionWestAsia},
	{"Abu Dhabi", "UAE", 24.4539, 54.3773, domain.RegionWestAsia},
	{"Muscat", "Oman", 23.5859, 58.4059, domain.RegionWestAsia},
	{"Sana'a", "Yemen", 15.3694, 44.1910, domain.RegionWestAsia},
	{"Baku", "Azerbaijan", 40.4093, 49.8671, domain.RegionWestAsia},
	{"Tbilisi", "Georgia", 41.7151, 44.8271, domain.RegionWestAsia},
	{"Yerevan", "Armenia", 40.1792, 44.4991, domain.RegionWestAsia},
}

// BuildCities materializes the static city table with fresh ids. Each match
// carries its own copy.
func BuildCities() []domain.City {
	cities := make([]domain.City, 0, len(cityTable))
	for _, row := range cityTable {
		cities = append(cities, domain.City{
			ID:      uuid.New(),
			Name:    row.name,
			Country: row.country,
			Coordinates: domain.Coordinates{
				Latitude:  row.lat,
				Longitude: row.lon,
			},
			Region: row.region,
		})
	}
	return cities
}

// CityByName returns the city with the given display name, or nil.
func CityByName(cities []domain.City, name string) *domain.City {
	for i := range cities {
		if cities[i].Name == name {
			return &cities[i]
		}
	}
	return nil
}
