package domain

// TouristSpot is a catalog destination offered for selection within a
// booking's route. Spots are seeded once and read-only through the API.
type TouristSpot struct {
	SpotID      string
	Name        string
	City        string
	Description string
	History     string
	Image       string
}
