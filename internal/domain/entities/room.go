package entities

// Room is a bookable space in the catalog
type Room struct {
	ID         ID     `json:"id"`
	Name       string `json:"name"`
	Capacity   int    `json:"capacity"`
	Location   string `json:"location"`
	FeatureIDs []ID   `json:"featureIds"`
	ImageURL   string `json:"imageUrl,omitempty"`
}

// HasFeature reports whether the room lists featureID
func (r *Room) HasFeature(featureID ID) bool {
	for _, id := range r.FeatureIDs {
		if id == featureID {
			return true
		}
	}
	return false
}

// Feature is an amenity rooms can reference
type Feature struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}
