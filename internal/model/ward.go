package model

// Ward is a hospital ward. Wards are read-only over the HTTP surface.
type Ward struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Audit
}

// WardResponse is the hyperlinked representation of a ward.
type WardResponse struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}
