package brand

// Brand is a flat facet, there is no hierarchy.
type Brand struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
