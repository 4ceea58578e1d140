package model

// CountryAll is the filter sentinel meaning "no filter".
const CountryAll = "All"

// Country is a tag entity recipes are associated with many-to-many.
type Country struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
