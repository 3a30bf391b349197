package units

// Unit represents a rentable property: an apartment, a store or a whole
// building. All fields besides Reference are descriptive only.
type Unit struct {
	ID           int64  `json:"id"`
	Reference    string `json:"reference"`
	City         string `json:"city"`
	Neighborhood string `json:"neighborhood"`
	Floor        string `json:"floor"`
	Type         string `json:"unit_type"`
}

// Patch lists the fields of an update; nil fields are left unchanged.
type Patch struct {
	Reference    *string `json:"reference"`
	City         *string `json:"city"`
	Neighborhood *string `json:"neighborhood"`
	Floor        *string `json:"floor"`
	Type         *string `json:"unit_type"`
}
