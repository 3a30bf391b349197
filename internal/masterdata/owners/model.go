package owners

// Owner represents a property owner. FamilyCount feeds the family
// deduction in the tax computation and is not used anywhere else.
type Owner struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	LegalID     string `json:"legal_id"`
	FamilyCount int    `json:"family_count"`
}

// Patch lists the fields of an update; nil fields are left unchanged.
type Patch struct {
	Name        *string `json:"name"`
	Phone       *string `json:"phone"`
	LegalID     *string `json:"legal_id"`
	FamilyCount *int    `json:"family_count"`
}
