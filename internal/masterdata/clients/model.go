package clients

// ClientType distinguishes individual tenants (PP, personne physique)
// from corporate ones (PM, personne morale).
type ClientType string

const (
	TypeIndividual ClientType = "PP"
	TypeCorporate  ClientType = "PM"
)

// Client represents a tenant.
type Client struct {
	ID      int64      `json:"id"`
	Name    string     `json:"name"`
	Type    ClientType `json:"client_type"`
	Phone   string     `json:"phone"`
	LegalID string     `json:"legal_id"`
}

// Patch lists the fields of an update; nil fields are left unchanged.
type Patch struct {
	Name    *string     `json:"name"`
	Type    *ClientType `json:"client_type"`
	Phone   *string     `json:"phone"`
	LegalID *string     `json:"legal_id"`
}
