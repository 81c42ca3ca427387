package types

// Address is the minimal address shape the pricing engine matches zones
// against. Reference-data management (countries, states) lives with the host
// platform.
type Address struct {
	Line1              string `json:"line1,omitempty"`
	City               string `json:"city,omitempty"`
	CountryCode        string `json:"country_code"`
	AdministrativeArea string `json:"administrative_area,omitempty"`
	PostalCode         string `json:"postal_code,omitempty"`
}
