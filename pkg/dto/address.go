package dto

// CoordinatesDTO is a WGS84 position.
type CoordinatesDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// AddressDTO is a free-form address with optional coordinates.
type AddressDTO struct {
	Address     string          `json:"address"`
	Coordinates *CoordinatesDTO `json:"coordinates,omitempty"`
}

// CustomerDTO is the contact block captured at checkout.
type CustomerDTO struct {
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Address     string `json:"address"`
}

// FullName joins first and last name.
func (c CustomerDTO) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	default:
		return c.FirstName + " " + c.LastName
	}
}
