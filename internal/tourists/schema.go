package tourists

import (
	"fmt"

	"github.com/SafeTrails/ST-Backend/internal/validate"
)

// TouristInput is the JSON document carried in the multipart "data"
// field of a registration request.
type TouristInput struct {
	FullName          string             `json:"fullName"`
	Email             string             `json:"email"`
	PhoneNo           string             `json:"phoneNo"`
	Nationality       string             `json:"nationality"`
	DocumentType      string             `json:"documentType"`
	DocumentNo        string             `json:"documentNo"`
	RegistrationPoint string             `json:"registrationPoint"`
	CheckInDate       string             `json:"checkInDate"`
	CheckOutDate      string             `json:"checkOutDate"`
	EmergencyContacts []EmergencyContact `json:"emergencyContacts"`
	TravelItinerary   []ItineraryItem    `json:"travelItinerary"`
	WalletAddress     string             `json:"wallet_address"`
}

type EmergencyContact struct {
	Name         string `json:"name"`
	PhoneNo      string `json:"phoneNo"`
	Relationship string `json:"relationship"`
}

type ItineraryItem struct {
	Location string `json:"location"`
	Date     string `json:"date"`
	Activity string `json:"activity"`
}

// Validate applies the registration schema.
func (in *TouristInput) Validate() validate.Errors {
	errs := validate.Errors{}
	errs.Check("fullName", in.FullName, validate.Required)
	errs.Check("email", in.Email, validate.Required, validate.Email)
	errs.Check("phoneNo", in.PhoneNo, validate.MinLen(5))
	errs.Check("nationality", in.Nationality, validate.Required)
	errs.Check("documentType", in.DocumentType, validate.Required)
	errs.Check("documentNo", in.DocumentNo, validate.Required)
	errs.Check("registrationPoint", in.RegistrationPoint, validate.Required)
	errs.Check("checkInDate", in.CheckInDate, validate.Required)
	errs.Check("checkOutDate", in.CheckOutDate, validate.Required)

	if len(in.EmergencyContacts) == 0 {
		errs.Add("emergencyContacts", "at least one emergency contact is required")
	}
	for i, c := range in.EmergencyContacts {
		prefix := fmt.Sprintf("emergencyContacts.%d.", i)
		errs.Check(prefix+"name", c.Name, validate.Required)
		errs.Check(prefix+"phoneNo", c.PhoneNo, validate.MinLen(5))
		errs.Check(prefix+"relationship", c.Relationship, validate.Required)
	}

	if len(in.TravelItinerary) == 0 {
		errs.Add("travelItinerary", "at least one itinerary item is required")
	}
	for i, item := range in.TravelItinerary {
		prefix := fmt.Sprintf("travelItinerary.%d.", i)
		errs.Check(prefix+"location", item.Location, validate.Required)
		errs.Check(prefix+"date", item.Date, validate.Required)
		errs.Check(prefix+"activity", item.Activity, validate.Required)
	}

	if in.WalletAddress != "" {
		errs.Check("wallet_address", in.WalletAddress, validate.MinLen(20))
	}
	return errs
}
