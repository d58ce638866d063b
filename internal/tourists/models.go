package tourists

import (
	"time"

	"github.com/SafeTrails/ST-Backend/internal/store"
)

const touristTable = "tourists"

// Tourist is the persisted registration record. Column names are
// lowercase because the original DDL used unquoted identifiers.
type Tourist struct {
	ID                string      `gorm:"primaryKey;column:id" json:"id"`
	CreatedAt         time.Time   `gorm:"column:created_at" json:"created_at"`
	FullName          string      `gorm:"column:fullname" json:"fullname"`
	Email             string      `gorm:"column:email;uniqueIndex" json:"email"`
	PhoneNo           string      `gorm:"column:phoneno" json:"phoneno"`
	Nationality       string      `gorm:"column:nationality" json:"nationality"`
	Photo             *string     `gorm:"column:photo" json:"photo"`
	DocumentType      string      `gorm:"column:documenttype" json:"documenttype"`
	DocumentNo        string      `gorm:"column:documentno" json:"documentno"`
	DocumentPhoto     *string     `gorm:"column:documentphoto" json:"documentphoto"`
	RegistrationPoint string      `gorm:"column:registrationpoint" json:"registrationpoint"`
	CheckInDate       string      `gorm:"column:checkindate" json:"checkindate"`
	CheckOutDate      string      `gorm:"column:checkoutdate" json:"checkoutdate"`
	EmergencyContacts store.JSONB `gorm:"column:emergencycontacts" json:"emergencycontacts"`
	TravelItinerary   store.JSONB `gorm:"column:travelitinerary" json:"travelitinerary"`
	WalletAddress     *string     `gorm:"column:wallet_address" json:"wallet_address"`
	Verified          bool        `gorm:"column:verified;default:false" json:"verified"`
}

func (Tourist) TableName() string { return touristTable }

// publicColumns is the projection returned by list and passport lookup.
var publicColumns = []string{
	"id", "created_at", "fullname", "email", "phoneno", "nationality",
	"photo", "documenttype", "documentno", "registrationpoint",
	"checkindate", "checkoutdate", "verified",
}

// verifyColumns is the slim projection returned by the verify flow.
var verifyColumns = []string{"id", "fullname", "documentno", "verified"}
