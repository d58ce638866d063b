package tourists

import (
	"log"

	"github.com/SafeTrails/ST-Backend/internal/db"
)

func Init() {
	if err := db.DB.AutoMigrate(&Tourist{}); err != nil {
		log.Fatal("Failed to auto-migrate tourists table: ", err)
	}
}
