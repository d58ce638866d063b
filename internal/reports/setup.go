package reports

import (
	"log"

	"github.com/SafeTrails/ST-Backend/internal/db"
)

func Init() {
	if err := db.DB.AutoMigrate(&Report{}); err != nil {
		log.Fatal("Failed to auto-migrate reports table: ", err)
	}
}
