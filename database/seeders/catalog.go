package seeders

import (
	"log"

	"venue-booking/models/massage"
	"venue-booking/models/room"
	"venue-booking/models/venue"

	"gorm.io/gorm"
)

// SeedCatalog populates the bookable resource catalog: the event venue, the
// fixed pool of rooms A-N and the massage service types. Existing rows are
// left untouched so re-running the server never duplicates inventory.
func SeedCatalog(db *gorm.DB) {
	seedVenue(db)
	seedRooms(db)
	seedMassageTypes(db)
}

func seedVenue(db *gorm.DB) {
	var count int64
	if err := db.Model(&venue.Venue{}).Count(&count).Error; err != nil {
		log.Printf("❌ Failed to check venues: %v", err)
		return
	}
	if count > 0 {
		return
	}

	v := venue.Venue{Name: "Salón Principal", Description: "Salón de eventos principal", Capacity: 200, BasePrice: 1500}
	if err := db.Create(&v).Error; err != nil {
		log.Printf("❌ Failed to seed venue: %v", err)
		return
	}
	log.Printf("🌱 Seeded venue %q", v.Name)
}

func seedRooms(db *gorm.DB) {
	letters := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M", "N"}

	var existing []string
	if err := db.Model(&room.Room{}).Pluck("letter", &existing).Error; err != nil {
		log.Printf("❌ Failed to fetch existing room letters: %v", err)
		return
	}
	existingMap := make(map[string]bool)
	for _, l := range existing {
		existingMap[l] = true
	}

	var roomType room.RoomType
	if err := db.Where("title = ?", "Standard").First(&roomType).Error; err != nil {
		roomType = room.RoomType{Title: "Standard", Description: "Habitación estándar", AdultCapacity: 2, ChildCapacity: 1, PricePerNight: 120}
		if err := db.Create(&roomType).Error; err != nil {
			log.Printf("❌ Failed to seed room type: %v", err)
			return
		}
	}

	seeded := 0
	for _, letter := range letters {
		if existingMap[letter] {
			continue
		}
		r := room.Room{Letter: letter, Name: "Habitación " + letter, Status: room.StatusDisponible, RoomTypeID: roomType.ID}
		if err := db.Create(&r).Error; err != nil {
			log.Printf("❌ Failed to seed room %s: %v", letter, err)
			continue
		}
		seeded++
	}
	if seeded > 0 {
		log.Printf("🌱 Seeded %d rooms", seeded)
	}
}

func seedMassageTypes(db *gorm.DB) {
	types := []massage.MassageType{
		{Name: "Masaje Relajante", DurationMinutes: 60, Price: 80},
		{Name: "Masaje Descontracturante", DurationMinutes: 90, Price: 110},
		{Name: "Masaje con Piedras Calientes", DurationMinutes: 75, Price: 95},
	}

	var existing []string
	if err := db.Model(&massage.MassageType{}).Pluck("name", &existing).Error; err != nil {
		log.Printf("❌ Failed to fetch existing massage types: %v", err)
		return
	}
	existingMap := make(map[string]bool)
	for _, n := range existing {
		existingMap[n] = true
	}

	for _, mt := range types {
		if existingMap[mt.Name] {
			continue
		}
		if err := db.Create(&mt).Error; err != nil {
			log.Printf("❌ Failed to seed massage type %s: %v", mt.Name, err)
		}
	}
}
