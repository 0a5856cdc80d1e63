package main

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"gorm.io/datatypes"

	"github.com/splitleaseteam/splitlease-monorepo-sub002/models"
	"github.com/splitleaseteam/splitlease-monorepo-sub002/storage"
)

// Seeds a host, a guest, one listing and a countered proposal so the
// negotiation and document flows can be exercised locally.
func main() {
	db := storage.InitializeDB()

	allows := true
	host := models.User{FirstName: "Dana", LastName: "Whitfield", Email: "dana.host@example.com", Role: "host", AllowsNotifications: &allows}
	guest := models.User{FirstName: "Miles", LastName: "Okafor", Email: "miles.guest@example.com", AllowsNotifications: &allows}
	if err := db.FirstOrCreate(&host, models.User{Email: host.Email}).Error; err != nil {
		log.Fatalf("seed host: %v", err)
	}
	if err := db.FirstOrCreate(&guest, models.User{Email: guest.Email}).Error; err != nil {
		log.Fatalf("seed guest: %v", err)
	}

	active := true
	listing := models.Listing{
		HostID:         host.ID,
		Title:          "Sunny Chelsea 1BR",
		AddressLine1:   "214 W 21st St",
		City:           "New York",
		State:          "NY",
		Zip:            "10011",
		Country:        "USA",
		NightlyPrice:   120,
		CleaningFee:    80,
		DamageDeposit:  500,
		MaintenanceFee: 25,
		WeekPattern:    "every_week",
		HouseManual:    "Keys in the lockbox. Recycling goes out Tuesdays.",
		IsActive:       &active,
	}
	if err := db.FirstOrCreate(&listing, models.Listing{HostID: host.ID, Title: listing.Title}).Error; err != nil {
		log.Fatalf("seed listing: %v", err)
	}

	days, _ := json.Marshal([]string{"Monday", "Tuesday", "Wednesday"})
	counterNightly := 110.0
	counterWeeks := 12
	proposal := models.Proposal{
		GuestID:                 guest.ID,
		ListingID:               listing.ID,
		Status:                  models.StatusCounterofferReview,
		MoveInStart:             time.Now().AddDate(0, 1, 0),
		MoveInEnd:               time.Now().AddDate(0, 1, 7),
		DaysSelected:            datatypes.JSON(days),
		NightsPerWeek:           3,
		CheckInDay:              "Monday",
		CheckOutDay:             "Thursday",
		ReservationWeeks:        10,
		NightlyPrice:            listing.NightlyPrice,
		TotalPrice:              listing.NightlyPrice * 3 * 10,
		CleaningFee:             listing.CleaningFee,
		DamageDeposit:           listing.DamageDeposit,
		MaintenanceFee:          listing.MaintenanceFee,
		CounterofferHappened:    true,
		CounterNightlyPrice:     &counterNightly,
		CounterReservationWeeks: &counterWeeks,
	}
	if err := db.FirstOrCreate(&proposal, models.Proposal{GuestID: guest.ID, ListingID: listing.ID}).Error; err != nil {
		log.Fatalf("seed proposal: %v", err)
	}

	fmt.Printf("Seeded host=%d guest=%d listing=%d proposal=%d\n", host.ID, guest.ID, listing.ID, proposal.ID)
}
