package entity

import (
	"time"

	"github.com/google/uuid"
)

// DonationStatus is the review state of a donation.
type DonationStatus string

const (
	DonationStatusPending     DonationStatus = "Pending"
	DonationStatusApproved    DonationStatus = "Approved"
	DonationStatusDisapproved DonationStatus = "Disapproved"
)

// String returns the string representation of the DonationStatus.
func (s DonationStatus) String() string {
	return string(s)
}

// IsValid checks if the DonationStatus is a valid value.
func (s DonationStatus) IsValid() bool {
	switch s {
	case DonationStatusPending, DonationStatusApproved, DonationStatusDisapproved:
		return true
	default:
		return false
	}
}

// Donation is an item a user offers to give away, reviewed by an admin.
type Donation struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	User            *User // Populated on admin reads, hash stripped.
	ItemName        string
	ItemDescription string
	Status          DonationStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Stats summarizes the admin dashboard counters.
type Stats struct {
	UserCount            int64
	ProductCount         int64
	DonationCount        int64
	PendingDonationCount int64
}
