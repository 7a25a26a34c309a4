package domain

import "time"

// Role separates applicants from administrators.
type Role string

const (
	RoleAdmin     Role = "Admin"
	RoleApplicant Role = "Applicant"
)

// UserStatus represents lifecycle states for a user account.
type UserStatus string

const (
	UserStatusActive    UserStatus = "Active"
	UserStatusSuspended UserStatus = "Suspended"
)

// Gender values accepted at registration.
type Gender string

const (
	GenderMale      Gender = "Male"
	GenderFemale    Gender = "Female"
	GenderNonBinary Gender = "NonBinary"
	GenderOther     Gender = "Other"
)

// Title values accepted at registration.
type Title string

const (
	TitleMr    Title = "Mr"
	TitleMrs   Title = "Mrs"
	TitleMs    Title = "Ms"
	TitleDr    Title = "Dr"
	TitleProf  Title = "Prof"
	TitleOther Title = "Other"
)

// Ethnicity values accepted at registration.
type Ethnicity string

const (
	EthnicityWhite Ethnicity = "White"
	EthnicityMixed Ethnicity = "Mixed"
	EthnicityAsian Ethnicity = "Asian"
	EthnicityBlack Ethnicity = "Black"
	EthnicityOther Ethnicity = "Other"
)

// Province enumerates South African provinces.
type Province string

const (
	ProvinceMpumalanga   Province = "Mpumalanga"
	ProvinceKwaZuluNatal Province = "KwaZuluNatal"
	ProvinceFreeState    Province = "FreeState"
	ProvinceGauteng      Province = "Gauteng"
	ProvinceLimpopo      Province = "Limpopo"
	ProvinceNorthWest    Province = "NorthWest"
	ProvinceNorthernCape Province = "NorthernCape"
	ProvinceWesternCape  Province = "WesternCape"
	ProvinceEasternCape  Province = "EasternCape"
	ProvinceUnknown      Province = "Unknown"
)

// User is the domain model for registered accounts.
type User struct {
	ID           string
	Name         string
	Surname      string
	Email        string
	PasswordHash string
	Gender       Gender
	Title        Title
	Ethnicity    Ethnicity
	Province     Province
	DateOfBirth  time.Time
	IDNumber     string
	PhoneNumber  string
	Address      string
	Role         Role
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
