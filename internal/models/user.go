package models

// Role represents a user's role in the system
type Role string

// User role constants
const (
	RoleFarmer Role = "farmer"
	RoleBuyer  Role = "buyer"
	RoleExpert Role = "expert"
	RoleAdmin  Role = "admin"
)

// SelfRegisterRoles are the roles a user may choose at signup.
// Admin accounts are provisioned out of band, never self-registered.
var SelfRegisterRoles = []Role{RoleFarmer, RoleBuyer, RoleExpert}

// Language represents the user's preferred language
type Language string

const (
	LanguageEnglish   Language = "en"
	LanguageMalayalam Language = "ml"
)

// Location represents a user's location within Kerala
type Location struct {
	District  string   `json:"district"`
	Village   string   `json:"village"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// User represents a registered user
type User struct {
	ID                int      `json:"id"`
	PhoneNumber       string   `json:"phoneNumber"`
	PasswordHash      string   `json:"-"` // Never serialize password hash
	Name              string   `json:"name"`
	Role              Role     `json:"role"`
	PreferredLanguage Language `json:"preferredLanguage"`
	Location          Location `json:"location"`
	LandSize          *float64 `json:"landSize,omitempty"` // In acres
}

// SignupRequest represents a signup request
type SignupRequest struct {
	PhoneNumber       string   `json:"phoneNumber"`
	Password          string   `json:"password"`
	Name              string   `json:"name"`
	Role              Role     `json:"role,omitempty"`
	PreferredLanguage Language `json:"preferredLanguage,omitempty"`
	Location          Location `json:"location"`
	LandSize          *float64 `json:"landSize,omitempty"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

// UserSummary is the minimal profile returned on login
type UserSummary struct {
	Name        string `json:"name"`
	Role        Role   `json:"role"`
	PhoneNumber string `json:"phoneNumber"`
}

// Summary returns the minimal profile of the user
func (u *User) Summary() UserSummary {
	return UserSummary{
		Name:        u.Name,
		Role:        u.Role,
		PhoneNumber: u.PhoneNumber,
	}
}
