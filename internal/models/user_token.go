package models

// UserToken represents the single active refresh token of a user
type UserToken struct {
	UserID int    `json:"userId"`
	Token  string `json:"token"`
}
