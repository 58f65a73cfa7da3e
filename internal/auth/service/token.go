package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenGenerator handles JWT token generation and validation
type TokenGenerator struct {
	secret             string
	accessTokenExpiry  time.Duration
	refreshTokenExpiry time.Duration
}

// NewTokenGenerator creates a new token generator
func NewTokenGenerator(secret string, accessExpiry, refreshExpiry time.Duration) *TokenGenerator {
	return &TokenGenerator{
		secret:             secret,
		accessTokenExpiry:  accessExpiry,
		refreshTokenExpiry: refreshExpiry,
	}
}

// GenerateTokens generates both access and refresh tokens for a user.
// Both tokens carry user_id, role and phone_number; a "type" claim tells them apart.
func (tg *TokenGenerator) GenerateTokens(userID int, role, phoneNumber string) (string, string, error) {
	accessToken, err := tg.generateToken(userID, role, phoneNumber, "access", tg.accessTokenExpiry)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := tg.generateToken(userID, role, phoneNumber, "refresh", tg.refreshTokenExpiry)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return accessToken, refreshToken, nil
}

// generateToken creates a signed token of the given type
func (tg *TokenGenerator) generateToken(userID int, role, phoneNumber, tokenType string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":      userID,
		"role":         role,
		"phone_number": phoneNumber,
		"exp":          time.Now().Add(expiry).Unix(),
		"iat":          time.Now().Unix(),
		"type":         tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(tg.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}

	return tokenString, nil
}

// ValidateAccessToken validates an access token and returns the userID and role
func (tg *TokenGenerator) ValidateAccessToken(tokenString string) (int, string, error) {
	claims, err := tg.parseClaims(tokenString, "access")
	if err != nil {
		return 0, "", err
	}

	// Extract userID (JWT claims decode numbers as float64)
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, "", fmt.Errorf("user_id not found in token")
	}

	role, ok := claims["role"].(string)
	if !ok {
		return 0, "", fmt.Errorf("role not found in token")
	}

	return int(userIDFloat), role, nil
}

// ValidateRefreshToken validates a refresh token and returns the userID
func (tg *TokenGenerator) ValidateRefreshToken(tokenString string) (int, error) {
	claims, err := tg.parseClaims(tokenString, "refresh")
	if err != nil {
		return 0, err
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, fmt.Errorf("user_id not found in token")
	}

	return int(userIDFloat), nil
}

// parseClaims parses a token, verifies the signature and checks the type claim
func (tg *TokenGenerator) parseClaims(tokenString, expectedType string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(tg.secret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	// Check token type
	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != expectedType {
		return nil, fmt.Errorf("token is not an %s token", expectedType)
	}

	return claims, nil
}
