package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/arnavshah/roster-api-go/pkg/models"
)

var jwtSecret = []byte(os.Getenv("JWT_SECRET"))
var jwtAlgorithm = jwt.SigningMethodHS256

// Claims represents the JWT claims carried by a logged-in professional
type Claims struct {
	ProfessionalID uint   `json:"professional_id"`
	Email          string `json:"email"`
	Profile        string `json:"profile"`
	jwt.RegisteredClaims
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

// CheckPasswordHash compares a password with its hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// CreateToken creates a new JWT token for a professional
func CreateToken(p *models.Professional) (string, error) {
	expirationTime := time.Now().Add(24 * time.Hour)
	claims := &Claims{
		ProfessionalID: p.ID,
		Email:          p.Email,
		Profile:        p.Profile,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
		},
	}

	token := jwt.NewWithClaims(jwtAlgorithm, claims)
	return token.SignedString(jwtSecret)
}

// VerifyToken verifies a JWT token
func VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// EnsureAdminExists checks if any admin professional exists, if not create
// one from environment variables so a fresh install can be administered.
func EnsureAdminExists(db *gorm.DB) error {
	var count int64
	db.Model(&models.Professional{}).Where("profile = ?", models.ProfileAdmin).Count(&count)

	if count == 0 {
		email := os.Getenv("ADMIN_EMAIL")
		if email == "" {
			email = "admin@hospital.local"
		}
		password := os.Getenv("ADMIN_PASSWORD")
		if password == "" {
			password = "admin123"
		}

		hash, err := HashPassword(password)
		if err != nil {
			return err
		}

		var hospital models.Hospital
		db.FirstOrCreate(&hospital, models.Hospital{Name: "Default Hospital", Active: true})

		admin := models.Professional{
			Name:         "Administrator",
			HospitalID:   hospital.ID,
			Active:       true,
			Email:        email,
			PasswordHash: hash,
			Profile:      models.ProfileAdmin,
		}

		err = db.Create(&admin).Error
		if err == nil {
			println("Default admin professional created: " + email)
		}
		return err
	}
	return nil
}
