package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/roosterplan/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonFirstNames = []string{
	"Daan", "Sem", "Lucas", "Levi", "Finn", "Noah", "Milan", "Thijs", "Bram", "Jesse",
	"Emma", "Julia", "Sophie", "Tess", "Lotte", "Sanne", "Fleur", "Anna", "Eva", "Noor",
}
var commonSurnames = []string{
	"de Jong", "Jansen", "de Vries", "van den Berg", "van Dijk", "Bakker", "Visser",
	"Smit", "Meijer", "de Boer", "Mulder", "de Groot", "Bos", "Vos", "Peters",
}

func GenerateRandomDutchName() string {
	first := commonFirstNames[rand.Intn(len(commonFirstNames))]
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	return first + " " + surname
}

var roles = []domain.Role{
	domain.RoleEmployee,
	domain.RolePlanner,
	domain.RoleAdmin,
}

func GenerateRandomRole() domain.Role {
	return roles[rand.Intn(len(roles))]
}

var digits = "0123456789"

func GenerateUsernameFromName(fullName string) string {
	username := strings.ToLower(strings.ReplaceAll(fullName, " ", ""))

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomEmployee(password string, emailDomainName string) (*domain.Employee, error) {
	fullName := GenerateRandomDutchName()
	username := GenerateUsernameFromName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	employee := &domain.Employee{
		Username:               username,
		PasswordHash:           string(passwordHash),
		FullName:               fullName,
		Email:                  username + "@" + emailDomainName,
		Role:                   GenerateRandomRole(),
		ManagesOwnAvailability: rand.Intn(2) == 0,
		MaxHoursPerDay:         float64(rand.Intn(4) + 6),
		MaxHoursPerWeek:        float64(rand.Intn(16) + 24),
		IsActive:               true,
	}

	return employee, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	password := make([]rune, length)
	for i := range password {
		password[i] = letters[rand.Intn(len(letters))]
	}
	return string(password)
}
