package util

import (
	"github.com/google/uuid"
)

// RandomEmail returns a unique throwaway address for test players
func RandomEmail() string {
	return uuid.New().String() + "@players.invalid"
}
