package pkg

import (
	petname "github.com/dustinkirkland/golang-petname"
	"github.com/google/uuid"
)

// GenerateGameID - generates a new unique game id.
func GenerateGameID() string {
	return uuid.NewString()
}

// GeneratePlayerName - generates a readable random name such as "brave-otter".
func GeneratePlayerName() string {
	return petname.Generate(2, "-")
}
