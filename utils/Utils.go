package utils

import (
	"fmt"

	"github.com/google/uuid"
)

func GenerateRandomFilename(extension string) string {
	id := uuid.New()
	return fmt.Sprintf("%s.%s", id.String(), extension)
}
