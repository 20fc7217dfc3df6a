package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateAppointmentID builds the human-readable booking reference shown to
// customers: APT-<unix timestamp>-<6 char random suffix>, upper-cased.
func GenerateAppointmentID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return strings.ToUpper(fmt.Sprintf("APT-%d-%s", time.Now().Unix(), suffix))
}
