package booking

import (
    "crypto/rand"
    "fmt"
    "math/big"
    "strings"

    "github.com/google/uuid"
)

// NewReservationNo returns a fresh human-facing booking reference such as
// "RSV-9F2C41AB".  The short uuid fragment keeps the number printable on a
// receipt and scannable from a QR code.
func NewReservationNo() string {
    frag := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
    return "RSV-" + frag
}

// NewReferenceNo synthesizes the 9-digit payment reference attached to cash
// reservations at approval time.  The first digit is never zero so the
// reference is always nine numerals long.
func NewReferenceNo() (string, error) {
    n, err := rand.Int(rand.Reader, big.NewInt(900_000_000))
    if err != nil {
        return "", fmt.Errorf("generate reference number: %w", err)
    }
    return fmt.Sprintf("%09d", n.Int64()+100_000_000), nil
}
