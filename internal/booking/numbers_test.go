package booking

import (
    "regexp"
    "testing"

    "github.com/stretchr/testify/require"
)

func TestNewReservationNo(t *testing.T) {
    re := regexp.MustCompile(`^RSV-[0-9A-F]{8}$`)
    seen := map[string]bool{}
    for i := 0; i < 50; i++ {
        no := NewReservationNo()
        require.Regexp(t, re, no)
        require.False(t, seen[no], "duplicate reservation number %s", no)
        seen[no] = true
    }
}

func TestNewReferenceNo(t *testing.T) {
    re := regexp.MustCompile(`^[1-9][0-9]{8}$`)
    for i := 0; i < 50; i++ {
        ref, err := NewReferenceNo()
        require.NoError(t, err)
        require.Regexp(t, re, ref)
    }
}
