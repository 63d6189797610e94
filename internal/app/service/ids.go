package service

import (
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// logIDLength matches the short ids shown in the admin audit table.
const logIDLength = 9

// newMovieID returns a random UUID string.
func newMovieID() string {
	return uuid.NewString()
}

// newLogID returns a 9 character base36 id.
func newLogID() string {
	u := uuid.New()
	n := binary.BigEndian.Uint64(u[:8])
	s := strconv.FormatUint(n, 36)
	if len(s) < logIDLength {
		s = strings.Repeat("0", logIDLength-len(s)) + s
	}
	return s[len(s)-logIDLength:]
}
