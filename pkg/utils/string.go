package utils

import (
	"math/rand"
	"strconv"
	"time"
)

const base36Charset = "0123456789abcdefghijklmnopqrstuvwxyz"

var randSource = rand.NewSource(time.Now().UnixNano())
var randGenerator = rand.New(randSource)

func GenerateRandomString(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = base36Charset[randGenerator.Intn(len(base36Charset))]
	}
	return string(b)
}

// NewTicketID builds an opaque ticket identifier from a random base-36
// fragment and a timestamp-derived base-36 fragment. Not a security
// credential, only a pointer into the attendee table; the timestamp part
// keeps ids roughly monotonic.
func NewTicketID() string {
	return GenerateRandomString(9) + strconv.FormatInt(time.Now().UnixMilli(), 36)
}
