package utils

import (
	"crypto/rand"
	"fmt"
)

const meetAlphabet = "abcdefghijklmnopqrstuvwxyz"

// GenerateMeetLink synthesizes a video-meeting link for appointments the
// doctor approves directly, where no provider-generated link exists.
func GenerateMeetLink() string {
	return fmt.Sprintf("https://meet.google.com/%s-%s-%s",
		randomSlug(3), randomSlug(4), randomSlug(3))
}

func randomSlug(n int) string {
	b := make([]byte, n)
	rand.Read(b)
	for i := range b {
		b[i] = meetAlphabet[int(b[i])%len(meetAlphabet)]
	}
	return string(b)
}
