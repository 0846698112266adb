package types

import "fmt"

const shortLogLength = 16

// shorten keeps both ends of long base-58 text for log lines
func shorten(s string) string {
	if len(s) <= shortLogLength {
		return s
	}
	cut := shortLogLength / 2
	return fmt.Sprintf("%s...%s", s[:cut], s[len(s)-cut:])
}

func (p PublicKey) Short() string {
	return shorten(p.String())
}

func (s Signature) Short() string {
	return shorten(s.String())
}
