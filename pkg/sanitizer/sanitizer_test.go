package sanitizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrimAndNormalize(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"only spaces", "    ", ""},
		{"leading and trailing", "  Garden Pavilion  ", "Garden Pavilion"},
		{"internal runs", "Garden\t\tPavilion   A", "Garden Pavilion A"},
		{"newlines", "Garden\nPavilion", "Garden Pavilion"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TrimAndNormalize(tc.input))
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"local mobile", "0917 123 4567", "+639171234567"},
		{"already e164", "+639171234567", "+639171234567"},
		{"garbage", "not-a-phone", ""},
		{"too short", "12", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizePhone(tc.input))
		})
	}
}

func TestNormalizeStringSlice(t *testing.T) {
	assert.Nil(t, NormalizeStringSlice(nil))
	assert.Nil(t, NormalizeStringSlice([]string{"", "  "}))

	got := NormalizeStringSlice([]string{" Lechon ", "lechon belly", "Lechon", "  "})
	assert.Equal(t, []string{"Lechon", "lechon belly"}, got)
}

func TestNonNegative(t *testing.T) {
	assert.Equal(t, 0.0, NonNegative(-125.50))
	assert.Equal(t, 80000.0, NonNegative(80000))
}
