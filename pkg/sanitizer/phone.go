package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// The business and its clients are in the Philippines; numbers without an
// explicit country code are parsed as PH.
var supportedRegions = []string{
	"PH",
}

// NormalizePhone parses a phone number and returns it in E.164 form, or an
// empty string when the input cannot be parsed for any supported region.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)

	if phone == "" {
		return ""
	}

	for _, region := range supportedRegions {
		parsedNumber, err := phonenumbers.Parse(phone, region)
		if err == nil && phonenumbers.IsValidNumber(parsedNumber) {
			return phonenumbers.Format(parsedNumber, phonenumbers.E164)
		}
	}
	return ""
}
