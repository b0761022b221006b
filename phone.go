package darshan

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is used to interpret mobiles entered without a country code
const DefaultRegion = "IN"

// FormatMobile renders a mobile number in international format, for example
// "9876543210" becomes "+91 98765 43210". Values that do not parse are
// returned trimmed and unchanged.
func FormatMobile(mobile string) string {
	mobile = strings.TrimSpace(mobile)
	if mobile == "" {
		return ""
	}

	num, err := phonenumbers.Parse(mobile, DefaultRegion)
	if err != nil {
		return mobile
	}

	if !phonenumbers.IsValidNumber(num) {
		return mobile
	}

	return phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
}
