package pipeline

import (
	"regexp"
	"strings"

	"deployment-analyzer/internal/model"
)

// Rights-management fragments embedded in instruction text. The copyright
// holder follows a © sign, usage terms follow "nur" (German "only"), and an
// expiry date follows "bis" (German "until").
var (
	rightsHolderRe = regexp.MustCompile(`©\s*([^,\[\]]+)`)
	usageTermsRe   = regexp.MustCompile(`nur\s+([^,\[\]]+)`)
	expiryDateRe   = regexp.MustCompile(`bis\s+(\d{2}\.\d{2}\.\d{4})`)
)

// ExtractRights pulls rights-management fields out of an instruction text.
// Fields whose fragment is absent stay empty.
func ExtractRights(instruction string) model.RightsInfo {
	var info model.RightsInfo

	if m := rightsHolderRe.FindStringSubmatch(instruction); m != nil {
		info.Holder = strings.TrimSpace(m[1])
	}
	if m := usageTermsRe.FindStringSubmatch(instruction); m != nil {
		info.UsageTerms = strings.TrimSpace(m[1])
	}
	if m := expiryDateRe.FindStringSubmatch(instruction); m != nil {
		info.Expiry = m[1]
	}

	return info
}
