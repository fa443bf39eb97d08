package format

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	seqPadRe    = regexp.MustCompile(`\{SEQ(\d+)\}`)
	clientPadRe = regexp.MustCompile(`\{CLIENT(\d+)\}`)
)

// DefaultNumberTemplate renders INV-{YYYYMM}-{clientId:03d}-{seq:02d}.
const DefaultNumberTemplate = "INV-{YYYY}{MM}-{CLIENT3}-{SEQ2}"

// Number formats a human-readable invoice number from a template,
// the issue time, the owning client id and a per-client monthly sequence.
//
// This function is PURE:
// - No side effects
// - No store access
// - Fully deterministic
func Number(template string, issuedAt time.Time, clientID, seq int64) (string, error) {
	if template == "" {
		return "", fmt.Errorf("invoice number template is empty")
	}
	if clientID <= 0 {
		return "", fmt.Errorf("invalid client id: %d", clientID)
	}
	if seq <= 0 {
		return "", fmt.Errorf("invalid invoice sequence: %d", seq)
	}

	out := template

	// Date tokens
	out = strings.ReplaceAll(out, "{YYYY}", issuedAt.Format("2006"))
	out = strings.ReplaceAll(out, "{YY}", issuedAt.Format("06"))
	out = strings.ReplaceAll(out, "{MM}", issuedAt.Format("01"))
	out = strings.ReplaceAll(out, "{DD}", issuedAt.Format("02"))

	// Unpadded tokens
	out = strings.ReplaceAll(out, "{SEQ}", strconv.FormatInt(seq, 10))
	out = strings.ReplaceAll(out, "{CLIENT}", strconv.FormatInt(clientID, 10))

	// Padded tokens
	out = replacePadded(seqPadRe, out, seq)
	out = replacePadded(clientPadRe, out, clientID)

	// Final safety check: unresolved tokens
	if strings.Contains(out, "{") || strings.Contains(out, "}") {
		return "", fmt.Errorf("unresolved token in invoice format: %s", out)
	}

	return out, nil
}

func replacePadded(re *regexp.Regexp, out string, value int64) string {
	return re.ReplaceAllStringFunc(out, func(m string) string {
		match := re.FindStringSubmatch(m)
		if len(match) != 2 {
			return m // should never happen
		}
		width, err := strconv.Atoi(match[1])
		if err != nil || width <= 0 {
			return m
		}
		return fmt.Sprintf("%0*d", width, value)
	})
}
