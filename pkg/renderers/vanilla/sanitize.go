package vanilla

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce  sync.Once
	textPolicy  *bluemonday.Policy
	proseOnce   sync.Once
	prosePolicy *bluemonday.Policy
)

// sanitizeText strips all markup; used for labels, placeholders, and anything
// that ends up inside an attribute.
func sanitizeText(raw string) string {
	policyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(textPolicy.Sanitize(raw))
}

// sanitizeProse allows a small inline subset for step and field descriptions,
// which definitions may load from external documents.
func sanitizeProse(raw string) string {
	proseOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "strong", "i", "em", "code", "br")
		policy.AllowAttrs("href").OnElements("a")
		policy.RequireNoFollowOnLinks(true)
		prosePolicy = policy
	})
	return strings.TrimSpace(prosePolicy.Sanitize(raw))
}
