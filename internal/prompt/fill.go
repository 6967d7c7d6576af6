package prompt

import (
	"regexp"
	"strings"
)

var placeholderRe = regexp.MustCompile(`\{([a-z_]+)\}`)

// Fill substitutes every {name} placeholder in the template with vars[name].
// A placeholder without a matching var renders as the empty string, so filling
// is total over any template/vars pair.
func Fill(template string, vars map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(template, func(m string) string {
		name := strings.Trim(m, "{}")
		return vars[name]
	})
}
