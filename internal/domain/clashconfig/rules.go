package clashconfig

import (
	"fmt"
	"strings"

	"github.com/orris-inc/subhub/internal/shared/errors"
)

// ruleTypeAliases translates rule types written for other clients into
// their Clash spelling.
var ruleTypeAliases = map[string]string{
	"FINAL":        "MATCH",
	"HOST":         "DOMAIN",
	"HOST-SUFFIX":  "DOMAIN-SUFFIX",
	"HOST-KEYWORD": "DOMAIN-KEYWORD",
	"IP6-CIDR":     "IP-CIDR6",
}

// valuelessRuleTypes may carry an empty VALUE field.
var valuelessRuleTypes = map[string]bool{
	"MATCH": true,
}

// CompileRule turns one "TYPE,VALUE,PROXY" line into a Clash rule token.
// Fields are trimmed and TYPE is upper-cased and de-aliased.
func CompileRule(line string) (string, error) {
	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) != 3 {
		return "", errors.NewValidationError(
			"invalid rule",
			fmt.Sprintf("%q: expected TYPE,VALUE,PROXY", line),
		)
	}

	ruleType := strings.ToUpper(strings.TrimSpace(fields[0]))
	value := strings.TrimSpace(fields[1])
	proxy := strings.TrimSpace(fields[2])

	if alias, ok := ruleTypeAliases[ruleType]; ok {
		ruleType = alias
	}

	switch {
	case ruleType == "":
		return "", errors.NewValidationError("invalid rule", fmt.Sprintf("%q: empty type", line))
	case proxy == "":
		return "", errors.NewValidationError("invalid rule", fmt.Sprintf("%q: empty proxy", line))
	case value == "" && !valuelessRuleTypes[ruleType]:
		return "", errors.NewValidationError("invalid rule", fmt.Sprintf("%q: empty value", line))
	}

	return ruleType + "," + value + "," + proxy, nil
}

// CompileRules compiles every non-blank line of text, keeping input order.
// The first invalid line aborts compilation.
func CompileRules(text string) ([]string, error) {
	var rules []string
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rule, err := CompileRule(line)
		if err != nil {
			if appErr := errors.GetAppError(err); appErr != nil {
				appErr.Details = fmt.Sprintf("line %d: %s", i+1, appErr.Details)
			}
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}
