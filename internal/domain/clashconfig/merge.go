package clashconfig

import (
	"github.com/orris-inc/subhub/internal/domain/clashconfig/document"
	"github.com/orris-inc/subhub/internal/shared/errors"
)

const rulesKey = "rules"

// Merge applies a profile to a generated Clash document. The global config
// fragment is overlaid onto the document and compiled custom rules are put
// in front of the existing rules. On any error no output is produced.
func Merge(raw string, profile *Profile) (string, error) {
	var globalConfig, rules string
	if profile != nil {
		if gc := profile.GlobalConfig(); gc != nil {
			globalConfig = *gc
		}
		if r := profile.Rules(); r != nil {
			rules = *r
		}
	}
	return MergeText(raw, globalConfig, rules)
}

// MergeText is Merge over plain inputs. Blank globalConfig or rules are skipped.
func MergeText(raw, globalConfig, rules string) (string, error) {
	compiled, err := CompileRules(rules)
	if err != nil {
		return "", err
	}

	doc, err := document.Parse(raw)
	if err != nil {
		return "", errors.NewMalformedInputError("generated document is not a valid Clash config", err.Error()).WithCause(err)
	}

	fragment, err := document.Parse(globalConfig)
	if err != nil {
		return "", errors.NewMalformedInputError("globalConfig is not a valid YAML mapping", err.Error()).WithCause(err)
	}
	document.MergeInto(doc, fragment)

	if len(compiled) > 0 {
		if err := prependRules(doc, compiled); err != nil {
			return "", err
		}
	}

	out, err := document.Encode(doc)
	if err != nil {
		return "", errors.NewInternalError("failed to serialize merged config").WithCause(err)
	}
	return out, nil
}

func prependRules(doc *document.Mapping, compiled []string) error {
	items := make([]document.Value, len(compiled))
	for i, rule := range compiled {
		items[i] = document.String(rule)
	}

	current, ok := doc.Get(rulesKey)
	if !ok {
		doc.Set(rulesKey, document.NewSequence(items...))
		return nil
	}

	switch v := current.(type) {
	case *document.Sequence:
		v.Prepend(items...)
		return nil
	case *document.Scalar:
		if v.IsNull() {
			doc.Set(rulesKey, document.NewSequence(items...))
			return nil
		}
	}
	return errors.NewMalformedInputError(
		"generated document is not a valid Clash config",
		"rules is a "+current.Kind().String()+", expected a sequence",
	)
}
