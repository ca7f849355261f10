// Package node models proxy sources and the per-user links attached to them.
package node

import "fmt"

// Type identifies where a node's links come from.
type Type string

const (
	TypeXUI                  Type = "3x-ui"
	TypeExternalSubscription Type = "external-subscription"
	TypeCustom               Type = "custom"
)

// ParseType validates a stored or submitted node type. Empty means custom.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case "":
		return TypeCustom, nil
	case TypeXUI, TypeExternalSubscription, TypeCustom:
		return Type(s), nil
	default:
		return "", fmt.Errorf("unknown node type %q", s)
	}
}

func (t Type) String() string { return string(t) }
