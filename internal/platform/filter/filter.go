// Package filter checks AIP-160 list filters against a declared field set.
package filter

import (
	"fmt"
	"sort"
	"strings"

	"go.einride.tech/aip/filtering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// FieldType describes a supported filter field type.
type FieldType string

const (
	FieldString FieldType = "string"
	FieldInt    FieldType = "int"
	FieldBool   FieldType = "bool"
)

// Fields defines filterable fields and their types.
type Fields map[string]FieldType

// Parse parses an AIP-160 filter expression for the provided fields. A blank
// filter parses to nil.
func Parse(filterStr string, fields Fields) (*expr.Expr, error) {
	if strings.TrimSpace(filterStr) == "" {
		return nil, nil
	}

	decls, err := declarations(fields)
	if err != nil {
		return nil, err
	}

	filter, err := filtering.ParseFilterString(filterStr, decls)
	if err != nil {
		return nil, fmt.Errorf("parse filter: %w", err)
	}

	return filter.CheckedExpr.GetExpr(), nil
}

// Identifiers returns the field names referenced by e, sorted.
func Identifiers(e *expr.Expr) []string {
	seen := make(map[string]struct{})
	collectIdents(e, seen)
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func collectIdents(e *expr.Expr, seen map[string]struct{}) {
	if e == nil {
		return
	}
	if ident := e.GetIdentExpr(); ident != nil {
		seen[ident.GetName()] = struct{}{}
		return
	}
	if call := e.GetCallExpr(); call != nil {
		collectIdents(call.GetTarget(), seen)
		for _, arg := range call.GetArgs() {
			collectIdents(arg, seen)
		}
	}
}

func declarations(fields Fields) (*filtering.Declarations, error) {
	decls := []filtering.DeclarationOption{filtering.DeclareStandardFunctions()}
	for name, kind := range fields {
		switch kind {
		case FieldString:
			decls = append(decls, filtering.DeclareIdent(name, filtering.TypeString))
		case FieldInt:
			decls = append(decls, filtering.DeclareIdent(name, filtering.TypeInt))
		case FieldBool:
			decls = append(decls, filtering.DeclareIdent(name, filtering.TypeBool))
		default:
			return nil, fmt.Errorf("unsupported field type for %s", name)
		}
	}

	return filtering.NewDeclarations(decls...)
}
