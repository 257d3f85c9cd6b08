package permission

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadGrants decodes a YAML grants document mapping each role to its
// capability list:
//
//	admin: [canCreate, canUpdate]
//	viewer: [canViewAnalytics]
//
// Unknown roles and capabilities are errors. Roles missing from the document
// hold no capabilities.
func LoadGrants(r io.Reader) (Grants, error) {
	if r == nil {
		return nil, errors.New("grants reader is required")
	}
	var raw map[string][]string
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("grants document is empty")
		}
		return nil, fmt.Errorf("decode grants: %w", err)
	}

	roles := make([]string, 0, len(raw))
	for role := range raw {
		roles = append(roles, role)
	}
	sort.Strings(roles)

	grants := make(Grants, len(raw))
	for _, rawRole := range roles {
		role, ok := ParseRole(strings.TrimSpace(rawRole))
		if !ok {
			return nil, fmt.Errorf("unknown role %q", rawRole)
		}
		capabilities := make([]Capability, 0, len(raw[rawRole]))
		for _, rawCapability := range raw[rawRole] {
			capability, ok := ParseCapability(strings.TrimSpace(rawCapability))
			if !ok {
				return nil, fmt.Errorf("role %s: unknown capability %q", role, rawCapability)
			}
			capabilities = append(capabilities, capability)
		}
		grants[role] = capabilities
	}
	return grants, nil
}

// LoadGrantsFile reads grants from the YAML file at path.
func LoadGrantsFile(path string) (Grants, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open grants file: %w", err)
	}
	defer f.Close()
	grants, err := LoadGrants(f)
	if err != nil {
		return nil, fmt.Errorf("load grants file %s: %w", path, err)
	}
	return grants, nil
}
