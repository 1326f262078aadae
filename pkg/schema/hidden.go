// Package schema holds the authoring-time rules of the selector document:
// which fields the editor hides for a given configuration, and the JSON
// schema a header document must satisfy before it is stored.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/diegoholiveira/jsonlogic/v3"

	"github.com/storefront-kit/selectord/pkg/stega"
)

var responsiveKeys = []string{"modeBase", "modeSm", "modeMd", "modeLg"}

// usesKind hides a container config unless some active mode selects kind.
func usesKind(kind string) string {
	checks := make([]string, 0, len(responsiveKeys))
	for _, key := range responsiveKeys {
		checks = append(checks, fmt.Sprintf(`{"==": [{"var": %q}, %q]}`, key, kind))
	}
	return fmt.Sprintf(`{"if": [
		{"==": [{"var": "displayModeKind"}, "single"]},
		{"!=": [{"var": "mode"}, %q]},
		{"!": [{"or": [%s]}]}
	]}`, kind, strings.Join(checks, ", "))
}

func borderHidden(container string) string {
	return fmt.Sprintf(`{"!": [{"var": "%s.showBorder"}]}`, container)
}

var notSingle = `{"!=": [{"var": "displayModeKind"}, "single"]}`
var notResponsive = `{"!=": [{"var": "displayModeKind"}, "responsive"]}`

// SelectorRules maps a field path of the full selector config to the JSON
// Logic rule that decides whether the field is hidden.
var SelectorRules = map[string]string{
	"mode":                       notSingle,
	"modeBase":                   notResponsive,
	"modeSm":                     notResponsive,
	"modeMd":                     notResponsive,
	"modeLg":                     notResponsive,
	"dropdownConfig":             usesKind("dropdown"),
	"sidebarConfig":              usesKind("sidebar"),
	"modalConfig":                usesKind("modal"),
	"dropdownConfig.borderWidth": borderHidden("dropdownConfig"),
	"sidebarConfig.borderWidth":  borderHidden("sidebarConfig"),
	"modalConfig.borderWidth":    borderHidden("modalConfig"),
}

// DropdownRules are the rules of the dropdown-only config.
var DropdownRules = map[string]string{
	"dropdownConfig.borderWidth": borderHidden("dropdownConfig"),
}

// HiddenFields evaluates rules against doc and returns the hidden field
// paths in sorted order. A nested field whose parent is hidden is omitted.
func HiddenFields(rules map[string]string, doc map[string]any) ([]string, error) {
	data, err := json.Marshal(clean(doc))
	if err != nil {
		return nil, fmt.Errorf("unable to marshal document: %w", err)
	}

	hidden := map[string]bool{}
	for field, rule := range rules {
		ok, err := apply(rule, data)
		if err != nil {
			return nil, fmt.Errorf("rule for %s: %w", field, err)
		}
		hidden[field] = ok
	}

	fields := []string{}
	for field, h := range hidden {
		if !h {
			continue
		}
		if parent, _, nested := strings.Cut(field, "."); nested && hidden[parent] {
			continue
		}
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields, nil
}

func apply(rule string, data []byte) (bool, error) {
	var result bytes.Buffer
	if err := jsonlogic.Apply(strings.NewReader(rule), bytes.NewReader(data), &result); err != nil {
		return false, err
	}
	var out any
	if err := json.Unmarshal(result.Bytes(), &out); err != nil {
		return false, err
	}
	b, _ := out.(bool)
	return b, nil
}

// clean strips visual-editing markers from every string in v.
func clean(v any) any {
	switch t := v.(type) {
	case string:
		return stega.Clean(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = clean(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = clean(e)
		}
		return out
	}
	return v
}
