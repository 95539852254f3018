package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// FallbackDocType is the profile returned for unrecognized document types.
const FallbackDocType = "generic"

// Registry resolves document-type keys to profiles. Unknown keys resolve
// to the generic profile, so lookup never fails.
type Registry struct {
	profiles map[string]*Profile
}

// NewRegistry returns a registry seeded with the built-in profiles.
func NewRegistry() *Registry {
	r := &Registry{profiles: make(map[string]*Profile)}
	for _, p := range []*Profile{builtinUSBPD(), builtinGeneric(), builtinIEEE()} {
		r.profiles[p.DocType] = p
	}
	return r
}

// Get resolves a document-type key. The second return reports whether the
// key matched exactly; when false the generic profile is returned.
func (r *Registry) Get(key string) (*Profile, bool) {
	if p, ok := r.profiles[key]; ok {
		return p, true
	}
	return r.profiles[FallbackDocType], false
}

// Keys returns the registered document types in sorted order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.profiles))
	for k := range r.profiles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Register adds or replaces a profile under its DocType key.
func (r *Registry) Register(p *Profile) {
	r.profiles[p.DocType] = p
}

// LoadDir loads user-defined profiles from *.yaml/*.yml files in dir and
// registers them, overriding built-ins with the same doc_type. A missing
// directory is not an error; a file that fails to parse or compile is.
func (r *Registry) LoadDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading profile directory %s: %w", dir, err)
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return loaded, fmt.Errorf("reading profile %s: %w", path, err)
		}
		var def Definition
		if err := yaml.Unmarshal(data, &def); err != nil {
			return loaded, fmt.Errorf("parsing profile %s: %w", path, err)
		}
		p, err := def.Compile()
		if err != nil {
			return loaded, fmt.Errorf("profile %s: %w", path, err)
		}
		r.Register(p)
		loaded++
	}
	return loaded, nil
}
