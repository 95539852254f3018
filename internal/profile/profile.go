// Package profile supplies per-document-family parsing configuration:
// ordered TOC line patterns, content cleanup rules, tag keyword maps, and
// scan limits. Profiles are plain data selected by a document-type key;
// unknown keys degrade to the generic profile.
package profile

import (
	"fmt"
	"regexp"
)

// Definition is the serializable form of a profile, loadable from YAML.
// Patterns are compiled case-insensitively and must expose exactly three
// capture groups: section id, title, page.
type Definition struct {
	DocType       string        `yaml:"doc_type"`
	Description   string        `yaml:"description"`
	DocTitle      string        `yaml:"doc_title"`
	TOCPatterns   []string      `yaml:"toc_patterns"`
	CleanupRules  []CleanupRule `yaml:"cleanup_rules"`
	TagMap        map[string]string `yaml:"tag_map"`
	ScanPages     int           `yaml:"scan_pages"`
	MaxFileSizeMB int           `yaml:"max_file_size_mb"`
}

// CleanupRule is one ordered pattern→replacement pair applied to extracted
// content. Inline flags such as (?m) belong in the pattern itself.
type CleanupRule struct {
	Pattern string `yaml:"pattern"`
	Replace string `yaml:"replace"`
}

// Profile is an immutable, compiled document profile. Callers must not
// mutate the maps or slices it exposes.
type Profile struct {
	DocType       string
	Description   string
	DocTitle      string
	TOCPatterns   []*regexp.Regexp
	CleanupRules  []CompiledCleanup
	TagMap        map[string]string
	ScanPages     int
	MaxFileSizeMB int
}

// CompiledCleanup is a CleanupRule ready to apply.
type CompiledCleanup struct {
	Pattern *regexp.Regexp
	Replace string
}

// Clean applies the profile's cleanup rules to text in declaration
// order. With no rules the text passes through unchanged.
func (p *Profile) Clean(text string) string {
	for _, rule := range p.CleanupRules {
		text = rule.Pattern.ReplaceAllString(text, rule.Replace)
	}
	return text
}

// tocGroupCount is the required number of capture groups in a TOC pattern:
// (section id)(title)(page).
const tocGroupCount = 3

// Compile validates and compiles a Definition.
func (d Definition) Compile() (*Profile, error) {
	if d.DocType == "" {
		return nil, fmt.Errorf("profile: doc_type is required")
	}
	if len(d.TOCPatterns) == 0 {
		return nil, fmt.Errorf("profile %q: at least one toc_pattern is required", d.DocType)
	}
	if d.ScanPages <= 0 {
		return nil, fmt.Errorf("profile %q: scan_pages must be positive", d.DocType)
	}
	if d.MaxFileSizeMB <= 0 {
		return nil, fmt.Errorf("profile %q: max_file_size_mb must be positive", d.DocType)
	}

	p := &Profile{
		DocType:       d.DocType,
		Description:   d.Description,
		DocTitle:      d.DocTitle,
		ScanPages:     d.ScanPages,
		MaxFileSizeMB: d.MaxFileSizeMB,
		TagMap:        make(map[string]string, len(d.TagMap)),
	}
	for keyword, tag := range d.TagMap {
		p.TagMap[keyword] = tag
	}

	for _, pat := range d.TOCPatterns {
		re, err := regexp.Compile("(?i)" + pat)
		if err != nil {
			return nil, fmt.Errorf("profile %q: toc pattern %q: %w", d.DocType, pat, err)
		}
		if re.NumSubexp() != tocGroupCount {
			return nil, fmt.Errorf("profile %q: toc pattern %q has %d capture groups, want %d",
				d.DocType, pat, re.NumSubexp(), tocGroupCount)
		}
		p.TOCPatterns = append(p.TOCPatterns, re)
	}

	for _, rule := range d.CleanupRules {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("profile %q: cleanup pattern %q: %w", d.DocType, rule.Pattern, err)
		}
		p.CleanupRules = append(p.CleanupRules, CompiledCleanup{Pattern: re, Replace: rule.Replace})
	}

	return p, nil
}

// mustCompile compiles a built-in definition, panicking on programmer error.
func mustCompile(d Definition) *Profile {
	p, err := d.Compile()
	if err != nil {
		panic(err)
	}
	return p
}
