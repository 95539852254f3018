package profile

// Built-in profiles for the document families spine ships support for.
// Every TOC pattern captures (section id, title, page) in that order.
// Patterns may match entries whose id is not a dotted numeric path (annex
// letters, roman numerals, unnumbered entries); those candidates fail id
// validation in the parser and the line is skipped.

func builtinUSBPD() *Profile {
	return mustCompile(Definition{
		DocType:     "usb_pd",
		Description: "USB Power Delivery specifications",
		DocTitle:    "USB Power Delivery Specification Rev 3.0",
		TOCPatterns: []string{
			// Dotted leader: "2.1.2 Power Delivery Contract Negotiation .......... 53"
			`^(\d+(?:\.\d+)*)\s+(.*?)\s*\.+\s*(\d+)$`,
			// Space-only separator: "2.1.2 Power Delivery Contract Negotiation 53"
			`^(\d+(?:\.\d+)*)\s+(.*?)\s+(\d+)$`,
			// Parenthesized title: "2.1.2 (Power Delivery Contract Negotiation) 53"
			`^(\d+(?:\.\d+)*)\s*\(?(.*?)\)?\s*\.+\s*(\d+)$`,
			`^Chapter\s+(\d+)\s+(.*?)\s*\.+\s*(\d+)$`,
			`^Section\s+(\d+(?:\.\d+)*)\s+(.*?)\s*\.+\s*(\d+)$`,
			`^Annex\s+([A-Z])\s+(.*?)\s*\.+\s*(\d+)$`,
		},
		CleanupRules: []CleanupRule{
			{Pattern: `(?m)^\s*\d+\s*$`, Replace: ""},
			{Pattern: `(?mi)^\s*USB.*?Specification.*?\s*$`, Replace: ""},
			{Pattern: `(?m)^\s*Page\s+\d+\s*$`, Replace: ""},
			{Pattern: `\n\s*\n\s*\n`, Replace: "\n\n"},
		},
		TagMap: map[string]string{
			"power":         "power_management",
			"voltage":       "power_management",
			"current":       "power_management",
			"watt":          "power_management",
			"negotiation":   "negotiation",
			"contract":      "negotiation",
			"agreement":     "negotiation",
			"communication": "communication",
			"protocol":      "communication",
			"message":       "communication",
			"cc":            "communication",
			"state":         "state_machine",
			"machine":       "state_machine",
			"transition":    "state_machine",
			"cable":         "hardware",
			"connector":     "hardware",
			"plug":          "hardware",
			"receptacle":    "hardware",
			"compatibility": "compatibility",
			"revision":      "compatibility",
			"version":       "compatibility",
			"overview":      "overview",
			"introduction":  "overview",
			"background":    "overview",
			"table":         "reference",
			"figure":        "reference",
			"diagram":       "reference",
			"safety":        "safety",
			"protection":    "safety",
			"fault":         "safety",
		},
		ScanPages:     15,
		MaxFileSizeMB: 100,
	})
}

func builtinGeneric() *Profile {
	return mustCompile(Definition{
		DocType:     "generic",
		Description: "Generic technical specifications",
		DocTitle:    "Technical Specification",
		TOCPatterns: []string{
			`^(\d+(?:\.\d+)*)\s+(.*?)\s*\.+\s*(\d+)$`,
			`^(\d+(?:\.\d+)*)\s+(.*?)\s+(\d+)$`,
			`^Chapter\s+(\d+)\s+(.*?)\s*\.+\s*(\d+)$`,
			`^Section\s+(\d+(?:\.\d+)*)\s+(.*?)\s*\.+\s*(\d+)$`,
			// Letter and roman-numeral schemes are recognized so the lines do
			// not leak into later patterns, then skipped on id validation.
			`^([A-Z])\s+(.*?)\s*\.+\s*(\d+)$`,
			`^([IVX]+)\.\s+(.*?)\s*\.+\s*(\d+)$`,
		},
		CleanupRules: []CleanupRule{
			{Pattern: `(?m)^\s*\d+\s*$`, Replace: ""},
			{Pattern: `(?m)^\s*[A-Z][a-z]+\s+\d+\s*$`, Replace: ""},
			{Pattern: `\n\s*\n\s*\n`, Replace: "\n\n"},
		},
		TagMap: map[string]string{
			"overview":       "overview",
			"introduction":   "overview",
			"background":     "overview",
			"specification":  "specification",
			"requirement":    "requirement",
			"implementation": "implementation",
			"testing":        "testing",
			"validation":     "validation",
			"reference":      "reference",
			"appendix":       "appendix",
			"annex":          "appendix",
		},
		ScanPages:     10,
		MaxFileSizeMB: 50,
	})
}

func builtinIEEE() *Profile {
	return mustCompile(Definition{
		DocType:     "ieee",
		Description: "IEEE standards documents",
		DocTitle:    "IEEE Standard",
		TOCPatterns: []string{
			`^(\d+(?:\.\d+)*)\s+(.*?)\s*\.+\s*(\d+)$`,
			`^Clause\s+(\d+)\s+(.*?)\s*\.+\s*(\d+)$`,
			`^(\d+\.\d+)\s+(.*?)\s*\.+\s*(\d+)$`,
			`^Annex\s+([A-Z])\s+(.*?)\s*\.+\s*(\d+)$`,
			// Unnumbered back-matter entry; matches but never yields an id.
			`^()(Bibliography)\s*\.+\s*(\d+)$`,
		},
		CleanupRules: []CleanupRule{
			{Pattern: `(?m)^\s*\d+\s*$`, Replace: ""},
			{Pattern: `(?m)^\s*IEEE\s+Std\s+\d+.*?\s*$`, Replace: ""},
			{Pattern: `(?m)^\s*Copyright\s+.*?\s*$`, Replace: ""},
			{Pattern: `\n\s*\n\s*\n`, Replace: "\n\n"},
		},
		TagMap: map[string]string{
			"scope":         "scope",
			"normative":     "normative",
			"informative":   "informative",
			"reference":     "reference",
			"definition":    "definition",
			"symbols":       "symbols",
			"abbreviations": "abbreviations",
			"conformance":   "conformance",
			"test":          "testing",
			"measurement":   "measurement",
			"safety":        "safety",
			"environmental": "environmental",
		},
		ScanPages:     20,
		MaxFileSizeMB: 200,
	})
}
