package profile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCompileValidation(t *testing.T) {
	base := Definition{
		DocType:       "test",
		TOCPatterns:   []string{`^(\d+)\s+(.*?)\s+(\d+)$`},
		ScanPages:     5,
		MaxFileSizeMB: 10,
	}

	t.Run("valid definition compiles", func(t *testing.T) {
		p, err := base.Compile()
		if err != nil {
			t.Fatalf("Compile() error = %v", err)
		}
		if len(p.TOCPatterns) != 1 {
			t.Errorf("expected 1 compiled pattern, got %d", len(p.TOCPatterns))
		}
	})

	t.Run("missing doc_type", func(t *testing.T) {
		d := base
		d.DocType = ""
		if _, err := d.Compile(); err == nil {
			t.Error("expected error for empty doc_type")
		}
	})

	t.Run("no patterns", func(t *testing.T) {
		d := base
		d.TOCPatterns = nil
		if _, err := d.Compile(); err == nil {
			t.Error("expected error for empty pattern list")
		}
	})

	t.Run("wrong capture group count", func(t *testing.T) {
		d := base
		d.TOCPatterns = []string{`^(\d+)\s+(.*)$`}
		if _, err := d.Compile(); err == nil {
			t.Error("expected error for 2-group pattern")
		}
	})

	t.Run("invalid regex", func(t *testing.T) {
		d := base
		d.TOCPatterns = []string{`^([unclosed\s+(.*?)\s+(\d+)$`}
		if _, err := d.Compile(); err == nil {
			t.Error("expected error for invalid regex")
		}
	})

	t.Run("invalid cleanup pattern", func(t *testing.T) {
		d := base
		d.CleanupRules = []CleanupRule{{Pattern: `([`, Replace: ""}}
		if _, err := d.Compile(); err == nil {
			t.Error("expected error for invalid cleanup pattern")
		}
	})
}

func TestBuiltinsCompile(t *testing.T) {
	for _, key := range []string{"usb_pd", "generic", "ieee"} {
		t.Run(key, func(t *testing.T) {
			reg := NewRegistry()
			p, ok := reg.Get(key)
			if !ok {
				t.Fatalf("built-in profile %q not registered", key)
			}
			if p.DocType != key {
				t.Errorf("DocType = %q, want %q", p.DocType, key)
			}
			if len(p.TOCPatterns) == 0 {
				t.Error("no TOC patterns")
			}
			if p.ScanPages <= 0 {
				t.Error("scan pages not positive")
			}
			for _, re := range p.TOCPatterns {
				if re.NumSubexp() != 3 {
					t.Errorf("pattern %q has %d groups, want 3", re.String(), re.NumSubexp())
				}
			}
		})
	}
}

func TestRegistryFallback(t *testing.T) {
	reg := NewRegistry()

	p, ok := reg.Get("definitely_not_registered")
	if ok {
		t.Error("unknown key reported as exact match")
	}
	if p == nil {
		t.Fatal("fallback returned nil profile")
	}
	if p.DocType != FallbackDocType {
		t.Errorf("fallback DocType = %q, want %q", p.DocType, FallbackDocType)
	}
}

func TestRegistryKeys(t *testing.T) {
	reg := NewRegistry()
	keys := reg.Keys()
	if len(keys) != 3 {
		t.Fatalf("Keys() = %v, want 3 built-ins", keys)
	}
	want := []string{"generic", "ieee", "usb_pd"}
	for i, k := range want {
		if keys[i] != k {
			t.Errorf("Keys()[%d] = %q, want %q", i, keys[i], k)
		}
	}
}

func TestLoadDir(t *testing.T) {
	t.Run("missing directory is not an error", func(t *testing.T) {
		reg := NewRegistry()
		n, err := reg.LoadDir(filepath.Join(t.TempDir(), "nope"))
		if err != nil {
			t.Fatalf("LoadDir() error = %v", err)
		}
		if n != 0 {
			t.Errorf("loaded %d profiles from missing dir", n)
		}
	})

	t.Run("loads and overrides", func(t *testing.T) {
		dir := t.TempDir()
		content := `doc_type: generic
description: Overridden generic profile
doc_title: Custom Spec
toc_patterns:
  - '^(\d+(?:\.\d+)*)\s+(.*?)\s+(\d+)$'
scan_pages: 7
max_file_size_mb: 25
tag_map:
  widget: widgets
`
		if err := os.WriteFile(filepath.Join(dir, "generic.yaml"), []byte(content), 0o644); err != nil {
			t.Fatalf("write profile: %v", err)
		}

		reg := NewRegistry()
		n, err := reg.LoadDir(dir)
		if err != nil {
			t.Fatalf("LoadDir() error = %v", err)
		}
		if n != 1 {
			t.Errorf("loaded = %d, want 1", n)
		}

		p, ok := reg.Get("generic")
		if !ok {
			t.Fatal("generic profile missing after override")
		}
		if p.ScanPages != 7 {
			t.Errorf("ScanPages = %d, want 7 (override not applied)", p.ScanPages)
		}
		if p.TagMap["widget"] != "widgets" {
			t.Error("tag map from user profile not applied")
		}
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte(":\n  - ["), 0o644); err != nil {
			t.Fatalf("write profile: %v", err)
		}
		reg := NewRegistry()
		if _, err := reg.LoadDir(dir); err == nil {
			t.Error("expected error for malformed profile file")
		}
	})

	t.Run("non-yaml files are skipped", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a profile"), 0o644); err != nil {
			t.Fatalf("write file: %v", err)
		}
		reg := NewRegistry()
		n, err := reg.LoadDir(dir)
		if err != nil {
			t.Fatalf("LoadDir() error = %v", err)
		}
		if n != 0 {
			t.Errorf("loaded = %d, want 0", n)
		}
	})
}

func TestClean(t *testing.T) {
	d := Definition{
		DocType:     "test",
		TOCPatterns: []string{`^(\d+)\s+(.*?)\s+(\d+)$`},
		CleanupRules: []CleanupRule{
			{Pattern: `(?m)^Page \d+ of \d+$`, Replace: ""},
			{Pattern: `\n{3,}`, Replace: "\n\n"},
		},
		ScanPages:     5,
		MaxFileSizeMB: 10,
	}
	p, err := d.Compile()
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	in := "Intro text\nPage 3 of 100\n\n\n\nMore text"
	want := "Intro text\n\nMore text"
	if got := p.Clean(in); got != want {
		t.Errorf("Clean() = %q, want %q", got, want)
	}

	bare, err := Definition{
		DocType:       "bare",
		TOCPatterns:   []string{`^(\d+)\s+(.*?)\s+(\d+)$`},
		ScanPages:     5,
		MaxFileSizeMB: 10,
	}.Compile()
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if got := bare.Clean("unchanged"); got != "unchanged" {
		t.Errorf("Clean() without rules = %q, want passthrough", got)
	}
}
