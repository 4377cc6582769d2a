package logdoc

import (
	"io"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/bashhack/captainslog/internal/logger"
)

func testLogger() logger.Logger {
	return logger.NewWithOutput(false, "", false, io.Discard, io.Discard)
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content  string
		sections map[string][]string
		broke    []string
	}{
		"Two Repo Sections": {
			content: "# What I did\n\n## repo1\n- (abc123) First\n\n## repo2\n- (def456) Second\n\n# Whats next\n",
			sections: map[string][]string{
				"repo1": {"- (abc123) First"},
				"repo2": {"- (def456) Second"},
			},
		},
		"Empty Input": {
			content:  "",
			sections: map[string][]string{},
		},
		"Entries Before Any Section Are Ignored": {
			content:  "- orphan entry\n## repo1\n- kept\n",
			sections: map[string][]string{"repo1": {"- kept"}},
		},
		"Empty Section Name Ignored": {
			content:  "## \n- orphan\n## repo1\n- kept\n",
			sections: map[string][]string{"repo1": {"- kept"}},
		},
		"Prose And Blank Lines Ignored": {
			content:  "## repo1\nsome prose\n\n- entry one\nmore prose\n- entry two\n",
			sections: map[string][]string{"repo1": {"- entry one", "- entry two"}},
		},
		"Indented Entries Are Trimmed": {
			content:  "## repo1\n  - entry one\n",
			sections: map[string][]string{"repo1": {"- entry one"}},
		},
		"Broke Entries Collected Separately": {
			content: "# What I did\n\n## repo1\n- (abc123) First\n\n# Whats next\n\n\n# What Broke or Got Weird\n- the build went sideways\n",
			sections: map[string][]string{
				"repo1": {"- (abc123) First"},
			},
			broke: []string{"- the build went sideways"},
		},
		"Level One Heading Closes Section": {
			content:  "## repo1\n- kept\n# Whats next\n- not an entry of repo1\n",
			sections: map[string][]string{"repo1": {"- kept"}},
		},
	}

	for name, test := range tests {
		test := test
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			doc := Parse(test.content)

			got := make(map[string][]string)
			for _, section := range doc.SectionNames() {
				got[section] = doc.Entries(section)
			}
			want := make(map[string][]string)
			for section, entries := range test.sections {
				want[section] = entries
			}
			if len(got) != len(want) {
				t.Fatalf("sections = %v, want %v", got, want)
			}
			for section, entries := range want {
				if !reflect.DeepEqual(doc.Entries(section), entries) {
					t.Errorf("section %q = %v, want %v", section, doc.Entries(section), entries)
				}
			}
			if !reflect.DeepEqual(doc.BrokeEntries(), test.broke) {
				t.Errorf("broke entries = %v, want %v", doc.BrokeEntries(), test.broke)
			}
		})
	}
}

func TestParseFileMissingYieldsEmptyDocument(t *testing.T) {
	t.Parallel()

	doc := ParseFile(filepath.Join(t.TempDir(), "absent.md"), testLogger())
	if len(doc.SectionNames()) != 0 {
		t.Errorf("expected empty document, got sections %v", doc.SectionNames())
	}
}

func TestSectionOrder(t *testing.T) {
	t.Parallel()

	doc := NewDocument()
	doc.SetEntries("zebra", []string{"- E1"})
	doc.SetEntries("other", []string{"- E2"})
	doc.SetEntries("alpha", []string{"- E3"})
	doc.SetEntries("Beta", []string{"- E4"})

	sorted := sectionOrder(doc, false)
	if !reflect.DeepEqual(sorted, []string{"alpha", "Beta", "other", "zebra"}) {
		t.Errorf("sorted order = %v", sorted)
	}

	otherLast := sectionOrder(doc, true)
	if !reflect.DeepEqual(otherLast, []string{"alpha", "Beta", "zebra", "other"}) {
		t.Errorf("other-at-end order = %v", otherLast)
	}
}

func TestWriteFileRendersCanonicalDocument(t *testing.T) {
	t.Parallel()

	doc := NewDocument()
	doc.SetEntries("zebra", []string{"- E1"})
	doc.SetEntries("other", []string{"- E2"})
	doc.SetEntries("alpha", []string{"- E3"})

	path := filepath.Join(t.TempDir(), "logs", "2025.06.10.md")
	if err := NewWriter(testLogger()).WriteFile(path, doc, true); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read back log: %v", err)
	}
	content := string(data)

	if !strings.HasPrefix(content, Header) {
		t.Errorf("content missing header: %q", content)
	}
	if !strings.Contains(content, Footer) {
		t.Errorf("content missing footer: %q", content)
	}

	alphaPos := strings.Index(content, "## alpha")
	zebraPos := strings.Index(content, "## zebra")
	otherPos := strings.Index(content, "## other")
	if alphaPos < 0 || zebraPos < 0 || otherPos < 0 {
		t.Fatalf("missing section headers in: %q", content)
	}
	if !(alphaPos < zebraPos && zebraPos < otherPos) {
		t.Errorf("section order wrong: alpha=%d zebra=%d other=%d", alphaPos, zebraPos, otherPos)
	}
}

func TestWriteFileSkipsEmptySections(t *testing.T) {
	t.Parallel()

	doc := NewDocument()
	doc.SetEntries("empty", []string{})
	doc.SetEntries("full", []string{"- entry"})

	path := filepath.Join(t.TempDir(), "2025.06.10.md")
	if err := NewWriter(testLogger()).WriteFile(path, doc, false); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "## empty") {
		t.Errorf("empty section was rendered: %q", string(data))
	}
}

func TestWriteFileEmptyDocumentHasBlankBody(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "2025.06.10.md")
	if err := NewWriter(testLogger()).WriteFile(path, NewDocument(), false); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != Header+"\n"+Footer {
		t.Errorf("empty document rendered as %q", string(data))
	}
}

func TestWriteFileResetsCorruptedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "2025.06.10.md")
	if err := os.WriteFile(path, []byte("random bytes, not a log"), 0644); err != nil {
		t.Fatalf("failed to seed corrupt file: %v", err)
	}

	doc := NewDocument()
	doc.SetEntries("repo1", []string{"- (abc123) First"})
	if err := NewWriter(testLogger()).WriteFile(path, doc, false); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	content := string(data)
	if strings.Contains(content, "random bytes") {
		t.Errorf("corrupt content survived: %q", content)
	}
	if !strings.HasPrefix(content, Header) || !strings.Contains(content, "## repo1") {
		t.Errorf("canonical structure missing: %q", content)
	}
}

func TestWriteFileLeavesNoTempFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "2025.06.10.md")
	doc := NewDocument()
	doc.SetEntries("repo1", []string{"- entry"})
	if err := NewWriter(testLogger()).WriteFile(path, doc, false); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	matches, _ := filepath.Glob(filepath.Join(dir, "*.tmp"))
	if len(matches) != 0 {
		t.Errorf("temporary files left behind: %v", matches)
	}
}

func TestWriteFileRendersBrokeEntriesAfterFooter(t *testing.T) {
	t.Parallel()

	doc := NewDocument()
	doc.SetEntries("repo1", []string{"- (abc123) First"})
	doc.AddBrokeEntry("- the deploy script ate the config")

	path := filepath.Join(t.TempDir(), "2025.06.10.md")
	if err := NewWriter(testLogger()).WriteFile(path, doc, false); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	content := string(data)

	brokePos := strings.Index(content, "# What Broke or Got Weird")
	entryPos := strings.Index(content, "- the deploy script ate the config")
	if brokePos < 0 || entryPos < 0 || entryPos < brokePos {
		t.Errorf("broke entry not rendered under its heading: %q", content)
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	doc := NewDocument()
	doc.SetEntries("zebra", []string{"- (abc123) Zebra work", "- manual note"})
	doc.SetEntries("alpha", []string{"- (def456) Alpha work"})
	doc.SetEntries("other", []string{"- a stray thought"})
	doc.AddBrokeEntry("- CI flaked twice")

	rendered := Render(doc, true)
	parsed := Parse(rendered)

	wantNames := doc.SectionNames()
	gotNames := parsed.SectionNames()
	sort.Strings(wantNames)
	sort.Strings(gotNames)
	if !reflect.DeepEqual(gotNames, wantNames) {
		t.Fatalf("sections after round trip = %v, want %v", gotNames, wantNames)
	}
	for _, name := range wantNames {
		if !reflect.DeepEqual(parsed.Entries(name), doc.Entries(name)) {
			t.Errorf("section %q after round trip = %v, want %v", name, parsed.Entries(name), doc.Entries(name))
		}
	}
	if !reflect.DeepEqual(parsed.BrokeEntries(), doc.BrokeEntries()) {
		t.Errorf("broke entries after round trip = %v, want %v", parsed.BrokeEntries(), doc.BrokeEntries())
	}

	// Canonical output is a fixed point: rendering the parsed document
	// again must produce identical bytes.
	if again := Render(parsed, true); again != rendered {
		t.Errorf("render is not idempotent:\nfirst:  %q\nsecond: %q", rendered, again)
	}
}

func TestAddBrokeEntryDeduplicates(t *testing.T) {
	t.Parallel()

	doc := NewDocument()
	if !doc.AddBrokeEntry("- it broke") {
		t.Fatal("first add should report true")
	}
	if doc.AddBrokeEntry("- it broke") {
		t.Error("duplicate add should report false")
	}
	if len(doc.BrokeEntries()) != 1 {
		t.Errorf("expected 1 broke entry, got %d", len(doc.BrokeEntries()))
	}
}
