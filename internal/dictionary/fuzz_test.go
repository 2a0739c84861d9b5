package dictionary

import (
	"strings"
	"testing"
)

func FuzzParseLineRoundTrip(f *testing.F) {
	for _, seed := range []string{
		"kedi [P:Noun]",
		"kedi[P:Noun]",
		"köpek",
		"bayi [P:Adj; A:EndsWithAyn]",
		"",
		"[",
		" a [b]",
	} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, line string) {
		entry, err := ParseLine(line)
		if err != nil {
			return
		}
		if got := entry.String(); got != line {
			t.Fatalf("round trip of %q gave %q", line, got)
		}
		if !strings.Contains(line, "[") && (entry.Annotation != NoAnnotation || entry.Word != line) {
			t.Fatalf("line without bracket %q parsed as %+v", line, entry)
		}
		again, err := ParseLine(entry.String())
		if err != nil || again != entry {
			t.Fatalf("reparse of %q gave %+v, %v", line, again, err)
		}
	})
}
