// Package tdk scans the line-per-unit XML dump of the TDK dictionary.
//
// The dump is not read as XML: each unit sits on its own line as
// <unit name="anaçlaşmak" origin="..."> and only the name and origin
// attributes are needed.
package tdk

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"
)

const unitPrefix = `<unit name="`

// Unit is one dictionary unit of the dump.
type Unit struct {
	Name   string
	Origin string
}

// ScanUnits returns the units of r in file order.
func ScanUnits(r io.Reader) ([]Unit, error) {
	var units []Unit
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if unit, ok := parseUnit(strings.TrimSpace(scanner.Text())); ok {
			units = append(units, unit)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return units, nil
}

func parseUnit(line string) (Unit, bool) {
	if !strings.HasPrefix(line, unitPrefix) {
		return Unit{}, false
	}
	rest := line[len(unitPrefix):]
	end := strings.IndexByte(rest, '"')
	if end < 0 {
		return Unit{}, false
	}
	unit := Unit{Name: rest[:end]}
	unit.Origin, _ = attribute(rest[end+1:], "origin")
	return unit, true
}

func attribute(s, name string) (string, bool) {
	key := " " + name + `="`
	start := strings.Index(s, key)
	if start < 0 {
		return "", false
	}
	s = s[start+len(key):]
	end := strings.IndexByte(s, '"')
	if end < 0 {
		return "", false
	}
	return s[:end], true
}

// EndsWithVowel reports whether the unit name ends in a Turkish vowel.
func (u Unit) EndsWithVowel() bool {
	r, _ := utf8.DecodeLastRuneInString(u.Name)
	return strings.ContainsRune("aeıioöuü", r)
}

// ArabicAyn reports whether the unit is an Arabic loan ending in a vowel
// whose origin is marked with the ayn sign.
func (u Unit) ArabicAyn() bool {
	return strings.HasPrefix(u.Origin, "Arapça") && strings.HasSuffix(u.Origin, "¤") && u.EndsWithVowel()
}
