// Package subname implements the canonical subtitle filename grammar:
//
//	<title-slug>.<year>.<source-tag>.<quality-tag>.<language-tag>[<modifier>][-<N>].<ext>
//
// where <modifier> is "[forced]" or "[sdh]" and "-<N>" is a 1-2 digit
// disambiguator present only when a collision required it.
package subname

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/language"

	"github.com/squash/subtidy/pkg/file"
)

// Modifier is a bracketed filename tag.
type Modifier string

const (
	ModifierForced Modifier = "forced"
	ModifierSDH    Modifier = "sdh"
)

// Name is a parsed subtitle filename.
type Name struct {
	Base          string // everything before the language tag, dots included
	LanguageTag   string // e.g. "en-US", "es-419", "fr"
	Modifiers     []Modifier
	NumericSuffix int // 0 when absent
	Ext           string // with leading dot, e.g. ".srt"
}

var (
	englishTag      = regexp.MustCompile(`(?i)\.en(-US|-GB)?(\[(sdh|forced)\])?$`)
	genericSpanish  = regexp.MustCompile(`(?i)\.es(\[sdh\])?$`)
	bracketModifier = regexp.MustCompile(`\[([a-z]+)\]`)
	trailingBracket = regexp.MustCompile(`^(.*?)((?:\[[^\]]*\])*)$`)
)

// Parse splits a subtitle filename into its grammar components. The language
// tag is validated as a BCP-47-like tag when possible; unknown tags are
// preserved verbatim so that renaming never destroys information.
func Parse(name string) (Name, error) {
	base := filepath.Base(name)
	ext := filepath.Ext(base)
	if ext == base || ext == "" {
		return Name{}, fmt.Errorf("no extension in subtitle name: %s", name)
	}
	stem := strings.TrimSuffix(base, ext)

	main, n := file.SplitNumberedSuffix(stem)

	m := trailingBracket.FindStringSubmatch(main)
	core, brackets := m[1], m[2]

	var mods []Modifier
	for _, bm := range bracketModifier.FindAllStringSubmatch(brackets, -1) {
		switch Modifier(strings.ToLower(bm[1])) {
		case ModifierForced:
			mods = append(mods, ModifierForced)
		case ModifierSDH:
			mods = append(mods, ModifierSDH)
		}
	}

	dot := strings.LastIndex(core, ".")
	if dot < 0 {
		return Name{}, fmt.Errorf("no language tag in subtitle name: %s", name)
	}

	return Name{
		Base:          core[:dot],
		LanguageTag:   core[dot+1:],
		Modifiers:     mods,
		NumericSuffix: n,
		Ext:           ext,
	}, nil
}

// String reassembles the canonical filename, bit-exact with respect to the
// grammar: modifiers come before the numeric suffix.
func (n Name) String() string {
	var b strings.Builder
	b.WriteString(n.Base)
	b.WriteByte('.')
	b.WriteString(n.LanguageTag)
	for _, mod := range n.Modifiers {
		b.WriteByte('[')
		b.WriteString(string(mod))
		b.WriteByte(']')
	}
	if n.NumericSuffix > 0 {
		fmt.Fprintf(&b, "-%d", n.NumericSuffix)
	}
	b.WriteString(n.Ext)
	return b.String()
}

// HasModifier reports whether the parsed name carries the given tag.
func (n Name) HasModifier(mod Modifier) bool {
	for _, m := range n.Modifiers {
		if m == mod {
			return true
		}
	}
	return false
}

// ValidTag reports whether the language tag parses as BCP-47-like.
func (n Name) ValidTag() bool {
	tag, err := language.Parse(n.LanguageTag)
	if err != nil {
		return false
	}
	_, conf := tag.Base()
	return conf != language.No
}

// StripNumberedSuffix removes a 1 or 2 digit "-N" disambiguator from the end
// of a filename stem, keeping the extension.
func StripNumberedSuffix(name string) string {
	if name == "" {
		return name
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	main, _ := file.SplitNumberedSuffix(stem)
	return main + ext
}

// BaseLanguageTag extracts the grouping key from a subtitle filename: the
// language tag with region subtag, modifiers, and numeric disambiguator
// stripped.
//
//	Braveheart.1995.iT.WEB.en-US.srt    -> en
//	Braveheart.1995.iT.WEB.es-419.srt   -> es
//	Braveheart.1995.iT.WEB.en-US-10.srt -> en
func BaseLanguageTag(name string) string {
	stem := file.Stem(filepath.Base(name))
	main, _ := file.SplitNumberedSuffix(stem)
	parts := strings.Split(main, ".")
	if len(parts) == 0 {
		return ""
	}
	tag := parts[len(parts)-1]
	tag, _, _ = strings.Cut(tag, "-")
	tag, _, _ = strings.Cut(tag, "[")
	return tag
}

// IsEnglishTagged reports whether the stem ends in an English tag the
// dialect pass should examine (en, en-US, en-GB, optionally modified).
func IsEnglishTagged(stem string) bool {
	return englishTag.MatchString(stem)
}

// IsGenericSpanishTagged reports whether the stem ends in a bare "es" tag
// (optionally SDH-modified) eligible for dialect resolution.
func IsGenericSpanishTagged(stem string) bool {
	return genericSpanish.MatchString(stem)
}

// DefaultAllowedForced lists the language tags whose forced subtitles
// survive the forced filter.
var DefaultAllowedForced = []string{"en", "en-US", "en-GB", "en-CA", "en-AU"}

// ForcedAllowed reports whether a forced-tagged filename is on the allow
// list. The comparison is case-insensitive on the "<tag>[forced]" token,
// matching how sources emit the tag.
func ForcedAllowed(name string, allowed []string) bool {
	lower := strings.ToLower(filepath.Base(name))
	for _, tag := range allowed {
		if strings.Contains(lower, strings.ToLower(tag)+"[forced]") {
			return true
		}
	}
	return false
}

// IsForced reports whether the filename carries the forced modifier.
func IsForced(name string) bool {
	return strings.Contains(strings.ToLower(filepath.Base(name)), "[forced]")
}
