package speech

import (
	"slices"
	"strings"
)

// Default voice used when nothing better matches.
const (
	DefaultVoiceName = "Microsoft Sayaka"
	DefaultVoiceLang = "ja-JP"
)

// Voice describes one voice offered by an engine.
type Voice struct {
	Name string
	Lang string
}

// IsJapanese reports whether lang is a Japanese locale tag.
func IsJapanese(lang string) bool {
	lang = strings.ToLower(lang)
	return lang == "ja" || strings.HasPrefix(lang, "ja-") || strings.HasPrefix(lang, "ja_")
}

// SortVoices orders voices with Japanese ones first, then by name.
func SortVoices(voices []Voice) {
	slices.SortStableFunc(voices, func(a, b Voice) int {
		aj, bj := IsJapanese(a.Lang), IsJapanese(b.Lang)
		switch {
		case aj && !bj:
			return -1
		case bj && !aj:
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})
}

// SelectVoice picks a voice, in order of preference: exact name and language,
// name containing preferredName, language equal to preferredLang, the default
// Japanese voice, then the first voice after sorting. Matching ignores case.
// ok is false when voices is empty.
func SelectVoice(voices []Voice, preferredName, preferredLang string) (Voice, bool) {
	if len(voices) == 0 {
		return Voice{}, false
	}
	sorted := slices.Clone(voices)
	SortVoices(sorted)

	name := strings.ToLower(preferredName)
	find := func(match func(v Voice) bool) (Voice, bool) {
		i := slices.IndexFunc(sorted, match)
		if i < 0 {
			return Voice{}, false
		}
		return sorted[i], true
	}

	if v, ok := find(func(v Voice) bool {
		return strings.ToLower(v.Name) == name && strings.EqualFold(v.Lang, preferredLang)
	}); ok {
		return v, true
	}
	if name != "" {
		if v, ok := find(func(v Voice) bool { return strings.Contains(strings.ToLower(v.Name), name) }); ok {
			return v, true
		}
	}
	if preferredLang != "" {
		if v, ok := find(func(v Voice) bool { return strings.EqualFold(v.Lang, preferredLang) }); ok {
			return v, true
		}
	}
	defaultName := strings.ToLower(DefaultVoiceName)
	if v, ok := find(func(v Voice) bool {
		return strings.EqualFold(v.Lang, DefaultVoiceLang) && strings.Contains(strings.ToLower(v.Name), defaultName)
	}); ok {
		return v, true
	}
	return sorted[0], true
}
