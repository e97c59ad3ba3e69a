package sitedata

import "time"

// Keys recognised or produced by Normalize.
const (
	KeySite                 = "site"
	KeyTitle                = "title"
	KeyDescription          = "description"
	KeyProgrammingLanguages = "programming_languages"
	KeyFrameworks           = "frameworks"
	KeySkills               = "skills"
	KeyCurrentYear          = "current_year"

	// SourceKeyProgrammingLanguages is the spelling used by data files. It is
	// copied into KeyProgrammingLanguages and left in place.
	SourceKeyProgrammingLanguages = "Programming Languages"
)

// Default values for the site block.
const (
	DefaultTitle       = "My Portfolio"
	DefaultDescription = "Personal portfolio"
)

// Data is the template context: a JSON-compatible mapping whose keys are all
// exposed as top-level template variables.
type Data map[string]any

// Site returns the site block, or nil when Data has not been normalised.
func (d Data) Site() map[string]any {
	site, _ := d[KeySite].(map[string]any)
	return site
}

// CurrentYear returns the year stamped by Normalize.
func (d Data) CurrentYear() int {
	year, _ := d[KeyCurrentYear].(int)
	return year
}

// List returns the sequence stored under key, or nil when the value is
// missing or not a sequence.
func (d Data) List(key string) []any {
	list, _ := d[key].([]any)
	return list
}

// Normalize fills defaults and coerces the recognised keys so that site,
// programming_languages, frameworks, skills, and current_year are always
// present with their expected types. raw is updated in place and returned as
// Data; unrecognised keys are untouched. A nil raw yields a fresh mapping.
func Normalize(raw map[string]any, now time.Time) Data {
	if raw == nil {
		raw = make(map[string]any)
	}
	data := Data(raw)

	site, ok := data[KeySite].(map[string]any)
	if !ok {
		site = make(map[string]any, 2)
		data[KeySite] = site
	}
	if _, exists := site[KeyTitle]; !exists {
		site[KeyTitle] = DefaultTitle
	}
	if _, exists := site[KeyDescription]; !exists {
		site[KeyDescription] = DefaultDescription
	}

	if langs, ok := data[SourceKeyProgrammingLanguages].([]any); ok {
		data[KeyProgrammingLanguages] = langs
	} else {
		data[KeyProgrammingLanguages] = []any{}
	}

	data[KeyFrameworks] = ensureList(data[KeyFrameworks])
	data[KeySkills] = ensureList(data[KeySkills])

	data[KeyCurrentYear] = now.Year()
	return data
}

func ensureList(value any) []any {
	if list, ok := value.([]any); ok {
		return list
	}
	return []any{}
}
