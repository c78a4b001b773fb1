package domain

// Text is either a literal string or a translation key.
type Text struct {
	Literal string
	Key     string
}

// Lit builds a literal text.
func Lit(s string) Text { return Text{Literal: s} }

// Translated builds a translated text.
func Translated(key string) Text { return Text{Key: key} }

// IsZero reports whether the text carries nothing.
func (t Text) IsZero() bool { return t.Literal == "" && t.Key == "" }

// Course is one landing page block.
type Course struct {
	Title       Text
	Icon        string // static asset path, relative to static/
	Description Text
}

// Hero is the header shown above the course list.
type Hero struct {
	Avatar   string
	Title    Text
	Subtitle Text
	Bio      Text
}

// Landing is the fixed, authored content of the landing page.
// It is iterated at render time and never mutated.
type Landing struct {
	Hero    Hero
	Courses []Course
}
