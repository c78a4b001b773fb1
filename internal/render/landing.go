// Package render produces the landing page HTML for a snapshot.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/MrSnakeDoc/coursesite/internal/domain"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var landingTmpl = template.Must(template.ParseFS(templateFS, "templates/landing.html.tmpl"))

// Page is the fully resolved view model of the landing page.
type Page struct {
	Lang        string
	Title       string
	Favicon     string
	Home        string
	NavbarTitle string
	Navbar      []Link
	Alternates  []Alternate
	Hero        HeroView
	Courses     []CourseView
	Copyright   string
}

type Link struct {
	Label    string
	Href     string
	Position string
	// Items is set for dropdowns, which have no Href.
	Items    []Link
}

type Alternate struct {
	Lang string
	Href string
}

type HeroView struct {
	Avatar   string
	Title    string
	Subtitle string
	Bio      string
}

type CourseView struct {
	Title       string
	Icon        string
	Description string
}

// NewPage resolves every text of the landing page in locale.
// Courses keep their authored order.
func NewPage(snap *domain.Snapshot, locale string, now time.Time) Page {
	s := &snap.Site
	l := snap.Landing

	p := Page{
		Lang:        locale,
		Title:       s.Title,
		Favicon:     asset(s, s.Favicon),
		Home:        s.HomePath(locale),
		NavbarTitle: s.Theme.Navbar.Title,
		Hero: HeroView{
			Avatar:   asset(s, l.Hero.Avatar),
			Title:    snap.Text(locale, l.Hero.Title),
			Subtitle: snap.Text(locale, l.Hero.Subtitle),
			Bio:      snap.Text(locale, l.Hero.Bio),
		},
		Courses:   make([]CourseView, 0, len(l.Courses)),
		Copyright: s.Theme.Footer.CopyrightFor(now),
	}
	if p.NavbarTitle == "" {
		p.NavbarTitle = s.Title
	}

	for _, loc := range s.I18n.Locales {
		p.Alternates = append(p.Alternates, Alternate{Lang: loc, Href: s.HomePath(loc)})
	}
	for _, it := range s.Theme.Navbar.Items {
		if l, ok := navLink(s, locale, it, p.Alternates); ok {
			p.Navbar = append(p.Navbar, l)
		}
	}
	for _, c := range l.Courses {
		p.Courses = append(p.Courses, CourseView{
			Title:       snap.Text(locale, c.Title),
			Icon:        asset(s, c.Icon),
			Description: snap.Text(locale, c.Description),
		})
	}
	return p
}

// Render writes the landing page of snap in locale.
func Render(w io.Writer, snap *domain.Snapshot, locale string, now time.Time) error {
	if err := landingTmpl.Execute(w, NewPage(snap, locale, now)); err != nil {
		return fmt.Errorf("failed to render landing page: %w", err)
	}
	return nil
}

// navLink resolves a navbar item. Items that are neither links nor a
// locale dropdown (search, html) are skipped.
func navLink(s *domain.Site, locale string, it domain.NavbarItem, alternates []Alternate) (Link, bool) {
	l := Link{Label: it.Label, Position: it.Position}
	switch {
	case it.Type == "localeDropdown":
		if l.Label == "" {
			l.Label = locale
		}
		for _, a := range alternates {
			l.Items = append(l.Items, Link{Label: a.Lang, Href: a.Href})
		}
	case it.Type == "doc":
		l.Href = s.DocPath(locale, it.DocID)
	case it.Href != "":
		l.Href = it.Href
	case it.To != "":
		l.Href = s.HomePath(locale) + strings.TrimPrefix(it.To, "/")
	default:
		return Link{}, false
	}
	return l, true
}

// asset resolves a static/ relative path against the base URL.
func asset(s *domain.Site, p string) string {
	if p == "" || strings.Contains(p, "://") || strings.HasPrefix(p, "//") {
		return p
	}
	return strings.TrimSuffix(s.BaseURL, "/") + "/" + strings.TrimPrefix(p, "/")
}
