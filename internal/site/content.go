package site

import "github.com/anotherclibrary/acsite/internal/icons"

// Page literals.
const (
	Title     = "Another C Library"
	PageTitle = "Home"

	Token   = "ac_"
	Tagline = " library for building scalable, complex applications."

	GoalsHeading = "Goals of this Project:"
	AboutHeading = "About this Project:"

	About = "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua. Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat. Duis aute irure dolor in reprehenderit in voluptate velit esse cillum dolore eu fugiat nulla pariatur. Excepteur sint occaecat cupidatat non proident, sunt in culpa qui officia deserunt mollit anim id est laborum."
)

// Goals are listed in priority order.
var goals = [5]string{
	"To provide an open source collection of algorithms necessary to build complex applications",
	"To help engineers understand algorithms and C better, so that they can create their own",
	"To show that it is possible to overcome many of the known challenges with C",
	"To help people to learn what it takes to create something new",
	"Build scalable applications using technology like Kubernetes, nginx, and docker",
}

// Goals returns the project goals in priority order.
func Goals() []string {
	return append([]string(nil), goals[:]...)
}

// Action is a call to action in the hero.
type Action struct {
	Label string
	To    string
	Glyph string
}

// Actions returns the hero calls to action in display order.
func Actions() []Action {
	return []Action{
		{Label: "Get Started", To: "/docs/", Glyph: icons.NameArrowRight},
		{Label: "A C eBook", To: "/ebook/", Glyph: icons.NameBook},
	}
}
