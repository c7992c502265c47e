package style

// Sheet maps each semantic role of the landing page to its rule.
type Sheet struct {
	Hero      Rule
	HeroText  Rule
	H2        Rule
	H3        Rule
	Code      Rule
	Button    Rule
	Main      Rule
	Paragraph Rule
}

// Role names, in the order Roles returns them.
const (
	RoleHero      = "hero"
	RoleHeroText  = "heroText"
	RoleH2        = "h2"
	RoleH3        = "h3"
	RoleCode      = "code"
	RoleButton    = "button"
	RoleMain      = "main"
	RoleParagraph = "paragraph"
)

// NamedRule pairs a role name with its rule.
type NamedRule struct {
	Role string
	Rule Rule
}

// Roles lists the sheet's rules by role name in a fixed order.
func (s Sheet) Roles() []NamedRule {
	return []NamedRule{
		{RoleHero, s.Hero},
		{RoleHeroText, s.HeroText},
		{RoleH2, s.H2},
		{RoleH3, s.H3},
		{RoleCode, s.Code},
		{RoleButton, s.Button},
		{RoleMain, s.Main},
		{RoleParagraph, s.Paragraph},
	}
}

// Index returns the style sheet of the landing page. It is built from
// literals only, so every call returns an equal sheet.
func Index() Sheet {
	return Sheet{
		Hero: NewRule(
			D("background-color", Gray800.String()),
			D("height", "50vh"),
			D("display", "flex"),
			D("align-items", "center"),
			D("text-align", "center"),
			D("margin", "0 auto"),
		),
		HeroText: NewRule(
			D("text-align", "center"),
			D("margin", "0 auto"),
		),
		H2: NewRule(
			D("font-size", TitleSize),
			D("color", White.String()),
		),
		H3: NewRule(
			D("font-size", SubtitleSize),
			D("color", Gray200.String()),
		),
		Code: NewRule(
			D("font-size", TokenSize),
			D("background-color", Gray600.String()),
			D("padding", Px(5)),
		),
		Button: NewRule(
			D("border-radius", Px(10)),
			D("border", "none"),
			D("padding", "10px 24px"),
			D("margin", Px(10)),
			D("font-size", Px(18)),
			D("font-family", SystemFontStack),
			D("background", Blue600.String()),
			D("color", White.String()),
			D("cursor", "pointer"),
		),
		Main: NewRule(
			D("max-width", Px(1200)),
			D("margin", "80px auto"),
			D("padding", Px(10)),
		),
		Paragraph: NewRule(
			D("color", Gray900.String()),
			D("list-style", "none"),
		),
	}
}

// IconOffset is the inline override applied to button glyphs.
func IconOffset() Rule {
	return NewRule(D("padding-top", Px(5)))
}
