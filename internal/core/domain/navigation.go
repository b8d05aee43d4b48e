package domain

type Page string

const (
	PageHome     Page = "home"
	PageProducts Page = "products"
	PageAbout    Page = "about"
	PageContact  Page = "contact"
)

// ParsePage reports whether s names one of the storefront views.
func ParsePage(s string) (Page, bool) {
	switch p := Page(s); p {
	case PageHome, PageProducts, PageAbout, PageContact:
		return p, true
	}
	return "", false
}

type NavigationState struct {
	CurrentPage Page `json:"currentPage"`
	CartOpen    bool `json:"cartOpen"`
}
