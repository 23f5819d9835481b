// Package content defines the JSON documents that drive the site. Every
// field is optional: absent or null values decode to the zero value and
// never fail a page.
package content

// Hero is data/home/hero.json.
type Hero struct {
	Greeting     Text `json:"greeting"`
	Name         Text `json:"name"`
	Tagline      Text `json:"tagline"`
	ProfileImage Text `json:"profileImage"`
}

// About is data/home/about.json. NameZh may mix Latin and CJK text.
type About struct {
	NameZh      Text   `json:"nameZh"`
	Email       Text   `json:"email"`
	Affiliation Text   `json:"affiliation"`
	Paragraphs  []Text `json:"paragraphs"`
}

// Doing is data/home/doing.json.
type Doing struct {
	Title Text        `json:"title"`
	Items []DoingItem `json:"items"`
}

type DoingItem struct {
	Image       Text `json:"image"`
	Title       Text `json:"title"`
	Description Text `json:"description"`
}

// News is data/home/news.json.
type News struct {
	Title Text       `json:"title"`
	Items []NewsItem `json:"items"`
}

type NewsItem struct {
	Date Text `json:"date"`
	Text Text `json:"text"`
}

// ResearchHome is the short research summary shown on the home page. Its
// bullets are flat, unlike the research page.
type ResearchHome struct {
	Lead       Text   `json:"lead"`
	Paragraphs []Text `json:"paragraphs"`
	Bullets    []Text `json:"bullets"`
}

// Contact is data/home/contact.json.
type Contact struct {
	Title Text          `json:"title"`
	Items []ContactItem `json:"items"`
}

type ContactItem struct {
	Icon  Text `json:"icon"`
	URL   Text `json:"url"`
	Label Text `json:"label"`
}

// Notes is data/notes/sections.json.
type Notes struct {
	IncomingNotes []Text        `json:"incomingNotes"`
	Sections      []NoteSection `json:"sections"`
}

type NoteSection struct {
	Title Text       `json:"title"`
	Items []NoteItem `json:"items"`
}

// NoteItem is a single downloadable (or announced) note. File wins over URL
// when both are set.
type NoteItem struct {
	Icon     Text `json:"icon"`
	Subject  Text `json:"subject"`
	Language Text `json:"language"`
	File     Text `json:"file"`
	URL      Text `json:"url"`
}

// DownloadPath returns the resource the card links to, or "" for a
// non-interactive card.
func (n NoteItem) DownloadPath() string {
	if n.File != "" {
		return string(n.File)
	}
	return string(n.URL)
}

// Research is data/research/sections.json.
type Research struct {
	Sections     []ResearchSection `json:"sections"`
	PageFootnote Text              `json:"pageFootnote"`
}

type ResearchSection struct {
	Title   Text            `json:"title"`
	Entries []ResearchEntry `json:"entries"`
}

type ResearchEntry struct {
	Title    Text     `json:"title"`
	TitleURL Text     `json:"titleUrl"`
	Authors  Text     `json:"authors"`
	Period   Text     `json:"period"`
	Venue    Text     `json:"venue"`
	Status   Text     `json:"status"`
	Bullets  []Bullet `json:"bullets"`
	Footnote Text     `json:"footnote"`
}
