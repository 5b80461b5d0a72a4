package tables

// Pair is one ordered substitution: occurrences of From become To.
type Pair struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

type TitleRules struct {
	MinorWords []string `yaml:"minor_words"` // lowered between spaces
	Overrides  []Pair   `yaml:"overrides"`   // first occurrence per pair
	Acronyms   []string `yaml:"acronyms"`    // upper-cased as whole words
}

type Placeholders struct {
	Title     string `yaml:"title"`
	Authors   string `yaml:"authors"`
	Month     string `yaml:"month"`
	Pages     string `yaml:"pages"`
	Keywords  string `yaml:"keywords"`
	URL       string `yaml:"url"`
	Thumbnail string `yaml:"thumbnail"`
	Award     string `yaml:"award"`
	QuickLink string `yaml:"quicklink"`
}

// Tables is the complete normalization configuration. Order inside every
// list is significant and preserved from the YAML source.
type Tables struct {
	Chars        []Pair       `yaml:"chars"`
	Venues       []Pair       `yaml:"venues"`
	Months       []Pair       `yaml:"months"`
	Title        TitleRules   `yaml:"title"`
	Placeholders Placeholders `yaml:"placeholders"`
}

// overlay mirrors Tables for override files; nil means "keep the default".
type overlay struct {
	Chars  *[]Pair `yaml:"chars"`
	Venues *[]Pair `yaml:"venues"`
	Months *[]Pair `yaml:"months"`
	Title  *struct {
		MinorWords *[]string `yaml:"minor_words"`
		Overrides  *[]Pair   `yaml:"overrides"`
		Acronyms   *[]string `yaml:"acronyms"`
	} `yaml:"title"`
	Placeholders Placeholders `yaml:"placeholders"`
}
