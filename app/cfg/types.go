package cfg

type Cfg struct {
	File    string // bibliography path, resolved against BaseDir
	BaseDir string

	TablesPath string
	Indent     int

	DBPath       string
	Listen       string
	APIAccessKey string

	Debug   bool
	Version string
}

func (c *Cfg) ServeMode() bool {
	return c.Listen != ""
}
