package api

import (
	"github.com/lysyi3m/bib-comb/app/bibtex"
	"github.com/lysyi3m/bib-comb/app/database"
	"github.com/lysyi3m/bib-comb/app/normalize"
)

type ParserInterface interface {
	Run(data []byte) ([]bibtex.RawEntry, error)
}

type PipelineInterface interface {
	Run(raw []bibtex.RawEntry) []*normalize.Entry
}

var (
	_ ParserInterface   = (*bibtex.Parser)(nil)
	_ PipelineInterface = (*normalize.Pipeline)(nil)
)

type Handler struct {
	parser   ParserInterface
	pipeline PipelineInterface
	repo     database.PublicationRepositoryInterface // nil when no store is configured
	version  string
}
