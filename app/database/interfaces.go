package database

import "github.com/lysyi3m/bib-comb/app/normalize"

type PublicationRepositoryInterface interface {
	ReplaceAll(entries []*normalize.Entry) error
	List() ([]Publication, error)
	Get(citeKey string) (*Publication, error)
	Count() (int, error)
}

var _ PublicationRepositoryInterface = (*PublicationRepository)(nil)
