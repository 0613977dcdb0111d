package feed

import "errors"

var (
	// ErrInvalidContent means the submitted feed is empty or too short to
	// be an XML document.
	ErrInvalidContent = errors.New("conteudo do feed invalido ou vazio")

	// ErrNoListings means the document parsed but none of the known
	// listing container tags matched.
	ErrNoListings = errors.New("nenhum imovel encontrado no feed")
)
