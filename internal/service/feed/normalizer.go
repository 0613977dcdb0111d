package feed

import (
	"strconv"
	"strings"

	"imobhub/internal/model"

	"github.com/PuerkitoBio/goquery"
)

// Feeds shorter than this cannot be an XML document worth parsing.
const minContentLength = 50

// Listing container tags known across provider schemas, in priority order.
var listingTags = []string{
	"listing", "imovel", "property", "ad", "anuncio", "item", "entry",
}

// Candidate tags per canonical field, first non-empty match wins. Selectors
// are matched case-insensitively because the underlying parser lowercases
// tag names.
var (
	refIDTags        = []string{"listingid", "id", "codigo", "referencecode", "ref"}
	titleTags        = []string{"title", "titulo", "name"}
	descriptionTags  = []string{"description", "descricao", "observacoes"}
	salePriceTags    = []string{"listprice", "price", "preco", "valor"}
	rentPriceTags    = []string{"rentalprice", "precolocacao", "valoraluguel"}
	neighborhoodTags = []string{"neighborhood", "bairro", "district"}
	cityTags         = []string{"city", "cidade"}
	bedroomTags      = []string{"bedrooms", "quartos", "dormitorios"}
	bathroomTags     = []string{"bathrooms", "banheiros"}
	parkingTags      = []string{"garage", "vagas", "parkingspaces"}
	areaTags         = []string{"livingarea", "area", "areautil", "usablearea"}
	imageTags        = []string{"picture url", "imagem", "image", "photo"}
	typeTags         = []string{"propertytype", "tipo", "type"}
	condoFeeTags     = []string{"propertyadministrationfee", "condominio", "condofee"}
	taxTags          = []string{"iptu", "propertytax", "yearlytax"}
	featureSelectors = []string{"features feature", "caracteristicas caracteristica", "feature"}
)

// Normalize parses raw provider XML and extracts canonical property
// records. It returns the records plus the ref ids seen in the feed,
// which the importer later uses for pruning.
func Normalize(raw string) ([]model.Property, []string, error) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) < minContentLength {
		return nil, nil, ErrInvalidContent
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(trimmed))
	if err != nil {
		return nil, nil, ErrInvalidContent
	}

	listings := findListings(doc)
	if listings == nil {
		return nil, nil, ErrNoListings
	}

	var properties []model.Property
	var refIDs []string
	seen := make(map[string]struct{})

	listings.Each(func(_ int, node *goquery.Selection) {
		p := extractProperty(node)
		if p.RefID == "" {
			return
		}
		// A ref id repeated inside one feed keeps its first occurrence.
		if _, dup := seen[p.RefID]; dup {
			return
		}
		seen[p.RefID] = struct{}{}
		properties = append(properties, p)
		refIDs = append(refIDs, p.RefID)
	})

	if len(properties) == 0 {
		return nil, nil, ErrNoListings
	}
	return properties, refIDs, nil
}

// findListings probes the known container tags in priority order and
// returns the first selection with matches.
func findListings(doc *goquery.Document) *goquery.Selection {
	for _, tag := range listingTags {
		sel := doc.Find(tag)
		if sel.Length() > 0 {
			return sel
		}
	}
	return nil
}

func extractProperty(node *goquery.Selection) model.Property {
	salePrice := parsePrice(firstText(node, salePriceTags))
	rentPrice := parsePrice(firstText(node, rentPriceTags))

	// Sale price wins; a listing priced only for rental is classified
	// aluguel.
	price := salePrice
	dealType := model.DealVenda
	if salePrice == 0 && rentPrice > 0 {
		price = rentPrice
		dealType = model.DealAluguel
	}

	return model.Property{
		RefID:        firstText(node, refIDTags),
		Title:        firstText(node, titleTags),
		Description:  firstText(node, descriptionTags),
		Price:        price,
		DealType:     dealType,
		PropertyType: TranslatePropertyType(firstText(node, typeTags)),
		Neighborhood: firstText(node, neighborhoodTags),
		City:         firstText(node, cityTags),
		Bedrooms:     parseCount(firstText(node, bedroomTags)),
		Bathrooms:    parseCount(firstText(node, bathroomTags)),
		Parking:      parseCount(firstText(node, parkingTags)),
		Area:         parsePrice(firstText(node, areaTags)),
		ImageURL:     firstText(node, imageTags),
		Features:     extractFeatures(node),
		CondoFee:     parsePrice(firstText(node, condoFeeTags)),
		PropertyTax:  parsePrice(firstText(node, taxTags)),
	}
}

// firstText probes the candidate selectors in order and returns the first
// non-empty trimmed text.
func firstText(node *goquery.Selection, candidates []string) string {
	for _, tag := range candidates {
		if v := strings.TrimSpace(node.Find(tag).First().Text()); v != "" {
			return v
		}
	}
	return ""
}

// extractFeatures gathers amenity texts, translates each and joins them.
func extractFeatures(node *goquery.Selection) string {
	for _, selector := range featureSelectors {
		sel := node.Find(selector)
		if sel.Length() == 0 {
			continue
		}
		var features []string
		sel.Each(func(_ int, f *goquery.Selection) {
			if v := TranslateFeature(f.Text()); v != "" {
				features = append(features, v)
			}
		})
		return strings.Join(features, "; ")
	}
	return ""
}

// parsePrice reads a monetary or decimal value in either Brazilian
// ("1.234,56") or plain ("1234.56") notation, ignoring currency symbols.
// Unparseable input yields zero.
func parsePrice(raw string) float64 {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if s == "" {
		return 0
	}

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")
	if lastComma > lastDot {
		// Comma is the decimal separator, dots group thousands.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// parseCount reads a small integer such as a room count, tolerating
// surrounding text ("3 quartos").
func parseCount(raw string) int {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	v, err := strconv.Atoi(b.String())
	if err != nil {
		return 0
	}
	return v
}
