package feed

import (
	"strings"
	"unicode"
)

// translation maps a provider substring to a canonical value. Tables are
// evaluated in order, first match wins.
type translation struct {
	substr    string
	canonical string
}

var propertyTypeTable = []translation{
	{"apartamento", "Apartamento"},
	{"apartment", "Apartamento"},
	{"cobertura", "Cobertura"},
	{"penthouse", "Cobertura"},
	{"casa", "Casa"},
	{"house", "Casa"},
	{"home", "Casa"},
	{"terreno", "Terreno"},
	{"land", "Terreno"},
	{"lote", "Terreno"},
	{"comercial", "Comercial"},
	{"commercial", "Comercial"},
	{"sala", "Comercial"},
	{"loja", "Comercial"},
	{"chacara", "Chácara"},
	{"sitio", "Chácara"},
	{"farm", "Chácara"},
	{"studio", "Studio"},
	{"kitnet", "Studio"},
	{"flat", "Studio"},
}

var featureTable = []translation{
	{"piscina", "Piscina"},
	{"pool", "Piscina"},
	{"churrasqueira", "Churrasqueira"},
	{"barbecue", "Churrasqueira"},
	{"academia", "Academia"},
	{"gym", "Academia"},
	{"fitness", "Academia"},
	{"elevador", "Elevador"},
	{"elevator", "Elevador"},
	{"portaria", "Portaria 24h"},
	{"doorman", "Portaria 24h"},
	{"concierge", "Portaria 24h"},
	{"varanda", "Varanda"},
	{"sacada", "Varanda"},
	{"balcony", "Varanda"},
	{"playground", "Playground"},
	{"salao", "Salão de Festas"},
	{"party", "Salão de Festas"},
}

// translate resolves raw against the table, case-insensitively, falling
// back to a title-cased rendering of the raw value.
func translate(raw string, table []translation) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	if lowered == "" {
		return ""
	}
	for _, t := range table {
		if strings.Contains(lowered, t.substr) {
			return t.canonical
		}
	}
	return titleCase(lowered)
}

// TranslatePropertyType maps a provider property type string to the
// canonical vocabulary.
func TranslatePropertyType(raw string) string {
	return translate(raw, propertyTypeTable)
}

// TranslateFeature maps a provider amenity string to the canonical
// vocabulary.
func TranslateFeature(raw string) string {
	return translate(raw, featureTable)
}

// titleCase uppercases the first letter of each word of an already
// lowercased string.
func titleCase(s string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) && !prevLetter {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(r)
		}
		prevLetter = unicode.IsLetter(r)
	}
	return b.String()
}
