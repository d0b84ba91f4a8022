package models

import "sort"

// BairroNaoIdentificado is the sentinel neighborhood used when reverse
// geocoding fails or returns nothing usable.
const BairroNaoIdentificado = "Não identificado"

// bairrosMarica is the fixed municipality neighborhood list offered in
// the obra form. Advisory only: the store accepts any string.
var bairrosMarica = []string{
	"Centro",
	"Araçatiba",
	"Barra de Maricá",
	"Boqueirão",
	"Cordeirinho",
	"Flamengo",
	"Guaratiba",
	"Inoã",
	"Itaipuaçu",
	"Itapeba",
	"Jacaroá",
	"Mumbuca",
	"Ponta Negra",
	"Retiro",
	"Santa Rita",
	"São José do Imbassaí",
	"Ubatiba",
	"Bambuí",
	"Espraiado",
	"Jardim Atlântico",
	"Pindobas",
	"Praia de Fora",
	"Recanto de Itaipuaçu",
	"Zacarias",
}

// Bairros returns the neighborhood list sorted for display.
func Bairros() []string {
	out := make([]string, len(bairrosMarica))
	copy(out, bairrosMarica)
	sort.Strings(out)
	return out
}

// KnownBairro reports whether the name is on the municipality list.
func KnownBairro(nome string) bool {
	for _, b := range bairrosMarica {
		if b == nome {
			return true
		}
	}
	return false
}
