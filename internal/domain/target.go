package domain

// Target é a meta mensal de um vendedor. A tripla (email, mês, ano) é
// única na aba Targets: o repositório sobrescreve a linha existente em
// vez de anexar uma duplicata.
type Target struct {
	SalespersonEmail string `json:"salesperson_email"`
	Month            string `json:"month"` // nome completo do mês, ex: "January"
	Year             int    `json:"year"`
	TargetCount      int    `json:"target_count"`
}

// DefaultTarget é a meta assumida quando o período não tem meta cadastrada
const DefaultTarget = 15
