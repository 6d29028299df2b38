// Package repository traduz as linhas cruas da planilha em entidades do
// domínio. Toda leitura passa pelo cache de curta duração e toda chamada
// remota passa pela política de tentativas.
package repository

// Abas da planilha e os intervalos completos de cada uma
const (
	SheetUsers   = "Users"
	SheetSales   = "Sales_Data"
	SheetTargets = "Targets"

	rangeUsers   = "Users!A:C"
	rangeSales   = "Sales_Data!A:O"
	rangeTargets = "Targets!A:D"

	headerRangeUsers   = "Users!A1:C1"
	headerRangeSales   = "Sales_Data!A1:O1"
	headerRangeTargets = "Targets!A1:D1"
)

// Chaves de cache das leituras memoizadas
const (
	cacheKeyUsers      = "users"
	cacheKeyAllSales   = "all_sales"
	cacheKeyAllTargets = "all_targets"
	cacheKeyTargets    = "targets_" // prefixo, completado com o email
)

// Cabeçalhos gravados na primeira linha de cada aba
var (
	usersHeader = []string{"Email", "Name", "Role"}

	salesHeader = []string{
		"Sale_ID", "Date", "Salesperson_Email", "Salesperson_Name", "Status",
		"Shop_Name", "Location", "Phone", "Contact_Name", "Category",
		"Plan", "Payment_Method", "Rejected_Reason", "Rejected_Categories", "Timestamp",
	}

	targetsHeader = []string{"Salesperson_Email", "Month", "Year", "Target"}
)

// cell devolve a célula i da linha, ou vazio quando a linha é curta.
// A API do Google omite células vazias no fim da linha.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
