package domain

// Status possíveis de um registro de venda
const (
	StatusConfirmed = "Confirmed"
	StatusRejected  = "Rejected"
)

// SaleEntry é uma linha da aba Sales_Data. Sale_ID e Timestamp são
// atribuídos pelo repositório no momento da criação e nunca mudam;
// registros são apenas anexados, não existe atualização nem exclusão.
type SaleEntry struct {
	SaleID             string `json:"sale_id"`
	Date               string `json:"date"`
	SalespersonEmail   string `json:"salesperson_email"`
	SalespersonName    string `json:"salesperson_name"`
	Status             string `json:"status"`
	ShopName           string `json:"shop_name"`
	Location           string `json:"location"`
	Phone              string `json:"phone"`
	ContactName        string `json:"contact_name"`
	Category           string `json:"category"`
	Plan               string `json:"plan"`
	PaymentMethod      string `json:"payment_method"`
	RejectedReason     string `json:"rejected_reason"`
	RejectedCategories string `json:"rejected_categories"` // multivalor separado por vírgula
	Timestamp          string `json:"timestamp"`
}

// NewSaleInput é o payload de criação de uma venda. O Sale_ID e o
// Timestamp ficam de fora de propósito: quem preenche é o repositório.
type NewSaleInput struct {
	Date               string `json:"date"`
	SalespersonEmail   string `json:"salesperson_email"`
	SalespersonName    string `json:"salesperson_name"`
	Status             string `json:"status"`
	ShopName           string `json:"shop_name"`
	Location           string `json:"location"`
	Phone              string `json:"phone"`
	ContactName        string `json:"contact_name"`
	Category           string `json:"category"`
	Plan               string `json:"plan"`
	PaymentMethod      string `json:"payment_method"`
	RejectedReason     string `json:"rejected_reason"`
	RejectedCategories string `json:"rejected_categories"`
}

// Catálogo de produtos e formas de pagamento aceitos nos formulários
var (
	ProductCategories = []string{"BeetLink", "Wifi Marketing"}

	ProductPlans = map[string][]string{
		"BeetLink":       {"₹299"},
		"Wifi Marketing": {"₹699", "₹999"},
	}

	PaymentMethods = []string{"UPI", "Bank Transfer", "Cash", "Cheque", "Card", "Other"}
)
