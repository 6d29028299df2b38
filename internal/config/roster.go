package config

import (
	"strings"

	"github.com/arneor/sales-tracker-api/internal/domain"
)

// SalesTeam é o roster estático de membros autorizados: a única fonte
// de verdade para quem pode logar e com qual papel. O papel nunca é
// lido da planilha para fins de autorização; a aba Users é apenas um
// espelho semeado a partir daqui.
var SalesTeam = []domain.SalesUser{
	{Email: "abijithabix76@gmail.com", Name: "Abijith T", Role: domain.RoleSalesperson},
	{Email: "anandsagarps7736@gmail.com", Name: "Anand Sagar Ps", Role: domain.RoleSalesperson},
	{Email: "sinankpmk61@gmail.com", Name: "Muhammed Sinan K", Role: domain.RoleSalesperson},
	{Email: "vighneshk32@gmail.com", Name: "Vignesh K", Role: domain.RoleSalesperson},
	{Email: "ajinaju92@gmail.com", Name: "Ajin K", Role: domain.RoleSalesperson},
	{Email: "abhishekabhishekc7@gmail.com", Name: "Abhishek C", Role: domain.RoleSalesperson},
	{Email: "amjunaidd@gmail.com", Name: "Muhammed Junaid A", Role: domain.RoleSalesperson},
	{Email: "lalnidhinp02@gmail.com", Name: "Nidhin", Role: domain.RoleSalesperson},
	{Email: "vahabferoke9@gmail.com", Name: "Vahab Feroke", Role: domain.RoleSalesperson},
	{Email: "infovahabkp@gmail.com", Name: "Vahab KP", Role: domain.RoleManager},
	{Email: "infonidhinlal@gmail.com", Name: "Nidhin Lal", Role: domain.RoleManager},
}

// NormalizeEmail reduz o email à forma canônica usada nas comparações
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FindRosterMember procura o membro pelo email normalizado. Devolve nil
// quando o email não está no roster — e portanto não tem acesso.
func FindRosterMember(email string) *domain.SalesUser {
	normalized := NormalizeEmail(email)

	for i := range SalesTeam {
		if SalesTeam[i].Email == normalized {
			member := SalesTeam[i]
			return &member
		}
	}

	return nil
}
