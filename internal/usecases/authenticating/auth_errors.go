package authenticating

import "github.com/pkg/errors"

// Erros sentinela do fluxo de autenticação. Os handlers comparam com
// errors.Is para escolher o status HTTP.
var (
	// ErrAuthFailure indica que o provedor de identidade recusou ou não
	// respondeu a autenticação
	ErrAuthFailure = errors.New("falha na autenticação com o provedor de identidade")

	// ErrAccessDenied indica email autenticado mas fora do roster
	ErrAccessDenied = errors.New("acesso negado: email não faz parte do time autorizado")

	// ErrInvalidToken indica token de sessão ausente, malformado ou adulterado
	ErrInvalidToken = errors.New("token de sessão inválido")

	// ErrExpiredToken indica token de sessão vencido
	ErrExpiredToken = errors.New("token de sessão expirado")
)
