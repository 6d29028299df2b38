// Package retry embrulha chamadas remotas falíveis com tentativas
// limitadas. O backoff distingue erros de limite de requisições (espera
// dobrada) dos demais erros transitórios.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultAttempts é o total de tentativas, contando a primeira
	DefaultAttempts = 3
	// DefaultBaseDelay é a base da espera entre tentativas
	DefaultBaseDelay = time.Second
)

// RateLimited é implementado por erros que indicam throttling do
// serviço remoto (equivalente a HTTP 429)
type RateLimited interface {
	RateLimited() bool
}

// IsRateLimited informa se o erro (ou algum erro embrulhado) sinaliza
// limite de requisições
func IsRateLimited(err error) bool {
	var rl RateLimited
	return errors.As(err, &rl) && rl.RateLimited()
}

// Do executa a operação com a política padrão de tentativas.
// A operação é reexecutada por inteiro a cada tentativa: precisa ser
// idempotente ou o chamador aceita a possibilidade de duplicação.
func Do[T any](ctx context.Context, op func(ctx context.Context) (T, error)) (T, error) {
	return DoWithPolicy(ctx, op, DefaultAttempts, DefaultBaseDelay)
}

// DoWithPolicy executa a operação com tentativas e espera-base
// explícitas. Na tentativa i (a partir de zero) a espera é
// baseDelay×(i+1), dobrada quando o erro indica throttling. O erro da
// última tentativa é devolvido quando todas falham.
func DoWithPolicy[T any](ctx context.Context, op func(ctx context.Context) (T, error), attempts int, baseDelay time.Duration) (T, error) {
	var zero T

	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if i == attempts-1 {
			break
		}

		delay := baseDelay * time.Duration(i+1)
		if IsRateLimited(err) {
			delay *= 2
		}

		logrus.WithError(err).WithFields(logrus.Fields{
			"attempt": i + 1,
			"delay":   delay.String(),
		}).Warn("Operação remota falhou, aguardando para tentar de novo")

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}

	return zero, lastErr
}
