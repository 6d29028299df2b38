// Package cache implementa a memoização de curta duração das leituras
// do repositório de planilha. As entradas têm TTL próprio e a planilha
// remota continua sendo a única fonte de verdade: tudo aqui é
// descartável.
package cache

import (
	"sync"
	"time"
)

// DefaultTTL é a vida útil padrão de uma entrada
const DefaultTTL = 30 * time.Second

type entry struct {
	value    any
	storedAt time.Time
	ttl      time.Duration
}

// Cache é um mapa chave→valor com expiração por entrada, seguro para
// uso concorrente. Não há política de remoção além do TTL: o volume de
// chaves é pequeno e conhecido.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]entry
	defaultTTL time.Duration
	nowFn      func() time.Time
}

// New cria um cache vazio com o TTL padrão
func New() *Cache {
	return NewWithTTL(DefaultTTL)
}

// NewWithTTL cria um cache vazio com o TTL padrão informado
func NewWithTTL(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Cache{
		entries:    make(map[string]entry),
		defaultTTL: ttl,
		nowFn:      time.Now,
	}
}

// Get devolve o valor armazenado se ainda estiver dentro do TTL.
// Entradas vencidas são removidas na hora e tratadas como ausentes.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	if c.nowFn().Sub(e.storedAt) > e.ttl {
		delete(c.entries, key)
		return nil, false
	}

	return e.value, true
}

// Set armazena o valor com o TTL padrão, sobrescrevendo qualquer
// entrada anterior da chave
func (c *Cache) Set(key string, value any) {
	c.SetWithTTL(key, value, c.defaultTTL)
}

// SetWithTTL armazena o valor com um TTL específico
func (c *Cache) SetWithTTL(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		value:    value,
		storedAt: c.nowFn(),
		ttl:      ttl,
	}
}

// Clear esvazia o cache inteiro. Chamado depois de toda mutação e no
// login/logout para garantir que a próxima leitura veja dados frescos.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry)
}

// Len informa quantas entradas existem, vencidas ou não
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}
