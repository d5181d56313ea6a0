package memstore

import (
	"context"
	"sync"

	"github.com/JakobMartens/inselbahn/internal/integrations/mailer"
)

// Audit запоминает записанные действия
type Audit struct {
	mu      sync.Mutex
	actions []string
}

// Record сохраняет действие
func (a *Audit) Record(_ context.Context, action, _ string, _ map[string]interface{}) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, action)
	return nil
}

// Actions снимок записанных действий
func (a *Audit) Actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.actions...)
}

// Mailer запоминает отправленные письма
type Mailer struct {
	mu       sync.Mutex
	messages []mailer.Message
	Err      error
}

// Send сохраняет письмо или возвращает Err
func (m *Mailer) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.messages = append(m.messages, msg)
	return nil
}

// Messages снимок отправленных писем
func (m *Mailer) Messages() []mailer.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mailer.Message(nil), m.messages...)
}
