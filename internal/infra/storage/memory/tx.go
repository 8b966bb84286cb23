package memory

import "context"

type txKey struct{}

// TxManager транзакции поверх мьютекса хранилища.
// На время транзакции хранилище заблокировано целиком, при ошибке
// или панике состояние восстанавливается из снимка.
type TxManager struct {
	s *Store
}

// NewTxManager создает менеджер транзакций для хранилища
func NewTxManager(s *Store) *TxManager {
	return &TxManager{s: s}
}

// Do выполняет fn в транзакции
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// DoSerializable выполняет fn в транзакции; блокировка уже дает полную изоляцию
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// DoReadOnly выполняет fn в транзакции только для чтения
func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if m.s.inTx(ctx) {
		return fn(ctx)
	}

	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	snapshot := m.s.state.clone()

	defer func() {
		if p := recover(); p != nil {
			m.s.state = snapshot
			panic(p)
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, m.s)); err != nil {
		m.s.state = snapshot
		return err
	}

	return nil
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, ok := ctx.Value(txKey{}).(*Store)
	return ok && owner == s
}

// run выполняет fn под блокировкой, если она еще не взята транзакцией
func (s *Store) run(ctx context.Context, fn func(st *state) error) error {
	if !s.inTx(ctx) {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(&s.state)
}
