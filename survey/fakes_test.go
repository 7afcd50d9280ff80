package survey

import (
	"SurveyBot/model"
	"context"
	"fmt"
	"sync"
)

type memStore struct {
	mu      sync.Mutex
	records map[int64]*model.ResponseRecord
	writes  int
	fail    error
}

func newMemStore() *memStore {
	return &memStore{records: make(map[int64]*model.ResponseRecord)}
}

func (s *memStore) Upsert(_ context.Context, userID int64, column model.Column, answer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	r, ok := s.records[userID]
	if !ok {
		r = &model.ResponseRecord{UserID: userID}
		s.records[userID] = r
	}
	s.writes++
	return r.Set(column, answer)
}

func (s *memStore) Read(_ context.Context, userID int64) (*model.ResponseRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[userID]
	if !ok {
		return nil, model.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *memStore) setFail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = err
}

func (s *memStore) value(userID int64, c model.Column) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[userID]
	if !ok {
		return "", false
	}
	return r.Get(c)
}

func (s *memStore) writeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

type recordingSink struct {
	mu      sync.Mutex
	columns []model.Column
	rows    [][]any
	fail    error
}

func (s *recordingSink) Export(_ context.Context, record *model.ResponseRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	s.rows = append(s.rows, record.Row(s.columns))
	return nil
}

func (s *recordingSink) exported() [][]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]any(nil), s.rows...)
}

type sent struct {
	kind    string // prompt, ack, edit
	userID  int64
	text    string
	choices []Choice
}

type recordingTransport struct {
	mu   sync.Mutex
	msgs []sent
}

func (t *recordingTransport) SendPrompt(_ context.Context, userID int64, text string, choices []Choice) error {
	t.add(sent{kind: "prompt", userID: userID, text: text, choices: choices})
	return nil
}

func (t *recordingTransport) SendAcknowledgment(_ context.Context, userID int64, text string) error {
	t.add(sent{kind: "ack", userID: userID, text: text})
	return nil
}

func (t *recordingTransport) EditLastMessage(_ context.Context, userID int64, text string) error {
	t.add(sent{kind: "edit", userID: userID, text: text})
	return nil
}

func (t *recordingTransport) add(m sent) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.msgs = append(t.msgs, m)
}

func (t *recordingTransport) all() []sent {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]sent(nil), t.msgs...)
}

func (t *recordingTransport) last() sent {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.msgs) == 0 {
		return sent{}
	}
	return t.msgs[len(t.msgs)-1]
}

func (t *recordingTransport) count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.msgs)
}

func (s sent) String() string {
	return fmt.Sprintf("%s(%d, %q)", s.kind, s.userID, s.text)
}
