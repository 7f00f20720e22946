package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/revelaction/childes/extract"
	"github.com/revelaction/childes/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// TranscriptStore persists extracted transcripts in SQLite.
type TranscriptStore struct {
	pool *sqlitex.Pool
}

var _ storage.TranscriptRepository = (*TranscriptStore)(nil)

func NewTranscriptStore(pool *sqlitex.Pool) *TranscriptStore {
	return &TranscriptStore{pool: pool}
}

func (s *TranscriptStore) List() ([]storage.Entry, error) {
	conn, err := s.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer s.pool.Put(conn)

	var entries []storage.Entry
	err = sqlitex.Execute(conn, "SELECT id, name, corpus, age_months FROM transcripts ORDER BY name", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			e := storage.Entry{
				Id:     stmt.ColumnInt(0),
				Name:   stmt.ColumnText(1),
				Corpus: stmt.ColumnText(2),
			}
			if stmt.ColumnType(3) != sqlite.TypeNull {
				months := stmt.ColumnInt(3)
				e.AgeMonths = &months
			}
			entries = append(entries, e)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *TranscriptStore) Read(id int) (storage.Entry, error) {
	conn, err := s.pool.Take(context.TODO())
	if err != nil {
		return storage.Entry{}, err
	}
	defer s.pool.Put(conn)

	entry := storage.Entry{Id: id}
	found := false

	err = sqlitex.Execute(conn, "SELECT name, corpus, age_months FROM transcripts WHERE id = ?", &sqlitex.ExecOptions{
		Args: []interface{}{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			entry.Name = stmt.ColumnText(0)
			entry.Corpus = stmt.ColumnText(1)
			if stmt.ColumnType(2) != sqlite.TypeNull {
				months := stmt.ColumnInt(2)
				entry.AgeMonths = &months
			}
			return nil
		},
	})
	if err != nil {
		return storage.Entry{}, err
	}
	if !found {
		return storage.Entry{}, fmt.Errorf("transcript not found: %d", id)
	}

	err = sqlitex.Execute(conn, "SELECT speaker, data FROM utterances WHERE transcript_id = ? ORDER BY rowid", &sqlitex.ExecOptions{
		Args: []interface{}{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			utt := storage.Utterance{Speaker: stmt.ColumnText(0)}
			var tokens []extract.Token
			if err := json.Unmarshal([]byte(stmt.ColumnText(1)), &tokens); err != nil {
				return err
			}
			utt.Tokens = tokens
			entry.Utterances = append(entry.Utterances, utt)
			return nil
		},
	})
	if err != nil {
		return storage.Entry{}, err
	}

	return entry, nil
}

func (s *TranscriptStore) Write(e storage.Entry) error {
	conn, err := s.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer s.pool.Put(conn)

	// Start Transaction
	defer sqlitex.Save(conn)(&err)

	var age interface{}
	if e.AgeMonths != nil {
		age = *e.AgeMonths
	}
	err = sqlitex.Execute(conn, "INSERT INTO transcripts (name, corpus, age_months) VALUES (?, ?, ?)", &sqlitex.ExecOptions{
		Args: []interface{}{e.Name, e.Corpus, age},
	})
	if err != nil {
		return fmt.Errorf("failed to insert transcript: %w", err)
	}
	transcriptID := conn.LastInsertRowID()

	for _, utt := range e.Utterances {
		var data []byte
		data, err = json.Marshal(utt.Tokens)
		if err != nil {
			return err
		}

		err = sqlitex.Execute(conn, "INSERT INTO utterances (transcript_id, speaker, data) VALUES (?, ?, ?)", &sqlitex.ExecOptions{
			Args: []interface{}{transcriptID, utt.Speaker, string(data)},
		})
		if err != nil {
			return fmt.Errorf("failed to insert utterance: %w", err)
		}
	}

	return nil
}
