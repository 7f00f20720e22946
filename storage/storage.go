package storage

import (
	"github.com/revelaction/childes/extract"
)

// Utterance is the stored form of one utterance: the speaker code and
// the extracted tokens.
type Utterance struct {
	Speaker string          `json:"speaker"`
	Tokens  []extract.Token `json:"tokens"`
}

// Entry is the stored form of one transcript.
type Entry struct {
	Id     int
	Name   string
	Corpus string

	// AgeMonths is nil when the transcript carries no parseable age.
	AgeMonths *int

	Utterances []Utterance
}

// TranscriptReader defines read operations for transcript storage
type TranscriptReader interface {
	// List returns the metadata (Id, Name, Corpus, AgeMonths) of stored
	// transcripts. Utterances are not loaded.
	List() ([]Entry, error)

	// Read returns a stored transcript with its utterances.
	Read(id int) (Entry, error)
}

// TranscriptWriter defines write operations for transcript storage
type TranscriptWriter interface {
	// Write persists a transcript and its utterances.
	Write(e Entry) error
}

// TranscriptRepository combines read and write operations
type TranscriptRepository interface {
	TranscriptReader
	TranscriptWriter
}
