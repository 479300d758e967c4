package dashboard

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-admin-dashboard/components/board"
	"github.com/goliatone/go-admin-dashboard/components/calendar"
	"github.com/goliatone/go-admin-dashboard/components/records"
	"github.com/goliatone/go-admin-dashboard/components/settings"
)

const (
	seedVersionV1 = "1"
	// SeedVersion exposes the current seed format version for tooling.
	SeedVersion = seedVersionV1
)

//go:embed seed.schema.json
var seedSchemaJSON []byte

var (
	seedSchemaOnce sync.Once
	seedSchema     *jsonschema.Schema
	seedSchemaErr  error
)

// SeedDocument is a YAML document describing initial store contents.
type SeedDocument struct {
	Version  string                       `json:"version" yaml:"version"`
	Records  []records.Record             `json:"records,omitempty" yaml:"records,omitempty"`
	Columns  []SeedColumn                 `json:"columns,omitempty" yaml:"columns,omitempty"`
	Events   []calendar.Event             `json:"events,omitempty" yaml:"events,omitempty"`
	Settings map[string]settings.Settings `json:"settings,omitempty" yaml:"settings,omitempty"`
	Source   string                       `json:"-" yaml:"-"`
}

// SeedColumn is a board column with its cards in order.
type SeedColumn struct {
	ID    string       `json:"id,omitempty" yaml:"id,omitempty"`
	Title string       `json:"title" yaml:"title"`
	Cards []board.Card `json:"cards,omitempty" yaml:"cards,omitempty"`
}

// Stores groups the stores a seed document fills.
type Stores struct {
	Records  *records.Store
	Board    *board.Store
	Calendar *calendar.Store
	Settings *settings.Store
}

// NewStores returns empty stores.
func NewStores() Stores {
	return Stores{
		Records:  records.NewStore(),
		Board:    board.NewStore(),
		Calendar: calendar.NewStore(),
		Settings: settings.NewStore(),
	}
}

// Options copies the stores into opts.
func (st Stores) Options(opts Options) Options {
	opts.Records = st.Records
	opts.Board = st.Board
	opts.Calendar = st.Calendar
	opts.Settings = st.Settings
	return opts
}

// Document captures the current store contents as a seed document.
func (st Stores) Document() *SeedDocument {
	doc := &SeedDocument{Version: seedVersionV1}
	if st.Records != nil {
		doc.Records = st.Records.Records()
	}
	if st.Board != nil {
		for _, col := range st.Board.Columns() {
			cards := make([]board.Card, len(col.Cards))
			for i, card := range col.Cards {
				card.Initials = ""
				cards[i] = card
			}
			doc.Columns = append(doc.Columns, SeedColumn{ID: col.ID, Title: col.Title, Cards: cards})
		}
	}
	if st.Calendar != nil {
		doc.Events = st.Calendar.Events()
	}
	if st.Settings != nil {
		if all := st.Settings.All(); len(all) > 0 {
			doc.Settings = all
		}
	}
	return doc
}

// DefaultSeedDocument returns the demo data as a seed document.
func DefaultSeedDocument() *SeedDocument {
	doc := &SeedDocument{
		Version: seedVersionV1,
		Records: records.DefaultRecords(),
		Events:  calendar.DefaultEvents(),
	}
	for _, col := range board.DefaultColumns() {
		doc.Columns = append(doc.Columns, SeedColumn{ID: col.ID, Title: col.Title, Cards: col.Cards})
	}
	return doc
}

// ReadSeed loads a seed document from disk.
func ReadSeed(path string) (*SeedDocument, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("dashboard: open seed %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeSeed(f)
	if err != nil {
		return nil, fmt.Errorf("dashboard: decode seed %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeSeed validates the document against the seed schema and decodes it.
// Unknown fields are rejected.
func DecodeSeed(r io.Reader) (*SeedDocument, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("dashboard: read seed: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("dashboard: seed is empty")
	}
	if err := ValidateSeed(data); err != nil {
		return nil, err
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	var doc SeedDocument
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("dashboard: parse seed: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// EncodeSeed writes doc as YAML.
func EncodeSeed(w io.Writer, doc *SeedDocument) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("dashboard: encode seed: %w", err)
	}
	return encoder.Close()
}

// ValidateSeed checks raw YAML against the embedded JSON schema.
func ValidateSeed(data []byte) error {
	schema, err := compiledSeedSchema()
	if err != nil {
		return err
	}
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("dashboard: parse seed: %w", err)
	}
	// round trip through JSON so the validator sees plain JSON types
	encoded, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("dashboard: normalize seed: %w", err)
	}
	var payload any
	if err := json.Unmarshal(encoded, &payload); err != nil {
		return fmt.Errorf("dashboard: normalize seed: %w", err)
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("dashboard: seed failed validation: %w", err)
	}
	return nil
}

func compiledSeedSchema() (*jsonschema.Schema, error) {
	seedSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		const name = "seed.schema.json"
		if err := compiler.AddResource(name, bytes.NewReader(seedSchemaJSON)); err != nil {
			seedSchemaErr = fmt.Errorf("dashboard: load seed schema: %w", err)
			return
		}
		seedSchema, seedSchemaErr = compiler.Compile(name)
		if seedSchemaErr != nil {
			seedSchemaErr = fmt.Errorf("dashboard: compile seed schema: %w", seedSchemaErr)
		}
	})
	return seedSchema, seedSchemaErr
}

// Validate checks what the schema cannot: the version and unique ids.
func (doc *SeedDocument) Validate() error {
	if doc.Version != seedVersionV1 {
		return fmt.Errorf("dashboard: unsupported seed version %q", doc.Version)
	}
	seenCols := make(map[string]struct{}, len(doc.Columns))
	seenCards := make(map[string]struct{})
	for idx, col := range doc.Columns {
		key := col.ID
		if key == "" {
			key = col.Title
		}
		if _, exists := seenCols[key]; exists {
			return fmt.Errorf("dashboard: seed column at index %d duplicates %s", idx, key)
		}
		seenCols[key] = struct{}{}
		for _, card := range col.Cards {
			if card.ID == "" {
				continue
			}
			if _, exists := seenCards[card.ID]; exists {
				return fmt.Errorf("dashboard: seed duplicates card %s", card.ID)
			}
			seenCards[card.ID] = struct{}{}
		}
	}
	return nil
}

func (doc *SeedDocument) applyDefaults() {
	if doc.Version == "" {
		doc.Version = seedVersionV1
	}
	for i := range doc.Records {
		if doc.Records[i].Role == "" {
			doc.Records[i].Role = records.RoleUser
		}
		if doc.Records[i].Status == "" {
			doc.Records[i].Status = records.StatusActive
		}
	}
}

// Apply loads the document into st. Every section is attempted; failures are
// joined.
func (doc *SeedDocument) Apply(st Stores) error {
	if doc == nil {
		return errors.New("dashboard: seed document is nil")
	}
	var errs []error
	if len(doc.Records) > 0 && st.Records != nil {
		if err := st.Records.Seed(doc.Records...); err != nil {
			errs = append(errs, fmt.Errorf("dashboard: seed records: %w", err))
		}
	}
	if st.Board != nil {
		for _, col := range doc.Columns {
			summary, err := st.Board.AddColumn(col.ID, col.Title)
			if err != nil {
				errs = append(errs, fmt.Errorf("dashboard: seed column %s: %w", col.Title, err))
				continue
			}
			for _, card := range col.Cards {
				if err := st.Board.SeedCard(summary.ID, card); err != nil {
					errs = append(errs, fmt.Errorf("dashboard: seed card %q: %w", card.Title, err))
				}
			}
		}
	}
	if len(doc.Events) > 0 && st.Calendar != nil {
		if err := st.Calendar.Seed(doc.Events...); err != nil {
			errs = append(errs, fmt.Errorf("dashboard: seed events: %w", err))
		}
	}
	if st.Settings != nil {
		for userID, s := range doc.Settings {
			if err := st.Settings.Put(userID, s); err != nil {
				errs = append(errs, fmt.Errorf("dashboard: seed settings for %s: %w", userID, err))
			}
		}
	}
	return errors.Join(errs...)
}

// Stores builds fresh stores filled from the document.
func (doc *SeedDocument) Stores() (Stores, error) {
	st := NewStores()
	if err := doc.Apply(st); err != nil {
		return Stores{}, err
	}
	return st, nil
}
