package lignee

import (
	"fmt"
	"io"

	"lignee/internal/gedcom"
	"lignee/internal/model"
)

// LigneeService coordinates the repository, the GEDCOM codec, the archive
// vault and the encryptor for the operations the CLI exposes.
type LigneeService struct {
	database  Database
	vault     Vault
	encryptor Encryptor
	encoder   *gedcom.Encoder
	logger    Logger
	clock     Clock
}

// NewLigneeService creates a LigneeService. encryptor may be nil, in which case
// archives are stored in clear.
func NewLigneeService(database Database, vault Vault, encryptor Encryptor, encoder *gedcom.Encoder, logger Logger, clock Clock) *LigneeService {
	if encoder == nil {
		encoder = gedcom.NewEncoder("", "")
	}
	return &LigneeService{
		database:  database,
		vault:     vault,
		encryptor: encryptor,
		encoder:   encoder,
		logger:    logger,
		clock:     clock,
	}
}

// ImportResult describes a completed import.
type ImportResult struct {
	Decode gedcom.DecodeStats
	Counts model.GraphCounts
}

// ExportGEDCOM writes the current graph to w as a GEDCOM document.
func (s *LigneeService) ExportGEDCOM(w io.Writer) (model.GraphCounts, error) {
	g, err := s.snapshot()
	if err != nil {
		return model.GraphCounts{}, err
	}

	if err := s.encoder.Encode(w, g); err != nil {
		return model.GraphCounts{}, fmt.Errorf("encoding gedcom: %w", err)
	}

	counts := model.GraphCounts{
		Persons:   int64(len(g.Persons)),
		Marriages: int64(len(g.Marriages)),
		Relations: int64(len(g.Relations)),
	}
	s.logger.Info("gedcom exported", "persons", counts.Persons, "marriages", counts.Marriages)
	return counts, nil
}

// snapshot reads everything the encoder needs.
func (s *LigneeService) snapshot() (*model.Graph, error) {
	persons, err := s.database.ListPersons()
	if err != nil {
		return nil, fmt.Errorf("listing persons: %w", err)
	}
	marriages, err := s.database.ListMarriages()
	if err != nil {
		return nil, fmt.Errorf("listing marriages: %w", err)
	}
	relations, err := s.database.ListParentRelations()
	if err != nil {
		return nil, fmt.Errorf("listing parent relations: %w", err)
	}
	return &model.Graph{Persons: persons, Marriages: marriages, Relations: relations}, nil
}

// ImportGEDCOM decodes r and replaces the whole graph with its content.
// Either the graph is fully replaced or, on error, left untouched.
func (s *LigneeService) ImportGEDCOM(r io.Reader) (*ImportResult, error) {
	g, stats, err := gedcom.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding gedcom: %w", err)
	}

	if stats.Ignored > 0 {
		s.logger.Debug("gedcom lines ignored", "count", stats.Ignored)
	}
	if stats.DroppedFamilies > 0 {
		s.logger.Warn("families without a known spouse dropped", "count", stats.DroppedFamilies)
	}
	if stats.DroppedRelations > 0 {
		s.logger.Warn("self-referencing child links dropped", "count", stats.DroppedRelations)
	}
	if stats.Unterminated {
		s.logger.Warn("document ends inside a record; last record dropped")
	}

	counts, err := s.database.ReplaceAll(g)
	if err != nil {
		return nil, fmt.Errorf("replacing family graph: %w", err)
	}

	s.logger.Info("gedcom imported",
		"persons", counts.Persons,
		"marriages", counts.Marriages,
		"relations", counts.Relations,
	)
	return &ImportResult{Decode: stats, Counts: counts}, nil
}

// Stats returns the size of the stored graph.
func (s *LigneeService) Stats() (model.GraphCounts, error) {
	counts, err := s.database.Counts()
	if err != nil {
		return model.GraphCounts{}, fmt.Errorf("counting records: %w", err)
	}
	return counts, nil
}
