package importer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	apperrors "github.com/pandeptwidyaop/uniport/pkg/errors"
	"github.com/pandeptwidyaop/uniport/pkg/logger"

	"github.com/pandeptwidyaop/uniport/internal/db/models"
)

// DefaultBatchSize is the number of university upserts per committed batch.
const DefaultBatchSize = 500

// Stats accumulates the counters reported during and after a run.
type Stats struct {
	Universities   int // successful university upserts
	DomainAttempts int // domain inserts attempted, including already-claimed no-ops
	Skipped        int // records dropped by validation or a failed upsert
}

// Importer drives a single synchronous import run: records are processed
// strictly in input order over one shared connection, each record confined
// by its own savepoint inside the current batch transaction.
type Importer struct {
	db        *gorm.DB
	batchSize int
	log       *zerolog.Logger
}

// Option configures an Importer.
type Option func(*Importer)

// WithBatchSize overrides the commit batch size.
func WithBatchSize(n int) Option {
	return func(imp *Importer) {
		if n > 0 {
			imp.batchSize = n
		}
	}
}

// WithLogger overrides the logger used for progress and warnings.
func WithLogger(log *zerolog.Logger) Option {
	return func(imp *Importer) {
		imp.log = log
	}
}

// New creates an Importer for the given database handle.
func New(database *gorm.DB, opts ...Option) *Importer {
	imp := &Importer{
		db:        database,
		batchSize: DefaultBatchSize,
		log:       logger.Get(),
	}
	for _, opt := range opts {
		opt(imp)
	}
	return imp
}

// Run imports the records in input order. A record that fails validation or
// its university upsert is rolled back to its savepoint, dead-lettered, and
// counted as skipped; the run continues. The error return is reserved for
// transaction management failures that invalidate the whole run.
func (imp *Importer) Run(records []Record) (Stats, error) {
	var stats Stats
	total := len(records)

	tx := imp.db.Begin()
	if tx.Error != nil {
		return stats, apperrors.Wrap(tx.Error, "failed to begin transaction")
	}

	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	for idx, rec := range records {
		position := idx + 1

		cp, err := newCheckpoint(tx, fmt.Sprintf("sp_entry_%d", position))
		if err != nil {
			return stats, apperrors.Wrap(err, "failed to create savepoint")
		}

		err = imp.importRecord(tx, rec, &stats)
		switch {
		case err == nil:
			if err := cp.release(); err != nil {
				return stats, apperrors.Wrap(err, "failed to release savepoint")
			}

		case errors.Is(err, apperrors.ErrEmptyName):
			// nothing was written, the savepoint closes as a no-op
			stats.Skipped++
			if err := cp.release(); err != nil {
				return stats, apperrors.Wrap(err, "failed to release savepoint")
			}
			imp.recordFailure(tx, rec, position, err)
			imp.log.Debug().
				Int("entry", position).
				Int("total", total).
				Msg("Skipping record without a name")

		default:
			if rbErr := cp.rollback(); rbErr != nil {
				return stats, apperrors.Wrap(rbErr, "failed to roll back savepoint")
			}
			stats.Skipped++
			imp.recordFailure(tx, rec, position, err)

			evt := imp.log.Error().
				Int("entry", position).
				Int("total", total).
				Err(err)
			if len(rec.Raw) > 0 {
				evt = evt.RawJSON("record", rec.Raw)
			}
			evt.Msg("Skipping record due to error")
		}

		// commit in chunks to avoid huge transactions
		if stats.Universities > 0 && stats.Universities%imp.batchSize == 0 {
			if err := tx.Commit().Error; err != nil {
				committed = true // nothing left to roll back
				return stats, apperrors.Wrap(err, "failed to commit batch")
			}
			imp.log.Info().
				Int("universities", stats.Universities).
				Int("domains", stats.DomainAttempts).
				Msg("Progress")

			tx = imp.db.Begin()
			if tx.Error != nil {
				committed = true
				return stats, apperrors.Wrap(tx.Error, "failed to begin transaction")
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		committed = true
		return stats, apperrors.Wrap(err, "failed to commit final batch")
	}
	committed = true

	return stats, nil
}

// importRecord runs the per-record state machine: validate the name, extract
// the optional fields, upsert the university, then claim its domains. Domain
// failures are confined to the single domain; a returned error means the
// record must be rolled back.
func (imp *Importer) importRecord(tx *gorm.DB, rec Record, stats *Stats) error {
	name := strings.TrimSpace(rec.Name.Value)
	if name == "" {
		return apperrors.ErrEmptyName
	}

	country := optionalTrimmed(rec.Country)
	alphaTwoCode := optionalTrimmed(rec.AlphaTwoCode)

	var website *string
	if len(rec.WebPages) > 0 {
		website = NormalizeWebsite(&rec.WebPages[0])
	}

	universityID, err := UpsertUniversity(tx, name, country, alphaTwoCode, website)
	if err != nil {
		return err
	}
	stats.Universities++

	// the first listed domain is the record's primary
	for i, raw := range rec.Domains {
		domain := NormalizeDomain(raw)
		if domain == "" {
			continue
		}

		// a failed statement poisons the enclosing transaction on postgres,
		// so each domain gets its own savepoint: one bad domain must not
		// sink the record or its remaining domains
		cp, err := newCheckpoint(tx, fmt.Sprintf("sp_domain_%d", i))
		if err != nil {
			return err
		}

		_, insErr := InsertDomain(tx, domain, universityID, i == 0)
		if insErr != nil {
			imp.log.Warn().
				Str("domain", domain).
				Err(insErr).
				Msg("Failed to insert domain")
			if err := cp.rollback(); err != nil {
				return err
			}
		}
		if err := cp.release(); err != nil {
			return err
		}
		if insErr == nil {
			stats.DomainAttempts++
		}
	}

	return nil
}

// recordFailure writes a dead-letter row so skipped records survive the run
// without digging through logs. Best effort: a failure here is logged, never
// escalated.
func (imp *Importer) recordFailure(tx *gorm.DB, rec Record, position int, cause error) {
	failure := models.ImportFailure{
		Position: position,
		Reason:   cause.Error(),
	}
	if len(rec.Raw) > 0 {
		failure.Payload = datatypes.JSON(rec.Raw)
	}

	if err := tx.Create(&failure).Error; err != nil {
		imp.log.Warn().
			Int("entry", position).
			Err(err).
			Msg("Failed to record import failure")
	}
}

// optionalTrimmed returns the trimmed value of an optional string field, or
// nil when the field was absent or not a string. An empty trimmed value is
// kept as an empty string, which is distinct from null in the dedupe key.
func optionalTrimmed(s OptionalString) *string {
	if !s.Set {
		return nil
	}
	v := strings.TrimSpace(s.Value)
	return &v
}
