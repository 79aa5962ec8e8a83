package importer

import (
	"gorm.io/gorm"
)

// checkpoint is a named savepoint inside the running batch transaction. It
// confines a slice of work: rolling back undoes only the statements issued
// since the checkpoint opened, leaving earlier uncommitted work intact. The
// raw SAVEPOINT statements behave identically on postgres and sqlite.
type checkpoint struct {
	tx   *gorm.DB
	name string
}

// newCheckpoint opens a savepoint with the given name. Callers derive names
// from the record position so they can never collide, even if records were
// ever processed out of strict sequence.
func newCheckpoint(tx *gorm.DB, name string) (*checkpoint, error) {
	if err := tx.Exec("SAVEPOINT " + name).Error; err != nil {
		return nil, err
	}
	return &checkpoint{tx: tx, name: name}, nil
}

// release folds the checkpointed statements into the enclosing transaction.
func (c *checkpoint) release() error {
	return c.tx.Exec("RELEASE SAVEPOINT " + c.name).Error
}

// rollback undoes every statement issued since the checkpoint opened. The
// savepoint still exists afterwards and must be released separately if the
// transaction keeps running.
func (c *checkpoint) rollback() error {
	return c.tx.Exec("ROLLBACK TO SAVEPOINT " + c.name).Error
}
