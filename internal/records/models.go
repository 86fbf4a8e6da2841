package records

import (
	"fmt"
	"time"
)

// OwnerRef identifies the entity and field that hold the source video. Kind
// is an application-defined tag (e.g. "media_library.video"); ID is the
// entity's primary key rendered as a string so any key type fits.
type OwnerRef struct {
	Kind  string
	ID    string
	Field string
}

func (o OwnerRef) String() string {
	return fmt.Sprintf("%s/%s.%s", o.Kind, o.ID, o.Field)
}

// Record is the persisted result of encoding one source video into one
// rendition. OutputFile is empty until the encode succeeds; once set, the
// record is complete and Progress is 100.
type Record struct {
	ID         int64
	Owner      OwnerRef
	Format     string
	Progress   int
	OutputFile string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Complete reports whether the record carries a committed output file.
func (r *Record) Complete() bool {
	return r != nil && r.OutputFile != ""
}
