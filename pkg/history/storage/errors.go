package storage

import "fmt"

type errDuplicateID string

func (e errDuplicateID) Error() string {
	return fmt.Sprintf("record %q already exists", string(e))
}
