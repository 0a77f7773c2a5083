package deck

import "errors"

var (
	// ErrEmptyField is returned when a card's term or definition is blank after trimming
	ErrEmptyField = errors.New("term and definition must not be empty")

	// ErrDuplicateTerm is returned when a folder already contains the term
	ErrDuplicateTerm = errors.New("term already exists in this folder")

	// ErrEmptyName is returned when a folder name is blank after trimming
	ErrEmptyName = errors.New("folder name must not be empty")

	// ErrProtectedFolder is returned when deleting the default folder
	ErrProtectedFolder = errors.New("the default folder cannot be deleted")

	// ErrFolderNotFound is returned when a card references a missing folder
	ErrFolderNotFound = errors.New("folder does not exist")
)
