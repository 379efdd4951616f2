package domain

// EditMode is the profile editor state. Exactly one value is current, so
// two edits can never be open at once.
type EditMode interface {
	Name() string
	isEditMode()
}

type ModeNone struct{}

// ModeEditing commits through the session-id path.
type ModeEditing struct {
	Draft ProfileRecord
}

// ModeTokenEditing commits through the token path.
type ModeTokenEditing struct {
	Draft ProfileRecord
}

// ModePhotoEditing holds the chosen photo; Selection is nil until one passes validation.
type ModePhotoEditing struct {
	Selection *FileSelection
}

func (ModeNone) Name() string         { return "none" }
func (ModeEditing) Name() string      { return "editing" }
func (ModeTokenEditing) Name() string { return "token_editing" }
func (ModePhotoEditing) Name() string { return "photo_editing" }

func (ModeNone) isEditMode()         {}
func (ModeEditing) isEditMode()      {}
func (ModeTokenEditing) isEditMode() {}
func (ModePhotoEditing) isEditMode() {}
