package repository

// Permission controls whether a note is visible without logging in.
type Permission string

const (
	PermissionPublic  Permission = "public"
	PermissionPrivate Permission = "private"
)

// Valid reports whether p is one of the two known permission values.
func (p Permission) Valid() bool {
	return p == PermissionPublic || p == PermissionPrivate
}

// Note is a titled, dated, permission-tagged unit of markdown text. Folder is
// nil for unclassified notes; it references a folder by name, not by identity,
// so deleting a folder only clears the reference.
type Note struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Date       string     `json:"date"`
	Permission Permission `json:"permission"`
	Folder     *string    `json:"folder"`
}

// FolderName returns the grouping key for the note, Unclassified when the
// note has no folder.
func (n *Note) FolderName() string {
	if n.Folder == nil || *n.Folder == "" {
		return Unclassified
	}
	return *n.Folder
}

// InFolder reports whether the note belongs to the given folder reference,
// treating nil and empty as the unclassified group.
func (n *Note) InFolder(folder *string) bool {
	if folder == nil || *folder == "" {
		return n.Folder == nil || *n.Folder == ""
	}
	return n.Folder != nil && *n.Folder == *folder
}
