package repository

// Batch operations apply one change to many notes and write the collection
// back once, rather than persisting per note.

// DeleteNotes removes every listed note. Unknown ids are skipped; the count
// of notes actually removed is returned.
func (r *Repo) DeleteNotes(ids []int64) (int, error) {
	drop := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	kept := r.notes[:0]
	removed := 0
	for _, note := range r.notes {
		if _, ok := drop[note.ID]; ok {
			removed++
			continue
		}
		kept = append(kept, note)
	}
	r.notes = kept

	if removed == 0 {
		return 0, nil
	}
	return removed, r.persist()
}

// MoveNotes reassigns every listed note to the target folder. A non-empty
// target must name an existing folder. Notes already in the target do not
// count as moved.
func (r *Repo) MoveNotes(ids []int64, target *string) (int, error) {
	target = normalizeFolder(target)
	if target != nil && !r.HasFolder(*target) {
		return 0, &NotFoundError{Kind: "folder", Ref: *target}
	}

	moved := 0
	for _, id := range ids {
		note := r.find(id)
		if note == nil || note.InFolder(target) {
			continue
		}
		note.Folder = target
		moved++
	}

	if moved == 0 {
		return 0, nil
	}
	return moved, r.persist()
}

// SetNotesPermission stamps every listed note with the permission. Notes that
// already carry it do not count as changed.
func (r *Repo) SetNotesPermission(ids []int64, permission Permission) (int, error) {
	if !permission.Valid() {
		return 0, &ValidationError{Field: "permission"}
	}

	changed := 0
	for _, id := range ids {
		note := r.find(id)
		if note == nil || note.Permission == permission {
			continue
		}
		note.Permission = permission
		changed++
	}

	if changed == 0 {
		return 0, nil
	}
	return changed, r.persist()
}
