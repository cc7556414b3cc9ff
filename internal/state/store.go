package state

import (
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
)

// DuplicateOffset is added to both axes when a layer is cloned so the clone
// never sits exactly on top of the original.
const DuplicateOffset = 40

// Store owns the document: canvas configuration, the two ordered layer
// collections and the current selection. Insertion order is z-order within a
// collection; the image group always composites beneath the text group.
//
// The mutex is here because fyne delivers some callbacks off the main
// goroutine and export/upload run in their own goroutines. Every mutation is
// a whole-entry replacement inside one critical section, so invariants hold
// at every observable boundary.
type Store struct {
	mu       sync.RWMutex
	config   CanvasConfig
	texts    []TextLayer
	images   []ImageLayer
	sel      *LayerRef
	textSeq  int
	imageSeq int

	// OnChange is invoked after every committed mutation, outside the lock.
	// Set by the UI to trigger a re-render.
	OnChange func()
}

func NewStore() *Store {
	return &Store{config: DefaultConfig()}
}

func (s *Store) notify() {
	if s.OnChange != nil {
		s.OnChange()
	}
}

// Scene returns a deep snapshot of the document. Slices are copied so the
// caller never aliases store memory; decoded image pixels are shared because
// they are immutable after decode.
func (s *Store) Scene() Scene {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sc := Scene{
		Config: s.config,
		Texts:  make([]TextLayer, len(s.texts)),
		Images: make([]ImageLayer, len(s.images)),
	}
	copy(sc.Texts, s.texts)
	copy(sc.Images, s.images)
	if s.sel != nil {
		ref := *s.sel
		sc.Selection = &ref
	}
	return sc
}

func (s *Store) Config() CanvasConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// UpdateConfig applies a partial configuration change. The mutator sees the
// current config and edits it in place.
func (s *Store) UpdateConfig(mutate func(*CanvasConfig)) {
	s.mu.Lock()
	mutate(&s.config)
	s.mu.Unlock()
	s.notify()
}

// AddText appends a text layer and selects it. A zero ID is assigned; a zero
// label is numbered.
func (s *Store) AddText(l TextLayer) string {
	s.mu.Lock()
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.Label == "" {
		s.textSeq++
		l.Label = fmt.Sprintf("Text %d", s.textSeq)
	}
	s.texts = append(s.texts, l)
	s.sel = &LayerRef{Kind: KindText, ID: l.ID}
	s.mu.Unlock()
	s.notify()
	return l.ID
}

// AddImage appends an image layer and selects it.
func (s *Store) AddImage(l ImageLayer) string {
	s.mu.Lock()
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.Label == "" {
		s.imageSeq++
		l.Label = fmt.Sprintf("Image %d", s.imageSeq)
	}
	s.images = append(s.images, l)
	s.sel = &LayerRef{Kind: KindImage, ID: l.ID}
	s.mu.Unlock()
	s.notify()
	return l.ID
}

// UpdateText replaces the layer with the given id after running the mutator
// on a copy. Unknown ids are a no-op: refs come from live enumeration, so a
// miss only means the layer was deleted in the meantime. Reports whether the
// update was applied.
func (s *Store) UpdateText(id string, mutate func(*TextLayer)) bool {
	s.mu.Lock()
	applied := false
	for i := range s.texts {
		if s.texts[i].ID == id {
			l := s.texts[i]
			mutate(&l)
			l.ID = id // id is immutable
			s.texts[i] = l
			applied = true
			break
		}
	}
	s.mu.Unlock()
	if applied {
		s.notify()
	}
	return applied
}

// UpdateImage is the image-collection counterpart of UpdateText.
func (s *Store) UpdateImage(id string, mutate func(*ImageLayer)) bool {
	s.mu.Lock()
	applied := false
	for i := range s.images {
		if s.images[i].ID == id {
			l := s.images[i]
			mutate(&l)
			l.ID = id
			s.images[i] = l
			applied = true
			break
		}
	}
	s.mu.Unlock()
	if applied {
		s.notify()
	}
	return applied
}

// Delete removes the referenced layer. If it was selected the selection is
// cleared in the same critical section, so a snapshot can never hold a
// dangling ref.
func (s *Store) Delete(ref LayerRef) {
	s.mu.Lock()
	removed := false
	switch ref.Kind {
	case KindText:
		for i := range s.texts {
			if s.texts[i].ID == ref.ID {
				s.texts = append(s.texts[:i], s.texts[i+1:]...)
				removed = true
				break
			}
		}
	case KindImage:
		for i := range s.images {
			if s.images[i].ID == ref.ID {
				s.images = append(s.images[:i], s.images[i+1:]...)
				removed = true
				break
			}
		}
	}
	if removed && s.sel != nil && *s.sel == ref {
		s.sel = nil
	}
	s.mu.Unlock()
	if removed {
		s.notify()
	}
}

// Duplicate clones the referenced layer: fresh id, label suffixed with
// " Copy", position offset by +40 on both axes, every other field equal. The
// clone is appended to its collection and becomes the selection. Returns the
// new id, or "" if the ref is stale.
func (s *Store) Duplicate(ref LayerRef) string {
	s.mu.Lock()
	newID := ""
	switch ref.Kind {
	case KindText:
		for i := range s.texts {
			if s.texts[i].ID == ref.ID {
				clone := s.texts[i]
				clone.ID = uuid.NewString()
				clone.Label = clone.Label + " Copy"
				clone.X += DuplicateOffset
				clone.Y += DuplicateOffset
				s.texts = append(s.texts, clone)
				newID = clone.ID
				break
			}
		}
	case KindImage:
		for i := range s.images {
			if s.images[i].ID == ref.ID {
				clone := s.images[i]
				clone.ID = uuid.NewString()
				clone.Label = clone.Label + " Copy"
				clone.X += DuplicateOffset
				clone.Y += DuplicateOffset
				s.images = append(s.images, clone)
				newID = clone.ID
				break
			}
		}
	}
	if newID != "" {
		s.sel = &LayerRef{Kind: ref.Kind, ID: newID}
	}
	s.mu.Unlock()
	if newID != "" {
		s.notify()
	}
	return newID
}

// Select points the selection at the referenced layer. Selecting a stale ref
// is ignored.
func (s *Store) Select(ref LayerRef) {
	s.mu.Lock()
	changed := false
	if s.exists(ref) && (s.sel == nil || *s.sel != ref) {
		r := ref
		s.sel = &r
		changed = true
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// ClearSelection returns the selection machine to Idle.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	changed := s.sel != nil
	s.sel = nil
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// Selection returns the current selection, or nil when Idle.
func (s *Store) Selection() *LayerRef {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.sel == nil {
		return nil
	}
	ref := *s.sel
	return &ref
}

// DeleteSelected removes the selected layer and goes Idle. No-op when Idle.
func (s *Store) DeleteSelected() {
	if ref := s.Selection(); ref != nil {
		s.Delete(*ref)
	}
}

// DuplicateSelected clones the selected layer; the selection follows the
// clone. No-op when Idle.
func (s *Store) DuplicateSelected() string {
	ref := s.Selection()
	if ref == nil {
		return ""
	}
	id := s.Duplicate(*ref)
	if id == "" {
		log.Printf("duplicate: selection %s/%s vanished", ref.Kind, ref.ID)
	}
	return id
}

// exists must be called with the lock held.
func (s *Store) exists(ref LayerRef) bool {
	switch ref.Kind {
	case KindText:
		for i := range s.texts {
			if s.texts[i].ID == ref.ID {
				return true
			}
		}
	case KindImage:
		for i := range s.images {
			if s.images[i].ID == ref.ID {
				return true
			}
		}
	}
	return false
}
