package scene

// DefaultBackground is the canvas color used when none is configured.
const DefaultBackground = "#f0f0f0"

// Scene is the ordered set of objects on the canvas plus its background color.
// Objects are drawn in order, so later objects are on top.
type Scene struct {
	Background string
	objects    []Object
}

// New returns an empty scene.
func New(background string) *Scene {
	if background == "" {
		background = DefaultBackground
	}
	return &Scene{Background: background}
}

// Objects returns the objects in draw order. The slice is a copy; the objects are not.
func (s *Scene) Objects() []Object {
	return append([]Object(nil), s.objects...)
}

// Len returns the number of objects.
func (s *Scene) Len() int { return len(s.objects) }

// Add appends o on top of the scene. Adding a crop rectangle replaces any
// existing one so that at most one is present.
func (s *Scene) Add(o Object) {
	if o.Kind() == KindCropRect {
		if existing := s.CropRect(); existing != nil {
			s.Remove(existing)
		}
	}
	s.objects = append(s.objects, o)
}

// Index returns the position of o, or -1.
func (s *Scene) Index(o Object) int {
	for n, obj := range s.objects {
		if obj == o {
			return n
		}
	}
	return -1
}

// Remove deletes o and reports whether it was present.
func (s *Scene) Remove(o Object) bool {
	n := s.Index(o)
	if n < 0 {
		return false
	}
	s.objects = append(s.objects[:n], s.objects[n+1:]...)
	return true
}

// Replace puts repl at the position of old. If old is absent repl is appended.
func (s *Scene) Replace(old, repl Object) {
	if n := s.Index(old); n >= 0 {
		s.objects[n] = repl
		return
	}
	s.Add(repl)
}

// CropRect returns the crop overlay, or nil.
func (s *Scene) CropRect() *CropRect {
	for _, o := range s.objects {
		if c, ok := o.(*CropRect); ok {
			return c
		}
	}
	return nil
}

// TopImage returns the top-most image, or nil.
func (s *Scene) TopImage() *Image {
	for n := len(s.objects) - 1; n >= 0; n-- {
		if img, ok := s.objects[n].(*Image); ok {
			return img
		}
	}
	return nil
}

// Count returns the number of objects of kind k.
func (s *Scene) Count(k Kind) int {
	n := 0
	for _, o := range s.objects {
		if o.Kind() == k {
			n++
		}
	}
	return n
}

// Texts returns the text objects in draw order.
func (s *Scene) Texts() []*Text {
	var out []*Text
	for _, o := range s.objects {
		if t, ok := o.(*Text); ok {
			out = append(out, t)
		}
	}
	return out
}

