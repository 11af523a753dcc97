// Package profile defines the managed entity and the input rules applied
// before a draft reaches the state store.
package profile

// Profile is the single managed entity.
//
// ID is assigned by the remote service on the first successful save and never
// changes afterwards; a Profile with an empty ID is a draft that has never been
// persisted remotely.
type Profile struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   *int   `json:"age,omitempty"`
}

// IsDraft reports whether p has not been confirmed by the remote service yet.
func (p *Profile) IsDraft() bool {
	return p == nil || p.ID == ""
}

// Clone returns a deep copy of p. A nil receiver yields nil.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	if p.Age != nil {
		age := *p.Age
		c.Age = &age
	}
	return &c
}

// Equal reports whether p and o carry the same attributes.
func (p *Profile) Equal(o *Profile) bool {
	if p == nil || o == nil {
		return p == o
	}
	if p.ID != o.ID || p.Name != o.Name || p.Email != o.Email {
		return false
	}
	if p.Age == nil || o.Age == nil {
		return p.Age == o.Age
	}
	return *p.Age == *o.Age
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}
