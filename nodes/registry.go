package nodes

import "fmt"

// Registry hands out table references for one statement-construction
// session and keeps their aliases unique. Two references may only share
// an alias if they are the same reference, which is what forces a
// self-join to name both sides explicitly.
//
// Reference identity follows SameRef throughout: two references are the
// same when they are the same pointer or carry the same name and alias.
//
// A Registry is not safe for concurrent use; create one per statement.
type Registry struct {
	parent  *Registry
	byAlias map[string]*Table
	order   []*Table
}

// NewRegistry creates an empty top-level registry.
func NewRegistry() *Registry {
	return &Registry{byAlias: make(map[string]*Table)}
}

// Scope returns a child registry for a nested query. Aliases registered in
// the child only collide with other aliases in the child; Resolve and
// Lookup fall back to the enclosing registries.
func (r *Registry) Scope() *Registry {
	c := NewRegistry()
	c.parent = r
	return c
}

// Register creates a reference to the named table. The alias defaults to
// name + "Ref"; pass one to override it.
func (r *Registry) Register(name string, alias ...string) (*Table, error) {
	a := ""
	if len(alias) > 0 {
		a = alias[0]
	}
	ref := NewTableAs(name, a)
	if existing, ok := r.byAlias[ref.Alias]; ok {
		return nil, collision(existing, ref)
	}
	r.add(ref)
	return ref, nil
}

// Adopt registers an existing reference. Adopting the same reference twice
// is a no-op; adopting a different reference under a taken alias fails.
func (r *Registry) Adopt(ref *Table) error {
	if existing, ok := r.byAlias[ref.Alias]; ok {
		if SameRef(existing, ref) {
			return nil
		}
		return collision(existing, ref)
	}
	r.add(ref)
	return nil
}

// Resolve returns the registered entry for ref, searching enclosing scopes.
func (r *Registry) Resolve(ref *Table) (*Table, error) {
	for s := r; s != nil; s = s.parent {
		if existing, ok := s.byAlias[ref.Alias]; ok && SameRef(existing, ref) {
			return existing, nil
		}
	}
	return nil, fmt.Errorf("%w: %s %s is not registered", ErrUnresolvedColumn, ref.Name, ref.Alias)
}

// Lookup finds a reference by alias, searching enclosing scopes.
func (r *Registry) Lookup(alias string) (*Table, bool) {
	for s := r; s != nil; s = s.parent {
		if t, ok := s.byAlias[alias]; ok {
			return t, true
		}
	}
	return nil, false
}

// Tables returns the references registered in this scope in registration order.
func (r *Registry) Tables() []*Table {
	out := make([]*Table, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Registry) add(ref *Table) {
	r.byAlias[ref.Alias] = ref
	r.order = append(r.order, ref)
}

func collision(existing, incoming *Table) error {
	return fmt.Errorf("%w: %q is already used by %s, cannot reuse it for %s",
		ErrAliasCollision, incoming.Alias, existing.Name, incoming.Name)
}
