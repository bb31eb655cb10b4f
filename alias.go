package tinydi

// aliasEntry lists the candidate keys for one parameter name.
// Exact candidates take precedence over the declared parameter type,
// appended ones are tried after it.
type aliasEntry struct {
	exact    []Key
	appended []Key
}

func (e *aliasEntry) candidates(exact bool) []Key {
	if exact {
		return e.exact
	}

	return e.appended
}

// aliases maps canonical parameter names to their candidates.
type aliases map[string]*aliasEntry

func (a aliases) add(name string, key Key) {
	name = Canonicalize(name)

	entry, ok := a[name]
	if !ok {
		entry = &aliasEntry{}
		a[name] = entry
	}

	entry.appended = append(entry.appended, key)
}

func (a aliases) set(name string, key Key) {
	a[Canonicalize(name)] = &aliasEntry{exact: []Key{key}}
}

func (a aliases) get(name string) (*aliasEntry, bool) {
	entry, ok := a[Canonicalize(name)]
	return entry, ok
}

func (a aliases) clone() aliases {
	result := make(aliases, len(a))

	for name, entry := range a {
		result[name] = &aliasEntry{
			exact:    append([]Key(nil), entry.exact...),
			appended: append([]Key(nil), entry.appended...),
		}
	}

	return result
}
