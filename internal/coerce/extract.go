package coerce

// Extractor pulls one logical value out of a node. The bool reports whether it found one.
type Extractor[T any] func(node any) (T, bool)

// First runs extractors in order and returns the first hit.
func First[T any](node any, extractors ...Extractor[T]) (T, bool) {
	for _, ex := range extractors {
		if ex == nil {
			continue
		}
		if v, ok := ex(node); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// TextAt builds an extractor over a single path that must resolve to non-empty text.
func TextAt(path string) Extractor[string] {
	return func(node any) (string, bool) {
		s := Text(Path(node, path))
		return s, s != ""
	}
}

// NumberAt builds an extractor over a single path that must resolve to a finite number.
func NumberAt(path string) Extractor[float64] {
	return func(node any) (float64, bool) {
		return Number(Path(node, path))
	}
}

// NumberPaths expands each base with each field name, in base-major order, into NumberAt
// extractors. An empty base means the node itself.
func NumberPaths(bases []string, fields []string) []Extractor[float64] {
	out := make([]Extractor[float64], 0, len(bases)*len(fields))
	for _, base := range bases {
		for _, field := range fields {
			p := field
			if base != "" {
				p = base + "." + field
			}
			out = append(out, NumberAt(p))
		}
	}
	return out
}
