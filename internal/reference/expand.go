package reference

import "strings"

// Expand replaces every reference token in text with the value returned by
// fn. A `@word` without a kind separator, such as the CSS `@media` rule, is
// copied through untouched. `@@` escapes a reference: `@@string/title` is
// emitted as the literal `@string/title`.
func Expand(text string, fn func(Reference) (string, error)) (string, error) {
	if !strings.Contains(text, "@") {
		return text, nil
	}

	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); {
		if text[i] != '@' {
			b.WriteByte(text[i])
			i++
			continue
		}

		escaped := i+1 < len(text) && text[i+1] == '@'
		if escaped {
			i++
		}
		end := i + 1
		for end < len(text) && (isNameChar(text[end]) || text[end] == '/') {
			end++
		}
		token := text[i:end]
		if escaped || !strings.Contains(token, "/") {
			b.WriteString(token)
			i = end
			continue
		}

		ref, err := Parse(token)
		if err != nil {
			return "", err
		}
		value, err := fn(ref)
		if err != nil {
			return "", err
		}
		b.WriteString(value)
		i = end
	}
	return b.String(), nil
}

// Collect returns every reference token in text, in order of appearance.
func Collect(text string) ([]Reference, error) {
	var refs []Reference
	_, err := Expand(text, func(r Reference) (string, error) {
		refs = append(refs, r)
		return "", nil
	})
	if err != nil {
		return nil, err
	}
	return refs, nil
}
