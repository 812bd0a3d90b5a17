package validate

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// Policy is the configurable list of attribute names treated as
// sensitive data. Matching is case-insensitive and diacritic-insensitive
// so that Portuguese spellings ("endereço") match their folded forms.
// The list is a heuristic, not a contract: hits are warnings.
type Policy struct {
	Names []string `yaml:"sensitive_names"`

	folded map[string]struct{}
}

// DefaultPolicy returns the built-in Portuguese/English name list.
func DefaultPolicy() *Policy {
	return NewPolicy(
		"cpf", "cnpj", "rg",
		"senha", "password", "passwd",
		"email", "e_mail",
		"telefone", "phone", "celular",
		"ssn",
		"endereco", "address",
		"cartao", "card_number",
		"token", "secret",
	)
}

// NewPolicy builds a policy over the given names.
func NewPolicy(names ...string) *Policy {
	p := &Policy{Names: names}
	p.index()
	return p
}

// LoadPolicy parses a policy from YAML:
//
//	sensitive_names:
//	  - cpf
//	  - senha
func LoadPolicy(data []byte) (*Policy, error) {
	p := &Policy{}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, err
	}
	p.index()
	return p, nil
}

// Matches reports whether the attribute name is on the sensitive list.
func (p *Policy) Matches(name string) bool {
	if p == nil {
		return false
	}
	if p.folded == nil {
		p.index()
	}
	_, ok := p.folded[fold(name)]
	return ok
}

func (p *Policy) index() {
	p.folded = make(map[string]struct{}, len(p.Names))
	for _, n := range p.Names {
		p.folded[fold(n)] = struct{}{}
	}
}

// foldTransformer strips combining marks after NFD decomposition, so
// "endereço" folds to "endereco".
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// fold lowercases a name and strips diacritics and separator runes.
func fold(name string) string {
	out, _, err := transform.String(foldTransformer, name)
	if err != nil {
		out = name
	}
	out = strings.ToLower(out)
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', ' ':
			return '_'
		}
		return r
	}, out)
}
