package registry

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrMalformedCommitment = errors.New("malformed commitment")
	ErrUnknownKey          = errors.New("unknown commitment key")
	ErrMissingKey          = errors.New("missing commitment key")
)

// Kind selects the commitment record schema.
type Kind uint8

const (
	KindPeer Kind = iota + 1
	KindValidator
)

func (k Kind) String() string {
	switch k {
	case KindPeer:
		return "peer"
	case KindValidator:
		return "validator"
	default:
		return "unknown"
	}
}

type fieldType uint8

const (
	intField fieldType = iota
	stringField
)

type field struct {
	key      string
	typ      fieldType
	required bool
}

// schemas fix the key order used when encoding.
var schemas = map[Kind][]field{
	KindPeer: {
		{key: "sb", typ: intField, required: true},
		{key: "lb", typ: intField, required: true},
		{key: "bl", typ: intField},
		{key: "n", typ: intField, required: true},
		{key: "mt", typ: intField, required: true},
		{key: "cv", typ: stringField, required: true},
	},
	KindValidator: {
		{key: "b", typ: intField, required: true},
		{key: "v", typ: intField},
		{key: "di", typ: stringField, required: true},
		{key: "cv", typ: stringField},
	},
}

// PeerCommitment is what a miner publishes about the data it serves.
type PeerCommitment struct {
	StartBlock   uint64
	LastBlock    uint64
	BalanceBlock *uint64
	Network      uint64
	ModelType    uint64
	CodeVersion  string
}

// ValidatorCommitment is what a validator publishes about itself.
type ValidatorCommitment struct {
	Block       uint64
	Version     *uint64
	DockerImage string
	CodeVersion *string
}

// Commitment is a decoded commitment string. Exactly one of Peer and
// Validator is set, matching Kind.
type Commitment struct {
	Kind      Kind
	Peer      *PeerCommitment
	Validator *ValidatorCommitment
}

type entry struct {
	key    string
	value  string
	quoted bool
}

// ParseCommitment decodes a comma separated key:value string. Integers are
// bare, strings are single-quoted. The record kind is inferred from the
// presence of "sb" (peer) or "b" (validator). An unquoted None marks an
// optional field as absent.
func ParseCommitment(s string) (Commitment, error) {
	entries, err := tokenize(s)
	if err != nil {
		return Commitment{}, err
	}

	kind, err := detectKind(entries)
	if err != nil {
		return Commitment{}, err
	}
	schema := schemas[kind]

	ints := make(map[string]uint64)
	strs := make(map[string]string)
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.key]; dup {
			return Commitment{}, fmt.Errorf("%w: duplicate key %q", ErrMalformedCommitment, e.key)
		}
		seen[e.key] = struct{}{}

		f, ok := lookupField(schema, e.key)
		if !ok {
			return Commitment{}, fmt.Errorf("%w: %q in %s commitment", ErrUnknownKey, e.key, kind)
		}
		if !e.quoted && e.value == "None" {
			if f.required {
				return Commitment{}, fmt.Errorf("%w: %q is None", ErrMissingKey, e.key)
			}
			continue
		}
		switch f.typ {
		case intField:
			if e.quoted {
				return Commitment{}, fmt.Errorf("%w: %q must be an integer", ErrMalformedCommitment, e.key)
			}
			v, err := strconv.ParseUint(e.value, 10, 64)
			if err != nil {
				return Commitment{}, fmt.Errorf("%w: %q: %w", ErrMalformedCommitment, e.key, err)
			}
			ints[e.key] = v
		case stringField:
			if !e.quoted {
				return Commitment{}, fmt.Errorf("%w: %q must be quoted", ErrMalformedCommitment, e.key)
			}
			strs[e.key] = e.value
		}
	}

	for _, f := range schema {
		if !f.required {
			continue
		}
		_, isInt := ints[f.key]
		_, isStr := strs[f.key]
		if !isInt && !isStr {
			return Commitment{}, fmt.Errorf("%w: %q in %s commitment", ErrMissingKey, f.key, kind)
		}
	}

	switch kind {
	case KindPeer:
		p := &PeerCommitment{
			StartBlock:  ints["sb"],
			LastBlock:   ints["lb"],
			Network:     ints["n"],
			ModelType:   ints["mt"],
			CodeVersion: strs["cv"],
		}
		if v, ok := ints["bl"]; ok {
			p.BalanceBlock = &v
		}
		return Commitment{Kind: KindPeer, Peer: p}, nil
	default:
		v := &ValidatorCommitment{
			Block:       ints["b"],
			DockerImage: strs["di"],
		}
		if version, ok := ints["v"]; ok {
			v.Version = &version
		}
		if cv, ok := strs["cv"]; ok {
			v.CodeVersion = &cv
		}
		return Commitment{Kind: KindValidator, Validator: v}, nil
	}
}

// Encode renders the commitment in schema key order, omitting absent optional fields.
func (c Commitment) Encode() (string, error) {
	ints := make(map[string]uint64)
	strs := make(map[string]string)
	switch {
	case c.Kind == KindPeer && c.Peer != nil:
		ints["sb"], ints["lb"] = c.Peer.StartBlock, c.Peer.LastBlock
		ints["n"], ints["mt"] = c.Peer.Network, c.Peer.ModelType
		strs["cv"] = c.Peer.CodeVersion
		if c.Peer.BalanceBlock != nil {
			ints["bl"] = *c.Peer.BalanceBlock
		}
	case c.Kind == KindValidator && c.Validator != nil:
		ints["b"] = c.Validator.Block
		strs["di"] = c.Validator.DockerImage
		if c.Validator.Version != nil {
			ints["v"] = *c.Validator.Version
		}
		if c.Validator.CodeVersion != nil {
			strs["cv"] = *c.Validator.CodeVersion
		}
	default:
		return "", fmt.Errorf("%w: %s record without payload", ErrMalformedCommitment, c.Kind)
	}

	parts := make([]string, 0, len(schemas[c.Kind]))
	for _, f := range schemas[c.Kind] {
		if f.typ == intField {
			if v, ok := ints[f.key]; ok {
				parts = append(parts, f.key+":"+strconv.FormatUint(v, 10))
			}
			continue
		}
		v, ok := strs[f.key]
		if !ok {
			continue
		}
		if strings.ContainsRune(v, '\'') {
			return "", fmt.Errorf("%w: %q contains a quote", ErrMalformedCommitment, f.key)
		}
		parts = append(parts, f.key+":'"+v+"'")
	}
	return strings.Join(parts, ","), nil
}

func detectKind(entries []entry) (Kind, error) {
	var peer, validator bool
	for _, e := range entries {
		switch e.key {
		case "sb":
			peer = true
		case "b":
			validator = true
		}
	}
	switch {
	case peer && validator:
		return 0, fmt.Errorf("%w: both peer and validator keys", ErrMalformedCommitment)
	case peer:
		return KindPeer, nil
	case validator:
		return KindValidator, nil
	default:
		return 0, fmt.Errorf("%w: neither %q nor %q present", ErrMissingKey, "sb", "b")
	}
}

func lookupField(schema []field, key string) (field, bool) {
	for _, f := range schema {
		if f.key == key {
			return f, true
		}
	}
	return field{}, false
}

func tokenize(s string) ([]entry, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrMalformedCommitment)
	}
	var entries []entry
	pos := 0
	for {
		colon := strings.IndexByte(s[pos:], ':')
		if colon <= 0 {
			return nil, fmt.Errorf("%w: expected key at offset %d", ErrMalformedCommitment, pos)
		}
		e := entry{key: s[pos : pos+colon]}
		pos += colon + 1

		if pos < len(s) && s[pos] == '\'' {
			end := strings.IndexByte(s[pos+1:], '\'')
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated string for %q", ErrMalformedCommitment, e.key)
			}
			e.value, e.quoted = s[pos+1:pos+1+end], true
			pos += end + 2
		} else {
			end := strings.IndexByte(s[pos:], ',')
			if end < 0 {
				end = len(s) - pos
			}
			e.value = s[pos : pos+end]
			pos += end
		}
		entries = append(entries, e)

		if pos == len(s) {
			return entries, nil
		}
		if s[pos] != ',' {
			return nil, fmt.Errorf("%w: expected ',' at offset %d", ErrMalformedCommitment, pos)
		}
		pos++
		if pos == len(s) {
			return nil, fmt.Errorf("%w: trailing comma", ErrMalformedCommitment)
		}
	}
}
