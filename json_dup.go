package valchain

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// ErrDuplicateKey is returned by strict decoding when a report repeats an
// object key.
var ErrDuplicateKey = errors.New("valchain: duplicate key")

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

// dupFrame tracks one open container while scanning tokens.
type dupFrame struct {
	kind         containerKind
	ref          PathRef
	keys         map[string]struct{}
	expectingKey bool
	next         int // next array position
	key          string
}

// DetectDuplicateKeys scans a JSON document and returns one Issue per
// repeated object key, addressed by the JSON Pointer of the enclosing object.
func DetectDuplicateKeys(data []byte) (Issues, error) {
	return DetectDuplicateKeysReader(bytes.NewReader(data))
}

// DetectDuplicateKeysReader is DetectDuplicateKeys over a reader. The reader
// is consumed fully.
func DetectDuplicateKeysReader(r io.Reader) (Issues, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var (
		issues Issues
		stack  []dupFrame
	)
	// valueRef is the path of the value about to be read.
	valueRef := func() PathRef {
		if len(stack) == 0 {
			return Root()
		}
		top := &stack[len(stack)-1]
		if top.kind == kindArray {
			ref := top.ref.Index(top.next)
			top.next++
			return ref
		}
		return top.ref.Field(top.key)
	}
	// valueDone flips the enclosing object back to expecting a key.
	valueDone := func() {
		if len(stack) == 0 {
			return
		}
		if top := &stack[len(stack)-1]; top.kind == kindObject {
			top.expectingKey = true
		}
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return issues, fmt.Errorf("valchain: scan json: %w", err)
		}

		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{':
				stack = append(stack, dupFrame{kind: kindObject, ref: valueRef(), keys: map[string]struct{}{}, expectingKey: true})
			case '[':
				stack = append(stack, dupFrame{kind: kindArray, ref: valueRef()})
			case '}', ']':
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
				valueDone()
			}
		case string:
			if len(stack) > 0 {
				if top := &stack[len(stack)-1]; top.kind == kindObject && top.expectingKey {
					if _, ok := top.keys[v]; ok {
						issues = append(issues, top.ref.Issue(fmt.Sprintf("key %q duplicated", v)))
					}
					top.keys[v] = struct{}{}
					top.key = v
					top.expectingKey = false
					continue
				}
			}
			valueRef()
			valueDone()
		default:
			valueRef()
			valueDone()
		}
	}
	return issues, nil
}

// UnmarshalReportStrict is UnmarshalReport that first rejects documents with
// repeated object keys, which a plain decode would silently collapse.
func UnmarshalReportStrict(data []byte) ([]Violation, error) {
	iss, err := DetectDuplicateKeys(data)
	if err != nil {
		return nil, err
	}
	if len(iss) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateKey, iss.Error())
	}
	return UnmarshalReport(data)
}
