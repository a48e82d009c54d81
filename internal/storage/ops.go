package storage

import (
	"encoding/json"
	"fmt"
)

type OpKind int

const (
	OpUpsert OpKind = iota
	OpDelete
)

func (k OpKind) String() string {
	if k == OpDelete {
		return "delete"
	}
	return "upsert"
}

type Operation struct {
	Kind       OpKind
	Collection string
	Key        string
	Data       json.RawMessage
}

// Ops is the operation buffer shared by the Batch implementations.
// Values are marshalled on Upsert; the first marshal failure is reported by Validate.
type Ops struct {
	ops    []Operation
	failed int
	err    error
}

func (o *Ops) Upsert(collection, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		o.failed++
		if o.err == nil {
			o.err = fmt.Errorf("failed to marshal %s/%s: %w", collection, key, err)
		}
		return
	}
	o.ops = append(o.ops, Operation{Kind: OpUpsert, Collection: collection, Key: key, Data: data})
}

func (o *Ops) Delete(collection, key string) {
	o.ops = append(o.ops, Operation{Kind: OpDelete, Collection: collection, Key: key})
}

// Len counts every operation added, including upserts whose value failed to marshal.
func (o *Ops) Len() int {
	return len(o.ops) + o.failed
}

func (o *Ops) Operations() []Operation {
	return o.ops
}

// Validate reports whether the buffered operations can be committed under limit.
// A limit <= 0 means unbounded.
func (o *Ops) Validate(limit int) error {
	if o.err != nil {
		return o.err
	}
	if o.Len() == 0 {
		return ErrEmptyCommit
	}
	if limit > 0 && o.Len() > limit {
		return fmt.Errorf("%w: %d > %d", ErrBatchTooLarge, o.Len(), limit)
	}
	return nil
}
