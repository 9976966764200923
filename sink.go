// Copyright 2026 The Inkwell Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

// UnlimitedCapacity marks a [DynamicSink] as having no upper bound on how
// far it may grow.
const UnlimitedCapacity = -1

// defaultReserveNumerator and defaultReserveDenominator control how much of
// a finite cap a [DynamicSink] reserves up front (see [NewDynamicSink]).
// This is the one compile-time configuration knob this package exposes;
// there is no config file or environment variable behind it.
const (
	defaultReserveNumerator   = 1
	defaultReserveDenominator = 4
)

// Sink is an append-only byte destination. The set of concrete
// implementations is closed to [DynamicSink] and [StaticSink]: every
// composite encode operation needs the rollback guarantee both provide,
// and only these two know how to honor it without an undo log.
type Sink interface {
	// Write appends p in full, or leaves the sink unchanged and returns an
	// error carrying [KindBufferOverflow]. There is no partial write.
	Write(p []byte) error

	// WriteByte appends a single byte.
	WriteByte(b byte) error

	// Size reports the number of committed bytes.
	Size() int

	// BeginRollback marks the current size. Composite encoders defer
	// scope.Rollback() and call scope.Commit() on the success path, the
	// same shape as database/sql's "defer tx.Rollback(); ...; return
	// tx.Commit()" pattern.
	BeginRollback() *RollbackScope

	beginNestedWrite() int
	rollbackNestedWrite(token int)
}

// RollbackScope restores a [Sink] to the size it had when the scope was
// created, unless [RollbackScope.Commit] was called first.
type RollbackScope struct {
	sink      Sink
	token     int
	committed bool
}

func beginRollback(sink Sink) *RollbackScope {
	return &RollbackScope{sink: sink, token: sink.beginNestedWrite()}
}

// Commit keeps the bytes written since the scope began.
func (s *RollbackScope) Commit() {
	s.committed = true
}

// Rollback undoes the scope's writes unless it was committed. Safe to call
// via defer even after a successful Commit.
func (s *RollbackScope) Rollback() {
	if !s.committed {
		s.sink.rollbackNestedWrite(s.token)
	}
}

// DynamicSink grows a caller-owned byte slice as it is written to, up to an
// optional cap.
type DynamicSink struct {
	storage *[]byte
	cap     int
}

// NewDynamicSink wraps storage for encoding. storage must point to a slice
// the caller owns for the lifetime of the sink; the sink never owns the
// backing array. cap bounds the total number of bytes the sink will ever
// hold; pass [UnlimitedCapacity] for no bound.
//
// If cap is finite, the sink immediately reserves min(cap, a quarter of
// cap) bytes of capacity in storage, an up-front allocation that avoids
// repeated reallocation on the common path of encoding into a
// freshly-cleared buffer.
func NewDynamicSink(storage *[]byte, cap int) *DynamicSink {
	if cap >= 0 {
		reserve := cap * defaultReserveNumerator / defaultReserveDenominator
		if reserve > cap {
			reserve = cap
		}
		if reserve > 0 && gocap(*storage) < reserve {
			grown := make([]byte, len(*storage), reserve)
			copy(grown, *storage)
			*storage = grown
		}
	}
	return &DynamicSink{storage: storage, cap: cap}
}

func gocap(b []byte) int { return cap(b) }

func (s *DynamicSink) Size() int { return len(*s.storage) }

func (s *DynamicSink) Write(p []byte) error {
	if err := s.ensureCapacity(len(p)); err != nil {
		return err
	}
	*s.storage = append(*s.storage, p...)
	return nil
}

func (s *DynamicSink) WriteByte(b byte) error {
	return s.Write([]byte{b})
}

func (s *DynamicSink) ensureCapacity(numBytes int) error {
	if s.cap == UnlimitedCapacity {
		return nil
	}
	if len(*s.storage)+numBytes > s.cap {
		return bufferOverflow("dynamic sink capped at %d bytes, write would need %d", s.cap, len(*s.storage)+numBytes)
	}
	return nil
}

func (s *DynamicSink) BeginRollback() *RollbackScope { return beginRollback(s) }

func (s *DynamicSink) beginNestedWrite() int {
	return len(*s.storage)
}

func (s *DynamicSink) rollbackNestedWrite(token int) {
	*s.storage = (*s.storage)[:token]
}

// StaticSink wraps a fixed-extent slice. Writes past the extent fail with
// [KindBufferOverflow]; the sink never allocates.
type StaticSink struct {
	span []byte
	size int
}

// NewStaticSink wraps span for encoding. The sink will never write more
// than len(span) bytes into it.
func NewStaticSink(span []byte) *StaticSink {
	return &StaticSink{span: span}
}

func (s *StaticSink) Size() int { return s.size }

func (s *StaticSink) Write(p []byte) error {
	if s.size+len(p) > len(s.span) {
		return bufferOverflow("static sink extent is %d bytes, write would need %d", len(s.span), s.size+len(p))
	}
	copy(s.span[s.size:], p)
	s.size += len(p)
	return nil
}

func (s *StaticSink) WriteByte(b byte) error {
	return s.Write([]byte{b})
}

func (s *StaticSink) BeginRollback() *RollbackScope { return beginRollback(s) }

func (s *StaticSink) beginNestedWrite() int {
	return s.size
}

func (s *StaticSink) rollbackNestedWrite(token int) {
	s.size = token
}
