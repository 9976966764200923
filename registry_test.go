// Copyright 2026 The Inkwell Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import "testing"

type widget struct {
	Reflectable
	SerialNumber uint64
}

type gadget struct {
	Reflectable
	Model string
}

func init() {
	RegisterType[widget](1001)
	RegisterType[gadget](1002)
}

func TestRegisterTypeCollidingID(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("RegisterType with a reused type-id should panic")
		}
	}()
	type anotherWidget struct {
		Reflectable
		Foo int64
	}
	RegisterType[anotherWidget](1001)
}

func TestRegisterTypeCollidingType(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("RegisterType on an already-registered type should panic")
		}
	}()
	RegisterType[widget](9999)
}
